package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clownsinformatics/tienda/internal/domain"
)

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func TestOrderLine_RecomputeOnConstruction(t *testing.T) {
	line := domain.NewOrderLine(uuid.New(), 2, dec(10.0))
	if !line.LineTotal.Equal(dec(20.0)) {
		t.Fatalf("expected line total 20.0, got %s", line.LineTotal)
	}

	// Количество меньше единицы заменяется дефолтом.
	def := domain.NewOrderLine(uuid.New(), 0, dec(5.0))
	if def.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", def.Quantity)
	}
	if !def.LineTotal.Equal(dec(5.0)) {
		t.Fatalf("expected line total 5.0, got %s", def.LineTotal)
	}
}

func TestOrderLine_SettersRecompute(t *testing.T) {
	line := domain.NewOrderLine(uuid.New(), 1, dec(10.0))

	line.SetQuantity(3)
	if !line.LineTotal.Equal(dec(30.0)) {
		t.Fatalf("after SetQuantity expected 30.0, got %s", line.LineTotal)
	}

	line.SetUnitPrice(dec(7.5))
	if !line.LineTotal.Equal(dec(22.5)) {
		t.Fatalf("after SetUnitPrice expected 22.5, got %s", line.LineTotal)
	}

	if !line.LineTotal.Equal(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))) {
		t.Fatal("invariant lineTotal == unitPrice * quantity broken")
	}
}

func TestOrderLine_SetLineTotalOverwrites(t *testing.T) {
	line := domain.NewOrderLine(uuid.New(), 2, dec(10.0))
	line.SetLineTotal(dec(999.0))

	// Прямой перезаписи итога ничего не мешает: консистентность не проверяется.
	if !line.LineTotal.Equal(dec(999.0)) {
		t.Fatalf("expected overwritten total 999.0, got %s", line.LineTotal)
	}
}

func TestOrder_ReplaceLines(t *testing.T) {
	order := domain.Order{ID: domain.NewOrderID(), UserID: 1}

	lines := []domain.OrderLine{
		domain.NewOrderLine(uuid.New(), 2, dec(10.0)),
		domain.NewOrderLine(uuid.New(), 1, dec(5.0)),
	}
	order.ReplaceLines(lines)

	if order.TotalItems != 2 {
		t.Fatalf("expected totalItems 2, got %d", order.TotalItems)
	}
	if !order.TotalAmount.Equal(dec(25.0)) {
		t.Fatalf("expected totalAmount 25.0, got %s", order.TotalAmount)
	}
}

func TestOrder_ReplaceLines_NilAndEmpty(t *testing.T) {
	order := domain.Order{ID: domain.NewOrderID(), UserID: 1}
	order.ReplaceLines([]domain.OrderLine{domain.NewOrderLine(uuid.New(), 4, dec(2.0))})

	order.ReplaceLines(nil)
	if order.TotalItems != 0 {
		t.Fatalf("nil lines must zero totalItems, got %d", order.TotalItems)
	}
	if !order.TotalAmount.IsZero() {
		t.Fatalf("nil lines must zero totalAmount, got %s", order.TotalAmount)
	}

	order.ReplaceLines([]domain.OrderLine{})
	if order.TotalItems != 0 || !order.TotalAmount.IsZero() {
		t.Fatalf("empty lines must zero aggregates, got %d/%s", order.TotalItems, order.TotalAmount)
	}
}

func TestOrder_ReplaceLines_RecomputesFromLineTotals(t *testing.T) {
	line := domain.NewOrderLine(uuid.New(), 2, dec(10.0))
	other := domain.NewOrderLine(uuid.New(), 3, dec(1.5))

	order := domain.Order{ID: domain.NewOrderID()}
	order.ReplaceLines([]domain.OrderLine{line, other})

	want := line.LineTotal.Add(other.LineTotal)
	if !order.TotalAmount.Equal(want) {
		t.Fatalf("expected sum of line totals %s, got %s", want, order.TotalAmount)
	}
}
