package mongodoc

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clownsinformatics/tienda/internal/domain"
)

func TestOrderDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	order := domain.Order{
		ID:     domain.NewOrderID(),
		UserID: 7,
		Client: domain.ClientSnapshot{
			ID:       3,
			Username: "ana",
			Name:     "Ana",
			Email:    "ana@example.com",
			Address:  "Calle Mayor 1",
			Phone:    "600000000",
		},
		CreatedAt: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
	}
	order.ReplaceLines([]domain.OrderLine{
		domain.NewOrderLine(productID, 2, decimal.RequireFromString("19.99")),
	})

	got, err := fromOrderDocument(toOrderDocument(order))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}

	if got.ID != order.ID || got.UserID != order.UserID {
		t.Fatalf("identity fields changed: %+v", got)
	}
	if got.Client != order.Client {
		t.Fatalf("client snapshot changed: %+v", got.Client)
	}
	if len(got.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got.Lines))
	}
	if got.Lines[0].ProductID != productID {
		t.Fatalf("product id changed: %s", got.Lines[0].ProductID)
	}
	if !got.Lines[0].LineTotal.Equal(decimal.RequireFromString("39.98")) {
		t.Fatalf("line total changed: %s", got.Lines[0].LineTotal)
	}
	if got.TotalItems != 1 {
		t.Fatalf("total items changed: %d", got.TotalItems)
	}
	if !got.TotalAmount.Equal(order.TotalAmount) {
		t.Fatalf("total amount changed: %s vs %s", got.TotalAmount, order.TotalAmount)
	}
}

func TestFromOrderDocumentRejectsBadAmount(t *testing.T) {
	t.Parallel()

	doc := orderDocument{ID: "x", TotalAmount: "not-a-number"}
	if _, err := fromOrderDocument(doc); err == nil {
		t.Fatal("expected error for malformed total amount")
	}
}
