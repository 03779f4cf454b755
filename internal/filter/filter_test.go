package filter

import (
	"testing"

	"github.com/shopspring/decimal"
)

type item struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

func catalog() []item {
	return []item{
		{Name: "Product 1", Price: decimal.NewFromFloat(25.0), Stock: 3},
		{Name: "Product 2", Price: decimal.NewFromFloat(75.5), Stock: 0},
		{Name: "product 10", Price: decimal.NewFromFloat(59.99), Stock: 12},
		{Name: "Keyboard", Price: decimal.NewFromFloat(12.0), Stock: 7},
	}
}

func byName(s string) Predicate[item] {
	return ContainsFold(func(i item) string { return i.Name }, s)
}

func maxPrice(f float64) Predicate[item] {
	return MaxDecimal(func(i item) decimal.Decimal { return i.Price }, decimal.NewFromFloat(f))
}

func TestAnd_Commutative(t *testing.T) {
	items := catalog()

	left := Apply(items, And(byName("Product 1"), maxPrice(50.0)))
	right := Apply(items, And(maxPrice(50.0), byName("Product 1")))

	if len(left) != len(right) {
		t.Fatalf("AND must be commutative: %d vs %d", len(left), len(right))
	}
	for i := range left {
		if left[i].Name != right[i].Name {
			t.Fatalf("result sets differ at %d: %q vs %q", i, left[i].Name, right[i].Name)
		}
	}
}

func TestAnd_Associative(t *testing.T) {
	items := catalog()
	minStock := Min(func(i item) int { return i.Stock }, 1)

	a := Apply(items, And(And(byName("product"), maxPrice(50.0)), minStock))
	b := Apply(items, And(byName("product"), And(maxPrice(50.0), minStock)))

	if len(a) != len(b) {
		t.Fatalf("AND must be associative: %d vs %d", len(a), len(b))
	}
}

func TestAnd_EmptySelectsAll(t *testing.T) {
	items := catalog()

	if got := Apply(items, And[item]()); len(got) != len(items) {
		t.Fatalf("empty AND must select everything, got %d of %d", len(got), len(items))
	}
	if got := Apply(items, And[item](nil, nil)); len(got) != len(items) {
		t.Fatalf("nil predicates must be skipped, got %d of %d", len(got), len(items))
	}
}

func TestContainsFold_CaseInsensitive(t *testing.T) {
	items := Apply(catalog(), byName("PRODUCT"))
	if len(items) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(items))
	}
}

func TestCombinedFilters_SingleMatch(t *testing.T) {
	// Каталог, где ровно один продукт удовлетворяет имени и цене одновременно.
	items := Apply(catalog(), And(byName("Product 1"), maxPrice(50.0)))

	if len(items) != 1 {
		t.Fatalf("expected exactly one element, got %d", len(items))
	}
	got := items[0]
	if got.Name != "Product 1" {
		t.Fatalf("unexpected element %q", got.Name)
	}
	if !got.Price.LessThanOrEqual(decimal.NewFromFloat(50.0)) {
		t.Fatalf("element violates price bound: %s", got.Price)
	}
}

func TestBounds_Inclusive(t *testing.T) {
	exact := MaxDecimal(func(i item) decimal.Decimal { return i.Price }, decimal.NewFromFloat(25.0))
	if got := Apply(catalog(), exact); len(got) != 2 {
		t.Fatalf("bounds must be inclusive, got %d matches", len(got))
	}

	stock := Min(func(i item) int { return i.Stock }, 7)
	if got := Apply(catalog(), stock); len(got) != 2 {
		t.Fatalf("expected 2 items with stock >= 7, got %d", len(got))
	}
}
