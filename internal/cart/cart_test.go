package cart

import (
	"errors"
	"testing"

	"github.com/angelmondragon/caffeineveins/internal/catalog"
	"github.com/shopspring/decimal"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func latte() catalog.Product {
	return catalog.Product{
		ID:        "1",
		Name:      "Iced Milk Coffee",
		Category:  "coffee",
		Available: true,
		Sizes: []catalog.ProductSize{
			{Name: "12oz", Price: d("90")},
			{Name: "16oz", Price: d("110")},
		},
	}
}

func TestAddMergesSameProductAndPrice(t *testing.T) {
	c := New()
	p := latte()

	c.Add(p, p.Sizes[0])
	if qty := c.Add(p, p.Sizes[0]); qty != 2 {
		t.Fatalf("expected merged quantity 2, got %d", qty)
	}
	if c.Len() != 1 {
		t.Fatalf("expected a single line, got %d", c.Len())
	}

	c.Add(p, p.Sizes[1])
	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("different price should append a line, got %d lines", len(items))
	}
	if items[0].SelectedSize.Name != "12oz" || items[1].SelectedSize.Name != "16oz" {
		t.Fatalf("lines should keep insertion order: %+v", items)
	}
	if c.Count() != 3 {
		t.Fatalf("expected 3 units, got %d", c.Count())
	}
}

// Sizes are keyed by price, so two names at one price collide into one line.
func TestAddSamePriceDifferentSizeNameSharesLine(t *testing.T) {
	c := New()
	p := latte()
	p.Sizes = []catalog.ProductSize{{Name: "Hot", Price: d("115")}, {Name: "Iced", Price: d("115.00")}}

	c.Add(p, p.Sizes[0])
	c.Add(p, p.Sizes[1])

	items := c.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v", items)
	}
	if items[0].SelectedSize.Name != "Hot" {
		t.Fatalf("first size added names the line, got %q", items[0].SelectedSize.Name)
	}
}

func TestSetQuantityFloor(t *testing.T) {
	for _, qty := range []int{0, -3} {
		c := New()
		p := latte()
		c.Add(p, p.Sizes[0])
		c.Add(p, p.Sizes[1])

		c.SetQuantity("1", d("90"), qty)

		items := c.Items()
		if len(items) != 1 || items[0].SelectedSize.Name != "16oz" {
			t.Fatalf("quantity %d should remove only the matching line, got %+v", qty, items)
		}
	}
}

func TestSetQuantityReplacesOnlyMatchingLine(t *testing.T) {
	c := New()
	p := latte()
	c.Add(p, p.Sizes[0])
	c.Add(p, p.Sizes[1])

	c.SetQuantity("1", d("110"), 5)
	c.SetQuantity("missing", d("110"), 9)

	items := c.Items()
	if items[0].Quantity != 1 || items[1].Quantity != 5 {
		t.Fatalf("unexpected quantities %d/%d", items[0].Quantity, items[1].Quantity)
	}
}

func TestRemoveAndClear(t *testing.T) {
	c := New()
	p := latte()
	c.Add(p, p.Sizes[0])
	c.Add(p, p.Sizes[1])

	if removed := c.Remove("1", d("110")); removed != 1 {
		t.Fatalf("expected one line removed, got %d", removed)
	}
	if removed := c.Remove("1", d("999")); removed != 0 {
		t.Fatalf("unknown key should remove nothing, got %d", removed)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 line left, got %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 || !c.Total().IsZero() {
		t.Fatalf("cart should be empty after clear")
	}
}

func TestTotalIsRecomputed(t *testing.T) {
	c := New()
	p := latte()
	p.Sizes = []catalog.ProductSize{{Name: "16oz", Price: d("120")}, {Name: "12oz", Price: d("90")}}
	c.Add(p, p.Sizes[0])
	c.Add(p, p.Sizes[0])
	c.Add(p, p.Sizes[1])

	if got := c.Total(); !got.Equal(d("330")) {
		t.Fatalf("expected total 330, got %s", got)
	}
	c.SetQuantity("1", d("90"), 3)
	if got := c.Total(); !got.Equal(d("510")) {
		t.Fatalf("expected total 510 after quantity change, got %s", got)
	}
}

func TestLinesAreSnapshots(t *testing.T) {
	c := New()
	p := latte()
	c.Add(p, p.Sizes[0])

	p.Name = "renamed"
	p.Sizes[0].Price = d("1")

	items := c.Items()
	if items[0].Product.Name != "Iced Milk Coffee" || !items[0].Product.Sizes[0].Price.Equal(d("90")) {
		t.Fatalf("catalog edits must not reach into the cart: %+v", items[0].Product)
	}

	items[0].Quantity = 40
	if c.Count() != 1 {
		t.Fatalf("Items must return a copy")
	}
}

func TestCheckoutClearsOnlyOnSuccess(t *testing.T) {
	c := New()
	p := latte()
	c.Add(p, p.Sizes[0])

	boom := errors.New("persist failed")
	err := c.Checkout(func(items []Item) error {
		if len(items) != 1 {
			t.Fatalf("checkout should see the lines, got %d", len(items))
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected checkout error to propagate, got %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("failed checkout must keep the cart")
	}

	if err := c.Checkout(func([]Item) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("successful checkout must clear the cart")
	}
}
