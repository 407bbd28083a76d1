package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func line(id uint, price string) Line {
	return Line{ProductID: id, Name: "item", Price: decimal.RequireFromString(price), Image: "images/item.jpg"}
}

func TestAddSameProductTwiceIncrementsQuantity(t *testing.T) {
	c := New()
	c.Add(line(1, "80.00"))
	got := c.Add(line(1, "80.00"))

	if len(c.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(c.Lines))
	}
	if got.Quantity != 2 || c.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", c.Lines[0].Quantity)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	c := New()
	c.Add(line(3, "1.00"))
	c.Add(line(1, "1.00"))
	c.Add(line(3, "1.00"))

	if c.Lines[0].ProductID != 3 || c.Lines[1].ProductID != 1 {
		t.Fatalf("unexpected order %+v", c.Lines)
	}
}

func TestAddKeepsSnapshotPrice(t *testing.T) {
	c := New()
	c.Add(line(1, "80.00"))
	c.Add(line(1, "95.00"))

	if !c.Lines[0].Price.Equal(decimal.RequireFromString("80.00")) {
		t.Fatalf("expected snapshot price 80.00, got %s", c.Lines[0].Price)
	}
}

func TestTotal(t *testing.T) {
	c := New()
	c.Add(line(1, "80.00"))
	c.Add(line(2, "150.00"))
	c.Add(line(2, "150.00"))

	if got := c.Total().StringFixed(2); got != "380.00" {
		t.Fatalf("expected 380.00, got %s", got)
	}
	if c.ItemCount() != 3 {
		t.Fatalf("expected 3 items, got %d", c.ItemCount())
	}
}

func TestTotalEmptyAndRounding(t *testing.T) {
	if got := New().Total().StringFixed(2); got != "0.00" {
		t.Fatalf("expected 0.00, got %s", got)
	}
	var nilCart *Cart
	if got := nilCart.Total().StringFixed(2); got != "0.00" {
		t.Fatalf("expected 0.00 for nil cart, got %s", got)
	}

	c := New()
	c.Add(line(1, "0.333"))
	c.Add(line(1, "0.333"))
	c.Add(line(1, "0.333"))
	if got := c.Total().StringFixed(2); got != "1.00" {
		t.Fatalf("expected 0.999 rounded to 1, got %s", got)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := New()
	c.Add(line(1, "10.00"))

	if c.Remove(42) {
		t.Fatal("expected remove of absent id to report false")
	}
	if len(c.Lines) != 1 || c.Lines[0].Quantity != 1 {
		t.Fatalf("cart changed: %+v", c.Lines)
	}

	if !c.Remove(1) {
		t.Fatal("expected remove to report true")
	}
	if !c.IsEmpty() {
		t.Fatal("expected empty cart")
	}
}

func TestClearAndClone(t *testing.T) {
	c := New()
	c.Add(line(1, "10.00"))
	snapshot := c.Clone()
	c.Clear()

	if !c.IsEmpty() {
		t.Fatal("expected cleared cart")
	}
	if snapshot.IsEmpty() || snapshot.Lines[0].ProductID != 1 {
		t.Fatalf("clone should be unaffected by clear: %+v", snapshot)
	}
}
