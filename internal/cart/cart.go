package cart

import (
	"github.com/shopspring/decimal"
)

// SchemaVersion is stamped on every serialized cart. Payloads carrying another
// version are discarded on load.
const SchemaVersion = 1

// Line is a single product entry. Name, price and image are snapshotted when the
// product is first added and never refreshed from the catalogue.
type Line struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns price x quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ordered set of lines held for one visitor.
type Cart struct {
	Version int    `json:"version"`
	Lines   []Line `json:"lines"`
}

// New returns an empty cart at the current schema version.
func New() *Cart {
	return &Cart{Version: SchemaVersion, Lines: []Line{}}
}

// Add increments the matching line or appends a new one with quantity 1. The
// resulting line is returned.
func (c *Cart) Add(item Line) Line {
	for i := range c.Lines {
		if c.Lines[i].ProductID == item.ProductID {
			c.Lines[i].Quantity++
			return c.Lines[i]
		}
	}
	item.Quantity = 1
	c.Lines = append(c.Lines, item)
	return item
}

// Remove drops the line for productID and reports whether one existed.
func (c *Cart) Remove(productID uint) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.Lines = []Line{}
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}

// ItemCount sums the quantities of every line.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Total is the sum of line subtotals rounded to two places.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total.Round(2)
}

// Clone returns a deep copy, used to snapshot a cart before it is consumed.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return New()
	}
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return &Cart{Version: c.Version, Lines: lines}
}
