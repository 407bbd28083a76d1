package cart

import "github.com/shopspring/decimal"

// LineView is the public representation of a cart line.
type LineView struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

// View is the cart as returned to clients; total is recomputed on every read.
type View struct {
	Lines     []LineView `json:"lines"`
	Total     string     `json:"total"`
	ItemCount int        `json:"item_count"`
}

func NewView(c *Cart) *View {
	if c == nil {
		return &View{Lines: []LineView{}, Total: decimal.Zero.StringFixed(2)}
	}
	view := &View{Lines: []LineView{}, Total: c.Total().StringFixed(2), ItemCount: c.ItemCount()}
	for _, line := range c.Lines {
		view.Lines = append(view.Lines, newLineView(line))
	}
	return view
}

func newLineView(line Line) LineView {
	return LineView{
		ProductID: line.ProductID,
		Name:      line.Name,
		Price:     line.Price.StringFixed(2),
		Image:     line.Image,
		Quantity:  line.Quantity,
		Subtotal:  line.Subtotal().StringFixed(2),
	}
}
