package domain

// LineItem is a single cart position. Exactly one line item exists per
// distinct product id. Price and discount percentage are captured from the
// product when the item is first added and stay frozen for the item's
// lifetime, so later catalog price changes do not affect an open cart.
type LineItem struct {
	ID                 int64   `json:"id"`
	Title              string  `json:"title"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	Total              float64 `json:"total"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountedTotal    float64 `json:"discountedTotal"`
	Thumbnail          string  `json:"thumbnail"`
}

// Recalculate updates the derived totals after a quantity change, using the
// item's own frozen discount percentage.
func (li *LineItem) Recalculate() {
	li.Total = float64(li.Quantity) * li.Price
	li.DiscountedTotal = li.Total * (100 - li.DiscountPercentage) / 100
}

// NewLineItem creates a line item with quantity 1 from a catalog product.
func NewLineItem(p Product) LineItem {
	li := LineItem{
		ID:                 p.ID,
		Title:              p.Title,
		Price:              p.Price,
		Quantity:           1,
		DiscountPercentage: p.DiscountPercentage,
		Thumbnail:          p.Thumbnail,
	}
	li.Recalculate()
	return li
}
