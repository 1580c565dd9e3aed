package orderitem

import "errors"

// ErrNonPositiveItem is returned for items with a non-positive unit price or
// quantity.
var ErrNonPositiveItem = errors.New("price and quantity must be positive")

// OrderItem represents a single line item within an order.
type OrderItem struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Notes    string  `json:"notes,omitempty"`
}

// Validate checks that the item's unit price and quantity are positive.
func (i OrderItem) Validate() error {
	if i.Price <= 0 || i.Quantity <= 0 {
		return ErrNonPositiveItem
	}

	return nil
}
