package models

import "github.com/shopspring/decimal"

// LineItem is one product entry in a cart. Quantity is always >= 1; a line
// that would drop to zero is removed from the cart instead.
type LineItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url,omitempty"`
}

func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart holds line items in insertion order, at most one per product id.
type Cart struct {
	Items []LineItem `json:"items"`
}

func (c *Cart) Find(productID int) *LineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) Remove(productID int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) ItemCount() int {
	count := 0
	for _, li := range c.Items {
		count += li.Quantity
	}
	return count
}

// CartSummary carries the derived totals recomputed after every mutation.
type CartSummary struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

type CartView struct {
	Items   []LineItem  `json:"items"`
	Summary CartSummary `json:"summary"`
}
