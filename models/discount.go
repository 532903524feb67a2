package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountRule subtracts DiscountAmount once per full ThresholdQuantity
// multiple a matching line item reaches. At most one rule per product.
type DiscountRule struct {
	ID                int             `json:"id"`
	ProductID         int             `json:"product_id"`
	ThresholdQuantity int             `json:"threshold_quantity"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
}
