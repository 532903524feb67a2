package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	ImageURL     string          `json:"image_url,omitempty"`
	CloudinaryID string          `json:"cloudinary_id,omitempty"`
	// Optional payment-provider references. PriceRef points at a pre-existing
	// provider price; ProductRef lets checkout mint a one-time price on demand.
	PriceRef   string    `json:"price_ref,omitempty"`
	ProductRef string    `json:"product_ref,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
