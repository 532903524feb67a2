package services

import (
	"testing"

	"carers-store/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testPricing() PricingConfig {
	return PricingConfig{
		FreeShippingThreshold: dec("50"),
		FlatShippingFee:       dec("3.99"),
	}
}

func line(productID int, price string, qty int) models.LineItem {
	return models.LineItem{ProductID: productID, Name: "item", UnitPrice: dec(price), Quantity: qty}
}

func TestSubtotal(t *testing.T) {
	cart := models.Cart{Items: []models.LineItem{
		line(1, "16.99", 3),
		line(2, "4.50", 2),
	}}

	got := Subtotal(cart)
	want := dec("59.97")
	if !got.Equal(want) {
		t.Errorf("Subtotal() = %s, want %s", got, want)
	}
}

func TestDiscount(t *testing.T) {
	rule := models.DiscountRule{ProductID: 1, ThresholdQuantity: 3, DiscountAmount: dec("5.01")}

	tests := []struct {
		name  string
		cart  models.Cart
		rules []models.DiscountRule
		want  string
	}{
		{
			name:  "no rules",
			cart:  models.Cart{Items: []models.LineItem{line(1, "16.99", 3)}},
			rules: nil,
			want:  "0",
		},
		{
			name:  "below threshold",
			cart:  models.Cart{Items: []models.LineItem{line(1, "16.99", 2)}},
			rules: []models.DiscountRule{rule},
			want:  "0",
		},
		{
			name:  "exactly at threshold",
			cart:  models.Cart{Items: []models.LineItem{line(1, "16.99", 3)}},
			rules: []models.DiscountRule{rule},
			want:  "5.01",
		},
		{
			name:  "two full multiples",
			cart:  models.Cart{Items: []models.LineItem{line(1, "16.99", 7)}},
			rules: []models.DiscountRule{rule},
			want:  "10.02",
		},
		{
			name: "rule only applies to its product",
			cart: models.Cart{Items: []models.LineItem{
				line(1, "16.99", 3),
				line(2, "16.99", 3),
			}},
			rules: []models.DiscountRule{rule},
			want:  "5.01",
		},
		{
			name:  "discount clamped at line subtotal",
			cart:  models.Cart{Items: []models.LineItem{line(1, "1.00", 3)}},
			rules: []models.DiscountRule{{ProductID: 1, ThresholdQuantity: 3, DiscountAmount: dec("100")}},
			want:  "3.00",
		},
		{
			name:  "zero threshold rule ignored",
			cart:  models.Cart{Items: []models.LineItem{line(1, "16.99", 3)}},
			rules: []models.DiscountRule{{ProductID: 1, ThresholdQuantity: 0, DiscountAmount: dec("5")}},
			want:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discount(tt.cart, tt.rules)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("Discount() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestShipping(t *testing.T) {
	cfg := testPricing()

	tests := []struct {
		name     string
		subtotal string
		want     string
	}{
		{"below threshold", "49.99", "3.99"},
		{"exactly at threshold", "50", "0"},
		{"above threshold", "50.97", "0"},
		{"empty cart pays flat fee", "0", "3.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shipping(dec(tt.subtotal), cfg)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("Shipping(%s) = %s, want %s", tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	cfg := testPricing()

	t.Run("discount and free shipping together", func(t *testing.T) {
		cart := models.Cart{Items: []models.LineItem{line(1, "16.99", 3)}}
		rules := []models.DiscountRule{{ProductID: 1, ThresholdQuantity: 3, DiscountAmount: dec("5.01")}}

		got := Summarize(cart, rules, cfg)

		if !got.Subtotal.Equal(dec("50.97")) {
			t.Errorf("Subtotal = %s, want 50.97", got.Subtotal)
		}
		if !got.Discount.Equal(dec("5.01")) {
			t.Errorf("Discount = %s, want 5.01", got.Discount)
		}
		// Free shipping is decided on the pre-discount subtotal.
		if !got.Shipping.IsZero() {
			t.Errorf("Shipping = %s, want 0", got.Shipping)
		}
		if !got.Total.Equal(dec("45.96")) {
			t.Errorf("Total = %s, want 45.96", got.Total)
		}
		if got.ItemCount != 3 {
			t.Errorf("ItemCount = %d, want 3", got.ItemCount)
		}
	})

	t.Run("small cart pays shipping", func(t *testing.T) {
		cart := models.Cart{Items: []models.LineItem{line(1, "4.99", 1)}}

		got := Summarize(cart, nil, cfg)

		if !got.Shipping.Equal(dec("3.99")) {
			t.Errorf("Shipping = %s, want 3.99", got.Shipping)
		}
		if !got.Total.Equal(dec("8.98")) {
			t.Errorf("Total = %s, want 8.98", got.Total)
		}
	})

	t.Run("total never goes negative", func(t *testing.T) {
		cart := models.Cart{Items: []models.LineItem{
			line(1, "1.00", 3),
			line(2, "0.50", 3),
		}}
		rules := []models.DiscountRule{
			{ProductID: 1, ThresholdQuantity: 3, DiscountAmount: dec("100")},
			{ProductID: 2, ThresholdQuantity: 3, DiscountAmount: dec("100")},
		}

		got := Summarize(cart, rules, cfg)
		if got.Total.IsNegative() {
			t.Errorf("Total = %s, want non-negative", got.Total)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		got := Summarize(models.Cart{}, nil, cfg)

		if !got.Subtotal.IsZero() {
			t.Errorf("Subtotal = %s, want 0", got.Subtotal)
		}
		if got.ItemCount != 0 {
			t.Errorf("ItemCount = %d, want 0", got.ItemCount)
		}
		if !got.Total.Equal(dec("3.99")) {
			t.Errorf("Total = %s, want 3.99", got.Total)
		}
	})

	t.Run("first rule per product wins", func(t *testing.T) {
		cart := models.Cart{Items: []models.LineItem{line(1, "16.99", 3)}}
		rules := []models.DiscountRule{
			{ProductID: 1, ThresholdQuantity: 3, DiscountAmount: dec("5.01")},
			{ProductID: 1, ThresholdQuantity: 1, DiscountAmount: dec("1")},
		}

		got := Summarize(cart, rules, cfg)
		if !got.Discount.Equal(dec("5.01")) {
			t.Errorf("Discount = %s, want 5.01", got.Discount)
		}
	})
}
