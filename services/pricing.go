package services

import (
	"carers-store/models"

	"github.com/shopspring/decimal"
)

// PricingConfig is the storefront pricing policy applied to every cart.
type PricingConfig struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

func Subtotal(cart models.Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, li := range cart.Items {
		sum = sum.Add(li.LineTotal())
	}
	return sum
}

// Discount applies threshold rules: a matching line earns DiscountAmount once
// per full ThresholdQuantity multiple reached. The discount for a line is
// clamped at that line's subtotal so misconfigured rules cannot push a cart
// negative.
func Discount(cart models.Cart, rules []models.DiscountRule) decimal.Decimal {
	if len(rules) == 0 {
		return decimal.Zero
	}

	byProduct := make(map[int]models.DiscountRule, len(rules))
	for _, rule := range rules {
		if rule.ThresholdQuantity < 1 {
			continue
		}
		if _, ok := byProduct[rule.ProductID]; !ok {
			byProduct[rule.ProductID] = rule
		}
	}

	total := decimal.Zero
	for _, li := range cart.Items {
		rule, ok := byProduct[li.ProductID]
		if !ok {
			continue
		}
		multiples := li.Quantity / rule.ThresholdQuantity
		if multiples == 0 {
			continue
		}
		amount := rule.DiscountAmount.Mul(decimal.NewFromInt(int64(multiples)))
		if lineTotal := li.LineTotal(); amount.GreaterThan(lineTotal) {
			amount = lineTotal
		}
		total = total.Add(amount)
	}
	return total
}

// Shipping is free once the pre-discount subtotal reaches the threshold,
// otherwise the flat fee applies.
func Shipping(subtotal decimal.Decimal, cfg PricingConfig) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(cfg.FreeShippingThreshold) {
		return decimal.Zero
	}
	return cfg.FlatShippingFee
}

func Total(cart models.Cart, rules []models.DiscountRule, cfg PricingConfig) decimal.Decimal {
	return Summarize(cart, rules, cfg).Total
}

func Summarize(cart models.Cart, rules []models.DiscountRule, cfg PricingConfig) models.CartSummary {
	subtotal := Subtotal(cart)
	discount := Discount(cart, rules)
	shipping := Shipping(subtotal, cfg)

	total := subtotal.Sub(discount).Add(shipping)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return models.CartSummary{
		Subtotal:  subtotal,
		Discount:  discount,
		Shipping:  shipping,
		Total:     total,
		ItemCount: cart.ItemCount(),
	}
}
