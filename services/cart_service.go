package services

import (
	"context"
	"errors"
	"log"

	"carers-store/models"
	"carers-store/repositories"
)

// ErrInvalidQuantity marks a rejected quantity input. It is swallowed at the
// service boundary: the offending mutation becomes a no-op.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

type DiscountRuleSource interface {
	ActiveRules() ([]models.DiscountRule, error)
}

// CartService owns all cart mutations for the store. Every mutation loads the
// owner's cart, applies the change, recomputes totals, saves, and fires the
// change hook so the presentation layer can re-render. Each owner has a
// single logical writer (the active browsing session), so there is no
// cross-owner locking.
type CartService struct {
	store    *repositories.CartStore
	rules    DiscountRuleSource
	pricing  PricingConfig
	onChange func(ownerID string, summary models.CartSummary)
}

func NewCartService(store *repositories.CartStore, rules DiscountRuleSource, pricing PricingConfig) *CartService {
	return &CartService{
		store:   store,
		rules:   rules,
		pricing: pricing,
	}
}

// OnChange registers a hook invoked after every persisted mutation.
func (s *CartService) OnChange(fn func(ownerID string, summary models.CartSummary)) {
	s.onChange = fn
}

func (s *CartService) Get(ctx context.Context, ownerID string) models.CartView {
	cart := s.store.Load(ctx, ownerID)
	return s.view(cart)
}

// AddItem merges into an existing line for the same product or appends a new
// one. Non-positive quantities are rejected as a no-op.
func (s *CartService) AddItem(ctx context.Context, ownerID string, product models.Product, quantity int) (models.CartView, error) {
	cart := s.store.Load(ctx, ownerID)

	if quantity <= 0 {
		log.Printf("cart: rejected add of product %d for %s: %v (qty %d)", product.ID, ownerID, ErrInvalidQuantity, quantity)
		return s.view(cart), nil
	}

	if existing := cart.Find(product.ID); existing != nil {
		existing.Quantity += quantity
	} else {
		cart.Items = append(cart.Items, models.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  quantity,
			ImageURL:  product.ImageURL,
		})
	}

	return s.commit(ctx, ownerID, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, ownerID string, productID int) (models.CartView, error) {
	cart := s.store.Load(ctx, ownerID)
	if !cart.Remove(productID) {
		return s.view(cart), nil
	}
	return s.commit(ctx, ownerID, cart)
}

// UpdateQuantity sets a line's quantity directly. Anything below one removes
// the line: decreasing below one is a removal, not an error.
func (s *CartService) UpdateQuantity(ctx context.Context, ownerID string, productID, quantity int) (models.CartView, error) {
	if quantity < 1 {
		return s.RemoveItem(ctx, ownerID, productID)
	}

	cart := s.store.Load(ctx, ownerID)
	item := cart.Find(productID)
	if item == nil {
		return s.view(cart), nil
	}
	item.Quantity = quantity

	return s.commit(ctx, ownerID, cart)
}

func (s *CartService) IncreaseQuantity(ctx context.Context, ownerID string, productID int) (models.CartView, error) {
	cart := s.store.Load(ctx, ownerID)
	item := cart.Find(productID)
	if item == nil {
		return s.view(cart), nil
	}
	return s.UpdateQuantity(ctx, ownerID, productID, item.Quantity+1)
}

func (s *CartService) DecreaseQuantity(ctx context.Context, ownerID string, productID int) (models.CartView, error) {
	cart := s.store.Load(ctx, ownerID)
	item := cart.Find(productID)
	if item == nil {
		return s.view(cart), nil
	}
	return s.UpdateQuantity(ctx, ownerID, productID, item.Quantity-1)
}

// Clear empties the cart, e.g. after a fulfilled checkout.
func (s *CartService) Clear(ctx context.Context, ownerID string) (models.CartView, error) {
	return s.commit(ctx, ownerID, models.Cart{})
}

func (s *CartService) commit(ctx context.Context, ownerID string, cart models.Cart) (models.CartView, error) {
	view := s.view(cart)

	if err := s.store.Save(ctx, ownerID, cart); err != nil {
		return view, err
	}
	if s.onChange != nil {
		s.onChange(ownerID, view.Summary)
	}
	return view, nil
}

func (s *CartService) view(cart models.Cart) models.CartView {
	items := cart.Items
	if items == nil {
		items = []models.LineItem{}
	}
	return models.CartView{
		Items:   items,
		Summary: Summarize(cart, s.activeRules(), s.pricing),
	}
}

// activeRules fails open: a broken rule source prices the cart without
// discounts rather than blocking mutations.
func (s *CartService) activeRules() []models.DiscountRule {
	if s.rules == nil {
		return nil
	}
	rules, err := s.rules.ActiveRules()
	if err != nil {
		log.Printf("cart: failed to load discount rules: %v", err)
		return nil
	}
	return rules
}
