package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"carers-store/models"
	"carers-store/payments"

	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidLineItem means a cart line has no price reference and no
	// derivable positive minor-unit amount. Checkout cannot proceed.
	ErrInvalidLineItem = errors.New("line item has no derivable positive amount")

	// ErrCheckoutRequest wraps provider/network failures. The cart is left
	// untouched so the user can retry.
	ErrCheckoutRequest = errors.New("checkout session request failed")
)

type CheckoutConfig struct {
	Currency      string
	SuccessURL    string
	CancelURL     string
	DynamicPrices bool
	MaxConcurrent int
}

// CheckoutService maps a cart into provider line items and requests a hosted
// checkout session. Payment outcomes are handled elsewhere (webhook).
type CheckoutService struct {
	provider payments.Provider
	cfg      CheckoutConfig
}

func NewCheckoutService(provider payments.Provider, cfg CheckoutConfig) *CheckoutService {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 10
	}
	if cfg.Currency == "" {
		cfg.Currency = "gbp"
	}
	return &CheckoutService{provider: provider, cfg: cfg}
}

// lineProjection is the resolved form of one cart line before any provider
// call. Exactly one of priceRef / productRef / inline price data applies.
type lineProjection struct {
	quantity   int
	priceRef   string
	productRef string
	unitAmount int64
	name       string
}

// projectLine picks the provider projection for one cart line:
// a stable price reference wins, then a product reference with dynamic price
// minting, then inline price data. Catalog metadata is optional; a line
// without it falls through to the inline form.
func (s *CheckoutService) projectLine(li models.LineItem, product models.Product) (lineProjection, error) {
	p := lineProjection{
		quantity: li.Quantity,
		name:     li.Name,
	}
	if p.quantity < 1 {
		p.quantity = 1
	}

	if product.PriceRef != "" {
		p.priceRef = product.PriceRef
		return p, nil
	}

	p.unitAmount = li.UnitPrice.Shift(2).Round(0).IntPart()
	if p.unitAmount <= 0 {
		return lineProjection{}, fmt.Errorf("%w: product %d (%s)", ErrInvalidLineItem, li.ProductID, li.Name)
	}

	if product.ProductRef != "" && s.cfg.DynamicPrices {
		p.productRef = product.ProductRef
	}
	return p, nil
}

// BuildLineItems resolves every cart line, minting one-time prices for
// product references concurrently.
func (s *CheckoutService) BuildLineItems(ctx context.Context, cart models.Cart, catalog map[int]models.Product) ([]payments.LineItem, error) {
	projections := make([]lineProjection, len(cart.Items))
	for i, li := range cart.Items {
		p, err := s.projectLine(li, catalog[li.ProductID])
		if err != nil {
			return nil, err
		}
		projections[i] = p
	}

	items := make([]payments.LineItem, len(projections))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrent)

	for i := range projections {
		p := projections[i]

		switch {
		case p.priceRef != "":
			items[i] = payments.LineItem{Price: p.priceRef, Quantity: p.quantity}

		case p.productRef != "":
			idx := i
			g.Go(func() error {
				priceID, err := s.provider.CreatePrice(ctx, p.productRef, p.unitAmount, s.cfg.Currency)
				if err != nil {
					return fmt.Errorf("%w: mint price for %s: %v", ErrCheckoutRequest, p.productRef, err)
				}
				items[idx] = payments.LineItem{Price: priceID, Quantity: p.quantity}
				return nil
			})

		default:
			items[i] = payments.LineItem{
				PriceData: &payments.PriceData{
					Currency:    s.cfg.Currency,
					UnitAmount:  p.unitAmount,
					ProductData: payments.ProductData{Name: p.name},
				},
				Quantity: p.quantity,
			}
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateSession builds the session request for the current cart and returns
// the provider's opaque session handle. The cart itself is not mutated here;
// it is cleared only when the webhook confirms payment. The cart view is
// snapshotted into session metadata so fulfilment records what was actually
// charged, not whatever the cart holds by the time the webhook arrives.
func (s *CheckoutService) CreateSession(ctx context.Context, view models.CartView, catalog map[int]models.Product, userID string) (payments.Session, error) {
	cart := models.Cart{Items: view.Items}
	if cart.IsEmpty() {
		return payments.Session{}, ErrEmptyCart
	}

	items, err := s.BuildLineItems(ctx, cart, catalog)
	if err != nil {
		return payments.Session{}, err
	}

	if userID == "" {
		userID = "guest"
	}

	metadata := map[string]string{"userId": userID}
	if snapshot, err := json.Marshal(view); err == nil {
		metadata["cart"] = string(snapshot)
	}

	session, err := s.provider.CreateCheckoutSession(ctx, payments.SessionRequest{
		Items:      items,
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  s.cfg.CancelURL,
		Metadata:   metadata,
	})
	if err != nil {
		return payments.Session{}, fmt.Errorf("%w: %v", ErrCheckoutRequest, err)
	}
	return session, nil
}
