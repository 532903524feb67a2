package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"carers-store/models"
	"carers-store/payments"
)

type fakeProvider struct {
	mu           sync.Mutex
	sessionReq   payments.SessionRequest
	sessionErr   error
	priceErr     error
	mintedPrices []string
}

func (f *fakeProvider) CreateCheckoutSession(ctx context.Context, req payments.SessionRequest) (payments.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionReq = req
	if f.sessionErr != nil {
		return payments.Session{}, f.sessionErr
	}
	return payments.Session{ID: "cs_test_123", URL: "https://pay.example.com/cs_test_123"}, nil
}

func (f *fakeProvider) CreatePrice(ctx context.Context, productRef string, unitAmount int64, currency string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.priceErr != nil {
		return "", f.priceErr
	}
	id := fmt.Sprintf("price_%s_%d", productRef, unitAmount)
	f.mintedPrices = append(f.mintedPrices, id)
	return id, nil
}

func newTestCheckoutService(provider payments.Provider, dynamic bool) *CheckoutService {
	return NewCheckoutService(provider, CheckoutConfig{
		Currency:      "gbp",
		SuccessURL:    "https://shop.example.com/success",
		CancelURL:     "https://shop.example.com/cart",
		DynamicPrices: dynamic,
	})
}

func TestBuildLineItemsInlinePriceData(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestCheckoutService(provider, true)

	cart := models.Cart{Items: []models.LineItem{line(1, "4.99", 2)}}

	items, err := svc.BuildLineItems(context.Background(), cart, nil)
	if err != nil {
		t.Fatalf("BuildLineItems: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].PriceData == nil {
		t.Fatal("expected inline price data")
	}
	if items[0].PriceData.UnitAmount != 499 {
		t.Errorf("UnitAmount = %d, want 499", items[0].PriceData.UnitAmount)
	}
	if items[0].PriceData.Currency != "gbp" {
		t.Errorf("Currency = %q, want gbp", items[0].PriceData.Currency)
	}
	if items[0].Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", items[0].Quantity)
	}
}

func TestBuildLineItemsPriceRefWins(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestCheckoutService(provider, true)

	cart := models.Cart{Items: []models.LineItem{line(1, "4.99", 1)}}
	catalog := map[int]models.Product{
		1: {ID: 1, PriceRef: "price_abc", ProductRef: "prod_abc"},
	}

	items, err := svc.BuildLineItems(context.Background(), cart, catalog)
	if err != nil {
		t.Fatalf("BuildLineItems: %v", err)
	}

	if items[0].Price != "price_abc" {
		t.Errorf("Price = %q, want price_abc", items[0].Price)
	}
	if items[0].PriceData != nil {
		t.Error("price reference should not carry inline price data")
	}
	if len(provider.mintedPrices) != 0 {
		t.Errorf("minted %d prices, want 0", len(provider.mintedPrices))
	}
}

func TestBuildLineItemsMintsDynamicPrice(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestCheckoutService(provider, true)

	cart := models.Cart{Items: []models.LineItem{line(1, "16.99", 1)}}
	catalog := map[int]models.Product{
		1: {ID: 1, ProductRef: "prod_abc"},
	}

	items, err := svc.BuildLineItems(context.Background(), cart, catalog)
	if err != nil {
		t.Fatalf("BuildLineItems: %v", err)
	}

	if items[0].Price != "price_prod_abc_1699" {
		t.Errorf("Price = %q, want minted price_prod_abc_1699", items[0].Price)
	}
}

func TestBuildLineItemsDynamicPricesDisabled(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestCheckoutService(provider, false)

	cart := models.Cart{Items: []models.LineItem{line(1, "16.99", 1)}}
	catalog := map[int]models.Product{
		1: {ID: 1, ProductRef: "prod_abc"},
	}

	items, err := svc.BuildLineItems(context.Background(), cart, catalog)
	if err != nil {
		t.Fatalf("BuildLineItems: %v", err)
	}

	if items[0].PriceData == nil {
		t.Fatal("expected inline price data with dynamic prices off")
	}
	if len(provider.mintedPrices) != 0 {
		t.Errorf("minted %d prices, want 0", len(provider.mintedPrices))
	}
}

func TestBuildLineItemsRoundsToMinorUnits(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestCheckoutService(provider, true)

	tests := []struct {
		price string
		want  int64
	}{
		{"4.99", 499},
		{"16.995", 1700},
		{"0.01", 1},
		{"10", 1000},
	}

	for _, tt := range tests {
		cart := models.Cart{Items: []models.LineItem{line(1, tt.price, 1)}}
		items, err := svc.BuildLineItems(context.Background(), cart, nil)
		if err != nil {
			t.Fatalf("BuildLineItems(%s): %v", tt.price, err)
		}
		if got := items[0].PriceData.UnitAmount; got != tt.want {
			t.Errorf("UnitAmount(%s) = %d, want %d", tt.price, got, tt.want)
		}
	}
}

func TestBuildLineItemsRejectsUnpriceableLine(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestCheckoutService(provider, true)

	cart := models.Cart{Items: []models.LineItem{line(1, "0", 1)}}

	_, err := svc.BuildLineItems(context.Background(), cart, nil)
	if !errors.Is(err, ErrInvalidLineItem) {
		t.Errorf("err = %v, want ErrInvalidLineItem", err)
	}
}

func TestBuildLineItemsQuantityFloor(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestCheckoutService(provider, true)

	cart := models.Cart{Items: []models.LineItem{line(1, "4.99", 0)}}

	items, err := svc.BuildLineItems(context.Background(), cart, nil)
	if err != nil {
		t.Fatalf("BuildLineItems: %v", err)
	}
	if items[0].Quantity != 1 {
		t.Errorf("Quantity = %d, want 1", items[0].Quantity)
	}
}

func TestCreateSession(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		svc := newTestCheckoutService(&fakeProvider{}, true)

		_, err := svc.CreateSession(context.Background(), models.CartView{}, nil, "42")
		if !errors.Is(err, ErrEmptyCart) {
			t.Errorf("err = %v, want ErrEmptyCart", err)
		}
	})

	t.Run("tags session with user", func(t *testing.T) {
		provider := &fakeProvider{}
		svc := newTestCheckoutService(provider, true)
		view := models.CartView{Items: []models.LineItem{line(1, "4.99", 1)}}

		session, err := svc.CreateSession(context.Background(), view, nil, "42")
		if err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
		if session.ID != "cs_test_123" {
			t.Errorf("session ID = %q", session.ID)
		}
		if got := provider.sessionReq.Metadata["userId"]; got != "42" {
			t.Errorf("metadata userId = %q, want 42", got)
		}
	})

	t.Run("anonymous user defaults to guest", func(t *testing.T) {
		provider := &fakeProvider{}
		svc := newTestCheckoutService(provider, true)
		view := models.CartView{Items: []models.LineItem{line(1, "4.99", 1)}}

		if _, err := svc.CreateSession(context.Background(), view, nil, ""); err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
		if got := provider.sessionReq.Metadata["userId"]; got != "guest" {
			t.Errorf("metadata userId = %q, want guest", got)
		}
	})

	t.Run("snapshots cart into metadata", func(t *testing.T) {
		provider := &fakeProvider{}
		svc := newTestCheckoutService(provider, true)
		view := models.CartView{
			Items: []models.LineItem{line(1, "4.99", 2)},
			Summary: models.CartSummary{
				Subtotal:  dec("9.98"),
				Shipping:  dec("3.99"),
				Total:     dec("13.97"),
				ItemCount: 2,
			},
		}

		if _, err := svc.CreateSession(context.Background(), view, nil, "42"); err != nil {
			t.Fatalf("CreateSession: %v", err)
		}

		raw := provider.sessionReq.Metadata["cart"]
		if raw == "" {
			t.Fatal("no cart snapshot in session metadata")
		}

		var snapshot models.CartView
		if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
			t.Fatalf("decode snapshot: %v", err)
		}
		if len(snapshot.Items) != 1 || snapshot.Items[0].Quantity != 2 {
			t.Errorf("snapshot items = %+v", snapshot.Items)
		}
		if !snapshot.Summary.Total.Equal(dec("13.97")) {
			t.Errorf("snapshot total = %s, want 13.97", snapshot.Summary.Total)
		}
	})

	t.Run("provider failure wraps ErrCheckoutRequest", func(t *testing.T) {
		provider := &fakeProvider{sessionErr: errors.New("connection refused")}
		svc := newTestCheckoutService(provider, true)
		view := models.CartView{Items: []models.LineItem{line(1, "4.99", 1)}}

		_, err := svc.CreateSession(context.Background(), view, nil, "42")
		if !errors.Is(err, ErrCheckoutRequest) {
			t.Errorf("err = %v, want ErrCheckoutRequest", err)
		}
	})

	t.Run("price minting failure wraps ErrCheckoutRequest", func(t *testing.T) {
		provider := &fakeProvider{priceErr: errors.New("boom")}
		svc := newTestCheckoutService(provider, true)
		view := models.CartView{Items: []models.LineItem{line(1, "4.99", 1)}}
		catalog := map[int]models.Product{1: {ID: 1, ProductRef: "prod_abc"}}

		_, err := svc.CreateSession(context.Background(), view, catalog, "42")
		if !errors.Is(err, ErrCheckoutRequest) {
			t.Errorf("err = %v, want ErrCheckoutRequest", err)
		}
	})
}

func TestBuildLineItemsPreservesOrder(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestCheckoutService(provider, true)

	cart := models.Cart{Items: []models.LineItem{
		line(1, "1.00", 1),
		line(2, "2.00", 1),
		line(3, "3.00", 1),
	}}
	catalog := map[int]models.Product{
		1: {ID: 1, PriceRef: "price_one"},
		2: {ID: 2, ProductRef: "prod_two"},
	}

	items, err := svc.BuildLineItems(context.Background(), cart, catalog)
	if err != nil {
		t.Fatalf("BuildLineItems: %v", err)
	}

	if items[0].Price != "price_one" {
		t.Errorf("items[0].Price = %q", items[0].Price)
	}
	if items[1].Price != "price_prod_two_200" {
		t.Errorf("items[1].Price = %q", items[1].Price)
	}
	if items[2].PriceData == nil || items[2].PriceData.UnitAmount != 300 {
		t.Errorf("items[2] = %+v", items[2])
	}
}
