package repositories

import (
	"context"
	"testing"

	"carers-store/models"

	"github.com/shopspring/decimal"
)

func TestCartStoreRoundTrip(t *testing.T) {
	store := NewCartStore(NewMemoryKV())
	ctx := context.Background()

	cart := models.Cart{Items: []models.LineItem{
		{ProductID: 1, Name: "Mug", UnitPrice: decimal.NewFromFloat(4.99), Quantity: 2},
		{ProductID: 2, Name: "Tote", UnitPrice: decimal.NewFromFloat(12.50), Quantity: 1},
	}}

	if err := store.Save(ctx, "u1", cart); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := store.Load(ctx, "u1")
	if len(got.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(got.Items))
	}
	if got.Items[0].ProductID != 1 || got.Items[0].Quantity != 2 {
		t.Errorf("first line = %+v", got.Items[0])
	}
	if !got.Items[0].UnitPrice.Equal(decimal.NewFromFloat(4.99)) {
		t.Errorf("UnitPrice = %s, want 4.99", got.Items[0].UnitPrice)
	}
}

func TestCartStoreMissingKeyIsEmptyCart(t *testing.T) {
	store := NewCartStore(NewMemoryKV())

	got := store.Load(context.Background(), "nobody")
	if len(got.Items) != 0 {
		t.Errorf("expected empty cart, got %+v", got.Items)
	}
}

func TestCartStoreCorruptValueFailsOpen(t *testing.T) {
	kv := NewMemoryKV()
	store := NewCartStore(kv)
	ctx := context.Background()

	kv.Set(ctx, "cart:u1", "{not json")

	got := store.Load(ctx, "u1")
	if len(got.Items) != 0 {
		t.Errorf("expected empty cart for corrupt value, got %+v", got.Items)
	}

	// A save after the failed read recovers the slot.
	cart := models.Cart{Items: []models.LineItem{{ProductID: 1, Quantity: 1}}}
	if err := store.Save(ctx, "u1", cart); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := store.Load(ctx, "u1"); len(got.Items) != 1 {
		t.Errorf("slot did not recover: %+v", got.Items)
	}
}

type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) (string, error) {
	return "", context.DeadlineExceeded
}

func (failingKV) Set(ctx context.Context, key, value string) error {
	return context.DeadlineExceeded
}

func TestCartStoreReadErrorFailsOpen(t *testing.T) {
	store := NewCartStore(failingKV{})

	got := store.Load(context.Background(), "u1")
	if len(got.Items) != 0 {
		t.Errorf("expected empty cart on read error, got %+v", got.Items)
	}
}

func TestCartStoreWriteErrorSurfaces(t *testing.T) {
	store := NewCartStore(failingKV{})

	err := store.Save(context.Background(), "u1", models.Cart{})
	if err == nil {
		t.Error("expected error from failing KV")
	}
}
