package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carers-store/models"
	"carers-store/repositories"
	"carers-store/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type fakeProductFinder struct {
	products map[int]models.Product
}

func (f *fakeProductFinder) GetProductByID(id int) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	return &p, nil
}

func newCartTestRouter(t *testing.T) (*gin.Engine, *services.CartService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repositories.NewCartStore(repositories.NewMemoryKV())
	pricing := services.PricingConfig{
		FreeShippingThreshold: decimal.NewFromInt(50),
		FlatShippingFee:       decimal.RequireFromString("3.99"),
	}
	cartService := services.NewCartService(store, nil, pricing)
	finder := &fakeProductFinder{products: map[int]models.Product{
		1: {ID: 1, Name: "Mug", Price: decimal.RequireFromString("4.99")},
	}}
	ctrl := NewCartController(cartService, finder)

	router := gin.New()
	router.GET("/cart", ctrl.GetCart)
	router.DELETE("/cart", ctrl.ClearCart)
	router.POST("/cart/items", ctrl.AddItem)
	router.PATCH("/cart/items/:productId", ctrl.UpdateQuantity)
	router.DELETE("/cart/items/:productId", ctrl.RemoveItem)
	router.POST("/cart/items/:productId/increase", ctrl.IncreaseQuantity)
	router.POST("/cart/items/:productId/decrease", ctrl.DecreaseQuantity)

	return router, cartService
}

func seedCart(t *testing.T, svc *services.CartService, session string, productID, qty int) {
	t.Helper()
	product := models.Product{ID: productID, Name: "Mug", Price: decimal.RequireFromString("4.99")}
	if _, err := svc.AddItem(context.Background(), "session:"+session, product, qty); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
}

func decodeCartResponse(t *testing.T, body string) models.CartView {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Data    models.CartView `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decode response: %v\n%s", err, body)
	}
	if !resp.Success {
		t.Fatalf("response not successful: %s", body)
	}
	return resp.Data
}

func TestGetCartMintsSessionToken(t *testing.T) {
	router, _ := newCartTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-Cart-Session") == "" {
		t.Error("expected a minted X-Cart-Session header for guests")
	}

	view := decodeCartResponse(t, w.Body.String())
	if len(view.Items) != 0 {
		t.Errorf("fresh cart not empty: %+v", view.Items)
	}
}

func TestGetCartEchoesExistingSession(t *testing.T) {
	router, svc := newCartTestRouter(t)
	seedCart(t, svc, "abc", 1, 2)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("X-Cart-Session", "abc")
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Cart-Session"); got != "abc" {
		t.Errorf("session header = %q, want abc", got)
	}

	view := decodeCartResponse(t, w.Body.String())
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Errorf("unexpected cart: %+v", view.Items)
	}
}

func TestAddItemOmittedQuantityDefaultsToOne(t *testing.T) {
	router, _ := newCartTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id": 1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Cart-Session", "abc")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	view := decodeCartResponse(t, w.Body.String())
	if len(view.Items) != 1 || view.Items[0].Quantity != 1 {
		t.Errorf("unexpected cart: %+v", view.Items)
	}
}

func TestAddItemExplicitZeroIsNoOp(t *testing.T) {
	router, svc := newCartTestRouter(t)
	seedCart(t, svc, "abc", 1, 2)

	for _, body := range []string{`{"product_id": 1, "quantity": 0}`, `{"product_id": 1, "quantity": -3}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Cart-Session", "abc")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}

		view := decodeCartResponse(t, w.Body.String())
		if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
			t.Errorf("body %s changed the cart: %+v", body, view.Items)
		}
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	router, _ := newCartTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id": 99}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpdateQuantityEndpoint(t *testing.T) {
	router, svc := newCartTestRouter(t)
	seedCart(t, svc, "abc", 1, 2)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/cart/items/1", strings.NewReader(`{"quantity": 5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Cart-Session", "abc")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	view := decodeCartResponse(t, w.Body.String())
	if view.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", view.Items[0].Quantity)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	router, svc := newCartTestRouter(t)
	seedCart(t, svc, "abc", 1, 2)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/cart/items/1", strings.NewReader(`{"quantity": 0}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Cart-Session", "abc")
	router.ServeHTTP(w, req)

	view := decodeCartResponse(t, w.Body.String())
	if len(view.Items) != 0 {
		t.Errorf("line not removed: %+v", view.Items)
	}
}

func TestDecreaseBelowOneRemovesLine(t *testing.T) {
	router, svc := newCartTestRouter(t)
	seedCart(t, svc, "abc", 1, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items/1/decrease", nil)
	req.Header.Set("X-Cart-Session", "abc")
	router.ServeHTTP(w, req)

	view := decodeCartResponse(t, w.Body.String())
	if len(view.Items) != 0 {
		t.Errorf("line not removed: %+v", view.Items)
	}
}

func TestRemoveItemInvalidID(t *testing.T) {
	router, _ := newCartTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cart/items/banana", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestClearCartEndpoint(t *testing.T) {
	router, svc := newCartTestRouter(t)
	seedCart(t, svc, "abc", 1, 3)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	req.Header.Set("X-Cart-Session", "abc")
	router.ServeHTTP(w, req)

	view := decodeCartResponse(t, w.Body.String())
	if len(view.Items) != 0 {
		t.Errorf("cart not cleared: %+v", view.Items)
	}
}
