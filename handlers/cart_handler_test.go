package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/cart"
	"github.com/Theo-jobs/family-ordering-system/models"
	"github.com/Theo-jobs/family-ordering-system/notify"
	"github.com/Theo-jobs/family-ordering-system/repository"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newCartRouter(t *testing.T) (*gin.Engine, *cart.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryCartStore(quietLogger())
	carts := cart.NewManager(store, notify.NewCenter())
	h := NewCartHandler(carts, quietLogger())

	router := gin.New()
	router.GET("/api/cart", h.GetCart)
	router.POST("/api/cart/items", h.AddItem)
	router.PUT("/api/cart/items/:dishId", h.UpdateItem)
	router.DELETE("/api/cart/items/:dishId", h.RemoveItem)
	router.DELETE("/api/cart", h.ClearCart)
	return router, carts
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeCartView(t *testing.T, w *httptest.ResponseRecorder) models.CartView {
	t.Helper()
	var view models.CartView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode cart view: %v (body %s)", err, w.Body.String())
	}
	return view
}

func TestGetCartEmpty(t *testing.T) {
	router, _ := newCartRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/cart", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	view := decodeCartView(t, w)
	if view.TotalItems != 0 || view.TotalPrice != 0 {
		t.Errorf("expected empty cart, got %+v", view)
	}
}

func TestAddItemCoercesStringQuantity(t *testing.T) {
	router, _ := newCartRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"dish_id":"d1","dish_name":"Mapo Tofu","price":"12.5","quantity":"3.7"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	view := decodeCartView(t, w)
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 3 {
		t.Errorf("quantity = %d, want 3 (truncated)", view.Items[0].Quantity)
	}
	if view.Items[0].Price != 12.5 {
		t.Errorf("price = %v, want 12.5", view.Items[0].Price)
	}
	if view.TotalItems != 3 {
		t.Errorf("total items = %d, want 3", view.TotalItems)
	}
}

func TestAddItemRequiresDishID(t *testing.T) {
	router, _ := newCartRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/cart/items", `{"dish_name":"Nameless"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error != "INVALID_INPUT" {
		t.Errorf("error code = %q", resp.Error)
	}
}

func TestUpdateItemNotInCart(t *testing.T) {
	router, _ := newCartRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/cart/items/ghost", `{"quantity":2}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	router, _ := newCartRouter(t)

	doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"dish_id":"d1","dish_name":"Rice","price":3,"quantity":2}`)
	doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"dish_id":"d2","dish_name":"Tea","price":2,"quantity":1}`)

	w := doJSON(t, router, http.MethodPut, "/api/cart/items/d1", `{"quantity":5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d", w.Code)
	}
	view := decodeCartView(t, w)
	if view.TotalItems != 6 || view.TotalPrice != 17 {
		t.Errorf("after update: %+v", view)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/cart/items/d2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("remove status = %d", w.Code)
	}
	if view := decodeCartView(t, w); len(view.Items) != 1 {
		t.Errorf("after remove: %+v", view)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/cart", "")
	if view := decodeCartView(t, w); view.TotalItems != 0 {
		t.Errorf("after clear: %+v", view)
	}
}

func TestCartsAreIsolatedPerSessionHeader(t *testing.T) {
	router, _ := newCartRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		bytes.NewBufferString(`{"dish_id":"d1","dish_name":"Rice","price":3,"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "guests")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	// The default household session must not see the guests cart.
	w2 := doJSON(t, router, http.MethodGet, "/api/cart", "")
	if view := decodeCartView(t, w2); view.TotalItems != 0 {
		t.Errorf("sessions leaked: %+v", view)
	}
}
