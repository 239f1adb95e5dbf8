package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/cart"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/pricefeed"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
)

// newTestRouter builds the full route table with the caller authenticated as
// business "biz-1", so handler checks short of the database can be exercised.
func newTestRouter(registry *cart.Registry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx := utils.SetBusinessIdInContext(c.Request.Context(), "biz-1")
		ctx = utils.SetUserIdInContext(ctx, 1)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	server := newApiServer(registry, pricefeed.NewDispatcher(registry))
	server.registerRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method string, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateInvoiceUnknownSession(t *testing.T) {
	registry := cart.NewRegistry()
	r := newTestRouter(registry)

	w := doJSON(t, r, http.MethodPut, "/api/invoices/1", `{"session_id":"missing"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "session not found") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestUpdateInvoiceSessionOfOtherBusiness(t *testing.T) {
	registry := cart.NewRegistry()
	session := registry.Open("biz-2", 9, cart.KindInvoice)
	r := newTestRouter(registry)

	w := doJSON(t, r, http.MethodPut, "/api/invoices/1", `{"session_id":"`+session.ID+`"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign session, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateInvoiceRejectsPurchaseOrderSession(t *testing.T) {
	registry := cart.NewRegistry()
	session := registry.Open("biz-1", 1, cart.KindPurchaseOrder)
	r := newTestRouter(registry)

	w := doJSON(t, r, http.MethodPut, "/api/invoices/1", `{"session_id":"`+session.ID+`"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for kind mismatch, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateInvoiceEmptyCart(t *testing.T) {
	registry := cart.NewRegistry()
	session := registry.Open("biz-1", 1, cart.KindInvoice)
	r := newTestRouter(registry)

	w := doJSON(t, r, http.MethodPut, "/api/invoices/1", `{"session_id":"`+session.ID+`"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "cart is empty") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	// A rejected edit keeps the session open so the user can fix it.
	if _, err := registry.Get(session.ID); err != nil {
		t.Fatalf("session should survive a rejected edit: %v", err)
	}
}

func TestUpdatePurchaseOrderRejectsInvoiceSession(t *testing.T) {
	registry := cart.NewRegistry()
	session := registry.Open("biz-1", 1, cart.KindInvoice)
	r := newTestRouter(registry)

	w := doJSON(t, r, http.MethodPut, "/api/purchase-orders/1", `{"session_id":"`+session.ID+`"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for kind mismatch, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdatePurchaseOrderEmptyCart(t *testing.T) {
	registry := cart.NewRegistry()
	session := registry.Open("biz-1", 1, cart.KindPurchaseOrder)
	r := newTestRouter(registry)

	w := doJSON(t, r, http.MethodPut, "/api/purchase-orders/1", `{"session_id":"`+session.ID+`"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	if _, err := registry.Get(session.ID); err != nil {
		t.Fatalf("session should survive a rejected edit: %v", err)
	}
}

func TestUpdateInvoiceRequiresSessionId(t *testing.T) {
	registry := cart.NewRegistry()
	r := newTestRouter(registry)

	w := doJSON(t, r, http.MethodPut, "/api/invoices/1", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without session_id, got %d: %s", w.Code, w.Body.String())
	}
}
