package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/SerkanKacar01/kaniou-orders/internal/dispatch"
	"github.com/SerkanKacar01/kaniou-orders/internal/notify"
	"github.com/SerkanKacar01/kaniou-orders/internal/repository"
	"github.com/SerkanKacar01/kaniou-orders/pkg/logger"
)

func newOrderRouter() (*chi.Mux, *repository.InMemoryOrderStore) {
	log := logger.New("error")
	store := repository.NewInMemoryOrderStore()
	dispatcher := dispatch.NewDispatcher(store, notify.NewLogSink(log), log)
	handler := NewOrderHandler(dispatcher, store, log)

	r := chi.NewRouter()
	r.Post("/api/order", handler.CreateOrder)
	r.Get("/api/order/track/{referenceCode}", handler.TrackOrder)
	r.Get("/api/admin/orders/{orderId}", handler.GetOrder)
	r.Patch("/api/admin/orders/{orderId}", handler.UpdateOrder)
	return r, store
}

func createTestOrder(t *testing.T, r *chi.Mux) CreateOrderResponse {
	t.Helper()

	body := `{
		"customerName": "Jan Peeters",
		"email": "jan@example.com",
		"phone": "+32470123456",
		"customerNote": "Graag leveren na 17u",
		"notificationPreferences": {"email": true},
		"amountCents": 13585,
		"currency": "EUR"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp CreateOrderResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestCreateOrder_Success(t *testing.T) {
	r, _ := newOrderRouter()

	resp := createTestOrder(t, r)
	if resp.OrderID == "" {
		t.Error("expected an order id")
	}
	if !strings.HasPrefix(resp.ReferenceCode, "BON-") {
		t.Errorf("reference code = %q, want BON- prefix", resp.ReferenceCode)
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	r, _ := newOrderRouter()

	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing customer name",
			body: `{"email":"jan@example.com","notificationPreferences":{"email":true}}`,
		},
		{
			name: "missing email",
			body: `{"customerName":"Jan","notificationPreferences":{"email":true}}`,
		},
		{
			name: "no notification channel enabled",
			body: `{"customerName":"Jan","email":"jan@example.com","notificationPreferences":{}}`,
		},
		{
			name: "whatsapp enabled without phone",
			body: `{"customerName":"Jan","email":"jan@example.com","notificationPreferences":{"whatsapp":true}}`,
		},
		{
			name: "malformed json",
			body: `{broken`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestTrackOrder_OmitsInternalFields(t *testing.T) {
	r, store := newOrderRouter()
	created := createTestOrder(t, r)

	// Give the order an internal note through the admin update path.
	body := `{"internalNote":"Leverancier gebeld over stof"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/"+created.OrderID, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/order/track/"+created.ReferenceCode, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var raw map[string]any
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, leaked := raw["internalNote"]; leaked {
		t.Error("tracking response must not expose the internal note")
	}
	if raw["referenceCode"] != created.ReferenceCode {
		t.Errorf("referenceCode = %v, want %s", raw["referenceCode"], created.ReferenceCode)
	}

	// The note itself is stored, just not shown.
	stored, _ := store.Load(req.Context(), created.OrderID)
	if stored.InternalNote == "" {
		t.Error("internal note was not persisted")
	}
}

func TestTrackOrder_NotFound(t *testing.T) {
	r, _ := newOrderRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/order/track/BON-19990101-ZZZZ", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestUpdateOrder_StatusChange(t *testing.T) {
	r, store := newOrderRouter()
	created := createTestOrder(t, r)

	body := `{"status":"in production"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/"+created.OrderID, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp UpdateOrderResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Updated {
		t.Error("expected updated=true")
	}

	stored, _ := store.Load(req.Context(), created.OrderID)
	if stored.Status != "in production" {
		t.Errorf("status = %q, want %q", stored.Status, "in production")
	}
}

func TestUpdateOrder_NotFound(t *testing.T) {
	r, _ := newOrderRouter()

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/does-not-exist",
		strings.NewReader(`{"status":"ready"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestUpdateOrder_RejectsEmptyStatus(t *testing.T) {
	r, _ := newOrderRouter()
	created := createTestOrder(t, r)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/"+created.OrderID,
		strings.NewReader(`{"status":""}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestGetOrder_IncludesInternalNote(t *testing.T) {
	r, _ := newOrderRouter()
	created := createTestOrder(t, r)

	body := `{"internalNote":"Controle nodig"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/"+created.OrderID, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update failed: %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/orders/"+created.OrderID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var raw map[string]any
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if raw["internalNote"] != "Controle nodig" {
		t.Errorf("internalNote = %v, want %q", raw["internalNote"], "Controle nodig")
	}
}
