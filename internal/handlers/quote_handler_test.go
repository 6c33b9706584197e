package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SerkanKacar01/kaniou-orders/internal/models"
	"github.com/SerkanKacar01/kaniou-orders/internal/pricing"
	"github.com/SerkanKacar01/kaniou-orders/pkg/logger"
)

func newQuoteHandler() *QuoteHandler {
	calc := pricing.NewCalculator(pricing.DefaultCatalog())
	return NewQuoteHandler(calc, logger.New("error"))
}

func TestCalculateQuote_Success(t *testing.T) {
	handler := newQuoteHandler()

	body := `{"productType":"rolgordijn","material":"screen","widthCm":123,"heightCm":187}`
	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CalculateQuote(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.QuoteResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result.AmountCents != 13585 {
		t.Errorf("amount = %d cents, want 13585", result.AmountCents)
	}
	if result.TierUsed != "2-4 m2" {
		t.Errorf("tier = %q, want %q", result.TierUsed, "2-4 m2")
	}
	if result.Currency != "EUR" {
		t.Errorf("currency = %q, want EUR", result.Currency)
	}
}

func TestCalculateQuote_ValidationErrors(t *testing.T) {
	handler := newQuoteHandler()

	tests := []struct {
		name string
		body string
	}{
		{
			name: "unknown product",
			body: `{"productType":"horren","material":"screen","widthCm":100,"heightCm":100}`,
		},
		{
			name: "unknown material",
			body: `{"productType":"rolgordijn","material":"fluweel","widthCm":100,"heightCm":100}`,
		},
		{
			name: "width out of range",
			body: `{"productType":"rolgordijn","material":"screen","widthCm":10,"heightCm":100}`,
		},
		{
			name: "area too large",
			body: `{"productType":"rolgordijn","material":"screen","widthCm":500,"heightCm":500}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.CalculateQuote(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var response map[string]string
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if response["error"] == "" {
				t.Error("expected a specific rejection reason in the error field")
			}
		})
	}
}

func TestCalculateQuote_InvalidBody(t *testing.T) {
	handler := newQuoteHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.CalculateQuote(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}
