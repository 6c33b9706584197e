package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SerkanKacar01/kaniou-orders/internal/models"
	"github.com/SerkanKacar01/kaniou-orders/internal/pricing"
)

// QuoteHandler handles made-to-measure price quote requests
type QuoteHandler struct {
	calculator *pricing.Calculator
	logger     *slog.Logger
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(calculator *pricing.Calculator, logger *slog.Logger) *QuoteHandler {
	return &QuoteHandler{
		calculator: calculator,
		logger:     logger,
	}
}

// CalculateQuote handles POST /api/quote
// Returns the computed price with the tier used, or a 400 with the
// specific rejection reason.
func (h *QuoteHandler) CalculateQuote(w http.ResponseWriter, r *http.Request) {
	var req models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode quote request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	result, err := h.calculator.Calculate(req)
	if err != nil {
		if isValidationError(err) {
			h.logger.Info("quote request rejected",
				"product", req.ProductType, "material", req.Material, "error", err)
			WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}

		h.logger.Error("failed to calculate quote", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, result, h.logger)
}

// isValidationError reports whether the error is one of the calculator's
// input rejections, which map to 400 rather than 500.
func isValidationError(err error) bool {
	return errors.Is(err, pricing.ErrUnknownProduct) ||
		errors.Is(err, pricing.ErrUnknownMaterial) ||
		errors.Is(err, pricing.ErrWidthOutOfRange) ||
		errors.Is(err, pricing.ErrHeightOutOfRange) ||
		errors.Is(err, pricing.ErrAreaTooLarge)
}
