package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SerkanKacar01/kaniou-orders/internal/dispatch"
	"github.com/SerkanKacar01/kaniou-orders/internal/models"
	"github.com/SerkanKacar01/kaniou-orders/internal/repository"
)

// OrderHandler handles order creation, customer tracking and the admin
// dashboard's order operations.
type OrderHandler struct {
	dispatcher *dispatch.Dispatcher
	store      repository.OrderStore
	logger     *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(dispatcher *dispatch.Dispatcher, store repository.OrderStore, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		dispatcher: dispatcher,
		store:      store,
		logger:     logger,
	}
}

// CreateOrderResponse is the public result of order creation.
type CreateOrderResponse struct {
	OrderID       string `json:"orderId"`
	ReferenceCode string `json:"referenceCode"`
}

// TrackOrderResponse is the customer-facing view of an order. The internal
// note and admin fields are deliberately absent.
type TrackOrderResponse struct {
	ReferenceCode string             `json:"referenceCode"`
	Status        models.OrderStatus `json:"status"`
	CustomerNote  string             `json:"customerNote"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// UpdateOrderResponse acknowledges a persisted update.
type UpdateOrderResponse struct {
	Updated bool `json:"updated"`
}

// CreateOrder handles POST /api/order
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dispatch.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if req.CustomerName == "" {
		WriteError(w, http.StatusBadRequest, "Customer name is required", h.logger)
		return
	}
	if req.Email == "" {
		WriteError(w, http.StatusBadRequest, "Email is required", h.logger)
		return
	}

	order, err := h.dispatcher.CreateOrder(r.Context(), req)
	if err != nil {
		if isOrderValidationError(err) {
			WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		h.logger.Error("failed to create order", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("order created", "order_id", order.ID, "reference_code", order.ReferenceCode)
	WriteJSON(w, http.StatusCreated, CreateOrderResponse{
		OrderID:       order.ID,
		ReferenceCode: order.ReferenceCode,
	}, h.logger)
}

// TrackOrder handles GET /api/order/track/{referenceCode}
// Customers look orders up by bonnummer, never by internal id.
func (h *OrderHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "referenceCode")
	if code == "" {
		WriteError(w, http.StatusBadRequest, "Reference code is required", h.logger)
		return
	}

	order, err := h.store.LoadByReference(r.Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			WriteError(w, http.StatusNotFound, "Order not found", h.logger)
			return
		}
		h.logger.Error("failed to load order by reference", "reference_code", code, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, TrackOrderResponse{
		ReferenceCode: order.ReferenceCode,
		Status:        order.Status,
		CustomerNote:  order.CustomerNote,
		UpdatedAt:     order.UpdatedAt,
	}, h.logger)
}

// GetOrder handles GET /api/admin/orders/{orderId}
// Returns the full order including the internal note; the route sits
// behind API-key auth.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := h.store.Load(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			WriteError(w, http.StatusNotFound, "Order not found", h.logger)
			return
		}
		h.logger.Error("failed to load order", "order_id", orderID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, order, h.logger)
}

// UpdateOrder handles PATCH /api/admin/orders/{orderId}
// Routes the partial update through the dispatcher, the sole writer after
// creation.
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req dispatch.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode update request", "order_id", orderID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := h.dispatcher.ApplyUpdate(r.Context(), orderID, req); err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			WriteError(w, http.StatusNotFound, "Order not found", h.logger)
		case isOrderValidationError(err):
			WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		default:
			h.logger.Error("failed to apply order update", "order_id", orderID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	h.logger.Info("order updated", "order_id", orderID)
	WriteJSON(w, http.StatusOK, UpdateOrderResponse{Updated: true}, h.logger)
}

// isOrderValidationError reports whether the error is a rejected input
// rather than an infrastructure failure.
func isOrderValidationError(err error) bool {
	return errors.Is(err, models.ErrNoChannelEnabled) ||
		errors.Is(err, models.ErrPhoneRequired) ||
		errors.Is(err, models.ErrEmptyStatus)
}
