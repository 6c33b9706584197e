package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SerkanKacar01/kaniou-orders/internal/hours"
)

// HoursHandler answers whether the showroom is currently open. Chat and
// contact flows use it to pick an "open" or "closed" tone.
type HoursHandler struct {
	schedule *hours.Schedule
	logger   *slog.Logger
	now      func() time.Time
}

// NewHoursHandler creates a new business-hours handler
func NewHoursHandler(schedule *hours.Schedule, logger *slog.Logger) *HoursHandler {
	return &HoursHandler{
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// BusinessStatusResponse is the computed open/closed state.
type BusinessStatusResponse struct {
	Open      bool   `json:"open"`
	LocalTime string `json:"localTime"`
	Message   string `json:"message,omitempty"`
	NextOpen  string `json:"nextOpen,omitempty"`
}

// BusinessStatus handles GET /api/business-hours?lang=xx
// Re-evaluated on every call; the open/closed boundary moves every day.
func (h *HoursHandler) BusinessStatus(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	lang := r.URL.Query().Get("lang")

	resp := BusinessStatusResponse{
		Open:      h.schedule.IsOpen(now),
		LocalTime: h.schedule.LocalTime(now),
	}
	if !resp.Open {
		resp.Message = hours.ClosedMessage(lang)
		resp.NextOpen = h.schedule.NextOpenDescription(now)
	}

	WriteJSON(w, http.StatusOK, resp, h.logger)
}
