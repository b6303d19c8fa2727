package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gearshare-booking-engine/internal/domain"
	"gearshare-booking-engine/internal/interval"
	"gearshare-booking-engine/internal/service"
	"gearshare-booking-engine/internal/utils"
)

// BookingHandler exposes the booking lifecycle operations.
type BookingHandler struct {
	booking service.BookingService
}

func NewBookingHandler(booking service.BookingService) *BookingHandler {
	return &BookingHandler{booking: booking}
}

type bookRequest struct {
	RenterID    int32  `json:"renter_id"`
	DateStarted string `json:"date_started"`
	DateEnded   string `json:"date_ended"`
}

type adjustRequest struct {
	DateEnded string `json:"date_ended"`
}

// HandleAttemptBook handles POST /api/v1/items/{itemId}/bookings
func (h *BookingHandler) HandleAttemptBook(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RenterID <= 0 {
		writeError(w, http.StatusBadRequest, "renter_id is required")
		return
	}
	start, err := utils.ParseDate(req.DateStarted)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date_started, expected yyyy-mm-dd")
		return
	}
	end, err := utils.ParseDate(req.DateEnded)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date_ended, expected yyyy-mm-dd")
		return
	}

	result, err := h.booking.AttemptBook(r.Context(), itemID, req.RenterID, interval.Range{Start: start, End: end})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if !result.Confirmed() {
		status = http.StatusConflict
	}
	writeJSON(w, status, result)
}

// HandleExtend handles POST /api/v1/orders/{orderId}/extend
func (h *BookingHandler) HandleExtend(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.booking.Extend)
}

// HandleReturnEarly handles POST /api/v1/orders/{orderId}/return-early
func (h *BookingHandler) HandleReturnEarly(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.booking.ReturnEarly)
}

func (h *BookingHandler) adjust(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, orderID int32, newEnd time.Time) (*domain.BookingResult, error)) {
	orderID, ok := pathID(w, r, "orderId")
	if !ok {
		return
	}

	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	newEnd, err := utils.ParseDate(req.DateEnded)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date_ended, expected yyyy-mm-dd")
		return
	}

	result, err := op(r.Context(), orderID, newEnd)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	status := http.StatusOK
	if !result.Confirmed() {
		status = http.StatusConflict
	}
	writeJSON(w, status, result)
}
