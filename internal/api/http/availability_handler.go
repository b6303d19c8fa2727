package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"gearshare-booking-engine/internal/service"
	"gearshare-booking-engine/internal/utils"
)

// AvailabilityHandler exposes the read-only calendar views.
type AvailabilityHandler struct {
	availability service.AvailabilityService
}

func NewAvailabilityHandler(availability service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// HandleIsAvailable handles GET /api/v1/items/{itemId}/availability?date=yyyy-mm-dd
func (h *AvailabilityHandler) HandleIsAvailable(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	date, err := utils.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or missing date parameter, expected yyyy-mm-dd")
		return
	}

	available, err := h.availability.IsAvailable(r.Context(), itemID, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"item_id":   itemID,
		"date":      utils.FormatDate(date),
		"available": available,
	})
}

// HandleNextAvailability handles GET /api/v1/items/{itemId}/next-availability
func (h *AvailabilityHandler) HandleNextAvailability(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	rng, err := h.availability.NextAvailability(r.Context(), itemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if rng.IsZero() {
		writeJSON(w, http.StatusOK, map[string]any{
			"item_id":   itemID,
			"available": false,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"item_id":    itemID,
		"available":  true,
		"date_start": utils.FormatDate(rng.Start),
		"date_end":   utils.FormatDate(rng.End),
	})
}

// HandleBookedDays handles GET /api/v1/items/{itemId}/booked-days?year=&month=
func (h *AvailabilityHandler) HandleBookedDays(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "invalid or missing year parameter")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "invalid or missing month parameter")
		return
	}

	days, err := h.availability.BookedDays(r.Context(), itemID, year, time.Month(month))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"item_id":     itemID,
		"year":        year,
		"month":       month,
		"booked_days": days,
	})
}

// pathID parses a positive int32 route variable, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	id, err := parseID(mux.Vars(r)[name])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func parseID(raw string) (int32, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return int32(id), nil
}
