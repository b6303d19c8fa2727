package http

import (
	"net/http"

	"gearshare-booking-engine/internal/domain"
	"gearshare-booking-engine/internal/service"
	"gearshare-booking-engine/internal/utils"
)

// ReservationHandler exposes reservation lookups and the history chain.
type ReservationHandler struct {
	ledger service.LedgerService
}

func NewReservationHandler(ledger service.LedgerService) *ReservationHandler {
	return &ReservationHandler{ledger: ledger}
}

// HandleHistory handles
// GET /api/v1/items/{itemId}/reservations/history?renter_id=&date_started=&date_ended=
//
// The full key is required because reservations carry no surrogate id.
func (h *ReservationHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	key, ok := reservationKey(w, r)
	if !ok {
		return
	}

	chain, err := h.ledger.History(r.Context(), key)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reservations": chain,
	})
}

func reservationKey(w http.ResponseWriter, r *http.Request) (domain.ReservationKey, bool) {
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return domain.ReservationKey{}, false
	}

	q := r.URL.Query()
	renterID, err := parseID(q.Get("renter_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or missing renter_id parameter")
		return domain.ReservationKey{}, false
	}
	started, err := utils.ParseDate(q.Get("date_started"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or missing date_started parameter")
		return domain.ReservationKey{}, false
	}
	ended, err := utils.ParseDate(q.Get("date_ended"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or missing date_ended parameter")
		return domain.ReservationKey{}, false
	}

	return domain.ReservationKey{
		ItemID:      itemID,
		RenterID:    renterID,
		DateStarted: started,
		DateEnded:   ended,
	}, true
}
