package domain

import (
	"time"

	"gearshare-booking-engine/internal/interval"
)

// ReservationKey is the primary identity of a reservation. Reservations
// are immutable once created; the tuple is the natural key the original
// schema uses, so there is no surrogate id.
type ReservationKey struct {
	ItemID      int32     `json:"item_id"`
	RenterID    int32     `json:"renter_id"`
	DateStarted time.Time `json:"date_started"`
	DateEnded   time.Time `json:"date_ended"`
}

// Reservation is a booking intent or commitment for an item over a
// half-open date range [DateStarted, DateEnded). "Editing" a reservation
// is modeled as retiring this row and inserting a replacement linked via
// HistoryOf, so rows form an append-only chain.
type Reservation struct {
	ItemID      int32     `json:"item_id"`
	RenterID    int32     `json:"renter_id"`
	DateStarted time.Time `json:"date_started"`
	DateEnded   time.Time `json:"date_ended"`

	// Price snapshot, captured at cart time. Cost questions are always
	// answered from these fields, never from the item's live price.
	ChargeCents  int32 `json:"charge_cents"`
	DepositCents int32 `json:"deposit_cents"`
	TaxCents     int32 `json:"tax_cents"`

	// Lifecycle flags. InCart and Calendared are independent: a row in
	// the cart is not blocking; only Calendared rows block the calendar.
	InCart     bool `json:"in_cart"`
	Calendared bool `json:"calendared"`
	Expired    bool `json:"expired"`

	// HistoryOf points at the reservation this row superseded, if any.
	HistoryOf *ReservationKey `json:"history_of,omitempty"`

	CreatedOn time.Time `json:"created_on"`
}

func (r *Reservation) Key() ReservationKey {
	return ReservationKey{
		ItemID:      r.ItemID,
		RenterID:    r.RenterID,
		DateStarted: r.DateStarted,
		DateEnded:   r.DateEnded,
	}
}

func (r *Reservation) Range() interval.Range {
	return interval.Range{Start: r.DateStarted, End: r.DateEnded}
}

// TotalCents is what the renter owes: charge + deposit + tax.
func (r *Reservation) TotalCents() int32 {
	return r.ChargeCents + r.DepositCents + r.TaxCents
}

// Blocking reports whether this reservation currently blocks its item's
// calendar.
func (r *Reservation) Blocking() bool {
	return r.Calendared && !r.Expired
}
