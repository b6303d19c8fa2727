package domain

import "time"

// Order is a finalized booking: a snapshot of one reservation plus
// delivery scheduling flags. The snapshot is never rewritten in place;
// extensions and early returns retire the underlying reservation and
// relink the order to its replacement.
type Order struct {
	ID               int32          `json:"id"`
	ListerID         int32          `json:"lister_id"`
	DatePlaced       time.Time      `json:"date_placed"`
	PickupScheduled  bool           `json:"pickup_scheduled"`
	DropoffScheduled bool           `json:"dropoff_scheduled"`
	Reservation      ReservationKey `json:"reservation"`
}

// Extension is a follow-on reservation period tied to an order.
// Structurally a reservation plus the order reference; it is not
// independently editable; corrections go through the ledger's swap.
type Extension struct {
	OrderID     int32          `json:"order_id"`
	Reservation ReservationKey `json:"reservation"`
}

// EffectiveEnd is the order's true end date: the latest end among its
// extensions, or the reservation snapshot's end when none exist.
func (o *Order) EffectiveEnd(extensions []Extension) time.Time {
	end := o.Reservation.DateEnded
	for _, ext := range extensions {
		if ext.Reservation.DateEnded.After(end) {
			end = ext.Reservation.DateEnded
		}
	}
	return end
}
