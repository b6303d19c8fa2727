package domain

type BookingStatus string

const (
	BookingConfirmed       BookingStatus = "CONFIRMED"
	BookingConflict        BookingStatus = "CONFLICT"
	BookingItemBusy        BookingStatus = "ITEM_BUSY"
	BookingCalendarExpired BookingStatus = "CALENDAR_EXPIRED"
)

// BookingResult is the displayable outcome of an attempt-book, extend or
// early-return call. Reservation is set only on BookingConfirmed.
type BookingResult struct {
	Status      BookingStatus `json:"status"`
	Reservation *Reservation  `json:"reservation,omitempty"`
}

func (r *BookingResult) Confirmed() bool {
	return r.Status == BookingConfirmed
}
