package domain

import "errors"

var (
	// ErrConflict means the proposed range overlaps a confirmed
	// reservation. Recoverable: the caller may pick another range.
	ErrConflict = errors.New("reservation dates conflict with an existing booking")

	// ErrCalendarExpired means the item's operating window has passed.
	// Terminal for that item.
	ErrCalendarExpired = errors.New("item calendar has expired")

	// ErrItemBusy means another checkout flow holds the item lock.
	// Recoverable: retry later.
	ErrItemBusy = errors.New("item is locked by another checkout")

	// ErrInvalidRange is a caller error: start >= end, or the range
	// falls outside the calendar window. Not retried.
	ErrInvalidRange = errors.New("invalid reservation date range")

	// ErrDuplicateReservation is raised by the persistence layer when an
	// insert races an identical row. The ledger resolves it by fetching
	// the existing row; callers should never see it surface.
	ErrDuplicateReservation = errors.New("reservation already exists")

	// ErrHistoryCorrupted means a cycle was detected while walking a
	// reservation's history chain. Fatal for that chain.
	ErrHistoryCorrupted = errors.New("reservation history chain is corrupted")

	// ErrNotFound is the generic missing-record error, wrapped by repos
	// with the record identity.
	ErrNotFound = errors.New("record not found")
)
