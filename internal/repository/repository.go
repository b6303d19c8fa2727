package repository

import (
	"context"

	"gearshare-booking-engine/internal/domain"
)

// ReservationFilter narrows ListByItem. Nil fields are "don't care".
type ReservationFilter struct {
	InCart     *bool
	Calendared *bool
	Expired    *bool
}

// Confirmed is the filter for the blocking reservation set: calendared
// and not expired.
func Confirmed() ReservationFilter {
	yes, no := true, false
	return ReservationFilter{Calendared: &yes, Expired: &no}
}

// FlagChanges is a partial update of a reservation's lifecycle flags.
// Nil fields are left untouched.
type FlagChanges struct {
	InCart     *bool
	Calendared *bool
	Expired    *bool
}

type ReservationRepository interface {
	// Insert persists a new reservation row. A race that produces an
	// identical row surfaces as domain.ErrDuplicateReservation so the
	// caller can treat it as already committed.
	Insert(ctx context.Context, res *domain.Reservation) error
	GetByKey(ctx context.Context, key domain.ReservationKey) (*domain.Reservation, error)
	ListByItem(ctx context.Context, itemID int32, filter ReservationFilter) ([]domain.Reservation, error)
	UpdateFlags(ctx context.Context, key domain.ReservationKey, changes FlagChanges) error

	// Swap atomically retires the row at oldKey, inserts its replacement
	// (replacement.HistoryOf must point at oldKey) and re-points any
	// order and extension rows that referenced oldKey. Single
	// transaction, so a failure leaves no orphaned references.
	Swap(ctx context.Context, oldKey domain.ReservationKey, replacement *domain.Reservation) error
}

type CalendarRepository interface {
	GetByItem(ctx context.Context, itemID int32) (*domain.Calendar, error)
}

type ItemRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Item, error)
}

type OrderRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	ListExtensions(ctx context.Context, orderID int32) ([]domain.Extension, error)
	InsertExtension(ctx context.Context, ext *domain.Extension) error
	UpdateSchedulingFlags(ctx context.Context, orderID int32, pickupScheduled, dropoffScheduled bool) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
