package service

import (
	"context"
	"time"

	"gearshare-booking-engine/internal/domain"
	"gearshare-booking-engine/internal/interval"
)

// ScheduleResult is the outcome of the pure conflict check.
type ScheduleResult string

const (
	ScheduleAccepted ScheduleResult = "ACCEPTED"
	ScheduleConflict ScheduleResult = "CONFLICT"
	ScheduleExpired  ScheduleResult = "CALENDAR_EXPIRED"
)

type AvailabilityService interface {
	IsAvailable(ctx context.Context, itemID int32, date time.Time) (bool, error)
	NextAvailability(ctx context.Context, itemID int32) (interval.Range, error)
	BookedDays(ctx context.Context, itemID int32, year int, month time.Month) ([]int, error)
}

type LedgerService interface {
	Schedule(candidate *domain.Reservation, existing []domain.Reservation, cal *domain.Calendar) ScheduleResult
	Commit(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	Confirm(ctx context.Context, key domain.ReservationKey) (ScheduleResult, error)
	Swap(ctx context.Context, oldKey domain.ReservationKey, replacement *domain.Reservation) (*domain.Reservation, error)
	Expire(ctx context.Context, key domain.ReservationKey) error
	History(ctx context.Context, key domain.ReservationKey) ([]domain.Reservation, error)
}

type BookingService interface {
	AttemptBook(ctx context.Context, itemID, renterID int32, rng interval.Range) (*domain.BookingResult, error)
	Extend(ctx context.Context, orderID int32, newEnd time.Time) (*domain.BookingResult, error)
	ReturnEarly(ctx context.Context, orderID int32, newEnd time.Time) (*domain.BookingResult, error)
}

type NotificationService interface {
	ListNotifications(ctx context.Context, userID, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
