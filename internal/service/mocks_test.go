package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gearshare-booking-engine/internal/domain"
	"gearshare-booking-engine/internal/repository"
)

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Insert(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByKey(ctx context.Context, key domain.ReservationKey) (*domain.Reservation, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListByItem(ctx context.Context, itemID int32, filter repository.ReservationFilter) ([]domain.Reservation, error) {
	args := m.Called(ctx, itemID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) UpdateFlags(ctx context.Context, key domain.ReservationKey, changes repository.FlagChanges) error {
	args := m.Called(ctx, key, changes)
	return args.Error(0)
}
func (m *MockReservationRepo) Swap(ctx context.Context, oldKey domain.ReservationKey, replacement *domain.Reservation) error {
	args := m.Called(ctx, oldKey, replacement)
	return args.Error(0)
}

// MockCalendarRepo
type MockCalendarRepo struct {
	mock.Mock
}

func (m *MockCalendarRepo) GetByItem(ctx context.Context, itemID int32) (*domain.Calendar, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Calendar), args.Error(1)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListExtensions(ctx context.Context, orderID int32) ([]domain.Extension, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Extension), args.Error(1)
}
func (m *MockOrderRepo) InsertExtension(ctx context.Context, ext *domain.Extension) error {
	args := m.Called(ctx, ext)
	return args.Error(0)
}
func (m *MockOrderRepo) UpdateSchedulingFlags(ctx context.Context, orderID int32, pickupScheduled, dropoffScheduled bool) error {
	args := m.Called(ctx, orderID, pickupScheduled, dropoffScheduled)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), int32(args.Int(1)), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockLocker
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Acquire(ctx context.Context, itemID int32, holderID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, itemID, holderID, ttl)
	return args.Bool(0), args.Error(1)
}
func (m *MockLocker) Release(ctx context.Context, itemID int32, holderID string) error {
	args := m.Called(ctx, itemID, holderID)
	return args.Error(0)
}
func (m *MockLocker) IsLocked(ctx context.Context, itemID int32) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

// date parses a yyyy-mm-dd literal for test fixtures.
func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func confirmedReservation(itemID, renterID int32, start, end string) domain.Reservation {
	return domain.Reservation{
		ItemID:      itemID,
		RenterID:    renterID,
		DateStarted: date(start),
		DateEnded:   date(end),
		Calendared:  true,
	}
}

func fixedClock(s string) func() time.Time {
	return func() time.Time { return date(s) }
}
