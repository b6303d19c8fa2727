package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gearshare-booking-engine/internal/domain"
	"gearshare-booking-engine/internal/interval"
	"gearshare-booking-engine/internal/repository"
)

func newAvailabilityForTest(calRepo *MockCalendarRepo, resRepo *MockReservationRepo, leadDays int, today string) *availabilityService {
	return &availabilityService{
		calRepo:      calRepo,
		resRepo:      resRepo,
		leadTimeDays: leadDays,
		now:          fixedClock(today),
	}
}

func TestAvailability_IsAvailable(t *testing.T) {
	ctx := context.Background()
	resRepo := new(MockReservationRepo)
	svc := newAvailabilityForTest(new(MockCalendarRepo), resRepo, 2, "2026-06-01")

	booked := []domain.Reservation{
		confirmedReservation(1, 10, "2026-06-10", "2026-06-15"),
	}
	resRepo.On("ListByItem", ctx, int32(1), repository.Confirmed()).Return(booked, nil)

	t.Run("FreeDay", func(t *testing.T) {
		free, err := svc.IsAvailable(ctx, 1, date("2026-06-05"))
		assert.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("BookedDay", func(t *testing.T) {
		free, err := svc.IsAvailable(ctx, 1, date("2026-06-12"))
		assert.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("CheckoutDayIsFree", func(t *testing.T) {
		free, err := svc.IsAvailable(ctx, 1, date("2026-06-15"))
		assert.NoError(t, err)
		assert.True(t, free)
	})
}

func TestAvailability_NextAvailability(t *testing.T) {
	ctx := context.Background()
	cal := &domain.Calendar{ItemID: 1, WindowStart: date("2026-01-01"), WindowEnd: date("2026-12-31")}

	t.Run("EmptyCalendarStartsAfterLeadTime", func(t *testing.T) {
		calRepo := new(MockCalendarRepo)
		resRepo := new(MockReservationRepo)
		svc := newAvailabilityForTest(calRepo, resRepo, 2, "2026-01-01")

		calRepo.On("GetByItem", ctx, int32(1)).Return(cal, nil)
		resRepo.On("ListByItem", ctx, int32(1), repository.Confirmed()).Return([]domain.Reservation{}, nil)

		rng, err := svc.NextAvailability(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, interval.Range{Start: date("2026-01-03"), End: date("2026-12-31")}, rng)
	})

	t.Run("GapBetweenBookings", func(t *testing.T) {
		calRepo := new(MockCalendarRepo)
		resRepo := new(MockReservationRepo)
		svc := newAvailabilityForTest(calRepo, resRepo, 2, "2026-05-30")

		booked := []domain.Reservation{
			confirmedReservation(1, 10, "2026-06-01", "2026-06-10"),
			confirmedReservation(1, 11, "2026-06-20", "2026-06-25"),
		}
		calRepo.On("GetByItem", ctx, int32(1)).Return(cal, nil)
		resRepo.On("ListByItem", ctx, int32(1), repository.Confirmed()).Return(booked, nil)

		rng, err := svc.NextAvailability(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, interval.Range{Start: date("2026-06-10"), End: date("2026-06-20")}, rng)
	})

	t.Run("FullyBookedYieldsZeroRange", func(t *testing.T) {
		calRepo := new(MockCalendarRepo)
		resRepo := new(MockReservationRepo)
		svc := newAvailabilityForTest(calRepo, resRepo, 2, "2026-05-30")

		tight := &domain.Calendar{ItemID: 1, WindowStart: date("2026-06-01"), WindowEnd: date("2026-06-10")}
		booked := []domain.Reservation{
			confirmedReservation(1, 10, "2026-06-01", "2026-06-10"),
		}
		calRepo.On("GetByItem", ctx, int32(1)).Return(tight, nil)
		resRepo.On("ListByItem", ctx, int32(1), repository.Confirmed()).Return(booked, nil)

		rng, err := svc.NextAvailability(ctx, 1)
		assert.NoError(t, err)
		assert.True(t, rng.IsZero())
	})
}

func TestAvailability_BookedDays(t *testing.T) {
	ctx := context.Background()
	resRepo := new(MockReservationRepo)
	svc := newAvailabilityForTest(new(MockCalendarRepo), resRepo, 2, "2026-06-01")

	booked := []domain.Reservation{
		confirmedReservation(1, 10, "2026-06-03", "2026-06-06"),
		confirmedReservation(1, 11, "2026-06-29", "2026-07-02"),
	}
	resRepo.On("ListByItem", ctx, int32(1), repository.Confirmed()).Return(booked, nil)

	t.Run("June", func(t *testing.T) {
		days, err := svc.BookedDays(ctx, 1, 2026, time.June)
		assert.NoError(t, err)
		assert.Equal(t, []int{3, 4, 5, 29, 30}, days)
	})

	t.Run("JulySpillover", func(t *testing.T) {
		days, err := svc.BookedDays(ctx, 1, 2026, time.July)
		assert.NoError(t, err)
		assert.Equal(t, []int{1}, days)
	})

	t.Run("EmptyMonth", func(t *testing.T) {
		days, err := svc.BookedDays(ctx, 1, 2026, time.September)
		assert.NoError(t, err)
		assert.Empty(t, days)
	})
}
