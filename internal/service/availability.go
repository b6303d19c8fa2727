package service

import (
	"context"
	"time"

	"gearshare-booking-engine/internal/interval"
	"gearshare-booking-engine/internal/repository"
	"gearshare-booking-engine/internal/utils"
)

type availabilityService struct {
	calRepo      repository.CalendarRepository
	resRepo      repository.ReservationRepository
	leadTimeDays int
	now          func() time.Time
}

// NewAvailabilityService builds the per-item availability view.
// leadTimeDays is the number of days of notice a lister gets before the
// earliest proposed start date.
func NewAvailabilityService(calRepo repository.CalendarRepository, resRepo repository.ReservationRepository, leadTimeDays int) AvailabilityService {
	return &availabilityService{
		calRepo:      calRepo,
		resRepo:      resRepo,
		leadTimeDays: leadTimeDays,
		now:          time.Now,
	}
}

// IsAvailable reports whether the item is free on the given day. Reads
// run lock-free against the last-committed confirmed set, which is fine
// for display but never a substitute for the locked Confirm check.
func (s *availabilityService) IsAvailable(ctx context.Context, itemID int32, date time.Time) (bool, error) {
	confirmed, err := s.resRepo.ListByItem(ctx, itemID, repository.Confirmed())
	if err != nil {
		return false, err
	}
	day := utils.DateOnly(date)
	for i := range confirmed {
		if interval.Contains(confirmed[i].Range(), day) {
			return false, nil
		}
	}
	return true, nil
}

// NextAvailability proposes the earliest open range inside the item's
// operating window starting at or after today plus the lead time. A
// fully booked window yields a zero Range, not an error.
func (s *availabilityService) NextAvailability(ctx context.Context, itemID int32) (interval.Range, error) {
	cal, err := s.calRepo.GetByItem(ctx, itemID)
	if err != nil {
		return interval.Range{}, err
	}
	confirmed, err := s.resRepo.ListByItem(ctx, itemID, repository.Confirmed())
	if err != nil {
		return interval.Range{}, err
	}

	earliest := utils.DateOnly(s.now()).AddDate(0, 0, s.leadTimeDays)
	booked := make([]interval.Range, 0, len(confirmed))
	for i := range confirmed {
		booked = append(booked, confirmed[i].Range())
	}
	interval.SortByEnd(booked)

	gap, ok := interval.FirstGapAfter(booked, cal.WindowStart, cal.WindowEnd, earliest)
	if !ok {
		return interval.Range{}, nil
	}
	return gap, nil
}

// BookedDays enumerates the days of the given month covered by confirmed
// reservations. Display helper only; booking decisions go through the
// scheduler.
func (s *availabilityService) BookedDays(ctx context.Context, itemID int32, year int, month time.Month) ([]int, error) {
	confirmed, err := s.resRepo.ListByItem(ctx, itemID, repository.Confirmed())
	if err != nil {
		return nil, err
	}

	var days []int
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		for i := range confirmed {
			if interval.Contains(confirmed[i].Range(), day) {
				days = append(days, day.Day())
				break
			}
		}
	}
	return days, nil
}
