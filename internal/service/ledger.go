package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gearshare-booking-engine/internal/domain"
	"gearshare-booking-engine/internal/interval"
	"gearshare-booking-engine/internal/logger"
	"gearshare-booking-engine/internal/repository"
	"gearshare-booking-engine/internal/utils"
)

// historyDepthCap bounds History traversal. A chain deeper than this is
// treated as corrupted rather than walked forever.
const historyDepthCap = 64

type ledgerService struct {
	resRepo repository.ReservationRepository
	calRepo repository.CalendarRepository
	now     func() time.Time
}

func NewLedgerService(resRepo repository.ReservationRepository, calRepo repository.CalendarRepository) LedgerService {
	return &ledgerService{
		resRepo: resRepo,
		calRepo: calRepo,
		now:     time.Now,
	}
}

// Schedule is the conflict oracle: it walks existing in any order and
// reports the first overlap, then checks whether the item's operating
// window has already passed. Pure decision function, no mutation.
func (s *ledgerService) Schedule(candidate *domain.Reservation, existing []domain.Reservation, cal *domain.Calendar) ScheduleResult {
	for i := range existing {
		if interval.Overlaps(candidate.Range(), existing[i].Range()) {
			return ScheduleConflict
		}
	}
	if cal.Expired(utils.DateOnly(s.now())) {
		return ScheduleExpired
	}
	return ScheduleAccepted
}

// Commit persists a reservation in the cart state. Calendaring happens
// only through Confirm. A duplicate-key race means an identical row was
// already committed, so the existing row is returned as the result.
func (s *ledgerService) Commit(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if !res.Range().IsValid() {
		return nil, fmt.Errorf("reservation %+v: %w", res.Key(), domain.ErrInvalidRange)
	}
	res.InCart = true
	res.Calendared = false
	res.Expired = false

	err := s.resRepo.Insert(ctx, res)
	if errors.Is(err, domain.ErrDuplicateReservation) {
		logger.Debug("Commit raced an identical insert, returning existing row", "key", res.Key())
		return s.resRepo.GetByKey(ctx, res.Key())
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Confirm re-runs Schedule against the current confirmed set and, on
// acceptance, flips the row to calendared. The caller must hold the
// item's lock; without it two confirms could both pass the check.
func (s *ledgerService) Confirm(ctx context.Context, key domain.ReservationKey) (ScheduleResult, error) {
	res, err := s.resRepo.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	cal, err := s.calRepo.GetByItem(ctx, key.ItemID)
	if err != nil {
		return "", err
	}
	existing, err := s.resRepo.ListByItem(ctx, key.ItemID, repository.Confirmed())
	if err != nil {
		return "", err
	}

	result := s.Schedule(res, existing, cal)
	if result != ScheduleAccepted {
		// Conflict or expired: the row stays untouched in the cart.
		return result, nil
	}

	yes, no := true, false
	if err := s.resRepo.UpdateFlags(ctx, key, repository.FlagChanges{Calendared: &yes, InCart: &no}); err != nil {
		return "", err
	}
	return ScheduleAccepted, nil
}

// Swap retires oldKey and inserts replacement linked via HistoryOf, used
// for extensions and early returns. The repository performs retire,
// insert and order/extension relinking in one transaction.
func (s *ledgerService) Swap(ctx context.Context, oldKey domain.ReservationKey, replacement *domain.Reservation) (*domain.Reservation, error) {
	if !replacement.Range().IsValid() {
		return nil, fmt.Errorf("replacement for %+v: %w", oldKey, domain.ErrInvalidRange)
	}
	if replacement.Key() == oldKey {
		return nil, fmt.Errorf("replacement must differ from %+v: %w", oldKey, domain.ErrInvalidRange)
	}
	old := oldKey
	replacement.HistoryOf = &old
	replacement.Calendared = true
	replacement.InCart = false
	replacement.Expired = false

	if err := s.resRepo.Swap(ctx, oldKey, replacement); err != nil {
		return nil, err
	}
	return replacement, nil
}

// Expire marks a reservation expired once its end date has passed.
// Idempotent: expiring an already-expired row is a no-op.
func (s *ledgerService) Expire(ctx context.Context, key domain.ReservationKey) error {
	res, err := s.resRepo.GetByKey(ctx, key)
	if err != nil {
		return err
	}
	if res.Expired {
		return nil
	}
	today := utils.DateOnly(s.now())
	if !today.After(res.DateEnded) {
		return fmt.Errorf("reservation %+v has not ended yet: %w", key, domain.ErrInvalidRange)
	}
	yes := true
	return s.resRepo.UpdateFlags(ctx, key, repository.FlagChanges{Expired: &yes})
}

// History walks HistoryOf back-references and returns the full audit
// chain oldest first. Chains cannot legitimately cycle, so a revisited
// key or a chain deeper than the cap is reported as corruption instead
// of looping.
func (s *ledgerService) History(ctx context.Context, key domain.ReservationKey) ([]domain.Reservation, error) {
	visited := make(map[domain.ReservationKey]bool)
	var newestFirst []domain.Reservation

	cursor := key
	for {
		if len(newestFirst) >= historyDepthCap {
			return nil, fmt.Errorf("history of %+v exceeds depth %d: %w", key, historyDepthCap, domain.ErrHistoryCorrupted)
		}
		if visited[cursor] {
			return nil, fmt.Errorf("history of %+v revisits %+v: %w", key, cursor, domain.ErrHistoryCorrupted)
		}
		visited[cursor] = true

		res, err := s.resRepo.GetByKey(ctx, cursor)
		if err != nil {
			return nil, err
		}
		newestFirst = append(newestFirst, *res)
		if res.HistoryOf == nil {
			break
		}
		cursor = *res.HistoryOf
	}

	chain := make([]domain.Reservation, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		chain = append(chain, newestFirst[i])
	}
	return chain, nil
}
