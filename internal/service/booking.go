package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gearshare-booking-engine/internal/domain"
	"gearshare-booking-engine/internal/interval"
	"gearshare-booking-engine/internal/lock"
	"gearshare-booking-engine/internal/logger"
	"gearshare-booking-engine/internal/repository"
	"gearshare-booking-engine/internal/utils"
)

// BookingParams are the deployment knobs of the orchestrator.
type BookingParams struct {
	LockTTL     time.Duration
	DepositRate float64
	TaxRate     float64
}

type bookingService struct {
	locker    lock.Locker
	ledger    LedgerService
	resRepo   repository.ReservationRepository
	calRepo   repository.CalendarRepository
	itemRepo  repository.ItemRepository
	orderRepo repository.OrderRepository
	noteRepo  repository.NotificationRepository
	params    BookingParams
	now       func() time.Time
}

func NewBookingService(
	locker lock.Locker,
	ledger LedgerService,
	resRepo repository.ReservationRepository,
	calRepo repository.CalendarRepository,
	itemRepo repository.ItemRepository,
	orderRepo repository.OrderRepository,
	noteRepo repository.NotificationRepository,
	params BookingParams,
) BookingService {
	return &bookingService{
		locker:    locker,
		ledger:    ledger,
		resRepo:   resRepo,
		calRepo:   calRepo,
		itemRepo:  itemRepo,
		orderRepo: orderRepo,
		noteRepo:  noteRepo,
		params:    params,
		now:       time.Now,
	}
}

// holderID tags one checkout flow. The uuid keeps two flows of the same
// renter from being mistaken for a re-acquire of one another.
func holderID(renterID int32) string {
	return fmt.Sprintf("renter:%d:%s", renterID, uuid.NewString())
}

// AttemptBook is the end-to-end booking path: lock the item, validate
// the range against the confirmed set, commit to cart, confirm. The
// lock is released on every exit path.
func (s *bookingService) AttemptBook(ctx context.Context, itemID, renterID int32, rng interval.Range) (*domain.BookingResult, error) {
	rng = rng.Normalize()
	if !rng.IsValid() {
		return nil, fmt.Errorf("book item %d: %w", itemID, domain.ErrInvalidRange)
	}
	cal, err := s.calRepo.GetByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if rng.Start.Before(cal.WindowStart) || rng.End.After(cal.WindowEnd) {
		return nil, fmt.Errorf("range outside calendar window of item %d: %w", itemID, domain.ErrInvalidRange)
	}
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	holder := holderID(renterID)
	acquired, err := s.locker.Acquire(ctx, itemID, holder, s.params.LockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return &domain.BookingResult{Status: domain.BookingItemBusy}, nil
	}
	defer s.release(ctx, itemID, holder)

	existing, err := s.resRepo.ListByItem(ctx, itemID, repository.Confirmed())
	if err != nil {
		return nil, err
	}

	quote := utils.PriceReservation(item.PricePerDayCents, rng.Days(), s.params.DepositRate, s.params.TaxRate)
	res := &domain.Reservation{
		ItemID:       itemID,
		RenterID:     renterID,
		DateStarted:  rng.Start,
		DateEnded:    rng.End,
		ChargeCents:  quote.ChargeCents,
		DepositCents: quote.DepositCents,
		TaxCents:     quote.TaxCents,
	}

	switch s.ledger.Schedule(res, existing, cal) {
	case ScheduleConflict:
		return &domain.BookingResult{Status: domain.BookingConflict}, nil
	case ScheduleExpired:
		return &domain.BookingResult{Status: domain.BookingCalendarExpired}, nil
	}

	committed, err := s.ledger.Commit(ctx, res)
	if err != nil {
		return nil, err
	}
	result, err := s.ledger.Confirm(ctx, committed.Key())
	if err != nil {
		return nil, err
	}
	switch result {
	case ScheduleConflict:
		return &domain.BookingResult{Status: domain.BookingConflict}, nil
	case ScheduleExpired:
		return &domain.BookingResult{Status: domain.BookingCalendarExpired}, nil
	}
	committed.Calendared = true
	committed.InCart = false

	s.notify(ctx, item.ListerID, "Item booked",
		fmt.Sprintf("Item %s booked %s to %s", item.Name, utils.FormatDate(rng.Start), utils.FormatDate(rng.End)),
		map[string]string{"type": "BOOKING_CONFIRMED", "item_id": fmt.Sprintf("%d", itemID)})

	logger.Info("Booking confirmed",
		"item_id", itemID, "renter_id", renterID,
		"start", utils.FormatDate(rng.Start), "end", utils.FormatDate(rng.End))
	return &domain.BookingResult{Status: domain.BookingConfirmed, Reservation: committed}, nil
}

// Extend grows an order past its current effective end. The conflict
// check covers only the added period; the swap then replaces the
// reservation of record with one running through the new end date and
// records the period as an extension of the order.
func (s *bookingService) Extend(ctx context.Context, orderID int32, newEnd time.Time) (*domain.BookingResult, error) {
	newEnd = utils.DateOnly(newEnd)
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	extensions, err := s.orderRepo.ListExtensions(ctx, orderID)
	if err != nil {
		return nil, err
	}
	effectiveEnd := order.EffectiveEnd(extensions)
	if !newEnd.After(effectiveEnd) {
		return nil, fmt.Errorf("extension of order %d must end after %s: %w",
			orderID, utils.FormatDate(effectiveEnd), domain.ErrInvalidRange)
	}

	itemID := order.Reservation.ItemID
	cal, err := s.calRepo.GetByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if newEnd.After(cal.WindowEnd) {
		return nil, fmt.Errorf("extension past calendar window of item %d: %w", itemID, domain.ErrInvalidRange)
	}
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// The reservation of record for the order's final period: the latest
	// extension's reservation when one exists, else the order snapshot.
	oldKey := order.Reservation
	if len(extensions) > 0 {
		oldKey = extensions[len(extensions)-1].Reservation
	}

	holder := holderID(order.Reservation.RenterID)
	acquired, err := s.locker.Acquire(ctx, itemID, holder, s.params.LockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return &domain.BookingResult{Status: domain.BookingItemBusy}, nil
	}
	defer s.release(ctx, itemID, holder)

	existing, err := s.resRepo.ListByItem(ctx, itemID, repository.Confirmed())
	if err != nil {
		return nil, err
	}
	added := &domain.Reservation{
		ItemID:      itemID,
		RenterID:    order.Reservation.RenterID,
		DateStarted: effectiveEnd,
		DateEnded:   newEnd,
	}
	switch s.ledger.Schedule(added, existing, cal) {
	case ScheduleConflict:
		return &domain.BookingResult{Status: domain.BookingConflict}, nil
	case ScheduleExpired:
		return &domain.BookingResult{Status: domain.BookingCalendarExpired}, nil
	}

	oldRes, err := s.resRepo.GetByKey(ctx, oldKey)
	if err != nil {
		return nil, err
	}
	addedQuote := utils.PriceReservation(item.PricePerDayCents, added.Range().Days(), s.params.DepositRate, s.params.TaxRate)
	replacement := &domain.Reservation{
		ItemID:       itemID,
		RenterID:     oldRes.RenterID,
		DateStarted:  oldRes.DateStarted,
		DateEnded:    newEnd,
		ChargeCents:  oldRes.ChargeCents + addedQuote.ChargeCents,
		DepositCents: oldRes.DepositCents,
		TaxCents:     oldRes.TaxCents + addedQuote.TaxCents,
	}
	swapped, err := s.ledger.Swap(ctx, oldKey, replacement)
	if err != nil {
		return nil, err
	}

	// The swap already re-pointed an existing extension row at the
	// replacement; only the first extension needs a fresh row.
	if len(extensions) == 0 {
		ext := &domain.Extension{OrderID: orderID, Reservation: swapped.Key()}
		if err := s.orderRepo.InsertExtension(ctx, ext); err != nil {
			return nil, err
		}
	}

	s.notify(ctx, order.ListerID, "Rental extended",
		fmt.Sprintf("Order %d extended to %s", orderID, utils.FormatDate(newEnd)),
		map[string]string{"type": "ORDER_EXTENDED", "order_id": fmt.Sprintf("%d", orderID)})

	logger.Info("Order extended", "order_id", orderID, "new_end", utils.FormatDate(newEnd))
	return &domain.BookingResult{Status: domain.BookingConfirmed, Reservation: swapped}, nil
}

// ReturnEarly shortens an order's reservation. Orders that already have
// an extension are rejected outright: shrinking an extended booking is
// a product decision this engine does not make on its own.
func (s *bookingService) ReturnEarly(ctx context.Context, orderID int32, newEnd time.Time) (*domain.BookingResult, error) {
	newEnd = utils.DateOnly(newEnd)
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	extensions, err := s.orderRepo.ListExtensions(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(extensions) > 0 {
		return nil, fmt.Errorf("order %d has extensions, early return not supported: %w", orderID, domain.ErrInvalidRange)
	}
	if !newEnd.Before(order.Reservation.DateEnded) {
		return nil, fmt.Errorf("early return of order %d must end before %s: %w",
			orderID, utils.FormatDate(order.Reservation.DateEnded), domain.ErrInvalidRange)
	}
	if !newEnd.After(order.Reservation.DateStarted) {
		return nil, fmt.Errorf("early return of order %d would empty the reservation: %w", orderID, domain.ErrInvalidRange)
	}

	itemID := order.Reservation.ItemID
	holder := holderID(order.Reservation.RenterID)
	acquired, err := s.locker.Acquire(ctx, itemID, holder, s.params.LockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return &domain.BookingResult{Status: domain.BookingItemBusy}, nil
	}
	defer s.release(ctx, itemID, holder)

	oldRes, err := s.resRepo.GetByKey(ctx, order.Reservation)
	if err != nil {
		return nil, err
	}

	// Charge and tax are prorated to the shortened stay; the deposit is
	// settled at completion, not here.
	oldDays := oldRes.Range().Days()
	newDays := interval.Range{Start: oldRes.DateStarted, End: newEnd}.Days()
	replacement := &domain.Reservation{
		ItemID:       itemID,
		RenterID:     oldRes.RenterID,
		DateStarted:  oldRes.DateStarted,
		DateEnded:    newEnd,
		ChargeCents:  prorate(oldRes.ChargeCents, newDays, oldDays),
		DepositCents: oldRes.DepositCents,
		TaxCents:     prorate(oldRes.TaxCents, newDays, oldDays),
	}
	swapped, err := s.ledger.Swap(ctx, order.Reservation, replacement)
	if err != nil {
		return nil, err
	}

	// The lister's pickup needs rescheduling for the earlier date.
	if err := s.orderRepo.UpdateSchedulingFlags(ctx, orderID, false, order.DropoffScheduled); err != nil {
		return nil, err
	}

	s.notify(ctx, order.ListerID, "Early return",
		fmt.Sprintf("Order %d will be returned on %s", orderID, utils.FormatDate(newEnd)),
		map[string]string{"type": "ORDER_RETURNED_EARLY", "order_id": fmt.Sprintf("%d", orderID)})

	logger.Info("Order returned early", "order_id", orderID, "new_end", utils.FormatDate(newEnd))
	return &domain.BookingResult{Status: domain.BookingConfirmed, Reservation: swapped}, nil
}

func (s *bookingService) release(ctx context.Context, itemID int32, holder string) {
	if err := s.locker.Release(ctx, itemID, holder); err != nil {
		logger.Error("Failed to release item lock", "item_id", itemID, "holder", holder, "error", err)
	}
}

func (s *bookingService) notify(ctx context.Context, userID int32, title, message string, attrs map[string]string) {
	note := &domain.Notification{
		UserID:     userID,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create notification", "user_id", userID, "title", title, "error", err)
	}
}

func prorate(amountCents int32, newDays, oldDays int) int32 {
	if oldDays <= 0 {
		return amountCents
	}
	return int32(int64(amountCents) * int64(newDays) / int64(oldDays))
}
