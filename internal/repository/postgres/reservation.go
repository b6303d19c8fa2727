package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"gearshare-booking-engine/internal/domain"
	"gearshare-booking-engine/internal/logger"
	"gearshare-booking-engine/internal/repository"
)

const reservationColumns = `item_id, renter_id, date_started, date_ended,
	charge_cents, deposit_cents, tax_cents,
	is_in_cart, is_calendared, is_expired,
	hist_item_id, hist_renter_id, hist_date_started, hist_date_ended, created_on`

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Insert(ctx context.Context, res *domain.Reservation) error {
	query := `INSERT INTO reservations (` + reservationColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	res.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, insertArgs(res)...)
	return mapInsertError(err)
}

func (r *reservationRepository) GetByKey(ctx context.Context, key domain.ReservationKey) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE item_id = $1 AND renter_id = $2 AND date_started = $3 AND date_ended = $4`
	row := r.db.QueryRowContext(ctx, query, key.ItemID, key.RenterID, key.DateStarted, key.DateEnded)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reservation %+v: %w", key, domain.ErrNotFound)
	}
	return res, err
}

func (r *reservationRepository) ListByItem(ctx context.Context, itemID int32, filter repository.ReservationFilter) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE item_id = $1`
	args := []interface{}{itemID}
	if filter.InCart != nil {
		args = append(args, *filter.InCart)
		query += fmt.Sprintf(" AND is_in_cart = $%d", len(args))
	}
	if filter.Calendared != nil {
		args = append(args, *filter.Calendared)
		query += fmt.Sprintf(" AND is_calendared = $%d", len(args))
	}
	if filter.Expired != nil {
		args = append(args, *filter.Expired)
		query += fmt.Sprintf(" AND is_expired = $%d", len(args))
	}
	query += " ORDER BY date_ended ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func (r *reservationRepository) UpdateFlags(ctx context.Context, key domain.ReservationKey, changes repository.FlagChanges) error {
	set := ""
	var args []interface{}
	appendChange := func(col string, val *bool) {
		if val == nil {
			return
		}
		args = append(args, *val)
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", col, len(args))
	}
	appendChange("is_in_cart", changes.InCart)
	appendChange("is_calendared", changes.Calendared)
	appendChange("is_expired", changes.Expired)
	if set == "" {
		return nil
	}
	args = append(args, key.ItemID, key.RenterID, key.DateStarted, key.DateEnded)
	query := fmt.Sprintf(`UPDATE reservations SET %s
	          WHERE item_id = $%d AND renter_id = $%d AND date_started = $%d AND date_ended = $%d`,
		set, len(args)-3, len(args)-2, len(args)-1, len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("reservation %+v: %w", key, domain.ErrNotFound)
	}
	return nil
}

// Swap retires oldKey, inserts the replacement and re-points order and
// extension rows, all in one transaction. The relink must ride the same
// transaction as the insert, otherwise a crash in between would leave
// orders referencing a retired reservation.
func (r *reservationRepository) Swap(ctx context.Context, oldKey domain.ReservationKey, replacement *domain.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	retire := `UPDATE reservations SET is_calendared = false
	           WHERE item_id = $1 AND renter_id = $2 AND date_started = $3 AND date_ended = $4`
	result, err := tx.ExecContext(ctx, retire, oldKey.ItemID, oldKey.RenterID, oldKey.DateStarted, oldKey.DateEnded)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("reservation %+v: %w", oldKey, domain.ErrNotFound)
	}

	insert := `INSERT INTO reservations (` + reservationColumns + `)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	replacement.CreatedOn = time.Now()
	if _, err := tx.ExecContext(ctx, insert, insertArgs(replacement)...); err != nil {
		return mapInsertError(err)
	}

	relinkOrders := `UPDATE orders
	  SET res_item_id = $1, res_renter_id = $2, res_date_started = $3, res_date_ended = $4
	  WHERE res_item_id = $5 AND res_renter_id = $6 AND res_date_started = $7 AND res_date_ended = $8`
	relinkExtensions := `UPDATE extensions
	  SET res_item_id = $1, res_renter_id = $2, res_date_started = $3, res_date_ended = $4
	  WHERE res_item_id = $5 AND res_renter_id = $6 AND res_date_started = $7 AND res_date_ended = $8`
	newKey := replacement.Key()
	relinkArgs := []interface{}{
		newKey.ItemID, newKey.RenterID, newKey.DateStarted, newKey.DateEnded,
		oldKey.ItemID, oldKey.RenterID, oldKey.DateStarted, oldKey.DateEnded,
	}
	if _, err := tx.ExecContext(ctx, relinkOrders, relinkArgs...); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, relinkExtensions, relinkArgs...); err != nil {
		return err
	}

	logger.Debug("Swapped reservation", "old", oldKey, "new", newKey)
	return tx.Commit()
}

func insertArgs(res *domain.Reservation) []interface{} {
	var histItem, histRenter sql.NullInt32
	var histStart, histEnd sql.NullTime
	if res.HistoryOf != nil {
		histItem = sql.NullInt32{Int32: res.HistoryOf.ItemID, Valid: true}
		histRenter = sql.NullInt32{Int32: res.HistoryOf.RenterID, Valid: true}
		histStart = sql.NullTime{Time: res.HistoryOf.DateStarted, Valid: true}
		histEnd = sql.NullTime{Time: res.HistoryOf.DateEnded, Valid: true}
	}
	return []interface{}{
		res.ItemID, res.RenterID, res.DateStarted, res.DateEnded,
		res.ChargeCents, res.DepositCents, res.TaxCents,
		res.InCart, res.Calendared, res.Expired,
		histItem, histRenter, histStart, histEnd, res.CreatedOn,
	}
}

func scanReservation(row interface{ Scan(...interface{}) error }) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	var histItem, histRenter sql.NullInt32
	var histStart, histEnd sql.NullTime
	err := row.Scan(
		&res.ItemID, &res.RenterID, &res.DateStarted, &res.DateEnded,
		&res.ChargeCents, &res.DepositCents, &res.TaxCents,
		&res.InCart, &res.Calendared, &res.Expired,
		&histItem, &histRenter, &histStart, &histEnd, &res.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	if histItem.Valid {
		res.HistoryOf = &domain.ReservationKey{
			ItemID:      histItem.Int32,
			RenterID:    histRenter.Int32,
			DateStarted: histStart.Time,
			DateEnded:   histEnd.Time,
		}
	}
	return res, nil
}

// mapInsertError turns a unique-constraint violation into the domain's
// duplicate sentinel so the ledger can treat a race-duplicate as
// already-committed instead of an error.
func mapInsertError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrDuplicateReservation
	}
	return err
}
