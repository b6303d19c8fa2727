package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gearshare-booking-engine/internal/domain"
	"gearshare-booking-engine/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	o := &domain.Order{}
	query := `SELECT id, lister_id, date_placed, is_pickup_scheduled, is_dropoff_scheduled,
	                 res_item_id, res_renter_id, res_date_started, res_date_ended
	          FROM orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.ListerID, &o.DatePlaced, &o.PickupScheduled, &o.DropoffScheduled,
		&o.Reservation.ItemID, &o.Reservation.RenterID, &o.Reservation.DateStarted, &o.Reservation.DateEnded,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) ListExtensions(ctx context.Context, orderID int32) ([]domain.Extension, error) {
	query := `SELECT order_id, res_item_id, res_renter_id, res_date_started, res_date_ended
	          FROM extensions WHERE order_id = $1 ORDER BY res_date_ended ASC`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extensions []domain.Extension
	for rows.Next() {
		var ext domain.Extension
		if err := rows.Scan(
			&ext.OrderID,
			&ext.Reservation.ItemID, &ext.Reservation.RenterID,
			&ext.Reservation.DateStarted, &ext.Reservation.DateEnded,
		); err != nil {
			return nil, err
		}
		extensions = append(extensions, ext)
	}
	return extensions, rows.Err()
}

func (r *orderRepository) InsertExtension(ctx context.Context, ext *domain.Extension) error {
	query := `INSERT INTO extensions (order_id, res_item_id, res_renter_id, res_date_started, res_date_ended)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		ext.OrderID,
		ext.Reservation.ItemID, ext.Reservation.RenterID,
		ext.Reservation.DateStarted, ext.Reservation.DateEnded,
	)
	return mapInsertError(err)
}

func (r *orderRepository) UpdateSchedulingFlags(ctx context.Context, orderID int32, pickupScheduled, dropoffScheduled bool) error {
	query := `UPDATE orders SET is_pickup_scheduled = $1, is_dropoff_scheduled = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, pickupScheduled, dropoffScheduled, orderID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}
	return nil
}
