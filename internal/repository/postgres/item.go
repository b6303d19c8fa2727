package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gearshare-booking-engine/internal/domain"
	"gearshare-booking-engine/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	item := &domain.Item{}
	var lockedBy sql.NullString
	var lockedAt sql.NullTime
	query := `SELECT id, lister_id, name, price_per_day_cents, is_locked, locked_by, locked_at, created_on
	          FROM items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.ListerID, &item.Name, &item.PricePerDayCents,
		&item.IsLocked, &lockedBy, &lockedAt, &item.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	item.LockedBy = lockedBy.String
	if lockedAt.Valid {
		item.LockedAt = &lockedAt.Time
	}
	return item, nil
}
