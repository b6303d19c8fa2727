package lock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gearshare-booking-engine/internal/domain"
	"gearshare-booking-engine/internal/logger"
)

// Postgres stores lock state on the item row itself (is_locked,
// locked_by, locked_at), matching the schema the rest of the engine
// reads through ItemRepository.
type Postgres struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

func (p *Postgres) Acquire(ctx context.Context, itemID int32, holderID string, ttl time.Duration) (bool, error) {
	// Fast path: the item is unlocked, or we already hold it.
	grab := `UPDATE items SET is_locked = true, locked_by = $1, locked_at = $2
	         WHERE id = $3 AND (is_locked = false OR locked_by = $1)`
	result, err := p.db.ExecContext(ctx, grab, holderID, p.now(), itemID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return true, nil
	}

	// Held by someone else. Reclaim only if stale, with a compare-and-swap
	// on the prior holder so two reclaimers cannot both win.
	var priorHolder sql.NullString
	var lockedAt sql.NullTime
	read := `SELECT locked_by, locked_at FROM items WHERE id = $1`
	err = p.db.QueryRowContext(ctx, read, itemID).Scan(&priorHolder, &lockedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
	}
	if err != nil {
		return false, err
	}
	if !lockedAt.Valid || p.now().Sub(lockedAt.Time) <= ttl {
		return false, nil
	}

	reclaim := `UPDATE items SET locked_by = $1, locked_at = $2
	            WHERE id = $3 AND is_locked = true AND locked_by = $4 AND locked_at = $5`
	result, err = p.db.ExecContext(ctx, reclaim, holderID, p.now(), itemID, priorHolder.String, lockedAt.Time)
	if err != nil {
		return false, err
	}
	affected, err = result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		// Lost the race to another reclaimer or a release.
		return false, nil
	}
	logger.Warn("Reclaimed stale item lock",
		"item_id", itemID, "prior_holder", priorHolder.String, "locked_at", lockedAt.Time)
	return true, nil
}

func (p *Postgres) Release(ctx context.Context, itemID int32, holderID string) error {
	query := `UPDATE items SET is_locked = false, locked_by = NULL, locked_at = NULL
	          WHERE id = $1 AND locked_by = $2`
	result, err := p.db.ExecContext(ctx, query, itemID, holderID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		logger.Warn("Ignoring release by non-holder", "item_id", itemID, "releaser", holderID)
	}
	return nil
}

func (p *Postgres) IsLocked(ctx context.Context, itemID int32) (bool, error) {
	var locked bool
	query := `SELECT is_locked FROM items WHERE id = $1`
	err := p.db.QueryRowContext(ctx, query, itemID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
	}
	return locked, err
}
