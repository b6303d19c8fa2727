package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gearshare-booking-engine/internal/domain"
	"gearshare-booking-engine/internal/repository"
)

type calendarRepository struct {
	db *sql.DB
}

func NewCalendarRepository(db *sql.DB) repository.CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) GetByItem(ctx context.Context, itemID int32) (*domain.Calendar, error) {
	cal := &domain.Calendar{}
	query := `SELECT item_id, window_start, window_end FROM calendars WHERE item_id = $1`
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(&cal.ItemID, &cal.WindowStart, &cal.WindowEnd)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("calendar for item %d: %w", itemID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return cal, nil
}
