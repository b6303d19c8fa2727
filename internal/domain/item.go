package domain

import "time"

// Item is a rentable resource owned by a lister. The lock columns are
// mutated only through the lock package; everything else is read-only to
// this engine.
type Item struct {
	ID               int32      `json:"id"`
	ListerID         int32      `json:"lister_id"`
	Name             string     `json:"name"`
	PricePerDayCents int32      `json:"price_per_day_cents"`
	IsLocked         bool       `json:"is_locked"`
	LockedBy         string     `json:"locked_by,omitempty"`
	LockedAt         *time.Time `json:"locked_at,omitempty"`
	CreatedOn        time.Time  `json:"created_on"`
}

// Calendar is the per-item operating window. Every reservation on the
// item must fall inside [WindowStart, WindowEnd]; WindowEnd is a hard
// ceiling. The calendar holds no reservation rows of its own; the
// active set is always derived from the reservations table.
type Calendar struct {
	ItemID      int32     `json:"item_id"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

// Expired reports whether the operating window has passed as of today.
func (c *Calendar) Expired(today time.Time) bool {
	return !today.Before(c.WindowEnd)
}
