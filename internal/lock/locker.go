package lock

import (
	"context"
	"time"
)

// Locker serializes checkout-time critical sections per item. Acquire is
// fail-fast: a held, fresh lock returns false rather than blocking.
// A holder re-acquiring its own lock succeeds and refreshes the TTL,
// which keeps retried checkout flows safe. A lock older than ttl is
// stale and may be reclaimed by a new holder.
type Locker interface {
	Acquire(ctx context.Context, itemID int32, holderID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, itemID int32, holderID string) error
	IsLocked(ctx context.Context, itemID int32) (bool, error)
}
