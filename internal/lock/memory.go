package lock

import (
	"context"
	"sync"
	"time"

	"gearshare-booking-engine/internal/logger"
)

type memoryEntry struct {
	holderID string
	lockedAt time.Time
}

// Memory is an in-process Locker for single-node deployments and tests.
type Memory struct {
	mu    sync.Mutex
	locks map[int32]memoryEntry
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		locks: make(map[int32]memoryEntry),
		now:   time.Now,
	}
}

// NewMemoryWithClock injects a clock, used by tests to age locks.
func NewMemoryWithClock(now func() time.Time) *Memory {
	m := NewMemory()
	m.now = now
	return m
}

func (m *Memory) Acquire(ctx context.Context, itemID int32, holderID string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, held := m.locks[itemID]
	if held && entry.holderID != holderID {
		if m.now().Sub(entry.lockedAt) <= ttl {
			return false, nil
		}
		// Stale lock: the previous holder crashed or timed out.
		logger.Warn("Reclaiming stale item lock",
			"item_id", itemID, "prior_holder", entry.holderID, "locked_at", entry.lockedAt)
	}
	m.locks[itemID] = memoryEntry{holderID: holderID, lockedAt: m.now()}
	return true, nil
}

func (m *Memory) Release(ctx context.Context, itemID int32, holderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, held := m.locks[itemID]
	if !held {
		return nil
	}
	if entry.holderID != holderID {
		// A straggler must not release someone else's lock.
		logger.Warn("Ignoring release by non-holder",
			"item_id", itemID, "holder", entry.holderID, "releaser", holderID)
		return nil
	}
	delete(m.locks, itemID)
	return nil
}

func (m *Memory) IsLocked(ctx context.Context, itemID int32) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, held := m.locks[itemID]
	return held, nil
}
