package lock

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemory_AcquireRelease(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	ttl := 5 * time.Minute

	acquired, err := m.Acquire(ctx, 1, "holder-a", ttl)
	assert.NoError(t, err)
	assert.True(t, acquired)

	locked, err := m.IsLocked(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, locked)

	// A second holder is shut out while the lock is fresh.
	acquired, err = m.Acquire(ctx, 1, "holder-b", ttl)
	assert.NoError(t, err)
	assert.False(t, acquired)

	// Another item is independent.
	acquired, err = m.Acquire(ctx, 2, "holder-b", ttl)
	assert.NoError(t, err)
	assert.True(t, acquired)

	assert.NoError(t, m.Release(ctx, 1, "holder-a"))
	locked, err = m.IsLocked(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, locked)

	acquired, err = m.Acquire(ctx, 1, "holder-b", ttl)
	assert.NoError(t, err)
	assert.True(t, acquired)
}

func TestMemory_ReacquireSameHolder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	acquired, err := m.Acquire(ctx, 1, "holder-a", time.Minute)
	assert.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = m.Acquire(ctx, 1, "holder-a", time.Minute)
	assert.NoError(t, err)
	assert.True(t, acquired)
}

func TestMemory_ReleaseByNonHolderIgnored(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Acquire(ctx, 1, "holder-a", time.Minute)
	assert.NoError(t, err)

	assert.NoError(t, m.Release(ctx, 1, "holder-b"))

	locked, err := m.IsLocked(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, locked)
}

func TestMemory_ReleaseUnheldIsNoop(t *testing.T) {
	m := NewMemory()
	assert.NoError(t, m.Release(context.Background(), 9, "nobody"))
}

func TestMemory_StaleLockReclaimed(t *testing.T) {
	ctx := context.Background()
	current := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemoryWithClock(func() time.Time { return current })
	ttl := 5 * time.Minute

	acquired, err := m.Acquire(ctx, 1, "crashed-holder", ttl)
	assert.NoError(t, err)
	assert.True(t, acquired)

	// Within the TTL the lock still protects its holder.
	current = current.Add(4 * time.Minute)
	acquired, err = m.Acquire(ctx, 1, "holder-b", ttl)
	assert.NoError(t, err)
	assert.False(t, acquired)

	// Past the TTL the lock is stale and up for grabs.
	current = current.Add(2 * time.Minute)
	acquired, err = m.Acquire(ctx, 1, "holder-b", ttl)
	assert.NoError(t, err)
	assert.True(t, acquired)

	// The original holder lost ownership with the reclaim.
	assert.NoError(t, m.Release(ctx, 1, "crashed-holder"))
	locked, err := m.IsLocked(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, locked)
}

func TestMemory_ConcurrentAcquireSingleWinner(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	ttl := time.Minute

	const attempts = 32
	var wg sync.WaitGroup
	wins := make(chan string, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		holder := fmt.Sprintf("holder-%d", i)
		go func(h string) {
			defer wg.Done()
			acquired, err := m.Acquire(ctx, 7, h, ttl)
			assert.NoError(t, err)
			if acquired {
				wins <- h
			}
		}(holder)
	}
	wg.Wait()
	close(wins)

	assert.Equal(t, 1, len(wins))
}
