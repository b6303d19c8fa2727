package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gearshare-booking-engine/internal/logger"
)

// releaseScript deletes the key only when the caller still holds it, so
// a straggling process cannot release a lock that was reclaimed from it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker backed by SET NX with a server-side TTL, for
// deployments where multiple engine instances share one reservation set.
// Staleness is handled by key expiry; a reclaimed lock simply appears
// unlocked to the next acquirer.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func lockKey(itemID int32) string { return fmt.Sprintf("itemlock:%d", itemID) }

func (r *Redis) Acquire(ctx context.Context, itemID int32, holderID string, ttl time.Duration) (bool, error) {
	ok, err := r.rdb.SetNX(ctx, lockKey(itemID), holderID, ttl).Result()
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}
	holder, err := r.rdb.Get(ctx, lockKey(itemID)).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; retry once.
		return r.rdb.SetNX(ctx, lockKey(itemID), holderID, ttl).Result()
	}
	if err != nil {
		return false, err
	}
	if holder != holderID {
		return false, nil
	}
	// Re-acquire by the same holder refreshes the TTL.
	if err := r.rdb.Set(ctx, lockKey(itemID), holderID, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Release(ctx context.Context, itemID int32, holderID string) error {
	deleted, err := releaseScript.Run(ctx, r.rdb, []string{lockKey(itemID)}, holderID).Int()
	if err != nil {
		return err
	}
	if deleted == 0 {
		logger.Warn("Ignoring release by non-holder", "item_id", itemID, "releaser", holderID)
	}
	return nil
}

func (r *Redis) IsLocked(ctx context.Context, itemID int32) (bool, error) {
	n, err := r.rdb.Exists(ctx, lockKey(itemID)).Result()
	return n > 0, err
}
