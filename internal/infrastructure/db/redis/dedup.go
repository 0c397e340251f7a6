package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const syncGuardTTL = 5 * time.Minute

// SyncGuard prevents concurrent reconciler sweeps from pushing the same
// captured order to the remote backend twice. Key format: sync:<order_id>
type SyncGuard struct {
	client *redis.Client
}

// NewSyncGuard creates a SyncGuard wrapping the given Redis client.
func NewSyncGuard(client *redis.Client) *SyncGuard {
	return &SyncGuard{client: client}
}

// Acquire attempts to claim the order for this push. It returns false when
// another push already holds the claim.
func (g *SyncGuard) Acquire(ctx context.Context, orderID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(orderID), "1", syncGuardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("sync guard acquire: %w", err)
	}
	return ok, nil
}

// Release drops the claim so a failed push can be retried on the next sweep.
func (g *SyncGuard) Release(ctx context.Context, orderID string) error {
	return g.client.Del(ctx, g.key(orderID)).Err()
}

func (g *SyncGuard) key(orderID string) string {
	return fmt.Sprintf("sync:%s", orderID)
}
