package views

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	id "talentnet/pkg/domain"
)

const seenKeyPrefix = "views:seen:"

// RedisGuard claims a (target, viewer key) pair for the idempotency window
// with SET NX, letting repeat views skip the database. The database check
// stays authoritative.
type RedisGuard struct {
	client *redis.Client
}

func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client}
}

func seenKey(targetUserID id.UserID, viewerKey string) string {
	return seenKeyPrefix + targetUserID.String() + ":" + viewerKey
}

func (g *RedisGuard) Acquire(ctx context.Context, targetUserID id.UserID, viewerKey string, window time.Duration) (bool, error) {
	return g.client.SetNX(ctx, seenKey(targetUserID, viewerKey), "1", window).Result()
}

func (g *RedisGuard) Release(ctx context.Context, targetUserID id.UserID, viewerKey string) error {
	return g.client.Del(ctx, seenKey(targetUserID, viewerKey)).Err()
}
