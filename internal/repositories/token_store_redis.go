package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const usedTokenKeyPrefix = "solarverify:used_token:"

// setNXer is the slice of *redis.Client the ledger needs.
type setNXer interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

type redisUsedTokenRepository struct {
	client setNXer
	now    func() time.Time
}

// NewRedisUsedTokenRepository stores redeemed token ids with a TTL matching
// the token's remaining lifetime, so keys vanish once the token has expired.
func NewRedisUsedTokenRepository(client *redis.Client) UsedTokenRepository {
	return &redisUsedTokenRepository{client: client, now: time.Now}
}

func (r *redisUsedTokenRepository) MarkUsed(ctx context.Context, jti, email string, expiresAt time.Time) (bool, error) {
	ttl := expiresAt.Sub(r.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	ok, err := r.client.SetNX(ctx, usedTokenKeyPrefix+jti, email, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("used token mark (redis): %w", err)
	}
	return ok, nil
}

// PurgeExpired is a no-op: redis expires the keys itself.
func (r *redisUsedTokenRepository) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

// OpenRedis parses a redis:// URL and pings the server.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
