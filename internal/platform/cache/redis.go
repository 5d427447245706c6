package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNoToken = errors.New("reset token not found or expired")

type Cache struct {
	client *redis.Client
}

func New(addr, password string, db int) *Cache {
	return &Cache{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

const (
	resetPrefix      = "reset:"
	pendingCountsKey = "approvals:pending_counts"
	countsTTL        = 30 * time.Second
)

func (c *Cache) SaveResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	return c.client.Set(ctx, resetPrefix+token, userID, ttl).Err()
}

// ConsumeResetToken deletes the token as it reads it, so each token works
// exactly once.
func (c *Cache) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	userID, err := c.client.GetDel(ctx, resetPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// SetPendingCounts caches the per-kind pending totals shown on the
// approvals badge. The short TTL keeps the badge close to live without a
// query per page load.
func (c *Cache) SetPendingCounts(ctx context.Context, counts map[string]int) error {
	if len(counts) == 0 {
		return c.client.Del(ctx, pendingCountsKey).Err()
	}
	fields := make(map[string]string, len(counts))
	for kind, n := range counts {
		fields[kind] = strconv.Itoa(n)
	}
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, pendingCountsKey)
	pipe.HSet(ctx, pendingCountsKey, fields)
	pipe.Expire(ctx, pendingCountsKey, countsTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *Cache) PendingCounts(ctx context.Context) (map[string]int, error) {
	fields, err := c.client.HGetAll(ctx, pendingCountsKey).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(fields))
	for kind, raw := range fields {
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		out[kind] = n
	}
	return out, nil
}
