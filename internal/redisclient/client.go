package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// SetIdempotencyKey maps an idempotency key to a created order ID with TTL
func (c *Client) SetIdempotencyKey(ctx context.Context, key string, orderID int64, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("idempotency:%s", key), orderID, ttl).Err()
}

// GetIdempotencyKey returns the order ID previously stored for an
// idempotency key, or 0 when the key is unknown.
func (c *Client) GetIdempotencyKey(ctx context.Context, key string) (int64, error) {
	orderID, err := c.rdb.Get(ctx, fmt.Sprintf("idempotency:%s", key)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// AcquireOrderLock acquires a short-lived lock scoped to one order,
// used to serialize total refreshes against the same order.
func (c *Client) AcquireOrderLock(ctx context.Context, orderID int64, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, fmt.Sprintf("lock:order:%d", orderID), "1", ttl).Result()
}

// ReleaseOrderLock releases an order lock
func (c *Client) ReleaseOrderLock(ctx context.Context, orderID int64) error {
	return c.rdb.Del(ctx, fmt.Sprintf("lock:order:%d", orderID)).Err()
}
