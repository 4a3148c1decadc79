package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
)

const adminPrefix = "admin:"

// AdminCache remembers admin lookups by lower-cased e-mail for a while.
type AdminCache struct {
	pool *redis.Pool
	ttl  time.Duration
}

func NewAdminCache(pool *redis.Pool, ttl time.Duration) *AdminCache {
	return &AdminCache{pool: pool, ttl: ttl}
}

func adminKey(email string) string {
	return adminPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Get reports the cached status and whether there was a cached entry.
func (c *AdminCache) Get(ctx context.Context, email string) (isAdmin, found bool, err error) {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return false, false, fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	isAdmin, err = redis.Bool(conn.Do("GET", adminKey(email)))
	if errors.Is(err, redis.ErrNil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("GET: %w", err)
	}

	return isAdmin, true, nil
}

func (c *AdminCache) Set(ctx context.Context, email string, isAdmin bool) error {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Do("SET", adminKey(email), isAdmin, "PX", c.ttl.Milliseconds()); err != nil {
		return fmt.Errorf("SET: %w", err)
	}

	return nil
}
