package redis

import (
	"context"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

// NewRedisPool accepts either host:port or a redis:// URL.
func NewRedisPool(url string, logger *zap.SugaredLogger) *redis.Pool {
	pool := &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 5 * time.Minute,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			if strings.Contains(url, "://") {
				return redis.DialURLContext(ctx, url)
			}
			return redis.DialContext(ctx, "tcp", url)
		},
	}

	closer.Bind(func() {
		if err := pool.Close(); err != nil {
			logger.Errorw("Failed closing redis pool", "err", err)
		}
	})

	return pool
}
