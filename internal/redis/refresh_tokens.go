package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/tinlanh/church-admin/internal/model"
)

const sessionPrefix = "session:"

// RefreshTokenRepository keeps refresh tokens as keys that expire on their
// own, mapping each to the e-mail it was issued for.
type RefreshTokenRepository struct {
	pool *redis.Pool
	ttl  time.Duration
}

func NewRefreshTokenRepository(pool *redis.Pool, ttl time.Duration) *RefreshTokenRepository {
	return &RefreshTokenRepository{pool: pool, ttl: ttl}
}

func (r *RefreshTokenRepository) Add(ctx context.Context, session, email string) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	reply, err := redis.String(conn.Do("SET", sessionPrefix+session, email, "NX", "PX", r.ttl.Milliseconds()))
	if errors.Is(err, redis.ErrNil) {
		return model.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("SET: %w", err)
	}
	if reply != "OK" {
		return fmt.Errorf("SET: unexpected reply %q", reply)
	}

	return nil
}

func (r *RefreshTokenRepository) Get(ctx context.Context, session string) (string, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return "", fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	email, err := redis.String(conn.Do("GET", sessionPrefix+session))
	if errors.Is(err, redis.ErrNil) {
		return "", model.ErrNoRecord
	}
	if err != nil {
		return "", fmt.Errorf("GET: %w", err)
	}

	return email, nil
}

// Refresh moves the session to a new token and restarts its lifetime. A
// taken new token yields ErrAlreadyExists and leaves the old one in place.
func (r *RefreshTokenRepository) Refresh(ctx context.Context, old, new string) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	moved, err := redis.Int(conn.Do("RENAMENX", sessionPrefix+old, sessionPrefix+new))
	if err != nil {
		var redisErr redis.Error
		if errors.As(err, &redisErr) {
			return model.ErrNoRecord
		}
		return fmt.Errorf("RENAMENX: %w", err)
	}
	if moved == 0 {
		return model.ErrAlreadyExists
	}

	if _, err := conn.Do("PEXPIRE", sessionPrefix+new, r.ttl.Milliseconds()); err != nil {
		return fmt.Errorf("PEXPIRE: %w", err)
	}

	return nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, session string) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Do("DEL", sessionPrefix+session); err != nil {
		return fmt.Errorf("DEL: %w", err)
	}

	return nil
}
