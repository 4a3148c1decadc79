package realtime

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

const (
	channelPrefix  = "church-admin:changes:"
	reconnectDelay = time.Second
)

// RedisBroker publishes through Redis pub/sub so every API instance sees
// writes made by the others. Local delivery goes through a MemoryBroker fed
// by Run.
type RedisBroker struct {
	pool   *redis.Pool
	local  *MemoryBroker
	logger *zap.SugaredLogger
}

func NewRedisBroker(pool *redis.Pool, logger *zap.SugaredLogger) *RedisBroker {
	return &RedisBroker{
		pool:   pool,
		local:  NewMemoryBroker(),
		logger: logger,
	}
}

func (b *RedisBroker) Publish(ctx context.Context, topic string) error {
	conn, err := b.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get redis connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Do("PUBLISH", channelPrefix+topic, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, topic string) (*Subscription, error) {
	return b.local.Subscribe(ctx, topic)
}

// Run relays Redis messages to local subscribers until ctx is done,
// reconnecting after connection errors.
func (b *RedisBroker) Run(ctx context.Context) {
	for {
		err := b.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		b.logger.Errorw("realtime listener stopped", "err", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (b *RedisBroker) listen(ctx context.Context) error {
	conn, err := b.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get redis connection: %w", err)
	}

	psc := redis.PubSubConn{Conn: conn}
	defer psc.Close()

	if err := psc.PSubscribe(channelPrefix + "*"); err != nil {
		return fmt.Errorf("psubscribe: %w", err)
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = psc.PUnsubscribe()
		case <-stop:
		}
	}()

	for {
		switch v := psc.Receive().(type) {
		case redis.Message:
			b.local.publish(strings.TrimPrefix(v.Channel, channelPrefix))
		case redis.Subscription:
			if v.Kind == "punsubscribe" && v.Count == 0 {
				return nil
			}
		case error:
			if errors.Is(v, redis.ErrNil) {
				continue
			}
			return v
		}
	}
}
