package realtime

import (
	"context"
	"sync"
)

// MemoryBroker fans out notifications inside one process.
type MemoryBroker struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[*Subscription]struct{})}
}

func (b *MemoryBroker) Publish(_ context.Context, topic string) error {
	b.publish(topic)
	return nil
}

func (b *MemoryBroker) publish(topic string) {
	b.mu.Lock()
	subs := make([]*Subscription, 0, len(b.subs[topic]))
	for s := range b.subs[topic] {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.signal()
	}
}

func (b *MemoryBroker) Subscribe(ctx context.Context, topic string) (*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sub *Subscription
	sub = newSubscription(func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		delete(b.subs[topic], sub)
		if len(b.subs[topic]) == 0 {
			delete(b.subs, topic)
		}
	})

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[*Subscription]struct{})
	}
	b.subs[topic][sub] = struct{}{}
	b.mu.Unlock()

	sub.closeOnDone(ctx)

	return sub, nil
}

// Subscribers counts live subscriptions of topic.
func (b *MemoryBroker) Subscribers(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
