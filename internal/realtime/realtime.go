// Package realtime notifies subscribers that a collection changed. A
// notification carries no payload, subscribers re-read the collection.
package realtime

import (
	"context"
	"fmt"
	"sync"
)

const (
	TopicEvents  = "events"
	TopicCourses = "courses"
)

func LocationsTopic(courseID string) string {
	return fmt.Sprintf("courses/%s/locations", courseID)
}

func ClassesTopic(courseID, locationID string) string {
	return fmt.Sprintf("courses/%s/locations/%s/classes", courseID, locationID)
}

type Broker interface {
	Publish(ctx context.Context, topic string) error
	// Subscribe registers for changes of topic. The subscription is released
	// by Close or when ctx is done, whichever comes first.
	Subscribe(ctx context.Context, topic string) (*Subscription, error)
}

// Subscription delivers change signals. Signals are coalesced: a slow reader
// sees at most one pending signal.
type Subscription struct {
	mu      sync.Mutex
	c       chan struct{}
	done    chan struct{}
	closed  bool
	release func()
}

func newSubscription(release func()) *Subscription {
	return &Subscription{
		c:       make(chan struct{}, 1),
		done:    make(chan struct{}),
		release: release,
	}
}

// C is closed once the subscription is closed.
func (s *Subscription) C() <-chan struct{} {
	return s.c
}

func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.c)
	close(s.done)
	s.mu.Unlock()

	if s.release != nil {
		s.release()
	}
}

func (s *Subscription) signal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	select {
	case s.c <- struct{}{}:
	default:
	}
}

// closeOnDone ties the subscription lifetime to ctx.
func (s *Subscription) closeOnDone(ctx context.Context) {
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()
}
