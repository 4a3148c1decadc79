package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func receive(t *testing.T, sub *Subscription) bool {
	t.Helper()
	select {
	case _, ok := <-sub.C():
		return ok
	case <-time.After(time.Second):
		t.Fatal("no signal received")
		return false
	}
}

func TestTopics(t *testing.T) {
	assert.Equal(t, "courses/c1/locations", LocationsTopic("c1"))
	assert.Equal(t, "courses/c1/locations/l1/classes", ClassesTopic("c1", "l1"))
}

func TestMemoryBroker_PublishReachesTopicSubscribers(t *testing.T) {
	b := NewMemoryBroker()
	ctx := context.Background()

	events, err := b.Subscribe(ctx, TopicEvents)
	require.NoError(t, err)
	defer events.Close()

	courses, err := b.Subscribe(ctx, TopicCourses)
	require.NoError(t, err)
	defer courses.Close()

	require.NoError(t, b.Publish(ctx, TopicEvents))
	assert.True(t, receive(t, events))

	select {
	case <-courses.C():
		t.Fatal("courses subscriber must not see events changes")
	default:
	}
}

func TestMemoryBroker_SignalsCoalesce(t *testing.T) {
	b := NewMemoryBroker()
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, TopicEvents)
	require.NoError(t, err)
	defer sub.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, b.Publish(ctx, TopicEvents))
	}

	assert.True(t, receive(t, sub))
	select {
	case <-sub.C():
		t.Fatal("expected a single pending signal")
	default:
	}
}

func TestMemoryBroker_CloseReleases(t *testing.T) {
	b := NewMemoryBroker()

	sub, err := b.Subscribe(context.Background(), TopicCourses)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Subscribers(TopicCourses))

	sub.Close()
	sub.Close()

	assert.Equal(t, 0, b.Subscribers(TopicCourses))
	_, ok := <-sub.C()
	assert.False(t, ok)

	require.NoError(t, b.Publish(context.Background(), TopicCourses))
}

func TestMemoryBroker_ContextEndReleases(t *testing.T) {
	b := NewMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := b.Subscribe(ctx, ClassesTopic("c1", "l1"))
	require.NoError(t, err)

	cancel()

	assert.False(t, receive(t, sub))
	assert.Eventually(t, func() bool {
		return b.Subscribers(ClassesTopic("c1", "l1")) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryBroker_SubscribeWithDoneContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryBroker().Subscribe(ctx, TopicEvents)
	assert.ErrorIs(t, err, context.Canceled)
}
