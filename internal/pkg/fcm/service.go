package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	client *messaging.Client
}

func NewService(ctx context.Context, app *firebase.App) (*Service, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining messaging client: %w", err)
	}

	return &Service{client: client}, nil
}

// Message goes to a topic when Topic is set, to a single device otherwise.
type Message struct {
	Topic string
	Token string
	Title string
	Body  string
	Data  map[string]string
}

func (m *Message) toMessaging() *messaging.Message {
	res := &messaging.Message{
		Data:  m.Data,
		Topic: m.Topic,
		Token: m.Token,
	}

	if m.Title != "" || m.Body != "" {
		res.Notification = &messaging.Notification{
			Title: m.Title,
			Body:  m.Body,
		}
	}

	return res
}

func (s *Service) SendMessage(ctx context.Context, m *Message) error {
	if _, err := s.client.Send(ctx, m.toMessaging()); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

const batchSize = 500

// SendMessageBatch sends ms in chunks of batchSize concurrently.
func (s *Service) SendMessageBatch(ctx context.Context, ms []*Message) error {
	messages := make([]*messaging.Message, len(ms))
	for i, m := range ms {
		messages[i] = m.toMessaging()
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, chunk := range Chunks(messages, batchSize) {
		g.Go(func() error {
			resp, err := s.client.SendAll(ctx, chunk)
			if err != nil {
				return fmt.Errorf("send message: %w", err)
			}
			if resp.FailureCount > 0 {
				return fmt.Errorf("send message: %d of %d failed", resp.FailureCount, len(chunk))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return nil
}

// Chunks splits items into consecutive slices of at most size elements.
func Chunks[T any](items []T, size int) [][]T {
	var res [][]T
	for from := 0; from < len(items); from += size {
		to := from + size
		if to > len(items) {
			to = len(items)
		}
		res = append(res, items[from:to])
	}
	return res
}
