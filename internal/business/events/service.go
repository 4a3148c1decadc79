package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/realtime"
	"github.com/tinlanh/church-admin/internal/recurrence"
	"go.uber.org/zap"
)

type Service struct {
	db               database.PGX
	eventsRepository eventsRepository
	projector        *recurrence.Projector
	publisher        publisher
	logger           *zap.SugaredLogger
	newID            func() string
}

type eventsRepository interface {
	CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) error
	GetEventByID(ctx context.Context, q database.Queryable, id string) (*model.Event, error)
	GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error)
	GetMaxOrder(ctx context.Context, q database.Queryable) (int, error)
	UpdateEvent(ctx context.Context, q database.Queryable, event *model.Event) error
	SetEventOrder(ctx context.Context, q database.Queryable, id string, order int, updatedAt time.Time) error
	DeleteEvent(ctx context.Context, q database.Queryable, id string) error
}

type publisher interface {
	Publish(ctx context.Context, topic string) error
}

func NewService(
	db database.PGX,
	repo eventsRepository,
	projector *recurrence.Projector,
	publisher publisher,
	logger *zap.SugaredLogger,
) *Service {
	return &Service{
		db:               db,
		eventsRepository: repo,
		projector:        projector,
		publisher:        publisher,
		logger:           logger,
		newID:            uuid.NewString,
	}
}

// Projector exposes the clock and zone the service projects with.
func (s *Service) Projector() *recurrence.Projector {
	return s.projector
}

func (s *Service) notify(ctx context.Context) {
	if err := s.publisher.Publish(ctx, realtime.TopicEvents); err != nil {
		s.logger.Errorw("publish events change", "err", err)
	}
}

func checkRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return model.ErrEndBeforeStart
	}
	return nil
}
