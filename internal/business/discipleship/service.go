package discipleship

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
	"go.uber.org/zap"
)

// Service manages the course > location > class hierarchy. A child is
// never written unless its parent exists and a parent is never removed
// while children remain.
type Service struct {
	db         database.PGX
	repository repository
	publisher  publisher
	logger     *zap.SugaredLogger
	now        func() time.Time
	newID      func() string
}

type repository interface {
	CreateCourse(ctx context.Context, q database.Queryable, course *model.Course) error
	GetCourses(ctx context.Context, q database.Queryable) ([]*model.Course, error)
	GetCourseByID(ctx context.Context, q database.Queryable, id string) (*model.Course, error)
	UpdateCourse(ctx context.Context, q database.Queryable, course *model.Course) error
	DeleteCourse(ctx context.Context, q database.Queryable, id string) error

	CreateLocation(ctx context.Context, q database.Queryable, location *model.Location) error
	GetLocationsByCourse(ctx context.Context, q database.Queryable, courseID string) ([]*model.Location, error)
	GetLocationByID(ctx context.Context, q database.Queryable, courseID, id string) (*model.Location, error)
	UpdateLocation(ctx context.Context, q database.Queryable, location *model.Location) error
	DeleteLocation(ctx context.Context, q database.Queryable, courseID, id string) error

	CreateClass(ctx context.Context, q database.Queryable, class *model.Class) error
	GetClassesByLocation(ctx context.Context, q database.Queryable, courseID, locationID string) ([]*model.Class, error)
	GetClassByID(ctx context.Context, q database.Queryable, courseID, locationID, id string) (*model.Class, error)
	UpdateClass(ctx context.Context, q database.Queryable, class *model.Class) error
	DeleteClass(ctx context.Context, q database.Queryable, courseID, locationID, id string) error
	DeleteClasses(ctx context.Context, q database.Queryable, courseID, locationID string, ids []string) (int64, error)
}

type publisher interface {
	Publish(ctx context.Context, topic string) error
}

func NewService(
	db database.PGX,
	repo repository,
	publisher publisher,
	logger *zap.SugaredLogger,
	clock func() time.Time,
) *Service {
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		db:         db,
		repository: repo,
		publisher:  publisher,
		logger:     logger,
		now:        clock,
		newID:      uuid.NewString,
	}
}

func (s *Service) notify(ctx context.Context, topics ...string) {
	for _, topic := range topics {
		if err := s.publisher.Publish(ctx, topic); err != nil {
			s.logger.Errorw("publish change", "topic", topic, "err", err)
		}
	}
}
