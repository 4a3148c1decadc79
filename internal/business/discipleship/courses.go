package discipleship

import (
	"context"
	"fmt"

	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/realtime"
)

// GetCourses lists courses newest first.
func (s *Service) GetCourses(ctx context.Context) ([]*model.Course, error) {
	courses, err := s.repository.GetCourses(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("repository.GetCourses: %w", err)
	}
	return courses, nil
}

func (s *Service) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.repository.GetCourseByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("repository.GetCourseByID: %w", err)
	}
	return course, nil
}

func (s *Service) CreateCourse(ctx context.Context, info *model.CourseCreate) (*model.Course, error) {
	now := s.now()
	course := &model.Course{
		ID:           s.newID(),
		CreatedAt:    now,
		UpdatedAt:    now,
		CourseCreate: *info,
	}

	if err := s.repository.CreateCourse(ctx, s.db, course); err != nil {
		return nil, fmt.Errorf("repository.CreateCourse: %w", err)
	}

	s.notify(ctx, realtime.TopicCourses)
	return course, nil
}

func (s *Service) UpdateCourse(ctx context.Context, id string, info *model.CourseCreate) (*model.Course, error) {
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	course.CourseCreate = *info
	course.UpdatedAt = s.now()

	if err := s.repository.UpdateCourse(ctx, s.db, course); err != nil {
		return nil, fmt.Errorf("repository.UpdateCourse: %w", err)
	}

	s.notify(ctx, realtime.TopicCourses)
	return course, nil
}

// DeleteCourse removes the course with all of its locations and classes.
// Children go first, one location at a time, inside a single transaction.
func (s *Service) DeleteCourse(ctx context.Context, id string) error {
	var locationIDs []string

	err := database.InTx(ctx, s.db, func(tx database.Tx) error {
		if _, err := s.repository.GetCourseByID(ctx, tx, id); err != nil {
			return fmt.Errorf("repository.GetCourseByID: %w", err)
		}

		locations, err := s.repository.GetLocationsByCourse(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("repository.GetLocationsByCourse: %w", err)
		}

		for _, l := range locations {
			if err := s.deleteLocation(ctx, tx, id, l.ID); err != nil {
				return err
			}
			locationIDs = append(locationIDs, l.ID)
		}

		if err := s.repository.DeleteCourse(ctx, tx, id); err != nil {
			return fmt.Errorf("repository.DeleteCourse: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	topics := []string{realtime.TopicCourses, realtime.LocationsTopic(id)}
	for _, l := range locationIDs {
		topics = append(topics, realtime.ClassesTopic(id, l))
	}
	s.notify(ctx, topics...)

	return nil
}
