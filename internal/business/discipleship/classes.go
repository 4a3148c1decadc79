package discipleship

import (
	"context"
	"fmt"

	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/realtime"
)

func checkClass(info *model.ClassCreate) error {
	if info.StartTime.IsZero() || info.EndTime.IsZero() {
		return fmt.Errorf("start and end time: %w", model.ErrInvalidInput)
	}
	if !info.EndTime.After(info.StartTime) {
		return model.ErrEndBeforeStart
	}
	return nil
}

// GetClasses lists the classes of a location by start time.
func (s *Service) GetClasses(ctx context.Context, courseID, locationID string) ([]*model.Class, error) {
	if _, err := s.GetLocation(ctx, courseID, locationID); err != nil {
		return nil, err
	}

	classes, err := s.repository.GetClassesByLocation(ctx, s.db, courseID, locationID)
	if err != nil {
		return nil, fmt.Errorf("repository.GetClassesByLocation: %w", err)
	}
	return classes, nil
}

func (s *Service) GetClass(ctx context.Context, courseID, locationID, id string) (*model.Class, error) {
	class, err := s.repository.GetClassByID(ctx, s.db, courseID, locationID, id)
	if err != nil {
		return nil, fmt.Errorf("repository.GetClassByID: %w", err)
	}
	return class, nil
}

func (s *Service) CreateClass(ctx context.Context, courseID, locationID string, info *model.ClassCreate) (*model.Class, error) {
	if err := checkClass(info); err != nil {
		return nil, err
	}
	if _, err := s.GetLocation(ctx, courseID, locationID); err != nil {
		return nil, err
	}

	now := s.now()
	class := &model.Class{
		ID:          s.newID(),
		CourseID:    courseID,
		LocationID:  locationID,
		CreatedAt:   now,
		UpdatedAt:   now,
		ClassCreate: *info,
	}

	if err := s.repository.CreateClass(ctx, s.db, class); err != nil {
		return nil, fmt.Errorf("repository.CreateClass: %w", err)
	}

	s.notify(ctx, realtime.ClassesTopic(courseID, locationID))
	return class, nil
}

func (s *Service) UpdateClass(ctx context.Context, courseID, locationID, id string, info *model.ClassCreate) (*model.Class, error) {
	if err := checkClass(info); err != nil {
		return nil, err
	}

	class, err := s.GetClass(ctx, courseID, locationID, id)
	if err != nil {
		return nil, err
	}

	class.ClassCreate = *info
	class.UpdatedAt = s.now()

	if err := s.repository.UpdateClass(ctx, s.db, class); err != nil {
		return nil, fmt.Errorf("repository.UpdateClass: %w", err)
	}

	s.notify(ctx, realtime.ClassesTopic(courseID, locationID))
	return class, nil
}

func (s *Service) DeleteClass(ctx context.Context, courseID, locationID, id string) error {
	if err := s.repository.DeleteClass(ctx, s.db, courseID, locationID, id); err != nil {
		return fmt.Errorf("repository.DeleteClass: %w", err)
	}

	s.notify(ctx, realtime.ClassesTopic(courseID, locationID))
	return nil
}

// DeleteClasses removes the given classes of one location in a single
// statement. An empty ids slice is a no-op.
func (s *Service) DeleteClasses(ctx context.Context, courseID, locationID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	if _, err := s.GetLocation(ctx, courseID, locationID); err != nil {
		return 0, err
	}

	n, err := s.repository.DeleteClasses(ctx, s.db, courseID, locationID, ids)
	if err != nil {
		return 0, fmt.Errorf("repository.DeleteClasses: %w", err)
	}

	s.notify(ctx, realtime.ClassesTopic(courseID, locationID))
	return n, nil
}
