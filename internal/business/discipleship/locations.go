package discipleship

import (
	"context"
	"fmt"

	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/realtime"
)

// GetLocations lists the locations of a course oldest first.
func (s *Service) GetLocations(ctx context.Context, courseID string) ([]*model.Location, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	locations, err := s.repository.GetLocationsByCourse(ctx, s.db, courseID)
	if err != nil {
		return nil, fmt.Errorf("repository.GetLocationsByCourse: %w", err)
	}
	return locations, nil
}

func (s *Service) GetLocation(ctx context.Context, courseID, id string) (*model.Location, error) {
	location, err := s.repository.GetLocationByID(ctx, s.db, courseID, id)
	if err != nil {
		return nil, fmt.Errorf("repository.GetLocationByID: %w", err)
	}
	return location, nil
}

func (s *Service) CreateLocation(ctx context.Context, courseID string, info *model.LocationCreate) (*model.Location, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	now := s.now()
	location := &model.Location{
		ID:             s.newID(),
		CourseID:       courseID,
		CreatedAt:      now,
		UpdatedAt:      now,
		LocationCreate: *info,
	}

	if err := s.repository.CreateLocation(ctx, s.db, location); err != nil {
		return nil, fmt.Errorf("repository.CreateLocation: %w", err)
	}

	s.notify(ctx, realtime.LocationsTopic(courseID))
	return location, nil
}

func (s *Service) UpdateLocation(ctx context.Context, courseID, id string, info *model.LocationCreate) (*model.Location, error) {
	location, err := s.GetLocation(ctx, courseID, id)
	if err != nil {
		return nil, err
	}

	location.LocationCreate = *info
	location.UpdatedAt = s.now()

	if err := s.repository.UpdateLocation(ctx, s.db, location); err != nil {
		return nil, fmt.Errorf("repository.UpdateLocation: %w", err)
	}

	s.notify(ctx, realtime.LocationsTopic(courseID))
	return location, nil
}

// DeleteLocation removes the location and its classes in one transaction.
func (s *Service) DeleteLocation(ctx context.Context, courseID, id string) error {
	err := database.InTx(ctx, s.db, func(tx database.Tx) error {
		if _, err := s.repository.GetLocationByID(ctx, tx, courseID, id); err != nil {
			return fmt.Errorf("repository.GetLocationByID: %w", err)
		}
		return s.deleteLocation(ctx, tx, courseID, id)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, realtime.LocationsTopic(courseID), realtime.ClassesTopic(courseID, id))
	return nil
}

func (s *Service) deleteLocation(ctx context.Context, q database.Queryable, courseID, id string) error {
	if _, err := s.repository.DeleteClasses(ctx, q, courseID, id, nil); err != nil {
		return fmt.Errorf("repository.DeleteClasses: %w", err)
	}

	if err := s.repository.DeleteLocation(ctx, q, courseID, id); err != nil {
		return fmt.Errorf("repository.DeleteLocation: %w", err)
	}

	return nil
}
