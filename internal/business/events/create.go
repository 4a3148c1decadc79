package events

import (
	"context"
	"fmt"

	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/dateformat"
	"github.com/tinlanh/church-admin/internal/model"
)

// CreateEvent stores a new event at the end of the list. The display
// string is always derived here, never taken from the caller.
func (s *Service) CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error) {
	if err := checkRange(info.StartDateTime, info.EndDateTime); err != nil {
		return nil, err
	}

	now := s.projector.Now()
	event := &model.Event{
		ID:          s.newID(),
		DateDisplay: dateformat.EventDateVN(info.StartDateTime, info.EndDateTime, s.projector.Location()),
		CreatedAt:   now,
		UpdatedAt:   now,
		EventCreate: *info,
	}

	err := database.InTx(ctx, s.db, func(tx database.Tx) error {
		maxOrder, err := s.eventsRepository.GetMaxOrder(ctx, tx)
		if err != nil {
			return fmt.Errorf("eventsRepository.GetMaxOrder: %w", err)
		}
		event.Order = maxOrder + 1

		if err := s.eventsRepository.CreateEvent(ctx, tx, event); err != nil {
			return fmt.Errorf("eventsRepository.CreateEvent: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx)
	return event, nil
}
