package events

import (
	"context"
	"fmt"

	"github.com/tinlanh/church-admin/internal/dateformat"
	"github.com/tinlanh/church-admin/internal/model"
)

// UpdateEvent overwrites the editable fields. Order and creation time are
// kept.
func (s *Service) UpdateEvent(ctx context.Context, id string, info *model.EventCreate) (*model.Event, error) {
	if err := checkRange(info.StartDateTime, info.EndDateTime); err != nil {
		return nil, err
	}

	event, err := s.eventsRepository.GetEventByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	event.EventCreate = *info
	event.DateDisplay = dateformat.EventDateVN(info.StartDateTime, info.EndDateTime, s.projector.Location())
	event.UpdatedAt = s.projector.Now()

	if err := s.eventsRepository.UpdateEvent(ctx, s.db, event); err != nil {
		return nil, fmt.Errorf("eventsRepository.UpdateEvent: %w", err)
	}

	s.notify(ctx)
	return event, nil
}
