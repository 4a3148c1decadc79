package events

import (
	"context"
	"fmt"

	"github.com/tinlanh/church-admin/internal/dateformat"
	"github.com/tinlanh/church-admin/internal/model"
)

// GetEventByID returns the event as stored, with the recurring anchor
// untouched.
func (s *Service) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.eventsRepository.GetEventByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	return event, nil
}

// GetEvents returns stored events ordered by their position.
func (s *Service) GetEvents(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error) {
	events, err := s.eventsRepository.GetEvents(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEvents: %w", err)
	}

	return events, nil
}

// GetOccurrence is GetEventByID as readers see it, see Occurrence.
func (s *Service) GetOccurrence(ctx context.Context, id string, lang dateformat.Language) (*model.Event, error) {
	event, err := s.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.Occurrence(event, lang), nil
}

// GetOccurrences is GetEvents as readers see it, see Occurrence.
func (s *Service) GetOccurrences(ctx context.Context, filter model.EventsFilter, lang dateformat.Language) ([]*model.Event, error) {
	events, err := s.GetEvents(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]*model.Event, len(events))
	for i, e := range events {
		res[i] = s.Occurrence(e, lang)
	}

	return res, nil
}

// Occurrence returns a copy of event with recurring times moved to the next
// occurrence and the display string rendered in lang for those times.
func (s *Service) Occurrence(event *model.Event, lang dateformat.Language) *model.Event {
	res := *event

	if event.StartDateTime != nil {
		start := s.projector.NextOccurrence(*event.StartDateTime, event.Recurring)
		res.StartDateTime = &start
		res.EndDateTime = s.projector.EndDateTime(event.StartDateTime, event.EndDateTime, event.Recurring)
	}

	res.DateDisplay = dateformat.New(lang, s.projector.Location()).EventDate(res.StartDateTime, res.EndDateTime)

	return &res
}
