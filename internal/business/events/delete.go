package events

import (
	"context"
	"fmt"

	"github.com/tinlanh/church-admin/internal/database"
)

func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if err := s.eventsRepository.DeleteEvent(ctx, s.db, id); err != nil {
		return fmt.Errorf("eventsRepository.DeleteEvent: %w", err)
	}

	s.notify(ctx)
	return nil
}

// ReorderEvents sets each event's order to its index in ids, all or
// nothing.
func (s *Service) ReorderEvents(ctx context.Context, ids []string) error {
	now := s.projector.Now()

	err := database.InTx(ctx, s.db, func(tx database.Tx) error {
		for i, id := range ids {
			if err := s.eventsRepository.SetEventOrder(ctx, tx, id, i, now); err != nil {
				return fmt.Errorf("eventsRepository.SetEventOrder %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notify(ctx)
	return nil
}
