package events

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
)

func (*Repository) UpdateEvent(ctx context.Context, q database.Queryable, event *model.Event) error {
	qb := database.PSQL.
		Update(database.EventsTable).
		SetMap(map[string]interface{}{
			"title":               event.Title,
			"subtitle":            database.NullString(event.Subtitle),
			"date_display":        database.NullString(event.DateDisplay),
			"hero_image_url":      database.NullString(event.HeroImageURL),
			"thumbnail_image_url": database.NullString(event.ThumbnailImageURL),
			"location":            database.NullString(event.Location),
			"notes":               database.NullString(event.Notes),
			"start_date_time":     event.StartDateTime,
			"end_date_time":       event.EndDateTime,
			"is_active":           event.IsActive,
			"recurring":           event.Recurring,
			"updated_at":          event.UpdatedAt,
		}).
		Where(sq.Eq{"id": event.ID})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}

func (*Repository) SetEventOrder(ctx context.Context, q database.Queryable, id string, order int, updatedAt time.Time) error {
	qb := database.PSQL.
		Update(database.EventsTable).
		Set("sort_order", order).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}
