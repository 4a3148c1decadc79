package events

import (
	"context"
	"fmt"

	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
)

func (*Repository) CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) error {
	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"id",
			"title",
			"subtitle",
			"date_display",
			"hero_image_url",
			"thumbnail_image_url",
			"location",
			"notes",
			"start_date_time",
			"end_date_time",
			"is_active",
			"recurring",
			"sort_order",
			"created_at",
			"updated_at",
		).
		Values(
			event.ID,
			event.Title,
			database.NullString(event.Subtitle),
			database.NullString(event.DateDisplay),
			database.NullString(event.HeroImageURL),
			database.NullString(event.ThumbnailImageURL),
			database.NullString(event.Location),
			database.NullString(event.Notes),
			event.StartDateTime,
			event.EndDateTime,
			event.IsActive,
			event.Recurring,
			event.Order,
			event.CreatedAt,
			event.UpdatedAt,
		)

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
