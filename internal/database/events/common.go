package events

import "github.com/tinlanh/church-admin/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
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
	From(database.EventsTable)
