package events

import (
	"time"

	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
)

type eventDTO struct {
	ID                string     `db:"id"`
	Title             string     `db:"title"`
	Subtitle          *string    `db:"subtitle"`
	DateDisplay       *string    `db:"date_display"`
	HeroImageURL      *string    `db:"hero_image_url"`
	ThumbnailImageURL *string    `db:"thumbnail_image_url"`
	Location          *string    `db:"location"`
	Notes             *string    `db:"notes"`
	StartDateTime     *time.Time `db:"start_date_time"`
	EndDateTime       *time.Time `db:"end_date_time"`
	IsActive          bool       `db:"is_active"`
	Recurring         bool       `db:"recurring"`
	SortOrder         int        `db:"sort_order"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

func mapToEvent(dto *eventDTO) *model.Event {
	return &model.Event{
		ID:          dto.ID,
		DateDisplay: database.StringValue(dto.DateDisplay),
		Order:       dto.SortOrder,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		EventCreate: model.EventCreate{
			Title:             dto.Title,
			Subtitle:          database.StringValue(dto.Subtitle),
			HeroImageURL:      database.StringValue(dto.HeroImageURL),
			ThumbnailImageURL: database.StringValue(dto.ThumbnailImageURL),
			Location:          database.StringValue(dto.Location),
			Notes:             database.StringValue(dto.Notes),
			StartDateTime:     dto.StartDateTime,
			EndDateTime:       dto.EndDateTime,
			IsActive:          dto.IsActive,
			Recurring:         dto.Recurring,
		},
	}
}
