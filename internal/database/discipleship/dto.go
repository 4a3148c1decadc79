package discipleship

import (
	"time"

	"github.com/tinlanh/church-admin/internal/database"
	"github.com/tinlanh/church-admin/internal/model"
)

type courseDTO struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type locationDTO struct {
	ID                string    `db:"id"`
	CourseID          string    `db:"course_id"`
	Name              string    `db:"name"`
	ThumbnailImageURL *string   `db:"thumbnail_image_url"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

type classDTO struct {
	ID         string    `db:"id"`
	CourseID   string    `db:"course_id"`
	LocationID string    `db:"location_id"`
	StartTime  time.Time `db:"start_time"`
	EndTime    time.Time `db:"end_time"`
	Contact    *string   `db:"contact"`
	Passage    *string   `db:"passage"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func mapToCourse(dto *courseDTO) *model.Course {
	return &model.Course{
		ID:        dto.ID,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		CourseCreate: model.CourseCreate{
			Name:        dto.Name,
			Description: database.StringValue(dto.Description),
		},
	}
}

func mapToLocation(dto *locationDTO) *model.Location {
	return &model.Location{
		ID:        dto.ID,
		CourseID:  dto.CourseID,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		LocationCreate: model.LocationCreate{
			Name:              dto.Name,
			ThumbnailImageURL: database.StringValue(dto.ThumbnailImageURL),
		},
	}
}

func mapToClass(dto *classDTO) *model.Class {
	return &model.Class{
		ID:         dto.ID,
		CourseID:   dto.CourseID,
		LocationID: dto.LocationID,
		CreatedAt:  dto.CreatedAt,
		UpdatedAt:  dto.UpdatedAt,
		ClassCreate: model.ClassCreate{
			StartTime: dto.StartTime,
			EndTime:   dto.EndTime,
			Contact:   database.StringValue(dto.Contact),
			Passage:   database.StringValue(dto.Passage),
		},
	}
}
