package model

import "time"

type CourseCreate struct {
	Name        string
	Description string
}

type Course struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	CourseCreate
}

type LocationCreate struct {
	Name              string
	ThumbnailImageURL string
}

type Location struct {
	ID        string
	CourseID  string
	CreatedAt time.Time
	UpdatedAt time.Time
	LocationCreate
}

type ClassCreate struct {
	StartTime time.Time
	EndTime   time.Time
	Contact   string
	Passage   string
}

type Class struct {
	ID         string
	CourseID   string
	LocationID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ClassCreate
}
