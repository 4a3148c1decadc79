package model

import "time"

// EventCreate holds the editable fields of an event.
type EventCreate struct {
	Title             string
	Subtitle          string
	HeroImageURL      string
	ThumbnailImageURL string
	Location          string
	Notes             string
	StartDateTime     *time.Time
	EndDateTime       *time.Time
	IsActive          bool
	Recurring         bool
}

// Event is a stored event. For recurring events StartDateTime is only a
// weekday and time-of-day anchor; readers must project it.
type Event struct {
	ID          string
	DateDisplay string
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	EventCreate
}

type EventStatus string

const (
	EventStatusAll      EventStatus = "all"
	EventStatusActive   EventStatus = "active"
	EventStatusInactive EventStatus = "inactive"
)

type EventsFilter struct {
	Search string
	Status EventStatus
}
