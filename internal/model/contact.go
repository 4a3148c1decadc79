package model

import "time"

type ContactMessageCreate struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type ContactMessage struct {
	ID        string
	CreatedAt time.Time
	ContactMessageCreate
}
