package database

import sq "github.com/Masterminds/squirrel"

var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	EventsTable          = "events"
	CoursesTable         = "discipleship_courses"
	LocationsTable       = "discipleship_locations"
	ClassesTable         = "discipleship_classes"
	AdminsTable          = "admins"
	ContactMessagesTable = "contact_messages"
)

// NullString maps an empty string to SQL NULL.
func NullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue is the reverse of NullString.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
