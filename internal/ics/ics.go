// Package ics renders the public events calendar feed.
package ics

import (
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/recurrence"
)

const productID = "-//Tin Lanh//church-admin//VI"

// Calendar builds a feed from events that were already projected to their
// next occurrence. Events without a start are left out.
func Calendar(name string, events []*model.Event, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)

	for _, e := range events {
		if e.StartDateTime == nil {
			continue
		}

		ev := cal.AddEvent(e.ID + "@church-admin")
		ev.SetDtStampTime(stamp)
		ev.SetCreatedTime(e.CreatedAt)
		ev.SetModifiedAt(e.UpdatedAt)
		ev.SetStartAt(*e.StartDateTime)
		if e.EndDateTime != nil {
			ev.SetEndAt(*e.EndDateTime)
		}

		ev.SetSummary(e.Title)
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		if desc := description(e); desc != "" {
			ev.SetDescription(desc)
		}

		if e.Recurring {
			// DTSTART is written in UTC, so the rule reads weekday and time there too.
			opt := recurrence.WeeklyOption(*e.StartDateTime, time.UTC)
			ev.AddRrule(opt.RRuleString())
		}
	}

	return cal
}

func description(e *model.Event) string {
	switch {
	case e.Subtitle != "" && e.Notes != "":
		return e.Subtitle + "\n\n" + e.Notes
	case e.Subtitle != "":
		return e.Subtitle
	default:
		return e.Notes
	}
}

// Write serializes the feed.
func Write(w io.Writer, name string, events []*model.Event, stamp time.Time) error {
	return Calendar(name, events, stamp).SerializeTo(w)
}
