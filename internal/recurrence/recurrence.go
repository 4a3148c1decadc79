// Package recurrence projects weekly recurring events onto their next
// occurrence.
//
// A recurring event stores one start instant whose date is irrelevant: only
// its weekday and time-of-day (minute precision) are kept. Both are read in
// the projector's location, so a server and its visitors are expected to
// share one practical time zone.
package recurrence

import (
	"time"

	"github.com/teambition/rrule-go"
)

type Projector struct {
	loc *time.Location
	now func() time.Time
}

// New returns a projector reading weekdays in loc. A nil loc means time.Local.
func New(loc *time.Location) *Projector {
	if loc == nil {
		loc = time.Local
	}
	return &Projector{loc: loc, now: time.Now}
}

// WithClock returns a copy of p that reads "now" from clock.
func (p *Projector) WithClock(clock func() time.Time) *Projector {
	return &Projector{loc: p.loc, now: clock}
}

func (p *Projector) Location() *time.Location {
	return p.loc
}

func (p *Projector) Now() time.Time {
	return p.now().In(p.loc)
}

// NextOccurrence returns anchor unchanged for one-time events, otherwise the
// first instant at or after now that falls on the anchor's weekday and time.
func (p *Projector) NextOccurrence(anchor time.Time, recurring bool) time.Time {
	return NextOccurrence(anchor, recurring, p.now(), p.loc)
}

// EndDateTime carries a stored end forward to the projected start.
func (p *Projector) EndDateTime(start, end *time.Time, recurring bool) *time.Time {
	return EndDateTime(start, end, recurring, p.now(), p.loc)
}

var weekdays = [...]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// WeeklyOption is the weekly rule an anchor stands for: its weekday, hour and
// minute read in loc. Dtstart is left for the caller.
func WeeklyOption(anchor time.Time, loc *time.Location) rrule.ROption {
	a := anchor.In(loc)

	return rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{weekdays[a.Weekday()]},
		Byhour:    []int{a.Hour()},
		Byminute:  []int{a.Minute()},
		Bysecond:  []int{0},
	}
}

// NextOccurrence is the clock-free form of Projector.NextOccurrence.
func NextOccurrence(anchor time.Time, recurring bool, now time.Time, loc *time.Location) time.Time {
	if !recurring {
		return anchor
	}

	n := now.In(loc)

	opt := WeeklyOption(anchor, loc)
	opt.Dtstart = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		// Every BY* value comes from a valid time.Time.
		return anchor
	}

	return rule.After(n, true)
}

// EndDateTime returns end unchanged unless the event recurs and both ends are
// known; then the stored duration is added to the projected start.
func EndDateTime(start, end *time.Time, recurring bool, now time.Time, loc *time.Location) *time.Time {
	if end == nil || start == nil || !recurring {
		return end
	}

	duration := end.Sub(*start)
	next := NextOccurrence(*start, recurring, now, loc).Add(duration)

	return &next
}
