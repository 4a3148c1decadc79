// Package dateformat renders event and class times the way the site shows them.
package dateformat

import (
	"fmt"
	"strconv"
	"time"
)

type Language string

const (
	Vietnamese Language = "vi"
	English    Language = "en"
)

var viWeekdays = [...]string{"CN", "T2", "T3", "T4", "T5", "T6", "T7"}

type Formatter struct {
	lang      Language
	loc       *time.Location
	separator string
}

// New returns a formatter for lang. Unknown languages fall back to Vietnamese.
func New(lang Language, loc *time.Location) *Formatter {
	if lang != English {
		lang = Vietnamese
	}
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{lang: lang, loc: loc, separator: ", "}
}

// EventDate renders "weekday, date, start - end". A nil start yields "".
func (f *Formatter) EventDate(start, end *time.Time) string {
	if start == nil {
		return ""
	}

	s := start.In(f.loc)
	res := f.weekday(s) + f.separator + f.date(s)

	if timeRange := f.timeRange(s, end); timeRange != "" {
		res += f.separator + timeRange
	}

	return res
}

func (f *Formatter) weekday(t time.Time) string {
	if f.lang == Vietnamese {
		return viWeekdays[t.Weekday()]
	}
	return t.Format("Mon")
}

func (f *Formatter) date(t time.Time) string {
	if f.lang == Vietnamese {
		return fmt.Sprintf("%d thg %d, %d", t.Day(), int(t.Month()), t.Year())
	}
	return t.Format("Jan 2, 2006")
}

func (f *Formatter) timeRange(start time.Time, end *time.Time) string {
	startTime := f.clock(start)
	if end == nil {
		return startTime
	}
	return startTime + " - " + f.clock(end.In(f.loc))
}

func (f *Formatter) clock(t time.Time) string {
	return twelveHour(t, " ")
}

func twelveHour(t time.Time, sep string) string {
	period := "am"
	if t.Hour() >= 12 {
		period = "pm"
	}

	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%02d%s%s", hour, t.Minute(), sep, period)
}

// EventDateVN is the display string stored with every event.
func EventDateVN(start, end *time.Time, loc *time.Location) string {
	return New(Vietnamese, loc).EventDate(start, end)
}

// ClassTime renders a class slot as "T2, 7:00pm - 8:30pm".
func ClassTime(start, end time.Time, loc *time.Location) string {
	s := start.In(loc)
	e := end.In(loc)
	return fmt.Sprintf("%s, %s - %s", viWeekdays[s.Weekday()], twelveHour(s, ""), twelveHour(e, ""))
}

// FullDateTime renders "Monday, 7:00pm".
func FullDateTime(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	return t.Weekday().String() + ", " + twelveHour(t, "")
}

// ClassTitle names the class at position index (0-based).
func ClassTitle(index int) string {
	return "Lớp " + strconv.Itoa(index+1)
}
