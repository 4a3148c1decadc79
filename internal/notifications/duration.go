package notifications

import (
	"time"
)

type translator interface {
	T(locale, key string, data map[string]any) string
	TN(locale, key string, count int, data map[string]any) string
}

// leadText renders the reminder lead in the largest whole unit, e.g. "1 hour"
// for 60m and "90 minutes" for 90m.
func leadText(tr translator, locale string, d time.Duration) string {
	switch {
	case d >= 24*time.Hour && d%(24*time.Hour) == 0:
		return tr.TN(locale, "lead_days", int(d/(24*time.Hour)), nil)
	case d >= time.Hour && d%time.Hour == 0:
		return tr.TN(locale, "lead_hours", int(d/time.Hour), nil)
	default:
		return tr.TN(locale, "lead_minutes", int(d/time.Minute), nil)
	}
}
