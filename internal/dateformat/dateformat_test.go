package dateformat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventDate(t *testing.T) {
	loc := time.UTC
	start := time.Date(2025, time.January, 6, 19, 0, 0, 0, loc)
	end := time.Date(2025, time.January, 6, 20, 30, 0, 0, loc)
	noon := time.Date(2025, time.January, 5, 12, 5, 0, 0, loc)
	midnight := time.Date(2025, time.January, 5, 0, 0, 0, 0, loc)

	tests := []struct {
		name  string
		lang  Language
		start *time.Time
		end   *time.Time
		want  string
	}{
		{"vi with end", Vietnamese, &start, &end, "T2, 6 thg 1, 2025, 7:00 pm - 8:30 pm"},
		{"en with end", English, &start, &end, "Mon, Jan 6, 2025, 7:00 pm - 8:30 pm"},
		{"vi without end", Vietnamese, &start, nil, "T2, 6 thg 1, 2025, 7:00 pm"},
		{"sunday noon", Vietnamese, &noon, nil, "CN, 5 thg 1, 2025, 12:05 pm"},
		{"midnight", English, &midnight, nil, "Sun, Jan 5, 2025, 12:00 am"},
		{"no start", Vietnamese, nil, &end, ""},
		{"unknown language falls back", Language("fr"), &start, nil, "T2, 6 thg 1, 2025, 7:00 pm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.lang, loc).EventDate(tt.start, tt.end))
		})
	}
}

func TestEventDate_Location(t *testing.T) {
	start := time.Date(2025, time.January, 7, 2, 0, 0, 0, time.UTC)
	loc := time.FixedZone("PST", -8*60*60)

	assert.Equal(t, "T2, 6 thg 1, 2025, 6:00 pm", EventDateVN(&start, nil, loc))
	assert.Equal(t, "Mon, Jan 6, 2025, 6:00 pm", New(English, loc).EventDate(&start, nil))
}

func TestClassTime(t *testing.T) {
	start := time.Date(2025, time.January, 8, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.January, 8, 10, 15, 0, 0, time.UTC)

	assert.Equal(t, "T4, 9:00am - 10:15am", ClassTime(start, end, time.UTC))
	assert.Equal(t, "Wednesday, 9:00am", FullDateTime(start, time.UTC))
}

func TestClassTitle(t *testing.T) {
	assert.Equal(t, "Lớp 1", ClassTitle(0))
	assert.Equal(t, "Lớp 12", ClassTitle(11))
}
