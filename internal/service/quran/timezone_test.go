package quran

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		tz   string
		want time.Time
	}{
		{
			name: "UTC",
			now:  time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC),
			tz:   "UTC",
			want: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Riyadh is UTC+3",
			now:  time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC),
			tz:   "Asia/Riyadh",
			want: time.Date(2025, 1, 9, 21, 0, 0, 0, time.UTC),
		},
		{
			name: "late evening UTC is next day in Jakarta",
			now:  time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC),
			tz:   "Asia/Jakarta",
			want: time.Date(2025, 1, 10, 17, 0, 0, 0, time.UTC),
		},
		{
			name: "Toronto is UTC-5 in winter",
			now:  time.Date(2025, 1, 10, 3, 0, 0, 0, time.UTC),
			tz:   "America/Toronto",
			want: time.Date(2025, 1, 9, 5, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DayStart(tt.now, ParseTimezone(tt.tz))
			assert.True(t, got.Equal(tt.want), "DayStart = %s, want %s", got, tt.want)
		})
	}
}

func TestNextDayStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, 24*time.Hour, NextDayStart(now, time.UTC).Sub(DayStart(now, time.UTC)))

	// The day the clocks go forward in London is 23 hours long.
	london := ParseTimezone("Europe/London")
	dst := time.Date(2025, 3, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 23*time.Hour, NextDayStart(dst, london).Sub(DayStart(dst, london)))
}

func TestParseTimezone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tz    string
		valid bool
	}{
		{"UTC", true},
		{"Asia/Karachi", true},
		{"Europe/Istanbul", true},
		{"Mars/Olympus", false},
		{"", false},
	}

	for _, tt := range tests {
		loc := ParseTimezone(tt.tz)
		if tt.valid {
			assert.Equal(t, tt.tz, loc.String())
		} else {
			assert.Equal(t, time.UTC, loc, "tz %q", tt.tz)
		}
	}
}
