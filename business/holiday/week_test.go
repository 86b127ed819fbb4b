package holiday

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name        string
		anchor      time.Time
		offsetWeeks int
		wantMonday  time.Time
		wantSunday  time.Time
	}{
		{
			name:       "anchor mid week",
			anchor:     testDate(2024, time.November, 28),
			wantMonday: testDate(2024, time.November, 25),
			wantSunday: testDate(2024, time.December, 1),
		},
		{
			name:       "anchor already monday",
			anchor:     testDate(2024, time.September, 2),
			wantMonday: testDate(2024, time.September, 2),
			wantSunday: testDate(2024, time.September, 8),
		},
		{
			name:       "anchor sunday stays in same week",
			anchor:     testDate(2024, time.November, 24),
			wantMonday: testDate(2024, time.November, 18),
			wantSunday: testDate(2024, time.November, 24),
		},
		{
			name:        "positive offset",
			anchor:      testDate(2024, time.November, 28),
			offsetWeeks: 1,
			wantMonday:  testDate(2024, time.December, 2),
			wantSunday:  testDate(2024, time.December, 8),
		},
		{
			name:        "negative offset across year boundary",
			anchor:      testDate(2024, time.January, 3),
			offsetWeeks: -1,
			wantMonday:  testDate(2023, time.December, 25),
			wantSunday:  testDate(2023, time.December, 31),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			monday, sunday := WeekBounds(tt.anchor, tt.offsetWeeks)
			is.Equal(monday, tt.wantMonday)
			is.Equal(sunday, tt.wantSunday)
		})
	}
}

func TestWeekBounds_invariants(t *testing.T) {
	is := is.New(t)
	// every day of a year produces a monday, a sunday six days later, and
	// contains the anchor itself
	anchor := testDate(2023, time.January, 1)
	for day := 0; day < 365; day++ {
		monday, sunday := WeekBounds(anchor, 0)
		is.Equal(monday.Weekday(), time.Monday)
		is.Equal(sunday, monday.AddDate(0, 0, 6))
		is.True(!anchor.Before(monday) && !anchor.After(sunday))
		anchor = anchor.AddDate(0, 0, 1)
	}
}

func TestWeekBounds_offsetShiftsBySevenDays(t *testing.T) {
	is := is.New(t)
	anchor := testDate(2024, time.March, 31)
	baseMonday, baseSunday := WeekBounds(anchor, 0)
	for k := -3; k <= 3; k++ {
		monday, sunday := WeekBounds(anchor, k)
		is.Equal(monday, baseMonday.AddDate(0, 0, 7*k))
		is.Equal(sunday, baseSunday.AddDate(0, 0, 7*k))
	}
}
