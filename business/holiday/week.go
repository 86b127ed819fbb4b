package holiday

import (
	"time"
)

// WeekBounds returns the Monday and Sunday (inclusive) of the week holding
// anchor after shifting it by offsetWeeks. The result always satisfies
// sunday = monday + 6 days.
func WeekBounds(anchor time.Time, offsetWeeks int) (time.Time, time.Time) {
	shifted := anchor.AddDate(0, 0, offsetWeeks*7)
	monday := shifted.AddDate(0, 0, -mondayIndex(shifted.Weekday()))
	return monday, monday.AddDate(0, 0, 6)
}

// mondayIndex converts time.Weekday (Sunday=0) to the Monday-based index
// (Monday=0 .. Sunday=6) used by holiday configuration.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
