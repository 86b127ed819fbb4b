// Package holiday computes holiday-aligned reporting weeks and aggregates
// daily checkpoint passenger records against them.
package holiday

import (
	"fmt"
	"time"
)

// AnchorRule computes the single anchor date that positions a holiday week
// within a given year. Implementations are built at configuration parse
// time, one per supported rule kind.
type AnchorRule interface {

	// Resolve returns the anchor date for year, at midnight UTC.
	// Returns a *ConfigError when the rule does not produce a date for
	// year, so callers can tell configuration faults from other failures.
	Resolve(year int) (time.Time, error)
}

// fixedDateRule anchors a holiday on the same month and day every year
type fixedDateRule struct {
	month time.Month
	day   int
}

func (r fixedDateRule) Resolve(year int) (time.Time, error) {
	if r.day < 1 || r.day > daysInMonth(year, r.month) {
		return time.Time{}, &ConfigError{Reason: fmt.Sprintf("no day %d in %v %d", r.day, r.month, year)}
	}
	return time.Date(year, r.month, r.day, 0, 0, 0, 0, time.UTC), nil
}

// nthWeekdayRule anchors a holiday on the nth occurrence of a weekday in a
// month, counting from the 1st
type nthWeekdayRule struct {
	month   time.Month
	n       int
	weekday time.Weekday
}

func (r nthWeekdayRule) Resolve(year int) (time.Time, error) {
	if r.n < 1 {
		return time.Time{}, &ConfigError{Reason: fmt.Sprintf("occurrence %d must be positive", r.n)}
	}
	firstOfMonth := time.Date(year, r.month, 1, 0, 0, 0, 0, time.UTC)
	daysAhead := int(r.weekday-firstOfMonth.Weekday()+7) % 7
	day := 1 + daysAhead + (r.n-1)*7
	if day > daysInMonth(year, r.month) {
		return time.Time{}, &ConfigError{Reason: fmt.Sprintf("no %d occurrences of %v in %v %d", r.n, r.weekday, r.month, year)}
	}
	return time.Date(year, r.month, day, 0, 0, 0, 0, time.UTC), nil
}

// lastWeekdayRule anchors a holiday on the last occurrence of a weekday in
// a month, found by walking back from the last calendar day
type lastWeekdayRule struct {
	month   time.Month
	weekday time.Weekday
}

func (r lastWeekdayRule) Resolve(year int) (time.Time, error) {
	lastOfMonth := time.Date(year, r.month, daysInMonth(year, r.month), 0, 0, 0, 0, time.UTC)
	daysBack := int(lastOfMonth.Weekday()-r.weekday+7) % 7
	return lastOfMonth.AddDate(0, 0, -daysBack), nil
}

// easterRule anchors a holiday on Gregorian Easter Sunday
type easterRule struct {
}

func (r easterRule) Resolve(year int) (time.Time, error) {
	return easterSunday(year), nil
}

// daysInMonth returns the number of calendar days in month for year
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
