package holiday

import (
	"errors"
	"sort"
	"time"
)

// ErrEmptyResult reports that aggregation had no classified records left
// after filtering. Partial inputs never produce this error as long as at
// least one record carries a holiday week label.
var ErrEmptyResult = errors.New("no records fall inside a configured holiday week")

// Summary holds the aggregated statistics of one holiday week in one year.
type Summary struct {
	HolidayWeek     string    `json:"holiday_week"`
	Year            int       `json:"year"`
	AvgPassengers   float64   `json:"avg_passengers"`
	TotalPassengers int64     `json:"total_passengers"`
	DayCount        int       `json:"day_count"`
	WeekStart       time.Time `json:"week_start"`
	WeekEnd         time.Time `json:"week_end"`
}

// summaryKey identifies one (holiday week, year) group
type summaryKey struct {
	name string
	year int
}

// Aggregate groups classified records by (holiday week, year) and computes
// per-group statistics. Records without a holiday week label are
// discarded. The result is sorted by year, then by position of the holiday
// name in chronologicalOrder (names absent from the ordering sort last,
// alphabetically). Returns ErrEmptyResult when nothing survives filtering.
func Aggregate(records []ClassifiedRecord, chronologicalOrder []string) ([]Summary, error) {
	groups := make(map[summaryKey]*Summary)
	for _, record := range records {
		if record.HolidayWeek == "" {
			continue
		}
		key := summaryKey{name: record.HolidayWeek, year: record.Year}
		group, found := groups[key]
		if !found {
			group = &Summary{
				HolidayWeek: record.HolidayWeek,
				Year:        record.Year,
				WeekStart:   record.Date,
				WeekEnd:     record.Date,
			}
			groups[key] = group
		}
		group.TotalPassengers += int64(record.Passengers)
		group.DayCount++
		if record.Date.Before(group.WeekStart) {
			group.WeekStart = record.Date
		}
		if record.Date.After(group.WeekEnd) {
			group.WeekEnd = record.Date
		}
	}
	if len(groups) == 0 {
		return nil, ErrEmptyResult
	}

	summaries := make([]Summary, 0, len(groups))
	for _, group := range groups {
		group.AvgPassengers = float64(group.TotalPassengers) / float64(group.DayCount)
		summaries = append(summaries, *group)
	}
	sortSummaries(summaries, chronologicalOrder)
	return summaries, nil
}

// sortSummaries orders summaries by year then by holiday position in order
func sortSummaries(summaries []Summary, order []string) {
	position := make(map[string]int, len(order))
	for i, name := range order {
		position[name] = i
	}
	rank := func(name string) int {
		if p, found := position[name]; found {
			return p
		}
		return len(order)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Year != summaries[j].Year {
			return summaries[i].Year < summaries[j].Year
		}
		ri, rj := rank(summaries[i].HolidayWeek), rank(summaries[j].HolidayWeek)
		if ri != rj {
			return ri < rj
		}
		return summaries[i].HolidayWeek < summaries[j].HolidayWeek
	})
}
