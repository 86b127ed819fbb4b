package holiday

import (
	"time"

	"github.com/sumitbindra/tsa-passenger-analysis/business/data/checkpoint"
)

// Classify determines which configured holiday week date falls in.
// Matching is first-match in configuration order. When the date is in
// December or January and matches nothing in its own year, the adjacent
// year's catalog is consulted, restricted to windows flagged as spanning
// the year boundary.
func (c *Catalog) Classify(date time.Time) (string, bool) {
	date = checkpoint.DateOnly(date)
	for _, week := range c.WeeksForYear(date.Year()) {
		if week.Contains(date) {
			return week.Name, true
		}
	}

	switch date.Month() {
	case time.December:
		return c.classifyBoundary(date, date.Year()+1)
	case time.January:
		return c.classifyBoundary(date, date.Year()-1)
	}
	return "", false
}

// classifyBoundary matches date against the boundary-spanning windows of
// an adjacent year
func (c *Catalog) classifyBoundary(date time.Time, year int) (string, bool) {
	for _, week := range c.WeeksForYear(year) {
		if week.SpansYearBoundary && week.Contains(date) {
			return week.Name, true
		}
	}
	return "", false
}

// ClassifiedRecord is a DailyRecord labeled with the holiday week it falls
// in. HolidayWeek is empty when the date is outside every configured
// window. FederalHoliday is informational only and never drives
// classification.
type ClassifiedRecord struct {
	checkpoint.DailyRecord
	HolidayWeek    string `json:"holiday_week,omitempty"`
	FederalHoliday bool   `json:"federal_holiday"`
}

// ClassifyRecords labels every record with its holiday week, if any.
// fed may be nil when federal holiday annotation is not wanted.
func (c *Catalog) ClassifyRecords(records []checkpoint.DailyRecord, fed *FederalCalendar) []ClassifiedRecord {
	classified := make([]ClassifiedRecord, 0, len(records))
	for _, record := range records {
		name, _ := c.Classify(record.Date)
		cr := ClassifiedRecord{
			DailyRecord: record,
			HolidayWeek: name,
		}
		if fed != nil {
			cr.FederalHoliday = fed.IsFederalHoliday(record.Date)
		}
		classified = append(classified, cr)
	}
	return classified
}
