// Package checkpoint provides CRUD and file transfer functionality for
// daily checkpoint passenger volume records.
package checkpoint

import (
	"fmt"
	"time"
)

// DailyRecord is one day of checkpoint passenger throughput.
// Date carries no time component and is held at midnight UTC.
// Year always equals Date's calendar year.
type DailyRecord struct {
	Date       time.Time `db:"record_date" json:"date"`
	Passengers int       `db:"passengers" json:"passengers"`
	Year       int       `db:"record_year" json:"year"`
}

// MakeDailyRecord builds a DailyRecord from a calendar date and passenger
// count, normalizing the date to midnight UTC and deriving the year.
// Returns an error for a negative passenger count.
func MakeDailyRecord(date time.Time, passengers int) (DailyRecord, error) {
	if passengers < 0 {
		return DailyRecord{}, fmt.Errorf("negative passenger count %d on %s",
			passengers, date.Format("2006-01-02"))
	}
	day := DateOnly(date)
	return DailyRecord{
		Date:       day,
		Passengers: passengers,
		Year:       day.Year(),
	}, nil
}

func (r DailyRecord) String() string {
	return fmt.Sprintf("DailyRecord date:%s passengers:%d", r.Date.Format("2006-01-02"), r.Passengers)
}

// DateOnly strips any time component from date, producing midnight UTC on
// the same calendar day.
func DateOnly(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
