package holiday

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/sumitbindra/tsa-passenger-analysis/business/data/checkpoint"
)

func classifiedRecord(date time.Time, passengers int, week string) ClassifiedRecord {
	return ClassifiedRecord{
		DailyRecord: checkpoint.DailyRecord{Date: date, Passengers: passengers, Year: date.Year()},
		HolidayWeek: week,
	}
}

func TestAggregate_emptyInput(t *testing.T) {
	is := is.New(t)
	_, err := Aggregate(nil, ChronologicalOrder())
	is.True(errors.Is(err, ErrEmptyResult))
}

func TestAggregate_allRecordsUnlabeled(t *testing.T) {
	is := is.New(t)
	records := []ClassifiedRecord{
		classifiedRecord(testDate(2024, time.June, 5), 2500000, ""),
		classifiedRecord(testDate(2024, time.June, 6), 2600000, ""),
	}
	_, err := Aggregate(records, ChronologicalOrder())
	is.True(errors.Is(err, ErrEmptyResult))
}

func TestAggregate_thanksgivingScenario(t *testing.T) {
	is := is.New(t)
	catalog := MakeCatalog(testLogger(), []Definition{
		{Name: "Thanksgiving", Anchor: nthWeekdayRule{month: time.November, n: 4, weekday: time.Thursday}},
	})
	records := []checkpoint.DailyRecord{
		{Date: testDate(2024, time.November, 27), Passengers: 2100000, Year: 2024},
		{Date: testDate(2024, time.November, 28), Passengers: 2950000, Year: 2024},
		{Date: testDate(2024, time.November, 29), Passengers: 2750000, Year: 2024},
	}
	classified := catalog.ClassifyRecords(records, nil)
	for _, record := range classified {
		is.Equal(record.HolidayWeek, "Thanksgiving")
	}

	summaries, err := Aggregate(classified, ChronologicalOrder())
	is.NoErr(err)
	is.Equal(len(summaries), 1)
	summary := summaries[0]
	is.Equal(summary.HolidayWeek, "Thanksgiving")
	is.Equal(summary.Year, 2024)
	is.Equal(summary.DayCount, 3)
	is.Equal(summary.TotalPassengers, int64(7800000))
	is.Equal(summary.AvgPassengers, 2600000.0)
	is.Equal(summary.WeekStart, testDate(2024, time.November, 27))
	is.Equal(summary.WeekEnd, testDate(2024, time.November, 29))
}

func TestAggregate_meanEqualsSumOverCount(t *testing.T) {
	is := is.New(t)
	records := []ClassifiedRecord{
		classifiedRecord(testDate(2023, time.November, 20), 2000001, "Thanksgiving"),
		classifiedRecord(testDate(2023, time.November, 21), 2000002, "Thanksgiving"),
		classifiedRecord(testDate(2023, time.November, 22), 2000004, "Thanksgiving"),
		classifiedRecord(testDate(2023, time.December, 25), 1700001, "Christmas Holiday"),
		classifiedRecord(testDate(2023, time.December, 26), 1900003, "Christmas Holiday"),
	}
	summaries, err := Aggregate(records, ChronologicalOrder())
	is.NoErr(err)
	for _, summary := range summaries {
		want := float64(summary.TotalPassengers) / float64(summary.DayCount)
		is.True(math.Abs(summary.AvgPassengers-want) < 1e-9)
	}
}

func TestAggregate_sortsByYearThenChronologicalOrder(t *testing.T) {
	is := is.New(t)
	records := []ClassifiedRecord{
		classifiedRecord(testDate(2024, time.December, 25), 1800000, "Christmas Holiday"),
		classifiedRecord(testDate(2024, time.November, 28), 2900000, "Thanksgiving"),
		classifiedRecord(testDate(2023, time.December, 25), 1700000, "Christmas Holiday"),
		classifiedRecord(testDate(2024, time.January, 15), 1500000, "MLK Jr. Day"),
	}
	summaries, err := Aggregate(records, ChronologicalOrder())
	is.NoErr(err)
	is.Equal(len(summaries), 4)
	is.Equal(summaries[0].HolidayWeek, "Christmas Holiday")
	is.Equal(summaries[0].Year, 2023)
	is.Equal(summaries[1].HolidayWeek, "MLK Jr. Day")
	is.Equal(summaries[2].HolidayWeek, "Thanksgiving")
	is.Equal(summaries[3].HolidayWeek, "Christmas Holiday")
	is.Equal(summaries[3].Year, 2024)
}
