package checkpoint

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestReadCSV(t *testing.T) {
	is := is.New(t)
	content := "date,passengers,year\n" +
		"2024-11-27,2100000,2024\n" +
		"11/28/2024,2950000,2024\n" +
		"2024-11-29,2750000,2024\n"
	result, err := ReadCSV(strings.NewReader(content))
	is.NoErr(err)
	is.Equal(result.Skipped, 0)
	is.Equal(len(result.Records), 3)
	is.Equal(result.Records[0], DailyRecord{Date: date(2024, time.November, 27), Passengers: 2100000, Year: 2024})
	is.Equal(result.Records[1], DailyRecord{Date: date(2024, time.November, 28), Passengers: 2950000, Year: 2024})
}

func TestReadCSV_skipsMalformedRows(t *testing.T) {
	is := is.New(t)
	content := "date,passengers,year\n" +
		"2024-11-27,2100000,2024\n" +
		"not a date,2950000,2024\n" +
		"2024-11-29,not a number,2024\n" +
		"2024-11-30,-5,2024\n" +
		"2024-12-01,1950000,2024\n"
	result, err := ReadCSV(strings.NewReader(content))
	is.NoErr(err)
	is.Equal(result.Skipped, 3)
	is.Equal(len(result.Records), 2)
}

func TestReadCSV_toleratesCommaGroupedCountsAndTimeComponents(t *testing.T) {
	is := is.New(t)
	content := "date,passengers,year\n" +
		"2019-01-01 00:00:00,\"2,201,765\",2019\n"
	result, err := ReadCSV(strings.NewReader(content))
	is.NoErr(err)
	is.Equal(result.Skipped, 0)
	is.Equal(result.Records[0], DailyRecord{Date: date(2019, time.January, 1), Passengers: 2201765, Year: 2019})
}

func TestReadCSV_missingRequiredColumn(t *testing.T) {
	is := is.New(t)
	content := "day,count\n2024-11-27,2100000\n"
	_, err := ReadCSV(strings.NewReader(content))
	is.True(err != nil)
}

func TestWriteCSV_roundTrips(t *testing.T) {
	is := is.New(t)
	records := []DailyRecord{
		{Date: date(2024, time.November, 27), Passengers: 2100000, Year: 2024},
		{Date: date(2024, time.November, 28), Passengers: 2950000, Year: 2024},
	}
	var buffer bytes.Buffer
	err := WriteCSV(&buffer, records)
	is.NoErr(err)

	result, err := ReadCSV(&buffer)
	is.NoErr(err)
	is.Equal(result.Skipped, 0)
	is.Equal(result.Records, records)
}

func TestMakeDailyRecord(t *testing.T) {
	is := is.New(t)
	record, err := MakeDailyRecord(time.Date(2024, time.July, 4, 13, 30, 0, 0, time.Local), 2700000)
	is.NoErr(err)
	is.Equal(record.Date, date(2024, time.July, 4))
	is.Equal(record.Year, 2024)

	_, err = MakeDailyRecord(date(2024, time.July, 4), -1)
	is.True(err != nil)
}
