package checkpoint

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// csv column headers used by raw record files
const (
	dateHeader       = "date"
	passengersHeader = "passengers"
	yearHeader       = "year"
)

// dateLayouts are the date formats accepted in record files. The first is
// what this system writes, the second is the source web site's format.
var dateLayouts = []string{"2006-01-02", "1/2/2006"}

// ReadResult holds records read from a csv file along with the number of
// malformed rows that were skipped.
type ReadResult struct {
	Records []DailyRecord
	Skipped int
}

// ReadCSV reads daily records from r. Rows with unparseable dates or
// negative or non-numeric passenger counts are skipped and counted in
// ReadResult.Skipped rather than aborting the read.
func ReadCSV(r io.Reader) (*ReadResult, error) {
	csvReader := csv.NewReader(r)
	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read header in records file: %v", err)
	}
	dateIndex := indexOf(dateHeader, headers)
	passengersIndex := indexOf(passengersHeader, headers)
	if dateIndex < 0 || passengersIndex < 0 {
		return nil, fmt.Errorf("records file requires %q and %q columns, found %v",
			dateHeader, passengersHeader, headers)
	}

	result := ReadResult{}
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		record, err := buildDailyRecord(row, dateIndex, passengersIndex)
		if err != nil {
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, record)
	}
	return &result, nil
}

// buildDailyRecord parses one csv row into a DailyRecord
func buildDailyRecord(row []string, dateIndex int, passengersIndex int) (DailyRecord, error) {
	if len(row) <= dateIndex || len(row) <= passengersIndex {
		return DailyRecord{}, fmt.Errorf("row is too short: %v", row)
	}
	date, err := parseRecordDate(row[dateIndex])
	if err != nil {
		return DailyRecord{}, err
	}
	passengersString := strings.ReplaceAll(strings.TrimSpace(row[passengersIndex]), ",", "")
	passengers, err := strconv.Atoi(passengersString)
	if err != nil {
		return DailyRecord{}, fmt.Errorf("unable to parse passenger count %q: %v", row[passengersIndex], err)
	}
	return MakeDailyRecord(date, passengers)
}

// parseRecordDate parses value against the accepted date layouts
func parseRecordDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	// tolerate a trailing time component from earlier exports
	if len(value) > 10 && strings.ContainsRune(value, ' ') {
		value = strings.SplitN(value, " ", 2)[0]
	}
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date %q", value)
}

// WriteCSV writes records to w with a date,passengers,year header.
func WriteCSV(w io.Writer, records []DailyRecord) error {
	csvWriter := csv.NewWriter(w)
	err := csvWriter.Write([]string{dateHeader, passengersHeader, yearHeader})
	if err != nil {
		return err
	}
	for _, record := range records {
		err = csvWriter.Write([]string{
			record.Date.Format("2006-01-02"),
			strconv.Itoa(record.Passengers),
			strconv.Itoa(record.Year),
		})
		if err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// indexOf finds the index of name in elements. returns -1 if not found
func indexOf(name string, elements []string) int {
	for i, value := range elements {
		if name == value {
			return i
		}
	}
	return -1
}
