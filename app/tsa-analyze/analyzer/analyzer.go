// Package analyzer aligns checkpoint passenger records with configured
// holiday weeks and writes the derived data sets.
package analyzer

import (
	"encoding/csv"
	"fmt"
	"io"
	logger "log"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/sumitbindra/tsa-passenger-analysis/business/data/checkpoint"
	"github.com/sumitbindra/tsa-passenger-analysis/business/holiday"
)

// LoadRecordsFromFile reads daily records from the csv file at path
func LoadRecordsFromFile(path string) (*checkpoint.ReadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open records file %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return checkpoint.ReadCSV(file)
}

// LoadRecordsFromDatabase reads every stored daily record
func LoadRecordsFromDatabase(db *sqlx.DB) (*checkpoint.ReadResult, error) {
	records, err := checkpoint.GetAllDailyRecords(db)
	if err != nil {
		return nil, fmt.Errorf("unable to load records from database: %w", err)
	}
	return &checkpoint.ReadResult{Records: records}, nil
}

// LogOverlapWarnings surfaces holiday window overlaps for every year
// present in records. Overlaps are legal but resolve silently on
// configuration order, so they deserve a startup warning.
func LogOverlapWarnings(log *logger.Logger, catalog *holiday.Catalog, records []checkpoint.DailyRecord) {
	years := make(map[int]bool)
	for _, record := range records {
		years[record.Year] = true
	}
	for year := range years {
		for _, warning := range catalog.OverlapWarnings(year) {
			log.Printf("analyzer: %s", warning)
		}
	}
}

// WriteEnhancedCSV writes every input record with its holiday week
// assignment and federal holiday flag.
func WriteEnhancedCSV(w io.Writer, records []holiday.ClassifiedRecord) error {
	csvWriter := csv.NewWriter(w)
	err := csvWriter.Write([]string{"date", "passengers", "year", "holiday_week", "federal_holiday"})
	if err != nil {
		return err
	}
	for _, record := range records {
		err = csvWriter.Write([]string{
			record.Date.Format("2006-01-02"),
			strconv.Itoa(record.Passengers),
			strconv.Itoa(record.Year),
			record.HolidayWeek,
			strconv.FormatBool(record.FederalHoliday),
		})
		if err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteSummaryCSV writes the per holiday week per year summary table
func WriteSummaryCSV(w io.Writer, summaries []holiday.Summary) error {
	csvWriter := csv.NewWriter(w)
	err := csvWriter.Write([]string{"holiday_week", "year", "avg_passengers",
		"total_passengers", "day_count", "week_start", "week_end"})
	if err != nil {
		return err
	}
	for _, summary := range summaries {
		err = csvWriter.Write([]string{
			summary.HolidayWeek,
			strconv.Itoa(summary.Year),
			strconv.FormatFloat(summary.AvgPassengers, 'f', -1, 64),
			strconv.FormatInt(summary.TotalPassengers, 10),
			strconv.Itoa(summary.DayCount),
			summary.WeekStart.Format("2006-01-02"),
			summary.WeekEnd.Format("2006-01-02"),
		})
		if err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteFile writes with writer to a newly created file at path
func WriteFile(path string, writer func(w io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return writer(file)
}
