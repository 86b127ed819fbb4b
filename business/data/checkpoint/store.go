package checkpoint

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// SaveDailyRecords inserts or updates records inside tx. Existing rows are
// matched on record_date, so refreshed source data replaces stale counts.
func SaveDailyRecords(tx *sqlx.Tx, records []DailyRecord) error {
	statementString := "insert into daily_record ( " +
		"record_date, " +
		"passengers, " +
		"record_year) " +
		"values (" +
		":record_date, " +
		":passengers, " +
		":record_year) " +
		"on conflict (record_date) do update set " +
		"passengers = excluded.passengers, " +
		"record_year = excluded.record_year"
	statementString = tx.Rebind(statementString)
	for _, record := range records {
		_, err := tx.NamedExec(statementString, record)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetAllDailyRecords retrieves every stored record ordered by date
func GetAllDailyRecords(db *sqlx.DB) ([]DailyRecord, error) {
	query := "select record_date, passengers, record_year from daily_record order by record_date"
	var records []DailyRecord
	err := db.Select(&records, query)
	return records, err
}

// GetDailyRecordsBetween retrieves stored records with start <= record_date <= end
func GetDailyRecordsBetween(db *sqlx.DB, start time.Time, end time.Time) ([]DailyRecord, error) {
	query := db.Rebind("select record_date, passengers, record_year from daily_record " +
		"where record_date >= ? and record_date <= ? order by record_date")
	var records []DailyRecord
	err := db.Select(&records, query, DateOnly(start), DateOnly(end))
	return records, err
}
