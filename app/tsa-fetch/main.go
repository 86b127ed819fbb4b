package main

import (
	"fmt"
	logger "log"
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/nats-io/nats.go"

	"github.com/sumitbindra/tsa-passenger-analysis/app/tsa-fetch/fetcher"
	"github.com/sumitbindra/tsa-passenger-analysis/business/data/checkpoint"
	"github.com/sumitbindra/tsa-passenger-analysis/foundation/database"
	"github.com/sumitbindra/tsa-passenger-analysis/foundation/httpclient"
)

var build = "develop"

func main() {
	log := logger.New(os.Stdout, "TSA_FETCH : ", logger.LstdFlags|logger.Lmicroseconds|logger.Lshortfile)
	if err := run(log); err != nil {
		log.Printf("main: error: %v", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	var cfg struct {
		conf.Version
		Fetch struct {
			BaseUrl        string `conf:"default:https://www.tsa.gov/travel/passenger-volumes"`
			StartYear      int    `conf:"default:2019"`
			EndYear        int    `conf:"default:2025"`
			Output         string `conf:"default:tsa_raw_data.csv"`
			TimeoutSeconds int    `conf:"default:30"`
			UserAgent      string `conf:"default:Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`
		}
		DB struct {
			Save       bool   `conf:"default:false"`
			User       string `conf:"default:postgres"`
			Password   string `conf:"default:postgres,noprint"`
			Host       string `conf:"default:0.0.0.0"`
			Name       string `conf:"default:postgres"`
			DisableTLS bool   `conf:"default:true"`
		}
		NATS struct {
			Url     string
			Subject string `conf:"default:tsa.fetch.completed"`
		}
	}
	cfg.Version.SVN = build
	cfg.Version.Desc = "Fetch daily checkpoint passenger volumes from the TSA web site"
	if err := conf.Parse(os.Args[1:], "TSA_FETCH", &cfg); err != nil {
		switch err {
		case conf.ErrHelpWanted:
			usage, err := conf.Usage("TSA_FETCH", &cfg)
			if err != nil {
				return fmt.Errorf("generating config usage: %w", err)
			}
			fmt.Println(usage)
			return nil
		case conf.ErrVersionWanted:
			version, err := conf.VersionString("TSA_FETCH", &cfg)
			if err != nil {
				return fmt.Errorf("generating config version: %w", err)
			}
			fmt.Println(version)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	log.Printf("main : Started : Application initializing : version %s", build)
	defer log.Println("main: Completed")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Printf("main: Config :\n%v\n", out)

	if cfg.Fetch.StartYear > cfg.Fetch.EndYear {
		return fmt.Errorf("start year %d is after end year %d", cfg.Fetch.StartYear, cfg.Fetch.EndYear)
	}
	var years []int
	for year := cfg.Fetch.StartYear; year <= cfg.Fetch.EndYear; year++ {
		years = append(years, year)
	}

	client := httpclient.MakePageClient(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, cfg.Fetch.UserAgent)
	f := fetcher.MakeFetcher(log, client, cfg.Fetch.BaseUrl)

	result, err := f.FetchYears(years)
	if err != nil {
		return err
	}
	log.Printf("main: fetched %d records across %d years, skipped %d rows",
		len(result.Records), len(result.Years), result.Skipped)

	if err := writeRecordsFile(cfg.Fetch.Output, result.Records); err != nil {
		return err
	}
	log.Printf("main: saved %d records to %s", len(result.Records), cfg.Fetch.Output)

	if cfg.DB.Save {
		dbConfig := database.Config{
			User:       cfg.DB.User,
			Password:   cfg.DB.Password,
			Host:       cfg.DB.Host,
			Name:       cfg.DB.Name,
			DisableTLS: cfg.DB.DisableTLS,
		}
		if err := saveRecordsToDatabase(log, dbConfig, result.Records); err != nil {
			return err
		}
	}

	if cfg.NATS.Url != "" {
		if err := publishFetchNotice(log, cfg.NATS.Url, cfg.NATS.Subject, result); err != nil {
			// the fetch itself succeeded, downstream notification is best effort
			log.Printf("main: unable to publish fetch notice: %v", err)
		}
	}
	return nil
}

// writeRecordsFile writes records as csv to path
func writeRecordsFile(path string, records []checkpoint.DailyRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create output file %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return checkpoint.WriteCSV(file, records)
}

// saveRecordsToDatabase upserts records inside one transaction
func saveRecordsToDatabase(log *logger.Logger, dbConfig database.Config, records []checkpoint.DailyRecord) error {
	log.Println("main: Initializing database support")
	db, err := database.Open(dbConfig)
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("main: error closing database: %v", err)
		}
	}()

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := checkpoint.SaveDailyRecords(tx, records); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("saving records: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing records: %w", err)
	}
	log.Printf("main: saved %d records to database", len(records))
	return nil
}

// publishFetchNotice connects to nats and announces the completed fetch
func publishFetchNotice(log *logger.Logger, natsURL string, subject string, result *fetcher.FetchResult) error {
	natsConn, err := nats.Connect(natsURL)
	if err != nil {
		return fmt.Errorf("connecting to nats at %s: %w", natsURL, err)
	}
	defer natsConn.Close()

	publisher := fetcher.MakeNATSNoticePublisher(log, natsConn, subject)
	return publisher.PublishResult(result)
}
