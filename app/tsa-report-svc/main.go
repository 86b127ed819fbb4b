package main

import (
	"errors"
	"fmt"
	logger "log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ardanlabs/conf"

	"github.com/sumitbindra/tsa-passenger-analysis/app/tsa-analyze/analyzer"
	"github.com/sumitbindra/tsa-passenger-analysis/app/tsa-report-svc/report"
	"github.com/sumitbindra/tsa-passenger-analysis/business/data/checkpoint"
	"github.com/sumitbindra/tsa-passenger-analysis/business/holiday"
	"github.com/sumitbindra/tsa-passenger-analysis/foundation/database"
)

var build = "develop"

func main() {
	log := logger.New(os.Stdout, "TSA_REPORT : ", logger.LstdFlags|logger.Lmicroseconds|logger.Lshortfile)
	if err := run(log); err != nil {
		log.Printf("main: error: %v", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	var cfg struct {
		conf.Version
		Web struct {
			Port int `conf:"default:8080"`
		}
		Records struct {
			Source        string `conf:"default:csv"`
			Input         string `conf:"default:tsa_raw_data.csv"`
			HolidayConfig string
		}
		DB struct {
			User       string `conf:"default:postgres"`
			Password   string `conf:"default:postgres,noprint"`
			Host       string `conf:"default:0.0.0.0"`
			Name       string `conf:"default:postgres"`
			DisableTLS bool   `conf:"default:true"`
		}
	}
	cfg.Version.SVN = build
	cfg.Version.Desc = "Serve holiday week windows and passenger summaries"
	if err := conf.Parse(os.Args[1:], "TSA_REPORT", &cfg); err != nil {
		switch err {
		case conf.ErrHelpWanted:
			usage, err := conf.Usage("TSA_REPORT", &cfg)
			if err != nil {
				return fmt.Errorf("generating config usage: %w", err)
			}
			fmt.Println(usage)
			return nil
		case conf.ErrVersionWanted:
			version, err := conf.VersionString("TSA_REPORT", &cfg)
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

	var defs []holiday.Definition
	if cfg.Records.HolidayConfig != "" {
		defs, err = holiday.LoadDefinitions(cfg.Records.HolidayConfig)
		if err != nil {
			return err
		}
	} else {
		defs = holiday.DefaultDefinitions()
	}
	catalog := holiday.MakeCatalog(log, defs)

	var result *checkpoint.ReadResult
	switch cfg.Records.Source {
	case "csv":
		result, err = analyzer.LoadRecordsFromFile(cfg.Records.Input)
		if err != nil {
			return err
		}
	case "db":
		log.Println("main: Initializing database support")
		db, err := database.Open(database.Config{
			User:       cfg.DB.User,
			Password:   cfg.DB.Password,
			Host:       cfg.DB.Host,
			Name:       cfg.DB.Name,
			DisableTLS: cfg.DB.DisableTLS,
		})
		if err != nil {
			return fmt.Errorf("connecting to db: %w", err)
		}
		result, err = analyzer.LoadRecordsFromDatabase(db)
		closeErr := db.Close()
		if err != nil {
			return err
		}
		if closeErr != nil {
			log.Printf("main: error closing database: %v", closeErr)
		}
	default:
		return fmt.Errorf("unknown record source %q, expected csv or db", cfg.Records.Source)
	}
	log.Printf("main: loaded %d records, skipped %d malformed rows", len(result.Records), result.Skipped)

	analyzer.LogOverlapWarnings(log, catalog, result.Records)

	classified := catalog.ClassifyRecords(result.Records, holiday.MakeFederalCalendar())
	summaries, err := holiday.Aggregate(classified, holiday.ChronologicalOrder())
	if errors.Is(err, holiday.ErrEmptyResult) {
		// the week window endpoint stays useful without summaries
		log.Printf("main: warning: %v", err)
		summaries = nil
	} else if err != nil {
		return err
	}
	log.Printf("main: serving %d holiday week summaries", len(summaries))

	metrics := report.MakeCollector("tsa_report")
	srv := report.CreateServer(log, catalog, summaries, metrics, cfg.Web.Port)

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM)

	wg := sync.WaitGroup{}
	webServiceShutdown := make(chan bool, 1)
	go report.RunWebService(log, &wg, srv, webServiceShutdown)

	<-shutdownSignal
	log.Printf("main: exiting on shutdown signal")
	webServiceShutdown <- true
	wg.Wait()
	return nil
}
