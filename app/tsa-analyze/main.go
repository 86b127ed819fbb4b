package main

import (
	"errors"
	"fmt"
	"io"
	logger "log"
	"os"

	"github.com/ardanlabs/conf"

	"github.com/sumitbindra/tsa-passenger-analysis/app/tsa-analyze/analyzer"
	"github.com/sumitbindra/tsa-passenger-analysis/business/data/checkpoint"
	"github.com/sumitbindra/tsa-passenger-analysis/business/holiday"
	"github.com/sumitbindra/tsa-passenger-analysis/foundation/database"
)

var build = "develop"

func main() {
	log := logger.New(os.Stdout, "TSA_ANALYZE : ", logger.LstdFlags|logger.Lmicroseconds|logger.Lshortfile)
	if err := run(log); err != nil {
		log.Printf("main: error: %v", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	var cfg struct {
		conf.Version
		Analyze struct {
			Source        string `conf:"default:csv"`
			Input         string `conf:"default:tsa_raw_data.csv"`
			HolidayConfig string
			Enhanced      string `conf:"default:tsa_enhanced_data.csv"`
			Summary       string `conf:"default:tsa_weekly_averages.csv"`
			Plot          string `conf:"default:tsa_holiday_aligned_plot.png"`
			Heatmap       string `conf:"default:tsa_heatmap.png"`
			Calendar      string `conf:"default:tsa_calendar_weeks_plot.png"`
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
	cfg.Version.Desc = "Align checkpoint passenger records with holiday weeks and build reports"
	if err := conf.Parse(os.Args[1:], "TSA_ANALYZE", &cfg); err != nil {
		switch err {
		case conf.ErrHelpWanted:
			usage, err := conf.Usage("TSA_ANALYZE", &cfg)
			if err != nil {
				return fmt.Errorf("generating config usage: %w", err)
			}
			fmt.Println(usage)
			return nil
		case conf.ErrVersionWanted:
			version, err := conf.VersionString("TSA_ANALYZE", &cfg)
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

	// =========================================================================
	// Holiday configuration

	var defs []holiday.Definition
	if cfg.Analyze.HolidayConfig != "" {
		defs, err = holiday.LoadDefinitions(cfg.Analyze.HolidayConfig)
		if err != nil {
			return err
		}
		log.Printf("main: loaded %d holiday definitions from %s", len(defs), cfg.Analyze.HolidayConfig)
	} else {
		defs = holiday.DefaultDefinitions()
		log.Printf("main: using %d built-in holiday definitions", len(defs))
	}
	catalog := holiday.MakeCatalog(log, defs)

	var chartOptions analyzer.ChartOptions
	if cfg.Analyze.HolidayConfig != "" {
		chartOptions, err = analyzer.LoadChartOptions(cfg.Analyze.HolidayConfig)
		if err != nil {
			return err
		}
	}

	// =========================================================================
	// Load records

	var result *checkpoint.ReadResult
	switch cfg.Analyze.Source {
	case "csv":
		result, err = analyzer.LoadRecordsFromFile(cfg.Analyze.Input)
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
		return fmt.Errorf("unknown record source %q, expected csv or db", cfg.Analyze.Source)
	}
	log.Printf("main: loaded %d records, skipped %d malformed rows", len(result.Records), result.Skipped)

	// =========================================================================
	// Classify and aggregate

	analyzer.LogOverlapWarnings(log, catalog, result.Records)

	classified := catalog.ClassifyRecords(result.Records, holiday.MakeFederalCalendar())
	assigned := 0
	for _, record := range classified {
		if record.HolidayWeek != "" {
			assigned++
		}
	}
	log.Printf("main: %d of %d records fall inside holiday weeks", assigned, len(classified))

	order := holiday.ChronologicalOrder()
	summaries, err := holiday.Aggregate(classified, order)
	if errors.Is(err, holiday.ErrEmptyResult) {
		return fmt.Errorf("analysis produced no holiday week summaries: %w", err)
	}
	if err != nil {
		return err
	}
	log.Printf("main: aggregated %d holiday week summaries", len(summaries))

	// =========================================================================
	// Write outputs

	err = analyzer.WriteFile(cfg.Analyze.Enhanced, func(w io.Writer) error {
		return analyzer.WriteEnhancedCSV(w, classified)
	})
	if err != nil {
		return err
	}
	log.Printf("main: enhanced data saved to %s", cfg.Analyze.Enhanced)

	err = analyzer.WriteFile(cfg.Analyze.Summary, func(w io.Writer) error {
		return analyzer.WriteSummaryCSV(w, summaries)
	})
	if err != nil {
		return err
	}
	log.Printf("main: weekly averages saved to %s", cfg.Analyze.Summary)

	if err := analyzer.RenderHolidayAlignedPlot(summaries, order, chartOptions, cfg.Analyze.Plot); err != nil {
		return fmt.Errorf("rendering holiday aligned plot: %w", err)
	}
	log.Printf("main: plot saved to %s", cfg.Analyze.Plot)

	if err := analyzer.RenderHeatmap(summaries, order, chartOptions, cfg.Analyze.Heatmap); err != nil {
		return fmt.Errorf("rendering heatmap: %w", err)
	}
	log.Printf("main: heatmap saved to %s", cfg.Analyze.Heatmap)

	if err := analyzer.RenderCalendarWeeksPlot(summaries, chartOptions, cfg.Analyze.Calendar); err != nil {
		return fmt.Errorf("rendering calendar weeks plot: %w", err)
	}
	log.Printf("main: calendar weeks plot saved to %s", cfg.Analyze.Calendar)

	return nil
}
