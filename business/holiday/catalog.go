package holiday

import (
	"fmt"
	logger "log"
	"sync"
	"time"
)

// ConfigError reports a holiday definition that cannot be used as
// configured, such as an impossible fixed date or an unknown rule name.
// Name is empty when the error comes from a rule that does not know which
// definition it belongs to.
type ConfigError struct {
	Name   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Name == "" {
		return e.Reason
	}
	return fmt.Sprintf("holiday definition %q: %s", e.Name, e.Reason)
}

// Definition is one configured holiday week. Definitions are loaded once
// at startup and read only afterwards.
type Definition struct {
	Name   string
	Anchor AnchorRule
	// WeekOffset shifts the reporting window by whole weeks from the
	// anchor's own week
	WeekOffset int
	// Priority is carried from configuration for documentation only and is
	// never consulted during classification
	Priority          int
	SpansYearBoundary bool
}

// WeekInstance is the Monday-Sunday reporting window of one holiday week
// in one year. Derived on demand from a Definition, never persisted.
type WeekInstance struct {
	Name              string    `json:"name"`
	Year              int       `json:"year"`
	Monday            time.Time `json:"monday"`
	Sunday            time.Time `json:"sunday"`
	SpansYearBoundary bool      `json:"spans_year_boundary"`
}

// Contains reports whether date falls inside the instance's window,
// bounds inclusive. date must carry no time component.
func (w WeekInstance) Contains(date time.Time) bool {
	return !date.Before(w.Monday) && !date.After(w.Sunday)
}

// Catalog derives holiday week instances for requested years from a fixed
// list of definitions. Instances for a year are a pure function of the
// definitions, so they are cached for the life of the process.
type Catalog struct {
	log  *logger.Logger
	defs []Definition

	mu    sync.Mutex
	years map[int][]WeekInstance
}

// MakeCatalog builds a Catalog over defs. Definitions that fail to resolve
// for a particular year are skipped for that year with a logged warning.
func MakeCatalog(log *logger.Logger, defs []Definition) *Catalog {
	return &Catalog{
		log:   log,
		defs:  defs,
		years: make(map[int][]WeekInstance),
	}
}

// Definitions returns the configured definitions in configuration order
func (c *Catalog) Definitions() []Definition {
	return c.defs
}

// WeeksForYear returns the holiday week instances for year in
// configuration order, not chronological order. Callers needing
// chronological presentation must sort with an externally supplied
// ordering of holiday names.
func (c *Catalog) WeeksForYear(year int) []WeekInstance {
	c.mu.Lock()
	defer c.mu.Unlock()
	if weeks, found := c.years[year]; found {
		return weeks
	}
	weeks := c.buildYear(year)
	c.years[year] = weeks
	return weeks
}

// buildYear resolves every definition for year, skipping definitions whose
// anchor cannot be resolved
func (c *Catalog) buildYear(year int) []WeekInstance {
	weeks := make([]WeekInstance, 0, len(c.defs))
	for _, def := range c.defs {
		anchor, err := def.Anchor.Resolve(year)
		if err != nil {
			c.log.Printf("skipping holiday %q for %d: %v", def.Name, year, err)
			continue
		}
		monday, sunday := WeekBounds(anchor, def.WeekOffset)
		weeks = append(weeks, WeekInstance{
			Name:              def.Name,
			Year:              year,
			Monday:            monday,
			Sunday:            sunday,
			SpansYearBoundary: def.SpansYearBoundary,
		})
	}
	return weeks
}

// OverlapWarnings describes every pair of holiday windows that overlap in
// year. Overlaps are legal but make classification depend on configuration
// order, so callers should surface these at startup.
func (c *Catalog) OverlapWarnings(year int) []string {
	weeks := c.WeeksForYear(year)
	var warnings []string
	for i := 0; i < len(weeks); i++ {
		for j := i + 1; j < len(weeks); j++ {
			if !weeks[i].Sunday.Before(weeks[j].Monday) && !weeks[j].Sunday.Before(weeks[i].Monday) {
				warnings = append(warnings, fmt.Sprintf(
					"holiday windows %q and %q overlap in %d (%s-%s vs %s-%s), %q wins on configuration order",
					weeks[i].Name, weeks[j].Name, year,
					weeks[i].Monday.Format("2006-01-02"), weeks[i].Sunday.Format("2006-01-02"),
					weeks[j].Monday.Format("2006-01-02"), weeks[j].Sunday.Format("2006-01-02"),
					weeks[i].Name))
			}
		}
	}
	return warnings
}
