package holiday

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the yaml schema of a holiday configuration file
type fileConfig struct {
	HolidayWeeks []definitionConfig `yaml:"holiday_weeks"`
}

// definitionConfig is one holiday week entry in a configuration file
type definitionConfig struct {
	Name              string `yaml:"name"`
	AnchorType        string `yaml:"anchor_type"`
	AnchorDate        string `yaml:"anchor_date"`
	RelativeRule      string `yaml:"relative_rule"`
	WeekOffset        int    `yaml:"week_offset"`
	Priority          int    `yaml:"priority"`
	SpansYearBoundary bool   `yaml:"spans_year_boundary"`
}

// relativeRules is the closed set of supported relative anchor rule names.
// Weekday constants are stdlib time.Weekday.
var relativeRules = map[string]AnchorRule{
	"third_monday_january":     nthWeekdayRule{month: time.January, n: 3, weekday: time.Monday},
	"third_monday_february":    nthWeekdayRule{month: time.February, n: 3, weekday: time.Monday},
	"easter":                   easterRule{},
	"last_monday_may":          lastWeekdayRule{month: time.May, weekday: time.Monday},
	"first_monday_september":   nthWeekdayRule{month: time.September, n: 1, weekday: time.Monday},
	"second_monday_october":    nthWeekdayRule{month: time.October, n: 2, weekday: time.Monday},
	"fourth_thursday_november": nthWeekdayRule{month: time.November, n: 4, weekday: time.Thursday},
}

// LoadDefinitions reads holiday definitions from the yaml file at path
func LoadDefinitions(path string) ([]Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read holiday configuration %s: %w", path, err)
	}
	return ParseDefinitions(content)
}

// ParseDefinitions parses yaml holiday configuration content. Unknown
// anchor types and relative rule names are rejected here, at parse time,
// so a misconfigured catalog never reaches classification.
func ParseDefinitions(content []byte) ([]Definition, error) {
	var config fileConfig
	if err := yaml.Unmarshal(content, &config); err != nil {
		return nil, fmt.Errorf("unable to parse holiday configuration: %w", err)
	}
	if len(config.HolidayWeeks) == 0 {
		return nil, fmt.Errorf("holiday configuration contains no holiday_weeks entries")
	}
	defs := make([]Definition, 0, len(config.HolidayWeeks))
	for _, dc := range config.HolidayWeeks {
		def, err := buildDefinition(dc)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// buildDefinition converts one configuration entry into a Definition
func buildDefinition(dc definitionConfig) (Definition, error) {
	if dc.Name == "" {
		return Definition{}, &ConfigError{Name: dc.Name, Reason: "missing name"}
	}
	anchorType := dc.AnchorType
	if anchorType == "" {
		anchorType = "fixed"
	}

	var anchor AnchorRule
	switch anchorType {
	case "fixed":
		rule, err := parseFixedAnchor(dc.AnchorDate)
		if err != nil {
			return Definition{}, &ConfigError{Name: dc.Name, Reason: err.Error()}
		}
		anchor = rule
	case "relative":
		rule, found := relativeRules[dc.RelativeRule]
		if !found {
			return Definition{}, &ConfigError{Name: dc.Name,
				Reason: fmt.Sprintf("unknown relative_rule %q", dc.RelativeRule)}
		}
		anchor = rule
	default:
		return Definition{}, &ConfigError{Name: dc.Name,
			Reason: fmt.Sprintf("unknown anchor_type %q", dc.AnchorType)}
	}

	return Definition{
		Name:              dc.Name,
		Anchor:            anchor,
		WeekOffset:        dc.WeekOffset,
		Priority:          dc.Priority,
		SpansYearBoundary: dc.SpansYearBoundary,
	}, nil
}

// parseFixedAnchor parses an "MM-DD" anchor date
func parseFixedAnchor(anchorDate string) (AnchorRule, error) {
	parts := strings.SplitN(anchorDate, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("anchor_date %q is not in MM-DD form", anchorDate)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return nil, fmt.Errorf("anchor_date %q has invalid month", anchorDate)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return nil, fmt.Errorf("anchor_date %q has invalid day", anchorDate)
	}
	return fixedDateRule{month: time.Month(month), day: day}, nil
}

// DefaultDefinitions returns the built-in US travel holiday weeks, used
// when no configuration file is supplied.
func DefaultDefinitions() []Definition {
	content := []byte(defaultConfigYAML)
	defs, err := ParseDefinitions(content)
	if err != nil {
		// the built-in configuration is covered by tests
		panic(err)
	}
	return defs
}

// ChronologicalOrder returns holiday names ordered by their approximate
// position in the calendar year, for presentation. This ordering is
// supplied here rather than derived from dates so that week offsets and
// boundary-spanning windows cannot reshuffle charts between years.
func ChronologicalOrder() []string {
	return []string{
		"New Year Holiday",
		"MLK Jr. Day",
		"Presidents Day",
		"Spring Break",
		"Easter/Spring Holiday",
		"Memorial Day",
		"July 4th Independence Day",
		"Labor Day",
		"Columbus Day",
		"Halloween",
		"Veterans Day",
		"Thanksgiving",
		"Black Friday",
		"Christmas Holiday",
	}
}

const defaultConfigYAML = `
holiday_weeks:
  - name: New Year Holiday
    anchor_type: fixed
    anchor_date: 01-01
    week_offset: 0
    priority: 1
    spans_year_boundary: true
  - name: MLK Jr. Day
    anchor_type: relative
    relative_rule: third_monday_january
    priority: 2
  - name: Presidents Day
    anchor_type: relative
    relative_rule: third_monday_february
    priority: 3
  - name: Spring Break
    anchor_type: fixed
    anchor_date: 03-15
    priority: 4
  - name: Easter/Spring Holiday
    anchor_type: relative
    relative_rule: easter
    priority: 5
  - name: Memorial Day
    anchor_type: relative
    relative_rule: last_monday_may
    priority: 6
  - name: July 4th Independence Day
    anchor_type: fixed
    anchor_date: 07-04
    priority: 7
  - name: Labor Day
    anchor_type: relative
    relative_rule: first_monday_september
    priority: 8
  - name: Columbus Day
    anchor_type: relative
    relative_rule: second_monday_october
    priority: 9
  - name: Halloween
    anchor_type: fixed
    anchor_date: 10-31
    priority: 10
  - name: Veterans Day
    anchor_type: fixed
    anchor_date: 11-11
    priority: 11
  - name: Thanksgiving
    anchor_type: relative
    relative_rule: fourth_thursday_november
    priority: 12
  - name: Black Friday
    anchor_type: relative
    relative_rule: fourth_thursday_november
    week_offset: 1
    priority: 13
  - name: Christmas Holiday
    anchor_type: fixed
    anchor_date: 12-25
    priority: 14
    spans_year_boundary: true
`
