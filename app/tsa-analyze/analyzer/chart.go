package analyzer

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gopkg.in/yaml.v3"

	"github.com/sumitbindra/tsa-passenger-analysis/business/holiday"
)

// ChartOptions carries the presentation settings of the rendered charts.
// Zero values fall back to the built-in defaults.
type ChartOptions struct {
	Title        string  `yaml:"title"`
	XLabel       string  `yaml:"xlabel"`
	YLabel       string  `yaml:"ylabel"`
	FigureWidth  float64 `yaml:"figure_width"`
	FigureHeight float64 `yaml:"figure_height"`
	LineWidth    float64 `yaml:"line_width"`
	MarkerSize   float64 `yaml:"marker_size"`
}

func (o ChartOptions) withDefaults() ChartOptions {
	if o.Title == "" {
		o.Title = "Average Daily Passengers by Holiday Week"
	}
	if o.XLabel == "" {
		o.XLabel = "Holiday Week"
	}
	if o.YLabel == "" {
		o.YLabel = "Average Daily Passengers"
	}
	if o.FigureWidth <= 0 {
		o.FigureWidth = 14
	}
	if o.FigureHeight <= 0 {
		o.FigureHeight = 8
	}
	if o.LineWidth <= 0 {
		o.LineWidth = 2
	}
	if o.MarkerSize <= 0 {
		o.MarkerSize = 4
	}
	return o
}

// chartConfigFile is the visualization section of the holiday
// configuration file. The holiday_weeks section is parsed elsewhere.
type chartConfigFile struct {
	Visualization ChartOptions `yaml:"visualization"`
}

// LoadChartOptions reads chart presentation settings from the yaml file at
// path. A file without a visualization section yields the defaults.
func LoadChartOptions(path string) (ChartOptions, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return ChartOptions{}, fmt.Errorf("unable to read chart configuration %s: %w", path, err)
	}
	return parseChartOptions(content)
}

func parseChartOptions(content []byte) (ChartOptions, error) {
	var config chartConfigFile
	if err := yaml.Unmarshal(content, &config); err != nil {
		return ChartOptions{}, fmt.Errorf("unable to parse chart configuration: %w", err)
	}
	return config.Visualization, nil
}

// yearColors keeps each year's line the same color across chart runs
var yearColors = map[int]color.RGBA{
	2019: {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	2020: {R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	2021: {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	2022: {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	2023: {R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	2024: {R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	2025: {R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
}

func yearColor(year int) color.RGBA {
	if c, found := yearColors[year]; found {
		return c
	}
	return color.RGBA{A: 0xff}
}

// presentHolidays filters order down to the holiday names that actually
// appear in summaries, preserving chronological order
func presentHolidays(summaries []holiday.Summary, order []string) []string {
	present := make(map[string]bool)
	for _, summary := range summaries {
		present[summary.HolidayWeek] = true
	}
	var names []string
	for _, name := range order {
		if present[name] {
			names = append(names, name)
		}
	}
	// names outside the supplied ordering chart last
	var extra []string
	for name := range present {
		if !contains(order, name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func contains(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

// sortedYears returns the distinct years in summaries, ascending
func sortedYears(summaries []holiday.Summary) []int {
	seen := make(map[int]bool)
	var years []int
	for _, summary := range summaries {
		if !seen[summary.Year] {
			seen[summary.Year] = true
			years = append(years, summary.Year)
		}
	}
	sort.Ints(years)
	return years
}

// RenderHolidayAlignedPlot draws one line per year over the
// chronologically ordered holiday weeks and saves it as a png at path.
func RenderHolidayAlignedPlot(summaries []holiday.Summary, order []string, opts ChartOptions, path string) error {
	opts = opts.withDefaults()
	names := presentHolidays(summaries, order)
	position := make(map[string]int, len(names))
	for i, name := range names {
		position[name] = i
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.NominalX(names...)
	p.Legend.Top = true

	for _, year := range sortedYears(summaries) {
		var xys plotter.XYs
		for _, summary := range summaries {
			if summary.Year != year {
				continue
			}
			xys = append(xys, plotter.XY{
				X: float64(position[summary.HolidayWeek]),
				Y: summary.AvgPassengers,
			})
		}
		if len(xys) == 0 {
			continue
		}
		sort.Slice(xys, func(i, j int) bool { return xys[i].X < xys[j].X })

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		c := yearColor(year)
		line.Color = c
		line.Width = vg.Points(opts.LineWidth)
		points.Color = c
		points.Shape = draw.CircleGlyph{}
		points.Radius = vg.Points(opts.MarkerSize)
		p.Add(line, points)
		p.Legend.Add(strconv.Itoa(year), line, points)
	}

	return p.Save(vg.Length(opts.FigureWidth)*vg.Inch, vg.Length(opts.FigureHeight)*vg.Inch, path)
}

// summaryGrid adapts summaries to plotter.GridXYZ for heatmap rendering.
// Columns are years, rows are holiday weeks in chronological order.
type summaryGrid struct {
	years  []int
	names  []string
	values map[string]map[int]float64
}

func makeSummaryGrid(summaries []holiday.Summary, order []string) *summaryGrid {
	grid := summaryGrid{
		years:  sortedYears(summaries),
		names:  presentHolidays(summaries, order),
		values: make(map[string]map[int]float64),
	}
	for _, summary := range summaries {
		byYear, found := grid.values[summary.HolidayWeek]
		if !found {
			byYear = make(map[int]float64)
			grid.values[summary.HolidayWeek] = byYear
		}
		byYear[summary.Year] = summary.AvgPassengers
	}
	return &grid
}

func (g *summaryGrid) Dims() (int, int) { return len(g.years), len(g.names) }
func (g *summaryGrid) X(c int) float64  { return float64(c) }
func (g *summaryGrid) Y(r int) float64  { return float64(r) }

func (g *summaryGrid) Z(c, r int) float64 {
	return g.values[g.names[r]][g.years[c]]
}

// RenderHeatmap draws average daily passengers as a holiday week by year
// heatmap and saves it as a png at path.
func RenderHeatmap(summaries []holiday.Summary, order []string, opts ChartOptions, path string) error {
	opts = opts.withDefaults()
	grid := makeSummaryGrid(summaries, order)

	p := plot.New()
	p.Title.Text = "Average Daily Passengers by Holiday Week and Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Holiday Week"

	heatMap := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	p.Add(heatMap)

	yearLabels := make([]string, 0, len(grid.years))
	for _, year := range grid.years {
		yearLabels = append(yearLabels, strconv.Itoa(year))
	}
	p.NominalX(yearLabels...)
	p.NominalY(grid.names...)

	return p.Save(vg.Length(opts.FigureWidth)*vg.Inch, vg.Length(opts.FigureHeight)*vg.Inch, path)
}

// calendarPoints returns one point per summary of year, positioned at the
// ISO week of the summary's week start, with matching holiday name labels
func calendarPoints(summaries []holiday.Summary, year int) (plotter.XYs, []string) {
	var xys plotter.XYs
	var names []string
	for _, summary := range summaries {
		if summary.Year != year {
			continue
		}
		_, isoWeek := summary.WeekStart.ISOWeek()
		xys = append(xys, plotter.XY{X: float64(isoWeek), Y: summary.AvgPassengers})
		names = append(names, summary.HolidayWeek)
	}
	return xys, names
}

// RenderCalendarWeeksPlot draws one scatter point per holiday summary over
// the 52-week ISO calendar, one color per year with holiday name
// annotations, and saves it as a png at path.
func RenderCalendarWeeksPlot(summaries []holiday.Summary, opts ChartOptions, path string) error {
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = "Calendar Weeks with Holiday Markers"
	p.X.Label.Text = "ISO Calendar Week Number"
	p.Y.Label.Text = opts.YLabel
	p.X.Min, p.X.Max = 1, 53
	p.Legend.Top = true

	for _, year := range sortedYears(summaries) {
		xys, names := calendarPoints(summaries, year)
		if len(xys) == 0 {
			continue
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = yearColor(year)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(opts.MarkerSize)
		p.Add(scatter)
		p.Legend.Add(strconv.Itoa(year), scatter)

		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
		if err != nil {
			return err
		}
		p.Add(labels)
	}

	return p.Save(vg.Length(opts.FigureWidth)*vg.Inch, vg.Length(opts.FigureHeight)*vg.Inch, path)
}
