// Package fetcher retrieves daily checkpoint passenger volumes from the
// TSA passenger-volumes web site.
package fetcher

import (
	"bytes"
	"fmt"
	logger "log"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/sumitbindra/tsa-passenger-analysis/business/data/checkpoint"
)

// pageRetriever interface defines the http functionality fetcher needs,
// implemented by foundation/httpclient.PageClient
type pageRetriever interface {
	GetPage(url string) ([]byte, error)
}

// Fetcher downloads and parses per-year checkpoint volume pages
type Fetcher struct {
	log     *logger.Logger
	client  pageRetriever
	baseURL string
}

// MakeFetcher builds Fetcher
func MakeFetcher(log *logger.Logger, client pageRetriever, baseURL string) *Fetcher {
	return &Fetcher{
		log:     log,
		client:  client,
		baseURL: baseURL,
	}
}

// FetchResult holds all records retrieved across requested years along
// with the number of table rows that could not be used.
type FetchResult struct {
	Records []checkpoint.DailyRecord
	Skipped int
	Years   []int
}

// FetchYear retrieves and parses the page for one year.
// Returns the records found and the count of skipped rows.
func (f *Fetcher) FetchYear(year int) ([]checkpoint.DailyRecord, int, error) {
	url := fmt.Sprintf("%s/%d", f.baseURL, year)
	f.log.Printf("fetching data for %d from %s", year, url)

	body, err := f.client.GetPage(url)
	if err != nil {
		return nil, 0, fmt.Errorf("error fetching data for %d: %w", year, err)
	}
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("error parsing page for %d: %w", year, err)
	}

	records, skipped, err := recordsFromPage(doc)
	if err != nil {
		return nil, skipped, fmt.Errorf("no usable data for %d: %w", year, err)
	}
	f.log.Printf("fetched %d records for %d, skipped %d rows", len(records), year, skipped)
	return records, skipped, nil
}

// FetchYears retrieves every year in years, combining all records sorted
// by date. Years that fail to fetch are logged and skipped; an error is
// returned only when no year produced any records.
func (f *Fetcher) FetchYears(years []int) (*FetchResult, error) {
	result := FetchResult{}
	for _, year := range years {
		records, skipped, err := f.FetchYear(year)
		result.Skipped += skipped
		if err != nil {
			f.log.Printf("skipping year %d: %v", year, err)
			continue
		}
		result.Records = append(result.Records, records...)
		result.Years = append(result.Years, year)
	}
	if len(result.Records) == 0 {
		return nil, fmt.Errorf("no data was successfully fetched for any year")
	}
	sort.Slice(result.Records, func(i, j int) bool {
		return result.Records[i].Date.Before(result.Records[j].Date)
	})
	return &result, nil
}

// recordsFromPage extracts daily records from the first table in the page.
// Rows with blank or malformed cells are skipped and counted.
func recordsFromPage(doc *html.Node) ([]checkpoint.DailyRecord, int, error) {
	table := findFirstElement(doc, "table")
	if table == nil {
		return nil, 0, fmt.Errorf("no table found in page")
	}

	var records []checkpoint.DailyRecord
	skipped := 0
	rows := tableRows(table)
	for i, cells := range rows {
		if i == 0 {
			// header row
			continue
		}
		record, err := buildRecordFromRow(cells)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil, skipped, fmt.Errorf("no valid rows extracted from table")
	}
	return records, skipped, nil
}

// buildRecordFromRow parses the date and current-year passenger cells of a
// table row. The source lists dates as M/D/YYYY and counts with comma
// grouping; empty counts are published as "-" for days without data yet.
func buildRecordFromRow(cells []string) (checkpoint.DailyRecord, error) {
	if len(cells) < 2 {
		return checkpoint.DailyRecord{}, fmt.Errorf("row has %d cells, need at least 2", len(cells))
	}
	dateString := strings.TrimSpace(cells[0])
	passengersString := strings.ReplaceAll(strings.TrimSpace(cells[1]), ",", "")
	if passengersString == "" || passengersString == "-" {
		return checkpoint.DailyRecord{}, fmt.Errorf("no passenger count for %s", dateString)
	}

	date, err := time.Parse("1/2/2006", dateString)
	if err != nil {
		return checkpoint.DailyRecord{}, fmt.Errorf("unable to parse date %q: %v", dateString, err)
	}
	passengers, err := strconv.Atoi(passengersString)
	if err != nil {
		return checkpoint.DailyRecord{}, fmt.Errorf("unable to parse passenger count %q: %v", cells[1], err)
	}
	return checkpoint.MakeDailyRecord(date, passengers)
}

// findFirstElement finds the first element named name in depth first order
func findFirstElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirstElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

// tableRows collects the cell texts of every tr inside table. Header cells
// (th) and data cells (td) are treated alike so the caller can skip the
// header row by position.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			rows = append(rows, rowCells(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

// rowCells collects the text of each th or td element inside tr
func rowCells(tr *html.Node) []string {
	var cells []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th") {
			cells = append(cells, nodeText(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(tr)
	return cells
}

// nodeText concatenates all text content under n
func nodeText(n *html.Node) string {
	var builder strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			builder.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(builder.String())
}
