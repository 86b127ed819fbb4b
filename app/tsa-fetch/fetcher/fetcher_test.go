package fetcher

import (
	"bytes"
	"fmt"
	"io"
	logger "log"
	"testing"
	"time"

	"github.com/matryer/is"
	"golang.org/x/net/html"

	"github.com/sumitbindra/tsa-passenger-analysis/business/data/checkpoint"
)

const samplePage = `<html><body>
<div class="intro">TSA checkpoint travel numbers</div>
<table>
  <thead>
    <tr><th>Date</th><th>2024</th><th>2023</th></tr>
  </thead>
  <tbody>
    <tr><td>11/27/2024</td><td>2,100,000</td><td>1,900,000</td></tr>
    <tr><td>11/28/2024</td><td>2,950,000</td><td>2,700,000</td></tr>
    <tr><td>11/29/2024</td><td>-</td><td>2,500,000</td></tr>
    <tr><td>not a date</td><td>2,000,000</td><td>1,800,000</td></tr>
  </tbody>
</table>
</body></html>`

func testLogger() *logger.Logger {
	return logger.New(io.Discard, "", 0)
}

func testDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func parsePage(t *testing.T, content string) *html.Node {
	doc, err := html.Parse(bytes.NewReader([]byte(content)))
	if err != nil {
		t.Fatalf("unable to parse test page: %v", err)
	}
	return doc
}

func TestRecordsFromPage(t *testing.T) {
	is := is.New(t)
	records, skipped, err := recordsFromPage(parsePage(t, samplePage))
	is.NoErr(err)
	is.Equal(skipped, 2) // one empty count, one bad date
	is.Equal(len(records), 2)
	is.Equal(records[0], checkpoint.DailyRecord{Date: testDate(2024, time.November, 27), Passengers: 2100000, Year: 2024})
	is.Equal(records[1], checkpoint.DailyRecord{Date: testDate(2024, time.November, 28), Passengers: 2950000, Year: 2024})
}

func TestRecordsFromPage_noTable(t *testing.T) {
	is := is.New(t)
	_, _, err := recordsFromPage(parsePage(t, "<html><body><p>maintenance</p></body></html>"))
	is.True(err != nil)
}

func TestRecordsFromPage_noValidRows(t *testing.T) {
	is := is.New(t)
	page := `<table><tr><th>Date</th><th>2024</th></tr><tr><td>1/1/2024</td><td>-</td></tr></table>`
	_, skipped, err := recordsFromPage(parsePage(t, page))
	is.True(err != nil)
	is.Equal(skipped, 1)
}

// stubRetriever serves canned pages per url
type stubRetriever struct {
	pages map[string][]byte
}

func (s *stubRetriever) GetPage(url string) ([]byte, error) {
	page, found := s.pages[url]
	if !found {
		return nil, fmt.Errorf("no page for %s", url)
	}
	return page, nil
}

func TestFetcher_FetchYears(t *testing.T) {
	is := is.New(t)
	retriever := &stubRetriever{pages: map[string][]byte{
		"https://example.test/volumes/2024": []byte(samplePage),
	}}
	f := MakeFetcher(testLogger(), retriever, "https://example.test/volumes")

	// 2023 fails to fetch but 2024 succeeds, so the fetch as a whole succeeds
	result, err := f.FetchYears([]int{2023, 2024})
	is.NoErr(err)
	is.Equal(result.Years, []int{2024})
	is.Equal(len(result.Records), 2)
	is.Equal(result.Skipped, 2)

	// records are sorted by date
	for i := 1; i < len(result.Records); i++ {
		is.True(result.Records[i-1].Date.Before(result.Records[i].Date))
	}
}

func TestFetcher_FetchYears_allYearsFail(t *testing.T) {
	is := is.New(t)
	f := MakeFetcher(testLogger(), &stubRetriever{}, "https://example.test/volumes")
	_, err := f.FetchYears([]int{2023, 2024})
	is.True(err != nil)
}
