// Package httpclient provides basic http functions
package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// PageClient retrieves web pages with a fixed User-Agent and timeout.
// The source web site rejects requests without a browser User-Agent.
type PageClient struct {
	client    *http.Client
	userAgent string
}

// MakePageClient builds PageClient
func MakePageClient(timeout time.Duration, userAgent string) *PageClient {
	return &PageClient{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// GetPage retrieves the body of url.
// Returns an error on any non-200 response.
func (p *PageClient) GetPage(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s retrieving %s", resp.Status, url)
	}
	return io.ReadAll(resp.Body)
}
