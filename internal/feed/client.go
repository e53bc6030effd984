package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// Some feed hosts reject requests without a browser-like User-Agent.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Client fetches and parses syndication feeds.
type Client struct {
	http   *http.Client
	parser *gofeed.Parser
}

func NewClient() *Client {
	return &Client{
		http:   &http.Client{Timeout: 10 * time.Second},
		parser: gofeed.NewParser(),
	}
}

// NewClientWithHTTP is used by tests to point the client at a fake server.
func NewClientWithHTTP(hc *http.Client) *Client {
	return &Client{
		http:   hc,
		parser: gofeed.NewParser(),
	}
}

// Fetch retrieves the feed at url and parses it as RSS or Atom.
func (c *Client) Fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: unexpected status %d", resp.StatusCode)
	}

	parsed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed: failed to parse: %w", err)
	}
	return parsed, nil
}

// Sleep pauses for d as a politeness throttle toward remote hosts,
// returning early if the context is cancelled.
func Sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
