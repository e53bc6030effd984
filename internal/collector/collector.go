package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/cmartel/learning-journal/internal/digest"
	"github.com/cmartel/learning-journal/internal/feed"
)

const (
	maxContentLen = 1000
	maxSummaryLen = 200
	feedPause     = 1 * time.Second
)

// Collector gathers recent articles from configured RSS feeds.
type Collector struct {
	client     *feed.Client
	feeds      []string
	maxPerFeed int
	lookback   time.Duration
	pause      time.Duration
	now        func() time.Time
}

func New(client *feed.Client, feeds []string, maxPerFeed, daysLookback int) *Collector {
	return &Collector{
		client:     client,
		feeds:      feeds,
		maxPerFeed: maxPerFeed,
		lookback:   time.Duration(daysLookback) * 24 * time.Hour,
		pause:      feedPause,
		now:        time.Now,
	}
}

// Collect fetches every configured feed and returns the combined article
// list, newest first, capped at maxPerFeed x number of feeds. A failing
// feed contributes zero articles and never aborts the run.
func (c *Collector) Collect(ctx context.Context) []digest.Item {
	var all []digest.Item

	if len(c.feeds) == 0 {
		log.Println("No RSS feeds configured")
		return all
	}

	for _, feedURL := range c.feeds {
		log.Printf("Processing feed: %s", feedURL)
		items, err := c.processFeed(ctx, feedURL)
		if err != nil {
			log.Printf("WARNING: feed %s: %v", feedURL, err)
			continue
		}
		all = append(all, items...)
		feed.Sleep(ctx, c.pause)
	}

	digest.SortByPublishedDesc(all)

	// The original cap formula is kept as-is: per-feed cap times the
	// number of configured feeds, regardless of how many each returned.
	maxTotal := c.maxPerFeed * len(c.feeds)
	if len(all) > maxTotal {
		all = all[:maxTotal]
	}
	return all
}

func (c *Collector) processFeed(ctx context.Context, feedURL string) ([]digest.Item, error) {
	parsed, err := c.client.Fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("collector: %w", err)
	}

	if len(parsed.Items) == 0 {
		log.Printf("No entries found in feed: %s", feedURL)
		return nil, nil
	}

	source := parsed.Title
	if source == "" {
		source = feedURL
	}

	cutoff := c.now().Add(-c.lookback)

	entries := parsed.Items
	if len(entries) > c.maxPerFeed {
		entries = entries[:c.maxPerFeed]
	}

	var items []digest.Item
	for _, entry := range entries {
		published := publishedAt(entry, c.now)
		if published.Before(cutoff) {
			continue
		}

		content := feed.Truncate(feed.CleanText(extractContent(entry)), maxContentLen)

		items = append(items, digest.Item{
			Kind:      digest.KindArticle,
			Title:     feed.CleanText(entry.Title),
			Content:   content,
			Summary:   feed.Truncate(content, maxSummaryLen),
			URL:       entry.Link,
			Published: published,
			Source:    source,
		})
	}
	return items, nil
}

// publishedAt prefers the publish timestamp, falls back to the updated
// timestamp, and defaults to now so items are never undated.
func publishedAt(entry *gofeed.Item, now func() time.Time) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed
	}
	return now()
}

// extractContent picks the entry body from the first populated field:
// full content, then the summary/description.
func extractContent(entry *gofeed.Item) string {
	if entry.Content != "" {
		return entry.Content
	}
	return entry.Description
}
