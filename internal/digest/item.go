package digest

import (
	"sort"
	"time"
)

// Kind discriminates the two item variants. It is resolved once at
// construction time; the renderer only ever consults this field.
type Kind int

const (
	KindArticle Kind = iota
	KindVideo
)

// SourceYouTube is the fixed source label carried by video items.
const SourceYouTube = "YouTube"

// Item is one renderable unit of the journal: an RSS article or an
// AI-summarized video. Items are immutable after construction; the
// pipeline only filters, sorts and collects them.
type Item struct {
	Kind        Kind
	Title       string
	Content     string    // cleaned full text (articles)
	Summary     string    // short derived summary, or the AI summary (videos)
	URL         string
	Published   time.Time // never zero; defaults to fetch time
	Source      string    // feed title, or SourceYouTube for videos
	ChannelName string    // videos only
}

// Body returns the text to render: the summary when present, otherwise
// the full content.
func (it Item) Body() string {
	if it.Summary != "" {
		return it.Summary
	}
	return it.Content
}

// SourceLabel returns the human-facing origin of the item: the channel
// name for videos, the feed title for articles.
func (it Item) SourceLabel() string {
	if it.Kind == KindVideo {
		return it.ChannelName
	}
	return it.Source
}

// SortByPublishedDesc orders items most recent first.
func SortByPublishedDesc(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})
}
