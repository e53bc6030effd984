package digest

import (
	"testing"
	"time"
)

func TestBodyPrefersSummary(t *testing.T) {
	it := Item{Content: "full content", Summary: "short summary"}
	if got := it.Body(); got != "short summary" {
		t.Errorf("Expected summary preferred, got %q", got)
	}
}

func TestBodyFallsBackToContent(t *testing.T) {
	it := Item{Content: "full content"}
	if got := it.Body(); got != "full content" {
		t.Errorf("Expected content fallback, got %q", got)
	}
}

func TestSourceLabel(t *testing.T) {
	art := Item{Kind: KindArticle, Source: "Example Blog", ChannelName: "ignored"}
	if got := art.SourceLabel(); got != "Example Blog" {
		t.Errorf("Expected feed title for articles, got %q", got)
	}

	vid := Item{Kind: KindVideo, Source: SourceYouTube, ChannelName: "Tech Channel"}
	if got := vid.SourceLabel(); got != "Tech Channel" {
		t.Errorf("Expected channel name for videos, got %q", got)
	}
}

func TestSortByPublishedDesc(t *testing.T) {
	base := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	items := []Item{
		{Title: "old", Published: base.Add(-48 * time.Hour)},
		{Title: "new", Published: base},
		{Title: "mid", Published: base.Add(-24 * time.Hour)},
	}

	SortByPublishedDesc(items)

	want := []string{"new", "mid", "old"}
	for i, title := range want {
		if items[i].Title != title {
			t.Errorf("Position %d: expected %q, got %q", i, title, items[i].Title)
		}
	}
}

func TestSortByPublishedDescStable(t *testing.T) {
	ts := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	items := []Item{
		{Title: "first", Published: ts},
		{Title: "second", Published: ts},
	}

	SortByPublishedDesc(items)

	if items[0].Title != "first" || items[1].Title != "second" {
		t.Error("Expected equal timestamps to keep their relative order")
	}
}

func TestLongDateFR(t *testing.T) {
	got := LongDateFR(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))
	if got != "27 août 2026" {
		t.Errorf("Expected '27 août 2026', got %q", got)
	}
}

func TestShortDate(t *testing.T) {
	got := ShortDate(time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC))
	if got != "07/08/2026" {
		t.Errorf("Expected '07/08/2026', got %q", got)
	}
}
