package runner

import (
	"context"
	"fmt"
	"log"

	"github.com/cmartel/learning-journal/internal/digest"
)

// ArticleCollector produces article items from RSS feeds.
type ArticleCollector interface {
	Collect(ctx context.Context) []digest.Item
}

// VideoSummarizer produces AI-summarized video items.
type VideoSummarizer interface {
	ProcessVideos(ctx context.Context) []digest.Item
}

// JournalBuilder lays items out into a document and returns its path.
type JournalBuilder interface {
	CreateJournal(items []digest.Item) (string, error)
}

// Deliverer sends the built document to its destination.
type Deliverer interface {
	Send(path string) error
}

// Runner orchestrates the collect -> summarize -> build -> deliver pipeline.
type Runner struct {
	articles ArticleCollector
	videos   VideoSummarizer
	builder  JournalBuilder
	sender   Deliverer
}

func New(articles ArticleCollector, videos VideoSummarizer, builder JournalBuilder, sender Deliverer) *Runner {
	return &Runner{
		articles: articles,
		videos:   videos,
		builder:  builder,
		sender:   sender,
	}
}

// Run executes the full pipeline once. Per-source and delivery failures
// are absorbed along the way; only an unexpected failure (such as the
// journal not being writable) is returned.
func (r *Runner) Run(ctx context.Context) error {
	log.Println("Collecting RSS articles...")
	articles := r.articles.Collect(ctx)
	log.Printf("Collected %d articles", len(articles))

	log.Println("Processing YouTube videos...")
	videos := r.videos.ProcessVideos(ctx)
	log.Printf("Generated %d video summaries", len(videos))

	all := append(articles, videos...)
	if len(all) == 0 {
		log.Println("No content found for today")
		return nil
	}

	log.Println("Generating journal PDF...")
	path, err := r.builder.CreateJournal(all)
	if err != nil {
		return fmt.Errorf("runner: journal build failed: %w", err)
	}

	log.Println("Sending to Kindle...")
	if err := r.sender.Send(path); err != nil {
		log.Printf("WARNING: delivery failed: %v", err)
		log.Printf("Journal available locally: %s", path)
		return nil
	}

	log.Println("Daily journal sent to Kindle")
	return nil
}
