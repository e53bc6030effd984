package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/cmartel/learning-journal/internal/ai"
	"github.com/cmartel/learning-journal/internal/collector"
	"github.com/cmartel/learning-journal/internal/config"
	"github.com/cmartel/learning-journal/internal/feed"
	"github.com/cmartel/learning-journal/internal/journal"
	"github.com/cmartel/learning-journal/internal/kindle"
	"github.com/cmartel/learning-journal/internal/runner"
	"github.com/cmartel/learning-journal/internal/youtube"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", true, "run the pipeline once and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client := feed.NewClient()

	articles := collector.New(client, cfg.RSSFeeds, cfg.Output.MaxArticlesPerFeed, cfg.Output.DaysLookback)

	// ai.New returns nil without an API key; keep the interface nil too
	// so the summarizer sees the feature as disabled.
	var completer youtube.Completer
	if c := ai.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model); c != nil {
		completer = c
	}
	videos := youtube.New(client, completer, cfg.YouTubeChannels, cfg.Output.MaxVideoSummaries, cfg.Output.DaysLookback)

	builder := journal.NewBuilder(cfg.Output.OutputDir)
	sender := kindle.NewSender(cfg.Kindle)

	r := runner.New(articles, videos, builder, sender)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *once {
		log.Println("Starting learning journal run...")
		if err := r.Run(ctx); err != nil {
			log.Printf("ERROR: %v", err)
			os.Exit(1)
		}
		log.Println("Done")
		return
	}

	if cfg.RunOnStart {
		log.Println("Running initial journal...")
		if err := r.Run(ctx); err != nil {
			log.Printf("Initial run failed: %v", err)
		}
	}

	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule, func() {
		log.Println("Cron triggered, running journal...")
		if err := r.Run(ctx); err != nil {
			log.Printf("Scheduled run failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to set up cron schedule %q: %v", cfg.Schedule, err)
	}
	c.Start()
	log.Printf("Scheduled journal with cron expression: %s", cfg.Schedule)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received signal %v, shutting down...", sig)

	cancel()
	c.Stop()
	log.Println("Shutdown complete")
}
