package youtube

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
	channelFeedBase  = "https://www.youtube.com/feeds/videos.xml?channel_id="
	videosPerChannel = 2
	maxDescription   = 800
	summaryTokens    = 250
	summaryTemp      = 0.3
	channelPause     = 2 * time.Second
)

const systemPrompt = "Vous êtes un assistant qui crée des résumés concis et informatifs de contenu éducatif en français."

// Completer generates text from a system + user conversation.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// Summarizer turns recent videos from YouTube channel feeds into
// AI-summarized digest items.
type Summarizer struct {
	client       *feed.Client
	ai           Completer
	channels     []string
	maxSummaries int
	lookback     time.Duration
	pause        time.Duration
	feedBase     string
	now          func() time.Time
}

// New builds a Summarizer. ai may be nil, which disables the feature.
func New(client *feed.Client, ai Completer, channels []string, maxSummaries, daysLookback int) *Summarizer {
	return &Summarizer{
		client:       client,
		ai:           ai,
		channels:     channels,
		maxSummaries: maxSummaries,
		lookback:     time.Duration(daysLookback) * 24 * time.Hour,
		pause:        channelPause,
		feedBase:     channelFeedBase,
		now:          time.Now,
	}
}

// ProcessVideos fetches every configured channel feed and returns the
// combined summary list, newest first, capped at the configured maximum.
// Without an AI client or channels it returns nothing and touches no
// network.
func (s *Summarizer) ProcessVideos(ctx context.Context) []digest.Item {
	if s.ai == nil {
		log.Println("OpenAI API key not configured, skipping video summaries")
		return nil
	}
	if len(s.channels) == 0 {
		log.Println("No YouTube channels configured")
		return nil
	}

	var all []digest.Item
	for _, channelID := range s.channels {
		log.Printf("Processing YouTube channel: %s", channelID)
		items, err := s.processChannel(ctx, channelID)
		if err != nil {
			log.Printf("WARNING: channel %s: %v", channelID, err)
			continue
		}
		all = append(all, items...)
		feed.Sleep(ctx, s.pause)
	}

	digest.SortByPublishedDesc(all)

	if len(all) > s.maxSummaries {
		all = all[:s.maxSummaries]
	}
	return all
}

func (s *Summarizer) processChannel(ctx context.Context, channelID string) ([]digest.Item, error) {
	parsed, err := s.client.Fetch(ctx, s.feedBase+channelID)
	if err != nil {
		return nil, fmt.Errorf("youtube: %w", err)
	}

	if len(parsed.Items) == 0 {
		log.Printf("No videos found for channel: %s", channelID)
		return nil, nil
	}

	channelName := parsed.Title
	if channelName == "" {
		channelName = fmt.Sprintf("Chaîne %s", channelID)
	}

	cutoff := s.now().Add(-s.lookback)

	entries := parsed.Items
	if len(entries) > videosPerChannel {
		entries = entries[:videosPerChannel]
	}

	var items []digest.Item
	for _, entry := range entries {
		published := publishedAt(entry, s.now)
		if published.Before(cutoff) {
			continue
		}

		title := feed.CleanText(entry.Title)
		description := feed.CleanText(entry.Description)

		items = append(items, digest.Item{
			Kind:        digest.KindVideo,
			Title:       title,
			Summary:     s.generateSummary(ctx, title, description),
			URL:         entry.Link,
			Published:   published,
			Source:      digest.SourceYouTube,
			ChannelName: channelName,
		})
	}
	return items, nil
}

// generateSummary asks the AI for a short summary. A failed call yields
// a fixed fallback body so the video still appears in the journal.
func (s *Summarizer) generateSummary(ctx context.Context, title, description string) string {
	excerpt := description
	if r := []rune(excerpt); len(r) > maxDescription {
		excerpt = string(r[:maxDescription])
	}

	prompt := fmt.Sprintf(`Créez un résumé concis (2-3 paragraphes) de cette vidéo YouTube basé sur son titre et sa description.
Concentrez-vous sur les points clés et les enseignements principaux qui seraient précieux pour l'apprentissage.
Répondez en français et soyez informatif mais concis.

Titre de la vidéo: %s

Description: %s...

Résumé:`, title, excerpt)

	summary, err := s.ai.Complete(ctx, systemPrompt, prompt, summaryTokens, summaryTemp)
	if err != nil {
		log.Printf("WARNING: summary generation failed: %v", err)
		return fmt.Sprintf("Résumé non disponible. Vidéo: %s", title)
	}
	return summary
}

func publishedAt(entry *gofeed.Item, now func() time.Time) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}
	return now()
}
