package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("Expected default model, got %q", cfg.OpenAI.Model)
	}
	if cfg.Kindle.SMTPServer != "smtp.gmail.com" {
		t.Errorf("Expected default SMTP server, got %q", cfg.Kindle.SMTPServer)
	}
	if cfg.Kindle.SMTPPort != 587 {
		t.Errorf("Expected default SMTP port 587, got %d", cfg.Kindle.SMTPPort)
	}
	if cfg.Output.MaxArticlesPerFeed != 3 {
		t.Errorf("Expected default article cap 3, got %d", cfg.Output.MaxArticlesPerFeed)
	}
	if cfg.Output.DaysLookback != 2 {
		t.Errorf("Expected default lookback 2, got %d", cfg.Output.DaysLookback)
	}
	if len(cfg.RSSFeeds) == 0 {
		t.Error("Expected default feed list to be non-empty")
	}

	// The default config must have been persisted.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected defaults written to %s: %v", path, err)
	}

	// A second load reads the persisted file.
	again, err := Load(path)
	if err != nil {
		t.Fatalf("Second Load returned error: %v", err)
	}
	if again.Output.MaxVideoSummaries != cfg.Output.MaxVideoSummaries {
		t.Error("Persisted config does not round-trip")
	}
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `rss_feeds:
  - https://example.com/feed.xml
youtube_channels:
  - UC123
openai:
  api_key: sk-test
kindle:
  email: me@kindle.com
  sender_email: me@gmail.com
  smtp_password: secret
output:
  output_dir: /tmp/journal
  max_articles_per_feed: 5
  days_lookback: 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(cfg.RSSFeeds) != 1 || cfg.RSSFeeds[0] != "https://example.com/feed.xml" {
		t.Errorf("Unexpected feeds: %v", cfg.RSSFeeds)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("Unexpected API key %q", cfg.OpenAI.APIKey)
	}
	if cfg.Output.MaxArticlesPerFeed != 5 {
		t.Errorf("Expected article cap 5, got %d", cfg.Output.MaxArticlesPerFeed)
	}
	if cfg.Output.DaysLookback != 7 {
		t.Errorf("Expected lookback 7, got %d", cfg.Output.DaysLookback)
	}
	// Unset fields still get defaults.
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("Expected default model, got %q", cfg.OpenAI.Model)
	}
	if cfg.Output.MaxVideoSummaries != 2 {
		t.Errorf("Expected default video cap 2, got %d", cfg.Output.MaxVideoSummaries)
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_JOURNAL_KEY", "expanded-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "openai:\n  api_key: ${TEST_JOURNAL_KEY}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.OpenAI.APIKey != "expanded-key" {
		t.Errorf("Expected env-expanded key, got %q", cfg.OpenAI.APIKey)
	}
}

func TestLoadUnsetEnvVarLeftVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "openai:\n  api_key: ${DEFINITELY_NOT_SET_123}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.OpenAI.APIKey != "${DEFINITELY_NOT_SET_123}" {
		t.Errorf("Expected verbatim placeholder, got %q", cfg.OpenAI.APIKey)
	}
}

func TestLoadRejectsNegativeCaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "output:\n  max_articles_per_feed: -1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for negative article cap")
	}
	if !strings.Contains(err.Error(), "max_articles_per_feed") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadMissingCredentialsIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "rss_feeds:\n  - https://example.com/feed.xml\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Kindle.Email != "" || cfg.OpenAI.APIKey != "" {
		t.Error("Expected empty credentials to pass through")
	}
}
