package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting for one pipeline run. It is loaded
// once at startup and read-only afterwards.
type Config struct {
	RSSFeeds        []string     `yaml:"rss_feeds"`
	YouTubeChannels []string     `yaml:"youtube_channels"`
	Schedule        string       `yaml:"schedule"`
	RunOnStart      bool         `yaml:"run_on_start"`
	OpenAI          OpenAIConfig `yaml:"openai"`
	Kindle          KindleConfig `yaml:"kindle"`
	Output          OutputConfig `yaml:"output"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type KindleConfig struct {
	Email        string `yaml:"email"`
	SenderEmail  string `yaml:"sender_email"`
	SMTPServer   string `yaml:"smtp_server"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPPassword string `yaml:"smtp_password"`
}

type OutputConfig struct {
	OutputDir          string `yaml:"output_dir"`
	MaxArticlesPerFeed int    `yaml:"max_articles_per_feed"`
	MaxVideoSummaries  int    `yaml:"max_video_summaries"`
	DaysLookback       int    `yaml:"days_lookback"`
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// Default returns the starter configuration written on first run.
// Credentials come from the environment so the file can stay secret-free.
func Default() *Config {
	return &Config{
		RSSFeeds: []string{
			"https://feeds.feedburner.com/oreilly",
			"https://blog.pragmaticengineer.com/rss/",
			"https://martinfowler.com/feed.atom",
			"https://hbr.org/feed",
			"https://feeds.harvard.edu/blog/gazette",
		},
		YouTubeChannels: []string{},
		Schedule:        "0 7 * * *",
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  "gpt-4o-mini",
		},
		Kindle: KindleConfig{
			Email:        os.Getenv("KINDLE_EMAIL"),
			SenderEmail:  os.Getenv("SENDER_EMAIL"),
			SMTPServer:   "smtp.gmail.com",
			SMTPPort:     587,
			SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		},
		Output: OutputConfig{
			OutputDir:          "output",
			MaxArticlesPerFeed: 3,
			MaxVideoSummaries:  2,
			DaysLookback:       2,
		},
	}
}

func setDefaults(cfg *Config) {
	if cfg.Schedule == "" {
		cfg.Schedule = "0 7 * * *"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.Kindle.SMTPServer == "" {
		cfg.Kindle.SMTPServer = "smtp.gmail.com"
	}
	if cfg.Kindle.SMTPPort == 0 {
		cfg.Kindle.SMTPPort = 587
	}
	if cfg.Output.OutputDir == "" {
		cfg.Output.OutputDir = "output"
	}
	if cfg.Output.MaxArticlesPerFeed == 0 {
		cfg.Output.MaxArticlesPerFeed = 3
	}
	if cfg.Output.MaxVideoSummaries == 0 {
		cfg.Output.MaxVideoSummaries = 2
	}
	if cfg.Output.DaysLookback == 0 {
		cfg.Output.DaysLookback = 2
	}
}

// Missing credentials are deliberately not load errors: the features
// that need them are skipped at runtime with a hint instead.
func validate(cfg *Config) error {
	if cfg.Output.MaxArticlesPerFeed < 0 {
		return fmt.Errorf("config: output.max_articles_per_feed must not be negative")
	}
	if cfg.Output.MaxVideoSummaries < 0 {
		return fmt.Errorf("config: output.max_video_summaries must not be negative")
	}
	if cfg.Output.DaysLookback < 0 {
		return fmt.Errorf("config: output.days_lookback must not be negative")
	}
	if cfg.Kindle.SMTPPort < 1 || cfg.Kindle.SMTPPort > 65535 {
		return fmt.Errorf("config: kindle.smtp_port %d out of range", cfg.Kindle.SMTPPort)
	}
	return nil
}

// Load reads the config file, expands environment variables, applies
// defaults, and validates. When the file does not exist the default
// configuration is written there and used for the run.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if werr := save(cfg, path); werr != nil {
			return nil, werr
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: failed to marshal defaults: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}
