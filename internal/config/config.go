package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string `yaml:"url"` // empty: in-memory rate limiting only
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AIConfig struct {
	OpenRouterKey   string        `yaml:"openrouter_key"`
	BaseURL         string        `yaml:"base_url"`
	Model           string        `yaml:"model"`
	Referer         string        `yaml:"referer"` // HTTP-Referer attribution header
	Title           string        `yaml:"title"`   // X-Title attribution header
	Timeout         time.Duration `yaml:"timeout"`
	ConcurrentLimit int           `yaml:"concurrent_limit"` // max concurrent upstream calls
}

type ChatConfig struct {
	RateLimit     int           `yaml:"rate_limit"`     // requests per window per client
	RateWindow    time.Duration `yaml:"rate_window"`
	SessionCap    int           `yaml:"session_cap"`    // max stored messages per session
	MaxDocuments  int           `yaml:"max_documents"`  // grounding documents per request
	HistoryLimit  int           `yaml:"history_limit"`  // prior turns per request
	HistoryMode   string        `yaml:"history_mode"`   // recent|earliest
	SweepInterval time.Duration `yaml:"sweep_interval"` // expired limiter entry sweep
}

type ContactConfig struct {
	WebhookURL string        `yaml:"webhook_url"`
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
	Timeout    time.Duration `yaml:"timeout"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	AI       AIConfig       `yaml:"ai"`
	Chat     ChatConfig     `yaml:"chat"`
	Contact  ContactConfig  `yaml:"contact"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML config file and applies defaults, minimal
// validation and environment overrides for secrets. Required credentials
// missing at startup are a fatal configuration error, never a per-request
// validation failure.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Secrets and endpoints may come from the environment instead of the file.
	applyEnvOverride(&cfg.AI.OpenRouterKey, "OPENROUTER_API_KEY")
	applyEnvOverride(&cfg.Database.URL, "DATABASE_URL")
	applyEnvOverride(&cfg.Redis.URL, "REDIS_URL")
	applyEnvOverride(&cfg.Contact.WebhookURL, "CONTACT_WEBHOOK_URL")

	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "openai/gpt-4o-mini"
	}
	if cfg.AI.Timeout <= 0 {
		cfg.AI.Timeout = 30 * time.Second
	}
	if cfg.AI.ConcurrentLimit <= 0 {
		cfg.AI.ConcurrentLimit = 16
	}
	if cfg.Chat.RateLimit <= 0 {
		cfg.Chat.RateLimit = 10
	}
	if cfg.Chat.RateWindow <= 0 {
		cfg.Chat.RateWindow = time.Minute
	}
	if cfg.Chat.SessionCap <= 0 {
		cfg.Chat.SessionCap = 100
	}
	if cfg.Chat.MaxDocuments <= 0 {
		cfg.Chat.MaxDocuments = 10
	}
	if cfg.Chat.HistoryLimit <= 0 {
		cfg.Chat.HistoryLimit = 20
	}
	if cfg.Chat.HistoryMode == "" {
		cfg.Chat.HistoryMode = "recent"
	}
	if cfg.Chat.SweepInterval <= 0 {
		cfg.Chat.SweepInterval = cfg.Chat.RateWindow
	}
	if cfg.Contact.RateLimit <= 0 {
		cfg.Contact.RateLimit = 5
	}
	if cfg.Contact.RateWindow <= 0 {
		cfg.Contact.RateWindow = time.Hour
	}
	if cfg.Contact.Timeout <= 0 {
		cfg.Contact.Timeout = 30 * time.Second
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.AI.OpenRouterKey == "" {
		return nil, errors.New("ai.openrouter_key is required")
	}
	if cfg.Contact.WebhookURL == "" {
		return nil, errors.New("contact.webhook_url is required")
	}
	if cfg.Chat.HistoryMode != "recent" && cfg.Chat.HistoryMode != "earliest" {
		return nil, fmt.Errorf("chat.history_mode must be recent or earliest, got %q", cfg.Chat.HistoryMode)
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyEnvOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
