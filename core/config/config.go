package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminID int64  `yaml:"admin_id" envconfig:"TELEGRAM_ADMIN_ID"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// GroqConfig configures the chat-completion API used for document generation.
// Groq exposes an OpenAI-compatible endpoint, so only the base URL and key
// differ from a stock OpenAI setup.
type GroqConfig struct {
	APIKey  string `yaml:"api_key" envconfig:"GROQ_API_KEY"`
	BaseURL string `yaml:"base_url" envconfig:"GROQ_BASE_URL"`
	Model   string `yaml:"model" envconfig:"GROQ_MODEL"`
	// GenerateMaxTokens caps document generation responses; 0 -> default.
	GenerateMaxTokens int `yaml:"generate_max_tokens" envconfig:"GROQ_GENERATE_MAX_TOKENS"`
	// PrecheckMaxTokens caps the missing-info pre-check; 0 -> default.
	PrecheckMaxTokens int `yaml:"precheck_max_tokens" envconfig:"GROQ_PRECHECK_MAX_TOKENS"`
}

// SessionConfig controls the per-chat conversation store.
type SessionConfig struct {
	// IdleTimeoutSeconds is how long a session survives without messages; 0 -> default.
	IdleTimeoutSeconds int `yaml:"idle_timeout_seconds" envconfig:"SESSION_IDLE_TIMEOUT_SECONDS"`
}

// DocumentsConfig controls generated artifact placement.
type DocumentsConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"DOCUMENTS_OUTPUT_DIR"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
	// UpdateInlineQuery identifies inline query updates for rate limit exclusions.
	UpdateInlineQuery = "inline_query"
)

// RateLimitConfig holds settings for rate limiting.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
// - "inline_query": inline query updates
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

const (
	defaultGroqBaseURL       = "https://api.groq.com/openai/v1"
	defaultGroqModel         = "llama3-70b-8192"
	defaultIdleTimeoutSec    = 600
	defaultOutputDir         = "generated"
	defaultGenerateMaxTokens = 2000
	defaultPrecheckMaxTokens = 200
)

// Config aggregates the application configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Groq      GroqConfig      `yaml:"groq"`
	Session   SessionConfig   `yaml:"session"`
	Documents DocumentsConfig `yaml:"documents"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CoreConfig returns the config itself so it can act as a carrier for
// the command runner.
func (c *Config) CoreConfig() *Config { return c }

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}
	if cfg.Groq.APIKey == "" {
		return fmt.Errorf("groq api key is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if strings.TrimSpace(cfg.Groq.BaseURL) == "" {
		cfg.Groq.BaseURL = defaultGroqBaseURL
	}
	if strings.TrimSpace(cfg.Groq.Model) == "" {
		cfg.Groq.Model = defaultGroqModel
	}
	if cfg.Groq.GenerateMaxTokens <= 0 {
		cfg.Groq.GenerateMaxTokens = defaultGenerateMaxTokens
	}
	if cfg.Groq.PrecheckMaxTokens <= 0 {
		cfg.Groq.PrecheckMaxTokens = defaultPrecheckMaxTokens
	}

	if cfg.Session.IdleTimeoutSeconds < 0 {
		return fmt.Errorf("session.idle_timeout_seconds must be >= 0")
	}
	if cfg.Session.IdleTimeoutSeconds == 0 {
		cfg.Session.IdleTimeoutSeconds = defaultIdleTimeoutSec
	}
	if strings.TrimSpace(cfg.Documents.OutputDir) == "" {
		cfg.Documents.OutputDir = defaultOutputDir
	}

	allowed := map[string]struct{}{
		UpdateCallback:    {},
		UpdateMessage:     {},
		UpdateInlineQuery: {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message, inline_query", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}
	return nil
}
