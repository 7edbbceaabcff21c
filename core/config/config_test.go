package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
		Groq:     GroqConfig{APIKey: "gsk_test"},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, expected longpoll default", cfg.Telegram.RunMode)
	}
	if cfg.Groq.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("groq base_url = %q", cfg.Groq.BaseURL)
	}
	if cfg.Groq.Model == "" {
		t.Error("expected default groq model")
	}
	if cfg.Session.IdleTimeoutSeconds != 600 {
		t.Errorf("idle_timeout_seconds = %d, expected 600", cfg.Session.IdleTimeoutSeconds)
	}
	if cfg.Documents.OutputDir != "generated" {
		t.Errorf("output_dir = %q, expected generated", cfg.Documents.OutputDir)
	}
}

func TestNormalizeRequiredSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	if err := Normalize(cfg); err == nil || !strings.Contains(err.Error(), "telegram token") {
		t.Errorf("expected telegram token error, got %v", err)
	}

	cfg = validConfig()
	cfg.Groq.APIKey = ""
	if err := Normalize(cfg); err == nil || !strings.Contains(err.Error(), "groq api key") {
		t.Errorf("expected groq api key error, got %v", err)
	}
}

func TestNormalizeRunModes(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("polling alias not normalized: %q", cfg.Telegram.RunMode)
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	if err := Normalize(cfg); err == nil {
		t.Error("webhook mode without url/listen/port should fail")
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = "carrier-pigeon"
	if err := Normalize(cfg); err == nil {
		t.Error("invalid run_mode should fail")
	}
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != UpdateCallback {
		t.Errorf("exclusion not normalized: %q", cfg.RateLimit.ExcludeUpdates[0])
	}

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"sticker"}
	if err := Normalize(cfg); err == nil {
		t.Error("unknown exclusion should fail")
	}
}
