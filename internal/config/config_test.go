package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "RAWG_API_KEY", "RAWG_BASE_URL", "CATALOG_TIMEOUT", "CATALOG_PAGE_SIZE",
		"CHAT_PROVIDER", "GEMINI_API_KEY", "CHAT_TEMPERATURE", "CHAT_TOP_P", "CHAT_TOP_K",
		"CHAT_MAX_TOKENS", "NATS_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.ServerPort)
	}
	if cfg.RAWGBaseURL != "https://api.rawg.io/api" {
		t.Errorf("Unexpected RAWG base URL %q", cfg.RAWGBaseURL)
	}
	if cfg.CatalogTimeout != 10*time.Second {
		t.Errorf("Expected 10s catalog timeout, got %s", cfg.CatalogTimeout)
	}
	if cfg.CatalogPageSize != 5 {
		t.Errorf("Expected page size 5, got %d", cfg.CatalogPageSize)
	}
	if cfg.Chat.Provider != "gemini" {
		t.Errorf("Expected gemini provider, got %q", cfg.Chat.Provider)
	}
	if cfg.Chat.Temperature != 0.7 || cfg.Chat.TopP != 0.85 || cfg.Chat.TopK != 40 || cfg.Chat.MaxTokens != 2048 {
		t.Errorf("Unexpected generation defaults: %+v", cfg.Chat)
	}
	if cfg.ChatConfigured() {
		t.Error("Expected chat to be unconfigured without a key")
	}
	if cfg.CatalogConfigured() {
		t.Error("Expected catalog to be unconfigured without a key")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHAT_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("RAWG_API_KEY", "rawg-test")
	t.Setenv("CATALOG_TIMEOUT", "3s")
	t.Setenv("CHAT_TEMPERATURE", "0.2")
	t.Setenv("CATALOG_PAGE_SIZE", "not-a-number")

	cfg := Load()

	if cfg.Chat.Provider != "openai" {
		t.Errorf("Expected provider to be lower-cased, got %q", cfg.Chat.Provider)
	}
	if cfg.Chat.ChatAPIKey() != "sk-test" {
		t.Errorf("Expected OpenAI key to be selected, got %q", cfg.Chat.ChatAPIKey())
	}
	if !cfg.ChatConfigured() || !cfg.CatalogConfigured() {
		t.Error("Expected both features to be configured")
	}
	if cfg.CatalogTimeout != 3*time.Second {
		t.Errorf("Expected 3s timeout, got %s", cfg.CatalogTimeout)
	}
	if cfg.Chat.Temperature != 0.2 {
		t.Errorf("Expected temperature 0.2, got %v", cfg.Chat.Temperature)
	}
	if cfg.CatalogPageSize != 5 {
		t.Errorf("Expected invalid page size to fall back to 5, got %d", cfg.CatalogPageSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty port", func(c *Config) { c.ServerPort = "" }, true},
		{"zero timeout", func(c *Config) { c.CatalogTimeout = 0 }, true},
		{"zero page size", func(c *Config) { c.CatalogPageSize = 0 }, true},
		{"negative screenshots", func(c *Config) { c.CatalogScreenshots = -1 }, true},
		{"unknown provider", func(c *Config) { c.Chat.Provider = "llama" }, true},
		{"anthropic provider", func(c *Config) { c.Chat.Provider = "anthropic" }, false},
		{"empty jwt secret", func(c *Config) { c.JWTSecret = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CHAT_PROVIDER", "")
			t.Setenv("PORT", "")
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDevelopment(t *testing.T) {
	t.Setenv("ENV", "Development")
	if !Load().Development() {
		t.Error("Expected ENV=Development to enable development mode")
	}
	t.Setenv("ENV", "")
	if Load().Development() {
		t.Error("Expected production by default")
	}
}

func TestCORSAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://gamebot.example.com, ,http://localhost:3000 ")
	got := Load().CORSAllowedOrigins
	if len(got) != 2 || got[0] != "https://gamebot.example.com" || got[1] != "http://localhost:3000" {
		t.Errorf("Unexpected origins %v", got)
	}

	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	if got := Load().CORSAllowedOrigins; len(got) != 0 {
		t.Errorf("Expected no origins, got %v", got)
	}
}
