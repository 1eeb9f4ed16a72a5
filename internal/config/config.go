// Package config provides environment configuration for the GameBot server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// Catalog settings
	RAWGAPIKey         string
	RAWGBaseURL        string
	CatalogTimeout     time.Duration
	CatalogPageSize    int
	CatalogScreenshots int

	// Chat backend settings
	Chat ChatConfig

	// NATS settings
	NATSURL   string
	NATSToken string

	// JWT settings
	JWTSecret string

	// CORS
	CORSAllowedOrigins []string

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel string
	LogFile  string
	Env      string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// ChatConfig holds the chat backend provider and its fixed generation parameters.
type ChatConfig struct {
	Provider        string
	GeminiAPIKey    string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	Model           string
	Temperature     float64
	TopP            float64
	TopK            int
	MaxTokens       int
	Timeout         time.Duration
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),

		// Catalog
		RAWGAPIKey:         getEnv("RAWG_API_KEY", ""),
		RAWGBaseURL:        getEnv("RAWG_BASE_URL", "https://api.rawg.io/api"),
		CatalogTimeout:     getDurationEnv("CATALOG_TIMEOUT", 10*time.Second),
		CatalogPageSize:    getIntEnv("CATALOG_PAGE_SIZE", 5),
		CatalogScreenshots: getIntEnv("CATALOG_SCREENSHOTS", 0),

		// Chat
		Chat: ChatConfig{
			Provider:        strings.ToLower(getEnv("CHAT_PROVIDER", "gemini")),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			Model:           getEnv("CHAT_MODEL", ""),
			Temperature:     getFloatEnv("CHAT_TEMPERATURE", 0.7),
			TopP:            getFloatEnv("CHAT_TOP_P", 0.85),
			TopK:            getIntEnv("CHAT_TOP_K", 40),
			MaxTokens:       getIntEnv("CHAT_MAX_TOKENS", 2048),
			Timeout:         getDurationEnv("CHAT_TIMEOUT", 60*time.Second),
		},

		// NATS
		NATSURL:   getEnv("NATS_URL", ""),
		NATSToken: getEnv("NATS_TOKEN", ""),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "development-secret-change-in-production"),

		// CORS
		CORSAllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS"),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
		Env:      getEnv("ENV", "production"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

// ChatAPIKey returns the credential for the selected chat provider.
func (c *ChatConfig) ChatAPIKey() string {
	switch c.Provider {
	case "anthropic":
		return c.AnthropicAPIKey
	case "openai":
		return c.OpenAIAPIKey
	default:
		return c.GeminiAPIKey
	}
}

// ChatConfigured reports whether a chat backend credential is present.
func (c *Config) ChatConfigured() bool {
	return c.Chat.ChatAPIKey() != ""
}

// CatalogConfigured reports whether the catalog credential is present.
func (c *Config) CatalogConfigured() bool {
	return c.RAWGAPIKey != ""
}

// Development reports whether the server runs with ENV=development.
func (c *Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}

// Validate checks settings that have no sensible fallback. Missing
// credentials are not errors; they only disable the matching feature.
func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.RAWGBaseURL == "" {
		return fmt.Errorf("RAWG_BASE_URL cannot be empty")
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be > 0")
	}
	if c.CatalogPageSize <= 0 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be > 0")
	}
	if c.CatalogScreenshots < 0 {
		return fmt.Errorf("CATALOG_SCREENSHOTS cannot be negative")
	}
	switch c.Chat.Provider {
	case "gemini", "anthropic", "openai":
	default:
		return fmt.Errorf("CHAT_PROVIDER %q is not supported", c.Chat.Provider)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getListEnv splits a comma-separated value, dropping empty items.
func getListEnv(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
