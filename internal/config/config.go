package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultSessionSecret = "change-me-session-secret"

// Config holds the whole application configuration, populated from environment variables.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	LLM     LLMConfig
	Session SessionConfig
	Content ContentConfig
	Worker  WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

// RedisConfig points each key-value namespace at a logical DB.
// All three default to DB 0; keys never collide because every key is prefixed.
type RedisConfig struct {
	Host       string
	Password   string
	GuidesDB   int
	MetadataDB int
	AdminDB    int
}

type LLMConfig struct {
	Provider        string // anthropic, gemini
	AnthropicAPIKey string
	AnthropicURL    string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
	MaxTokens       int
	Temperature     float64
	Timeout         time.Duration
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type ContentConfig struct {
	SiteName    string
	Language    string
	MaxQueryLen int
}

type WorkerConfig struct {
	// ViewRecorder selects how views are written back: "inline" (goroutine in the API
	// process) or "queue" (asynq task handled by cmd/worker).
	ViewRecorder      string
	Concurrency       int
	ReconcileSchedule string
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Game Guide API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host:       getEnv("REDIS_HOST", "localhost:6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			GuidesDB:   getEnvInt("REDIS_GUIDES_DB", 0),
			MetadataDB: getEnvInt("REDIS_METADATA_DB", 0),
			AdminDB:    getEnvInt("REDIS_ADMIN_DB", 0),
		},
		LLM: LLMConfig{
			Provider:        strings.ToLower(getEnv("LLM_PROVIDER", "anthropic")),
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicURL:    getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com/v1"),
			AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			MaxTokens:       getEnvInt("LLM_MAX_TOKENS", 3000),
			Temperature:     getEnvFloat("LLM_TEMPERATURE", 0.7),
			Timeout:         getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", defaultSessionSecret),
			TTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		},
		Content: ContentConfig{
			SiteName:    getEnv("SITE_NAME", "Guia Games BR"),
			Language:    getEnv("CONTENT_LANGUAGE", "Brazilian Portuguese"),
			MaxQueryLen: getEnvInt("MAX_QUERY_LENGTH", 200),
		},
		Worker: WorkerConfig{
			ViewRecorder:      strings.ToLower(getEnv("VIEW_RECORDER", "inline")),
			Concurrency:       getEnvInt("WORKER_CONCURRENCY", 10),
			ReconcileSchedule: getEnv("RECONCILE_SCHEDULE", "*/30 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations that cannot work.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "anthropic", "gemini":
	default:
		return fmt.Errorf("LLM_PROVIDER must be anthropic or gemini, got %q", c.LLM.Provider)
	}

	switch c.Worker.ViewRecorder {
	case "inline", "queue":
	default:
		return fmt.Errorf("VIEW_RECORDER must be inline or queue, got %q", c.Worker.ViewRecorder)
	}

	if c.Content.MaxQueryLen <= 0 {
		return fmt.Errorf("MAX_QUERY_LENGTH must be positive")
	}

	if c.App.Environment == "production" {
		if c.Session.Secret == defaultSessionSecret {
			return fmt.Errorf("SESSION_SECRET must be set in production")
		}

		// API keys may also come from the admin config record, so only warn.
		if c.LLM.AnthropicAPIKey == "" && c.LLM.GeminiAPIKey == "" {
			fmt.Println("WARNING: no LLM API key in environment - generation relies on admin config keys")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
