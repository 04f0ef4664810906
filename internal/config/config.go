package config

import (
	"os"
	"strconv"
	"time"

	"gocouncil/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	AI       AIConfig
	Server   ServerConfig
	Database DatabaseConfig
}

// AIConfig holds judgment-service settings
type AIConfig struct {
	OpenAIKey      string
	OpenAIModel    string
	BaseURL        string
	MaxTokens      int
	Temperature    float64
	RequestTimeout time.Duration
	CacheTTL       time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the optional session-archive database settings. An
// empty URL disables archival.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		AI: AIConfig{
			OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:    getEnvOrDefault("OPENAI_MODEL", "gpt-4.1-mini"),
			BaseURL:        os.Getenv("OPENAI_BASE_URL"),
			MaxTokens:      getEnvInt("AI_MAX_TOKENS", 2048),
			Temperature:    getEnvFloat("AI_TEMPERATURE", 0.4),
			RequestTimeout: getEnvDuration("AI_REQUEST_TIMEOUT", 120*time.Second),
			CacheTTL:       getEnvDuration("AI_EVAL_CACHE_TTL", 10*time.Minute),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validate(config *Config) error {
	if config.AI.OpenAIKey == "" {
		return errors.ConfigInvalid("OPENAI_API_KEY is required")
	}
	if config.AI.OpenAIModel == "" {
		return errors.ConfigInvalid("OPENAI_MODEL cannot be empty")
	}
	if config.AI.MaxTokens <= 0 {
		return errors.ConfigInvalid("AI_MAX_TOKENS must be positive")
	}
	if config.AI.Temperature < 0 || config.AI.Temperature > 2 {
		return errors.ConfigInvalid("AI_TEMPERATURE must be between 0 and 2")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
