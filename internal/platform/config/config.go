// Package config loads application configuration from environment variables.
// All variables use the USTOZ_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Log    LogConfig

	// DefaultLanguage is the interface language new sessions start with.
	DefaultLanguage string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// AIConfig holds generative backend settings. A missing API key is not a
// startup error: generation calls fail at request time instead.
type AIConfig struct {
	Provider string // "google" or "openai"
	Google   GoogleConfig
	OpenAI   OpenAIConfig
}

// GoogleConfig holds Google Gemini provider settings.
type GoogleConfig struct {
	APIKey         string
	SyllabusModel  string
	MaterialsModel string
}

// OpenAIConfig holds OpenAI provider settings.
type OpenAIConfig struct {
	APIKey         string
	SyllabusModel  string
	MaterialsModel string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with USTOZ_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("USTOZ_SERVER_PORT", 8080),
			Host: envStr("USTOZ_SERVER_HOST", "0.0.0.0"),
		},
		AI: AIConfig{
			Provider: envStr("USTOZ_AI_PROVIDER", "google"),
			Google: GoogleConfig{
				APIKey:         envStr("USTOZ_AI_GOOGLE_API_KEY", ""),
				SyllabusModel:  envStr("USTOZ_AI_GOOGLE_SYLLABUS_MODEL", "gemini-3-flash-preview"),
				MaterialsModel: envStr("USTOZ_AI_GOOGLE_MATERIALS_MODEL", "gemini-3-pro-preview"),
			},
			OpenAI: OpenAIConfig{
				APIKey:         envStr("USTOZ_AI_OPENAI_API_KEY", ""),
				SyllabusModel:  envStr("USTOZ_AI_OPENAI_SYLLABUS_MODEL", "gpt-4o"),
				MaterialsModel: envStr("USTOZ_AI_OPENAI_MATERIALS_MODEL", "gpt-4o"),
			},
		},
		Log: LogConfig{
			Level:  envStr("USTOZ_LOG_LEVEL", "info"),
			Format: envStr("USTOZ_LOG_FORMAT", "json"),
		},
		DefaultLanguage: envStr("USTOZ_DEFAULT_LANGUAGE", "uz"),
	}

	return cfg, nil
}

// Validate checks that configuration values are coherent. API keys are not
// checked; a missing key surfaces on the first generation call.
func (c *Config) Validate() error {
	if c.AI.Provider != "google" && c.AI.Provider != "openai" {
		return fmt.Errorf("USTOZ_AI_PROVIDER must be 'google' or 'openai', got %q", c.AI.Provider)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("USTOZ_SERVER_PORT out of range: %d", c.Server.Port)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
