package config

import (
	"os"
	"strconv"

	"ruleforge/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	AI     AIConfig
	Server ServerConfig
	Data   DataConfig
}

// AIConfig holds settings for the rule-generation service
type AIConfig struct {
	OpenAIKey     string
	OpenAIModel   string
	BaseURL       string
	SystemContext string
	MaxTokens     int
	Temperature   float64
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds data processing settings
type DataConfig struct {
	SampleRows    int // rows included in generation prompts
	TypeSampleCap int // values sampled per column for type inference
}

// Load reads configuration from the environment. Only the API key is
// required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		AI: AIConfig{
			OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:   envOr("LLM_MODEL", "gpt-4o"),
			BaseURL:       envOr("LLM_BASE_URL", "https://api.openai.com/v1"),
			SystemContext: envOr("LLM_SYSTEM_CONTEXT", "You are a data quality engineer generating validation rules as JSON."),
			MaxTokens:     envInt("LLM_MAX_TOKENS", 4000),
			Temperature:   envFloat("LLM_TEMPERATURE", 0.2),
		},
		Server: ServerConfig{
			Port:    envOr("PORT", "8080"),
			GinMode: envOr("GIN_MODE", "release"),
		},
		Data: DataConfig{
			SampleRows:    envInt("DATA_SAMPLE_ROWS", 5),
			TypeSampleCap: envInt("DATA_TYPE_SAMPLE_CAP", 100),
		},
	}

	if cfg.AI.OpenAIKey == "" {
		return nil, errors.New(errors.CodeInternal, "OPENAI_API_KEY is required")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
