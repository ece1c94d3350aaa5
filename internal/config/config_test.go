package config

import (
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "LLM_MODEL", "LLM_BASE_URL", "LLM_SYSTEM_CONTEXT",
		"LLM_MAX_TOKENS", "LLM_TEMPERATURE", "PORT", "GIN_MODE",
		"DATA_SAMPLE_ROWS", "DATA_TYPE_SAMPLE_CAP",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected an error without OPENAI_API_KEY")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.AI.OpenAIModel != "gpt-4o" {
		t.Errorf("model = %s, want gpt-4o", cfg.AI.OpenAIModel)
	}
	if cfg.AI.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("base URL = %s", cfg.AI.BaseURL)
	}
	if cfg.AI.MaxTokens != 4000 {
		t.Errorf("max tokens = %d, want 4000", cfg.AI.MaxTokens)
	}
	if cfg.AI.Temperature != 0.2 {
		t.Errorf("temperature = %v, want 0.2", cfg.AI.Temperature)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Data.SampleRows != 5 {
		t.Errorf("sample rows = %d, want 5", cfg.Data.SampleRows)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("LLM_MAX_TOKENS", "2000")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.AI.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("model = %s", cfg.AI.OpenAIModel)
	}
	if cfg.AI.MaxTokens != 2000 {
		t.Errorf("max tokens = %d", cfg.AI.MaxTokens)
	}
	if cfg.AI.Temperature != 0.7 {
		t.Errorf("temperature = %v", cfg.AI.Temperature)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("port = %s", cfg.Server.Port)
	}
}

func TestInvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("LLM_MAX_TOKENS", "not-a-number")
	t.Setenv("LLM_TEMPERATURE", "warm")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.AI.MaxTokens != 4000 {
		t.Errorf("max tokens = %d, want fallback 4000", cfg.AI.MaxTokens)
	}
	if cfg.AI.Temperature != 0.2 {
		t.Errorf("temperature = %v, want fallback 0.2", cfg.AI.Temperature)
	}
}
