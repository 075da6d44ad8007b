package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Save original env and restore after test
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i, c := range env {
				if c == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}()

	os.Clearenv()

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Port", cfg.Port, 8080},
		{"LogLevel", cfg.LogLevel, "info"},
		{"MaxUploadSize", cfg.MaxUploadSize, int64(10485760)},
		{"LLMProvider", cfg.LLMProvider, "gemini"},
		{"GeminiModel", cfg.GeminiModel, "gemini-1.5-flash"},
		{"OpenAIModel", cfg.OpenAIModel, "gpt-4o-mini"},
		{"SessionProvider", cfg.SessionProvider, "memory"},
		{"SessionTTL", cfg.SessionTTL, 30 * time.Minute},
		{"LLMTimeout", cfg.LLMTimeout, 60 * time.Second},
		{"RequestTimeout", cfg.RequestTimeout, 120 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_TTL", "5m")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Errorf("expected session ttl 5m, got %v", cfg.SessionTTL)
	}
}

func TestLoadProviderOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("SESSION_PROVIDER", "redis")

	cfg := Load()

	if cfg.LLMProvider != "openai" {
		t.Errorf("expected LLM provider 'openai', got %s", cfg.LLMProvider)
	}
	if cfg.SessionProvider != "redis" {
		t.Errorf("expected session provider 'redis', got %s", cfg.SessionProvider)
	}
}
