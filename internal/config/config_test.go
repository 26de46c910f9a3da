package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "sk-server")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("ENTITY_ALLOWLIST", "")

	c, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, "openai", c.LLMProvider)
	assert.Equal(t, "sk-server", c.ServerAPIKey)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, 30*time.Second, c.LLMTimeout)
	assert.Equal(t, 0, len(c.AllowList))
}

func TestLoadAnthropicKey(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	c, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, "anthropic", c.LLMProvider)
	assert.Equal(t, "sk-ant", c.ServerAPIKey)
}

func TestLoadAllowList(t *testing.T) {
	t.Setenv("ENTITY_ALLOWLIST", "Apple,Nvidia")

	c, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"Apple", "Nvidia"}, c.AllowList)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad provider", key: "LLM_PROVIDER", value: "mistral"},
		{name: "bad duration", key: "CACHE_TTL", value: "soon"},
		{name: "bad burst", key: "RATE_LIMIT_BURST", value: "many"},
		{name: "zero attempts", key: "WORKER_MAX_ATTEMPTS", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.NotEqual(t, nil, err)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "verbose"}).SlogLevel())
}
