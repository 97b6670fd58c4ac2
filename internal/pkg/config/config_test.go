package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "WEB_PORT", "OPENAI_API_KEY", "GEMINI_API_KEY", "AI_PROVIDER", "CORS_ORIGINS", "BACKEND_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, "3000", cfg.Web.Port)
	assert.Equal(t, "http://localhost:8000", cfg.Web.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.Extractor.YTDLPTimeout)
	assert.Equal(t, "gpt-4o", cfg.AI.OpenAIModel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.AI.ResolvedProvider())
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://trip.example.com ,")
	t.Setenv("ITINERARY_CACHE_TTL", "5m")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("AI_PROVIDER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, []string{"http://localhost:3000", "https://trip.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, ProviderGoogle, cfg.AI.ResolvedProvider())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"SERVER_PORT", "eighty", "SERVER_PORT"},
		{"WEB_PORT", "70000", "WEB_PORT"},
		{"YTDLP_TIMEOUT", "soon", "YTDLP_TIMEOUT"},
		{"PLACES_CONCURRENCY", "-1", "PLACES_CONCURRENCY"},
		{"AI_PROVIDER", "anthropic", "AI_PROVIDER"},
		{"BACKEND_URL", "localhost", "BACKEND_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolvedProvider(t *testing.T) {
	both := AIConfig{OpenAIAPIKey: "o", GeminiAPIKey: "g"}
	assert.Equal(t, ProviderOpenAI, both.ResolvedProvider())

	both.Provider = ProviderGoogle
	assert.Equal(t, ProviderGoogle, both.ResolvedProvider())

	assert.Empty(t, AIConfig{Provider: ProviderOpenAI, GeminiAPIKey: "g"}.ResolvedProvider())
}
