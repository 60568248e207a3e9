package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "members.db", cfg.DBPath)
	assert.True(t, cfg.MockAI)
	assert.Empty(t, cfg.OpenAIKey, "no credential may be baked in")
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAIModel)
	assert.Equal(t, "Datavid", cfg.CompanyName)
	assert.Equal(t, "datavid.com", cfg.EmailDomain)
	assert.Empty(t, cfg.ResendKey)
	assert.True(t, cfg.Seed)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 20, cfg.RateLimitPerSecond)
	assert.Equal(t, 50, cfg.SlowQueryMs)
	assert.Equal(t, 200, cfg.SlowRequestMs)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"CELEBRATION_ENV":          "production",
		"CELEBRATION_ADDR":         ":9090",
		"CELEBRATION_MOCK_AI":      "false",
		"OPENAI_API_KEY":           " sk-test ",
		"CELEBRATION_SEED":         "0",
		"CELEBRATION_LOG_LEVEL":    "debug",
		"CELEBRATION_RATE_LIMIT":   "5",
		"CELEBRATION_EMAIL_DOMAIN": "example.org",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9090", cfg.Addr)
	assert.False(t, cfg.MockAI)
	assert.Equal(t, "sk-test", cfg.OpenAIKey)
	assert.False(t, cfg.Seed)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 5, cfg.RateLimitPerSecond)
	assert.Equal(t, "example.org", cfg.EmailDomain)
}

func TestFromEnv_LiveModeNeedsKey(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"CELEBRATION_MOCK_AI": "false"}))
	assert.ErrorIs(t, err, ErrMissingOpenAIKey)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad bool", "CELEBRATION_MOCK_AI", "maybe"},
		{"bad seed", "CELEBRATION_SEED", "yes please"},
		{"bad int", "CELEBRATION_RATE_LIMIT", "lots"},
		{"zero int", "CELEBRATION_SLOW_QUERY_MS", "0"},
		{"bad level", "CELEBRATION_LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(env(map[string]string{tt.key: tt.val}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_ReadsProcessEnv(t *testing.T) {
	t.Setenv("CELEBRATION_ADDR", ":7000")
	t.Setenv("CELEBRATION_MOCK_AI", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
}
