package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "MAX_UPLOAD_BYTES", "LLM_PROVIDER", "GOOGLE_API_KEY", "LLM_API_KEY",
		"LLM_GATEWAY_URL", "GEMINI_BASE_URL", "LLM_MODEL", "LLM_TIMEOUT", "LLM_MAX_RETRIES",
		"USE_MOCK_LLM", "LLM_DISABLED", "PIPELINE_WORKERS", "FILLER_POLICY",
		"DATASET_PATH", "DEMO_LIMIT", "LOG_LEVEL", "ENVIRONMENT", "METRICS_ENABLED",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(10485760), cfg.Server.MaxUploadBytes)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 0, cfg.LLM.MaxRetries)
	assert.Equal(t, FillerRandom, cfg.Analysis.FillerPolicy)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.LLM.AIEnabled(), "no api key means heuristic only")
}

func TestFromEnv_Custom(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LLM_PROVIDER", "gateway")
	t.Setenv("LLM_GATEWAY_URL", "http://gateway.local/v1/chat/completions")
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("FILLER_POLICY", "none")
	t.Setenv("PIPELINE_WORKERS", "8")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, ProviderGateway, cfg.LLM.Provider)
	assert.Equal(t, "http://gateway.local/v1/chat/completions", cfg.LLM.BaseURL)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, FillerNone, cfg.Analysis.FillerPolicy)
	assert.Equal(t, 8, cfg.Analysis.Workers)
	assert.True(t, cfg.LLM.AIEnabled())
}

func TestFromEnv_MockOverridesProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("USE_MOCK_LLM", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, cfg.LLM.Provider)
	assert.True(t, cfg.LLM.AIEnabled())

	t.Setenv("LLM_DISABLED", "true")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.LLM.AIEnabled())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "invalid server port"},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "openai" }, wantErr: "unknown llm provider"},
		{name: "zero workers", mutate: func(c *Config) { c.Analysis.Workers = 0 }, wantErr: "worker count"},
		{name: "bad filler", mutate: func(c *Config) { c.Analysis.FillerPolicy = "zeros" }, wantErr: "unknown filler policy"},
		{name: "negative retries", mutate: func(c *Config) { c.LLM.MaxRetries = -1 }, wantErr: "retries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg, err := FromEnv()
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromEnv_InvalidFillerFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("FILLER_POLICY", "sparkle")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
