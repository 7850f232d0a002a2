package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LLM providers.
const (
	ProviderGemini  = "gemini"
	ProviderGateway = "gateway"
	ProviderMock    = "mock"
)

// Filler policies for cosmetic chart data.
const (
	FillerRandom = "random"
	FillerNone   = "none"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Analysis AnalysisConfig
	Dataset  DatasetConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxUploadBytes int64
}

type LLMConfig struct {
	Provider   string
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	Disabled   bool
}

type AnalysisConfig struct {
	Workers      int
	FillerPolicy string
}

type DatasetConfig struct {
	Path      string
	DemoLimit int
}

type LoggingConfig struct {
	Level       string
	Environment string
}

type MetricsConfig struct {
	Enabled bool
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini))
	if getEnvBool("USE_MOCK_LLM", false) {
		provider = ProviderMock
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvInt("PORT", 8080),
			ReadTimeout:    getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:    getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10485760)),
		},
		LLM: LLMConfig{
			Provider:   provider,
			APIKey:     firstEnv("GOOGLE_API_KEY", "LLM_API_KEY"),
			BaseURL:    llmBaseURL(provider),
			Model:      getEnv("LLM_MODEL", "gemini-2.0-flash"),
			Timeout:    getEnvDuration("LLM_TIMEOUT", 30*time.Second),
			MaxRetries: getEnvInt("LLM_MAX_RETRIES", 0),
			Disabled:   getEnvBool("LLM_DISABLED", false),
		},
		Analysis: AnalysisConfig{
			Workers:      getEnvInt("PIPELINE_WORKERS", 4),
			FillerPolicy: strings.ToLower(getEnv("FILLER_POLICY", FillerRandom)),
		},
		Dataset: DatasetConfig{
			Path:      getEnv("DATASET_PATH", "feedback.xlsx"),
			DemoLimit: getEnvInt("DEMO_LIMIT", 25),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Environment: getEnv("ENVIRONMENT", "local"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes < 1 {
		return fmt.Errorf("max upload bytes must be positive")
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderGateway, ProviderMock:
	default:
		return fmt.Errorf("unknown llm provider: %q", c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm timeout must be positive")
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm max retries must not be negative")
	}
	if c.Analysis.Workers < 1 {
		return fmt.Errorf("pipeline worker count must be at least 1")
	}
	switch c.Analysis.FillerPolicy {
	case FillerRandom, FillerNone:
	default:
		return fmt.Errorf("unknown filler policy: %q", c.Analysis.FillerPolicy)
	}
	return nil
}

// AIEnabled reports whether the primary classification path should be attempted.
func (c LLMConfig) AIEnabled() bool {
	if c.Disabled {
		return false
	}
	return c.Provider == ProviderMock || c.APIKey != ""
}

func llmBaseURL(provider string) string {
	if provider == ProviderGateway {
		return getEnv("LLM_GATEWAY_URL", "")
	}
	return getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models")
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
