package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SEARCH_TOOL_HTTP_PORT", "SEARCH_TOOL_LOG_LEVEL", "SEARCH_TOOL_LOG_FORMAT",
		"LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT",
		"SERPER_API_KEY", "SERPER_BASE_URL", "SERPER_HTTP_TIMEOUT",
		"SEARCH_TOOL_DEPLOYMENT_FILE", "ENVIRONMENT", "OTEL_ENABLED",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_HEADERS", "OTEL_SAMPLING_RATE",
		"SEARCH_TOOL_PII_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8092", cfg.HTTPPort)
	assert.Equal(t, ":8092", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "", cfg.SerperAPIKey)
	assert.Equal(t, "https://google.serper.dev", cfg.SerperBaseURL)
	assert.Equal(t, 15*time.Second, cfg.SerperTimeout())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "configs/deployment.yml", cfg.DeploymentFile)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERPER_API_KEY", "secret")
	t.Setenv("SERPER_HTTP_TIMEOUT", "3")
	t.Setenv("SEARCH_TOOL_HTTP_PORT", "9000")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.SerperAPIKey)
	assert.Equal(t, 3*time.Second, cfg.SerperTimeout())
	assert.Equal(t, ":9000", cfg.Addr())
}

func TestLoadConfig_GlobalLogFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)

	t.Setenv("SEARCH_TOOL_LOG_LEVEL", "warn")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_Observability(t *testing.T) {
	clearEnv(t)
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")
	t.Setenv("OTEL_SAMPLING_RATE", "0.5")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "hashed", cfg.PIILevel)

	obs := cfg.Observability("search-web-tool", "1.0.0")
	assert.True(t, obs.TracingEnabled)
	assert.Equal(t, "http://collector:4318", obs.OTLPEndpoint)
	assert.Equal(t, 0.5, obs.SamplingRate)
	assert.Equal(t, "production", obs.Environment)
	assert.Equal(t, "search-web-tool", obs.ServiceName)
	assert.Equal(t, "1.0.0", obs.ServiceVersion)
}

func TestLoadConfig_RejectsNegativeTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERPER_HTTP_TIMEOUT", "-1")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadEnvFiles(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SERPER_API_KEY=from-dotenv\n"), 0o600))

	LoadEnvFiles(path, filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.SerperAPIKey)
}

func TestLoadEnvFiles_OverridesProcessEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERPER_BASE_URL", "https://from-process.example")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SERPER_BASE_URL=https://from-dotenv.example\n"), 0o600))

	LoadEnvFiles(path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://from-dotenv.example", cfg.SerperBaseURL)
}
