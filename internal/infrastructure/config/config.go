package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"jan-server/services/search-web-tool/internal/infrastructure/observability"
)

// Config holds all configuration for the search tool service
type Config struct {
	// HTTP Server - using SEARCH_TOOL_ prefix to avoid collisions
	HTTPPort        string        `env:"SEARCH_TOOL_HTTP_PORT" envDefault:"8092"`
	LogLevel        string        `env:"SEARCH_TOOL_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"SEARCH_TOOL_LOG_FORMAT" envDefault:"json"` // json or console
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Serper
	SerperAPIKey      string `env:"SERPER_API_KEY"`
	SerperBaseURL     string `env:"SERPER_BASE_URL" envDefault:"https://google.serper.dev"`
	SerperHTTPTimeout int    `env:"SERPER_HTTP_TIMEOUT" envDefault:"15"` // seconds

	// Deployment descriptor consumed from the orchestration framework
	DeploymentFile string `env:"SEARCH_TOOL_DEPLOYMENT_FILE" envDefault:"configs/deployment.yml"`

	// Observability
	Environment      string  `env:"ENVIRONMENT" envDefault:"development"`
	OTELEnabled      bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint     string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"otel-collector:4318"`
	OTLPHeaders      string  `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	OTELSamplingRate float64 `env:"OTEL_SAMPLING_RATE" envDefault:"1.0"`
	PIILevel         string  `env:"SEARCH_TOOL_PII_LEVEL" envDefault:"hashed"` // none, hashed or full
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if strings.TrimSpace(os.Getenv("SEARCH_TOOL_LOG_LEVEL")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_LEVEL")); global != "" {
			cfg.LogLevel = global
		}
	}
	if strings.TrimSpace(os.Getenv("SEARCH_TOOL_LOG_FORMAT")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_FORMAT")); global != "" {
			cfg.LogFormat = global
		}
	}
	if cfg.SerperHTTPTimeout < 0 {
		return nil, fmt.Errorf("SERPER_HTTP_TIMEOUT must not be negative")
	}
	return cfg, nil
}

// Observability returns the tracing settings for the service
func (c *Config) Observability(serviceName, version string) observability.Config {
	return observability.Config{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Environment:    c.Environment,
		TracingEnabled: c.OTELEnabled,
		OTLPEndpoint:   c.OTLPEndpoint,
		OTLPHeaders:    c.OTLPHeaders,
		SamplingRate:   c.OTELSamplingRate,
	}
}

// SerperTimeout returns the upstream timeout as a duration
func (c *Config) SerperTimeout() time.Duration {
	return time.Duration(c.SerperHTTPTimeout) * time.Second
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// LoadEnvFiles loads .env files when present. Values in the files override
// the process environment.
func LoadEnvFiles(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env", "../.env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
