// Package config loads the engine settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting. All values come from the environment;
// a .env file in the working directory is merged in when present.
type Config struct {
	// MCPServerURL is the SSE endpoint of the calendar MCP backend.
	MCPServerURL string `envconfig:"MCP_SERVER_URL" default:"http://127.0.0.1:9079" validate:"url"`

	// MCPAPIKey is sent as a bearer token when set.
	MCPAPIKey string `envconfig:"MCP_API_KEY"`

	// MCPTimeoutSeconds bounds each backend call, not the stream lifetime.
	MCPTimeoutSeconds int `envconfig:"MCP_TIMEOUT_SECONDS" default:"10" validate:"gt=0"`

	// CalendarID selects the calendar to book against.
	CalendarID string `envconfig:"GOOGLE_CALENDAR_ID" default:"primary"`

	// Timezone is the IANA display timezone for slots and confirmations.
	Timezone string `envconfig:"APPOINTMENT_TIMEZONE" default:"UTC"`

	// DefaultDurationMinutes is the fixed slot length.
	DefaultDurationMinutes int `envconfig:"DEFAULT_EVENT_DURATION_MINUTES" default:"30" validate:"gt=0"`

	// DayStart and DayEnd bound the bookable window in HH:MM form.
	DayStart string `envconfig:"APPOINTMENT_DAY_START" default:"09:00"`
	DayEnd   string `envconfig:"APPOINTMENT_DAY_END" default:"17:00"`

	// MetricsAddr is the bind address of the metrics sidecar.
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`
}

// Load reads the configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid APPOINTMENT_TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return &cfg, nil
}

// MCPTimeout returns the per-call timeout as a duration.
func (c *Config) MCPTimeout() time.Duration {
	return time.Duration(c.MCPTimeoutSeconds) * time.Second
}
