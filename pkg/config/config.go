// Package config loads kiosk configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the kiosk. Values come from
// KIOSK_-prefixed environment variables; a few can be overridden by CLI
// flags.
type Config struct {
	BackendURL string `envconfig:"BACKEND_URL" default:"http://localhost:8000" validate:"required,url"`
	Username   string `envconfig:"USERNAME" default:"owner" validate:"required"`
	Password   string `envconfig:"PASSWORD" default:"password" validate:"required"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s" validate:"min=1s"`

	PageSize        int           `envconfig:"PAGE_SIZE" default:"9" validate:"oneof=6 9"`
	CatalogRefresh  time.Duration `envconfig:"CATALOG_REFRESH" default:"15s" validate:"min=5s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s" validate:"min=30s"`
	ScreensaverSpin time.Duration `envconfig:"SCREENSAVER_SPIN" default:"5s" validate:"min=1s"`
	HealthInterval  time.Duration `envconfig:"HEALTH_INTERVAL" default:"5s" validate:"min=1s"`

	FeedbackDeadline      time.Duration `envconfig:"FEEDBACK_DEADLINE" default:"20s" validate:"min=5s"`
	FeedbackDefaultRating int           `envconfig:"FEEDBACK_DEFAULT_RATING" default:"3" validate:"min=1,max=5"`

	OpsAddr   string `envconfig:"OPS_ADDR" default:"127.0.0.1:9180"`
	LogFile   string `envconfig:"LOG_FILE" default:"kiosk.log"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("kiosk", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints. Called again after flag overrides.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
