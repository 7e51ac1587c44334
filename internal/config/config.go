package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"scorecard/pkg/serrors"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Environment variable names understood by Load. The same names are used as
// keys inside the .env file.
const (
	EnvAPIKey      = "SSC_API_KEY"
	EnvAPIBaseURL  = "SSC_API_BASE_URL"
	EnvAPITimeout  = "SSC_API_TIMEOUT"
	EnvEnvironment = "SSC_ENVIRONMENT"
	EnvLogLevel    = "SSC_LOG_LEVEL"
	EnvMetricsFile = "SSC_METRICS_FILE"
)

// DefaultEnvFile is read when no file is given explicitly. It may be absent.
const DefaultEnvFile = ".env"

// ErrMissingAPIKey is returned by Load when no API key could be resolved.
var ErrMissingAPIKey = serrors.With(serrors.ErrConfig, "%s not found in environment", EnvAPIKey)

// Config represents the application configuration. It is built once at
// process start and passed explicitly to whatever needs it.
type Config struct {
	// Environment selects the logger flavour (development or production)
	Environment string `env:"SSC_ENVIRONMENT" env-default:"development" validate:"oneof=development production"`
	// LogLevel is the minimum level written to stderr
	LogLevel string `env:"SSC_LOG_LEVEL" env-default:"warn" validate:"oneof=debug info warn error"`

	// API contains everything needed to reach the rating provider
	API struct {
		// Key is the SecurityScorecard API token
		Key string `env:"SSC_API_KEY"`
		// BaseURL is the API root, without the /companies suffix
		BaseURL string `env:"SSC_API_BASE_URL" env-default:"https://api.securityscorecard.io" validate:"required,url"`
		// Timeout bounds the whole request; zero leaves it to the networking layer
		Timeout time.Duration `env:"SSC_API_TIMEOUT" env-default:"0s" validate:"gte=0s"`
	}

	// MetricsFile, when set, receives the run's metrics in Prometheus textfile format
	MetricsFile string `env:"SSC_METRICS_FILE"`
}

// Load resolves the configuration from the following sources, in order:
//  1. envFile, parsed as a .env file without touching the process environment
//  2. the process environment
//  3. defaults
//
// A missing envFile is skipped unless explicit is true. The API key is
// required; its absence yields ErrMissingAPIKey.
func Load(envFile string, explicit bool) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, serrors.Wrap(serrors.ErrConfig, err, "could not read environment")
	}

	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			if err := overlay(&cfg, vars); err != nil {
				return nil, serrors.Wrap(serrors.ErrConfig, err, "invalid value in %s", envFile)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return nil, serrors.Wrap(serrors.ErrConfig, err, "could not read %s", envFile)
		}
	}

	if cfg.API.Key == "" {
		return nil, ErrMissingAPIKey
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, serrors.Wrap(serrors.ErrConfig, err, "invalid configuration")
	}

	return &cfg, nil
}

// overlay applies the values found in a .env file on top of cfg. Empty values
// are ignored so that "SSC_API_KEY=" does not hide the environment.
func overlay(cfg *Config, vars map[string]string) error {
	set := func(key string, dst *string) {
		if v := vars[key]; v != "" {
			*dst = v
		}
	}
	set(EnvAPIKey, &cfg.API.Key)
	set(EnvAPIBaseURL, &cfg.API.BaseURL)
	set(EnvEnvironment, &cfg.Environment)
	set(EnvLogLevel, &cfg.LogLevel)
	set(EnvMetricsFile, &cfg.MetricsFile)

	if v := vars[EnvAPITimeout]; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAPITimeout, err)
		}
		cfg.API.Timeout = d
	}

	return nil
}
