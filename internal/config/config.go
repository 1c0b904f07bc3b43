package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"finboard/internal/gesture"
	"finboard/internal/interaction"
	"finboard/internal/log"
)

const maxReplayConcurrency = 64

type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Platform
	Platform string `env:"POINTER_PLATFORM" envDefault:"touch"`

	// Swipe
	SwipeDistanceThreshold float64 `env:"SWIPE_DISTANCE_THRESHOLD" envDefault:"80"`
	SwipeLeftSnapDistance  float64 `env:"SWIPE_LEFT_SNAP_DISTANCE" envDefault:"80"`
	SwipeRightSnapDistance float64 `env:"SWIPE_RIGHT_SNAP_DISTANCE" envDefault:"160"`
	SwipeDampingFactor     float64 `env:"SWIPE_DAMPING_FACTOR" envDefault:"0.6"`
	SwipeFastVelocity      float64 `env:"SWIPE_FAST_VELOCITY" envDefault:"0.5"`
	SwipeFastMultiplier    float64 `env:"SWIPE_FAST_MULTIPLIER" envDefault:"0.6"`

	// Long press and hint
	LongPressDelay time.Duration `env:"LONG_PRESS_DELAY" envDefault:"500ms"`
	HintDelay      time.Duration `env:"HINT_DELAY" envDefault:"2s"`
	HintDistance   float64       `env:"HINT_DISTANCE" envDefault:"40"`

	// Category catalog
	SQLiteDBPath     string        `env:"SQLITE_DB_PATH"`
	CategorySeedFile string        `env:"CATEGORY_SEED_FILE" envDefault:"./data/seed_categories.txt"`
	CategoryCacheTTL time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"5m"`

	// Formatting
	Locale   string `env:"LOCALE" envDefault:"it"`
	Currency string `env:"CURRENCY" envDefault:"EUR"`

	// AMQP
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"finboard"`
	AMQPQueue    string `env:"AMQP_QUEUE" envDefault:"scenario_results"`

	// Replay
	ReplayConcurrency int `env:"REPLAY_CONCURRENCY" envDefault:"4"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the current environment without touching .env files.
func Parse() (*Config, error) {
	return parse(env.Options{})
}

// ParseMap reads configuration from environ instead of the process
// environment.
func ParseMap(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if _, err := interaction.ParsePlatform(c.Platform); err != nil {
		errors = append(errors, fmt.Sprintf("invalid platform '%s': must be 'touch' or 'pointer'", c.Platform))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	if _, err := log.ParseFormat(c.LogFormat); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if _, err := language.Parse(c.Locale); err != nil {
		errors = append(errors, fmt.Sprintf("invalid locale '%s': %v", c.Locale, err))
	}
	if _, err := currency.ParseISO(c.Currency); err != nil {
		errors = append(errors, fmt.Sprintf("invalid currency '%s': must be an ISO 4217 code", c.Currency))
	}

	if c.CategoryCacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid category cache TTL %v: must be positive", c.CategoryCacheTTL))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.ReplayConcurrency < 1 {
		errors = append(errors, fmt.Sprintf("invalid replay concurrency %d: must be at least 1", c.ReplayConcurrency))
	} else if c.ReplayConcurrency > maxReplayConcurrency {
		errors = append(errors, fmt.Sprintf("invalid replay concurrency %d: must be at most %d", c.ReplayConcurrency, maxReplayConcurrency))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Swipe converts the swipe settings into detector configuration.
func (c *Config) Swipe() gesture.SwipeConfig {
	cfg := gesture.DefaultSwipeConfig()
	cfg.DistanceThreshold = c.SwipeDistanceThreshold
	cfg.LeftSnapDistance = c.SwipeLeftSnapDistance
	cfg.RightSnapDistance = c.SwipeRightSnapDistance
	cfg.DampingFactor = c.SwipeDampingFactor
	cfg.FastVelocityThreshold = c.SwipeFastVelocity
	cfg.FastThresholdMultiplier = c.SwipeFastMultiplier
	return cfg
}

// LongPress converts the long-press settings into detector configuration.
func (c *Config) LongPress() gesture.LongPressConfig {
	cfg := gesture.DefaultLongPressConfig()
	cfg.Delay = c.LongPressDelay
	return cfg
}

// Interaction assembles the coordinator configuration. An unknown platform
// falls back to touch; Validate reports it.
func (c *Config) Interaction() interaction.Config {
	platform, _ := interaction.ParsePlatform(c.Platform)
	return interaction.Config{
		Platform:     platform,
		Swipe:        c.Swipe(),
		LongPress:    c.LongPress(),
		HintDelay:    c.HintDelay,
		HintDistance: c.HintDistance,
	}
}

// Logger builds the application logger from the log settings.
func (c *Config) Logger() *log.Logger {
	level, _ := log.ParseLevel(c.LogLevel)
	format, _ := log.ParseFormat(c.LogFormat)
	cfg := log.DefaultConfig()
	cfg.Level = level
	cfg.Format = format
	return log.New(cfg)
}
