package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"time"
)

// Config holds the server's runtime configuration, read from BANK_* environment variables.
type Config struct {
	Addr           string        `envconfig:"ADDR" default:":8080"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	RatesFile      string        `envconfig:"RATES_FILE"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	RateLimit      int           `envconfig:"RATE_LIMIT" default:"120"` // requests per minute per IP, 0 disables

	FeedEnabled bool          `envconfig:"FEED_ENABLED" default:"false"`
	FeedURL     string        `envconfig:"FEED_URL"`
	FeedRefresh time.Duration `envconfig:"FEED_REFRESH" default:"1m"`
}

// Prefix of every environment variable read by FromEnv.
const Prefix = "BANK"

// FromEnv builds a Config from the environment. Variables found in envFiles are
// loaded first without overriding ones already set; missing files are ignored.
func FromEnv(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings envconfig can't express with tags.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid rate limit %d", c.RateLimit)
	}
	if c.FeedEnabled && c.FeedRefresh <= 0 {
		return fmt.Errorf("invalid feed refresh %v", c.FeedRefresh)
	}
	return nil
}
