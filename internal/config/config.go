package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable, e.g. LEITNER_SERVER_PORT.
// Field names map to variables by nesting: Scheduler.MaxNewPerDay is
// LEITNER_SCHEDULER_MAX_NEW_PER_DAY.
const EnvPrefix = "LEITNER"

// Config holds all leitner configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Scheduler SchedulerConfig
	Digest    DigestConfig
	Log       LogConfig
}

type ServerConfig struct {
	Bind string `validate:"required"`
	Port int    `validate:"min=1,max=65535"`
}

type DatabaseConfig struct {
	Path string // empty → store.DefaultDBPath()
}

type SchedulerConfig struct {
	Profile           string `validate:"required"`
	DailyLimitEnabled bool   `split_words:"true"`
	MaxNewPerDay      int    `split_words:"true" validate:"min=0"`
	DebugIntervals    bool   `split_words:"true"`
	Timezone          string // IANA name; empty → local time
}

type DigestConfig struct {
	Enabled  bool
	Interval time.Duration `validate:"min=0"`
}

type LogConfig struct {
	Level  string `validate:"omitempty,oneof=trace debug info warn error"`
	Format string `validate:"omitempty,oneof=json console"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37780,
		},
		Scheduler: SchedulerConfig{
			Profile:           "default",
			DailyLimitEnabled: true,
			MaxNewPerDay:      20,
		},
		Digest: DigestConfig{
			Enabled:  true,
			Interval: time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load returns the defaults overlaid with a .env file in the working
// directory (if present) and LEITNER_* environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv returns the defaults overlaid with LEITNER_* environment variables.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints and the timezone name.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Scheduler.Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Scheduler.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Scheduler.Timezone, err)
	}
	return loc, nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
