// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/lobbyregistry/internal/model"
)

// Events backends
const (
	EventsBackendMemory = "memory"
	EventsBackendRedis  = "redis"
)

// Config is the server configuration
type Config struct {
	Host     string `env:"LOBBY_HOST"`
	Port     int    `env:"LOBBY_PORT" envDefault:"8080"`
	LogLevel string `env:"LOBBY_LOG_LEVEL" envDefault:"info"`

	PlayerTimeout       time.Duration `env:"LOBBY_PLAYER_TIMEOUT" envDefault:"20m"`
	CreatorPolicy       string        `env:"LOBBY_CREATOR_POLICY" envDefault:"position"`
	CascadePlayerDelete bool          `env:"LOBBY_CASCADE_PLAYER_DELETE" envDefault:"true"`

	EventsBackend string `env:"LOBBY_EVENTS_BACKEND" envDefault:"memory"`
	EventHistory  int    `env:"LOBBY_EVENT_HISTORY" envDefault:"100"`
	RedisURL      string `env:"REDIS_URL"`
}

// Load parses the environment and validates the result
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks values the environment parser cannot
func (c Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("LOBBY_PORT out of range: %d", c.Port))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.PlayerTimeout <= 0 {
		errs = append(errs, fmt.Errorf("LOBBY_PLAYER_TIMEOUT must be positive, got %s", c.PlayerTimeout))
	}
	if _, err := model.ParseCreatorPolicy(c.CreatorPolicy); err != nil {
		errs = append(errs, fmt.Errorf("LOBBY_CREATOR_POLICY: %w", err))
	}
	switch c.EventsBackend {
	case EventsBackendMemory:
	case EventsBackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL required when LOBBY_EVENTS_BACKEND=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LOBBY_EVENTS_BACKEND %q", c.EventsBackend))
	}
	if c.EventHistory < 1 {
		errs = append(errs, fmt.Errorf("LOBBY_EVENT_HISTORY must be at least 1, got %d", c.EventHistory))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Level returns the configured log level, falling back to info
func (c Config) Level() slog.Level {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Policy returns the configured creator policy
func (c Config) Policy() model.CreatorPolicy {
	policy, err := model.ParseCreatorPolicy(c.CreatorPolicy)
	if err != nil {
		return model.CreatorByPosition
	}
	return policy
}

// ParseLogLevel accepts debug, info, warn and error in any case
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
