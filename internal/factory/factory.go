package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/lobbyregistry/internal/api/sse"
	"github.com/mcoot/lobbyregistry/internal/config"
	"github.com/mcoot/lobbyregistry/internal/dependencies/clock"
	"github.com/mcoot/lobbyregistry/internal/dependencies/identity"
	"github.com/mcoot/lobbyregistry/internal/events"
	"github.com/mcoot/lobbyregistry/internal/events/memory"
	redisevents "github.com/mcoot/lobbyregistry/internal/events/redis"
	"github.com/mcoot/lobbyregistry/internal/services/registry"
)

// Events backend constants
const (
	EventsBackendMemory = config.EventsBackendMemory
	EventsBackendRedis  = config.EventsBackendRedis
)

// App contains all wired application components
type App struct {
	// External dependencies
	Clock clock.Clock
	IDs   identity.Generator

	// Services
	Registry   *registry.Registry
	History    events.History
	HubManager *sse.HubManager

	closers []func() error
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Registry holds timeout and policy settings
	// If zero value, defaults to registry.DefaultConfig()
	Registry registry.Config
	// EventsBackend selects where events are recorded ("memory" or "redis")
	// If empty, defaults to "memory"
	EventsBackend string
	// EventHistory bounds the in-memory event history
	EventHistory int
	// RedisConfig holds Redis connection settings (required if EventsBackend is "redis")
	RedisConfig *redisevents.Config
}

// ConfigFrom translates the environment configuration
func ConfigFrom(c config.Config, logger *slog.Logger) Config {
	cfg := Config{
		Logger: logger,
		Registry: registry.Config{
			PlayerTimeout:       c.PlayerTimeout,
			CreatorPolicy:       c.Policy(),
			CascadePlayerDelete: c.CascadePlayerDelete,
		},
		EventsBackend: c.EventsBackend,
		EventHistory:  c.EventHistory,
	}
	if c.EventsBackend == EventsBackendRedis {
		redisCfg := redisevents.DefaultConfig()
		redisCfg.URL = c.RedisURL
		redisCfg.HistoryLength = int64(c.EventHistory)
		cfg.RedisConfig = &redisCfg
	}
	return cfg
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.Registry == (registry.Config{}) {
		cfg.Registry = registry.DefaultConfig()
	}

	backend := cfg.EventsBackend
	if backend == "" {
		backend = EventsBackendMemory
	}

	clk := clock.New()
	ids := identity.New()

	switch backend {
	case EventsBackendMemory:
		return newWithDependencies(clk, ids, memory.New(cfg.EventHistory), cfg.Registry, logger), nil

	case EventsBackendRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when EventsBackend is redis")
		}
		store, err := redisevents.New(*cfg.RedisConfig, logger)
		if err != nil {
			return nil, err
		}
		app, err := newWithRedis(clk, ids, store, cfg.Registry, logger)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		return app, nil

	default:
		return nil, errors.New("invalid EventsBackend: must be 'memory' or 'redis'")
	}
}

// newWithDependencies creates an App whose events stay in this process
func newWithDependencies(clk clock.Clock, ids identity.Generator, recorder *memory.Recorder, regCfg registry.Config, logger *slog.Logger) *App {
	hubManager := sse.NewHubManager(logger)
	reg := registry.New(clk, ids, events.Multi{recorder, hubManager}, regCfg, logger)

	return &App{
		Clock:      clk,
		IDs:        ids,
		Registry:   reg,
		History:    recorder,
		HubManager: hubManager,
		closers: []func() error{
			func() error { hubManager.Close(); return nil },
		},
	}
}

// newWithRedis creates an App that publishes events to Redis and streams
// whatever arrives on the channel, including events from other instances
func newWithRedis(clk clock.Clock, ids identity.Generator, store *redisevents.Store, regCfg registry.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	source, err := store.Subscribe(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe to events: %w", err)
	}

	hubManager := sse.NewHubManager(logger)
	go events.Relay(ctx, source, hubManager, logger.With(slog.String("component", "relay")))

	reg := registry.New(clk, ids, store, regCfg, logger)

	return &App{
		Clock:      clk,
		IDs:        ids,
		Registry:   reg,
		History:    store,
		HubManager: hubManager,
		closers: []func() error{
			func() error { cancel(); return nil },
			func() error { hubManager.Close(); return nil },
			store.Close,
		},
	}, nil
}

// Close releases the app's resources and ends all event streams
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
