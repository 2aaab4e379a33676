package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/lobbyregistry/internal/events"
	"github.com/mcoot/lobbyregistry/internal/model"
)

// Store publishes registry events on a Redis channel and keeps a bounded
// history list next to it
type Store struct {
	client *redis.Client
	cfg    Config
	logger *slog.Logger
}

// New creates a new Redis event store
func New(cfg Config, logger *slog.Logger) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewWithClient(client, cfg, logger), nil
}

// NewWithClient creates a Redis event store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, logger *slog.Logger) *Store {
	if cfg.Channel == "" {
		cfg.Channel = channelKey()
	}
	return &Store{
		client: client,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "redis-events")),
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interfaces
var (
	_ events.Publisher = (*Store)(nil)
	_ events.History   = (*Store)(nil)
)

// Publish sends the event to subscribers and prepends it to the history list
func (s *Store) Publish(ctx context.Context, evt model.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	key := historyKey(s.cfg.Channel)

	pipe := s.client.Pipeline()
	pipe.Publish(ctx, s.cfg.Channel, data)
	pipe.LPush(ctx, key, data)
	if s.cfg.HistoryLength > 0 {
		pipe.LTrim(ctx, key, 0, s.cfg.HistoryLength-1)
	}
	if s.cfg.HistoryTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.HistoryTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns up to limit events from the history list, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]model.Event, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	values, err := s.client.LRange(ctx, historyKey(s.cfg.Channel), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	result := make([]model.Event, 0, len(values))
	for _, val := range values {
		var evt model.Event
		if err := json.Unmarshal([]byte(val), &evt); err != nil {
			continue // Skip invalid data
		}
		result = append(result, evt)
	}
	return result, nil
}

// Subscribe streams events published on the channel until ctx is done.
// The returned channel is closed when the subscription ends.
func (s *Store) Subscribe(ctx context.Context) (<-chan model.Event, error) {
	pubsub := s.client.Subscribe(ctx, s.cfg.Channel)

	// Wait for the subscription to be confirmed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", s.cfg.Channel, err)
	}

	out := make(chan model.Event, 64)
	go func() {
		defer close(out)
		defer func() { _ = pubsub.Close() }()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var evt model.Event
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					s.logger.Warn("dropping undecodable event", slog.String("error", err.Error()))
					continue
				}
				select {
				case out <- evt:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
