package redis

import "time"

// Config holds Redis connection and event log settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Channel is the pub/sub channel events are published on
	Channel string

	// HistoryLength caps the number of events kept in the history list
	HistoryLength int64
	// HistoryTTL expires the history list after a period with no events
	HistoryTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		Channel:       channelKey(),
		HistoryLength: 100,
		HistoryTTL:    24 * time.Hour,
	}
}
