package memory

import (
	"context"
	"sync"

	"github.com/mcoot/lobbyregistry/internal/events"
	"github.com/mcoot/lobbyregistry/internal/model"
)

// DefaultCapacity is the number of events kept when none is configured
const DefaultCapacity = 100

// Recorder keeps the most recent events in a fixed-size ring
type Recorder struct {
	mu    sync.RWMutex
	ring  []model.Event
	next  int
	count int
}

// New creates a Recorder holding up to capacity events
func New(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{ring: make([]model.Event, capacity)}
}

// Ensure Recorder implements the interfaces
var (
	_ events.Publisher = (*Recorder)(nil)
	_ events.History   = (*Recorder)(nil)
)

// Publish records the event, overwriting the oldest once full
func (r *Recorder) Publish(ctx context.Context, evt model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ring[r.next] = evt
	r.next = (r.next + 1) % len(r.ring)
	if r.count < len(r.ring) {
		r.count++
	}
	return nil
}

// Recent returns up to limit events, newest first
func (r *Recorder) Recent(ctx context.Context, limit int) ([]model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := r.count
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]model.Event, n)
	for i := 0; i < n; i++ {
		idx := (r.next - 1 - i + len(r.ring)) % len(r.ring)
		result[i] = r.ring[idx]
	}
	return result, nil
}
