package events

import (
	"context"
	"errors"

	"github.com/mcoot/lobbyregistry/internal/model"
)

// Publisher delivers registry events to an observer. The registry calls it
// from one goroutine at a time, in commit order, with a context that is
// never cancelled. Implementations must not call back into the registry.
type Publisher interface {
	Publish(ctx context.Context, evt model.Event) error
}

// History gives access to recently published events, newest first
type History interface {
	Recent(ctx context.Context, limit int) ([]model.Event, error)
}

// Nop discards every event
type Nop struct{}

// Publish implements Publisher
func (Nop) Publish(context.Context, model.Event) error { return nil }

// Multi publishes each event to every publisher in order.
// A failing publisher does not stop delivery to the rest.
type Multi []Publisher

// Publish implements Publisher
func (m Multi) Publish(ctx context.Context, evt model.Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
