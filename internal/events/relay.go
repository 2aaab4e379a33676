package events

import (
	"context"
	"log/slog"

	"github.com/mcoot/lobbyregistry/internal/model"
)

// Relay forwards every event from source to dst until source is closed or ctx
// is done. Delivery errors are logged and do not stop the relay.
func Relay(ctx context.Context, source <-chan model.Event, dst Publisher, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-source:
			if !ok {
				return
			}
			if err := dst.Publish(ctx, evt); err != nil {
				logger.Warn("event relay failed",
					slog.String("type", string(evt.Type)),
					slog.String("error", err.Error()))
			}
		}
	}
}
