package receiver

import (
	"context"

	"github.com/google/uuid"

	"github.com/kilroybot/kilroyws/protocol/frame"
	"github.com/kilroybot/kilroyws/protocol/sender"
	"github.com/kilroybot/kilroyws/transport"
)

// Null awaits nothing.
type Null struct{}

// Receive implements ValueReceiver: it returns immediately with no value.
func (Null) Receive(ctx context.Context, r transport.Reader, chatID uuid.UUID) (frame.JSON, error) {
	return nil, nil
}

// Chain simply awaits the sender to completion; there is nothing to race
// it against.
func (Null) Chain(ctx context.Context, send sender.SendFunc, r transport.Reader, chatID uuid.UUID) (frame.JSON, error) {
	return nil, send(ctx)
}
