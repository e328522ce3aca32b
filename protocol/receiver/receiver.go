// Package receiver implements the three inbound strategies of an
// operation: awaiting nothing, awaiting one data frame, or yielding data
// frames until a streamEnd. Each strategy also knows how to chain itself
// with a sender: Null runs the sender to completion, while Single and
// Stream run it concurrently and cancel it once the receive side is done.
package receiver

import (
	"context"

	"github.com/google/uuid"

	"github.com/kilroybot/kilroyws/protocol/frame"
	"github.com/kilroybot/kilroyws/protocol/sender"
	"github.com/kilroybot/kilroyws/transport"
)

// Result carries one streamed value, or a terminal error.
type Result struct {
	Value frame.JSON
	Err   error
}

// Single awaits exactly one data frame.
type Single struct{}

// ValueReceiver is implemented by the null and single receiver shapes:
// both produce exactly one (possibly empty) value.
type ValueReceiver interface {
	Receive(ctx context.Context, r transport.Reader, chatID uuid.UUID) (frame.JSON, error)
	Chain(ctx context.Context, send sender.SendFunc, r transport.Reader, chatID uuid.UUID) (frame.JSON, error)
}

// StreamReceiver is implemented by the stream receiver shape, which
// yields zero or more values over a channel.
type StreamReceiver interface {
	Receive(ctx context.Context, r transport.Reader, chatID uuid.UUID) <-chan Result
	Chain(ctx context.Context, send sender.SendFunc, r transport.Reader, chatID uuid.UUID) <-chan Result
}
