// Package sender implements the three outbound strategies of an
// operation: sending nothing, sending one data frame, or sending a stream
// of data frames terminated by a streamEnd frame.
package sender

import (
	"context"

	"github.com/google/uuid"

	"github.com/kilroybot/kilroyws/protocol/frame"
	"github.com/kilroybot/kilroyws/transport"
)

// SendFunc is an unscheduled send coroutine: calling it runs the send to
// completion (or until ctx is cancelled).
type SendFunc func(ctx context.Context) error

// Sender writes zero or more frames and signals completion by returning.
type Sender interface {
	Send(ctx context.Context, w transport.Writer, chatID uuid.UUID) error
}

// Null sends nothing and completes immediately.
type Null struct{}

// Send implements Sender.
func (Null) Send(ctx context.Context, w transport.Writer, chatID uuid.UUID) error {
	return nil
}

// Single sends one data frame carrying Payload.
type Single struct {
	Payload frame.JSON
}

// Send implements Sender.
func (s Single) Send(ctx context.Context, w transport.Writer, chatID uuid.UUID) error {
	data, err := frame.Serialize(frame.NewData(chatID, s.Payload))
	if err != nil {
		return err
	}
	return w.Write(ctx, data)
}
