package receiver

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kilroybot/kilroyws/kilroyerr"
	"github.com/kilroybot/kilroyws/protocol/frame"
	"github.com/kilroybot/kilroyws/protocol/sender"
	"github.com/kilroybot/kilroyws/transport"
)

// Receive reads one frame, parses it as data, verifies the chat id, and
// returns its payload.
func (Single) Receive(ctx context.Context, r transport.Reader, chatID uuid.UUID) (frame.JSON, error) {
	data, err := r.Read(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := frame.ParseData(data)
	if err != nil {
		return nil, err
	}
	if msg.ChatID != chatID {
		return nil, kilroyerr.ErrConversationMismatch
	}
	return msg.Payload, nil
}

// Chain spawns the sender as a concurrent task, awaits the single receive,
// then cancels the sender and absorbs the resulting cancellation signal.
// Once the reply is in hand, a still-running sender must not outlive the
// chat. If the sender had already failed before the reply arrived, that
// error surfaces instead of being swallowed.
func (Single) Chain(ctx context.Context, send sender.SendFunc, r transport.Reader, chatID uuid.UUID) (frame.JSON, error) {
	sendCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		return send(sendCtx)
	})

	value, recvErr := Single{}.Receive(ctx, r, chatID)
	cancel()
	sendErr := g.Wait()

	if recvErr != nil {
		return nil, recvErr
	}
	if sendErr != nil && !errors.Is(sendErr, context.Canceled) {
		return nil, sendErr
	}
	return value, nil
}
