// Package chat implements the chat envelope: a scoped conversation that
// opens by emitting a start frame with a freshly generated chat id and
// closes by awaiting a stop frame carrying that same id.
package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/kilroybot/kilroyws/kilroyerr"
	"github.com/kilroybot/kilroyws/protocol/frame"
	"github.com/kilroybot/kilroyws/transport"
)

// Chat is a bounded conversational episode, identified by a client
// generated UUID, immutable for its lifetime.
type Chat struct {
	id uuid.UUID
	tr transport.Conn
}

// Open generates a fresh chat id, sends a start frame carrying it, and
// returns the open Chat. The caller must eventually call Close on the
// non-exceptional exit path only; an error propagating out of the chat's
// body must never call Close, or a protocol error would deadlock behind a
// stop frame the server will never send.
func Open(ctx context.Context, tr transport.Conn) (*Chat, error) {
	id := uuid.New()

	data, err := frame.Serialize(frame.NewStart(id))
	if err != nil {
		return nil, err
	}
	if err := tr.Write(ctx, data); err != nil {
		return nil, err
	}

	return &Chat{id: id, tr: tr}, nil
}

// ID returns the chat's id.
func (c *Chat) ID() uuid.UUID {
	return c.id
}

// Close awaits a stop frame and verifies its chat id matches. A mismatch
// is a conversation error.
func (c *Chat) Close(ctx context.Context) error {
	data, err := c.tr.Read(ctx)
	if err != nil {
		return err
	}

	stop, err := frame.ParseStop(data)
	if err != nil {
		return err
	}
	if stop.ChatID != c.id {
		return kilroyerr.ErrConversationMismatch
	}
	return nil
}
