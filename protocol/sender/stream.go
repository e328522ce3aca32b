package sender

import (
	"context"

	"github.com/google/uuid"

	"github.com/kilroybot/kilroyws/protocol/frame"
	"github.com/kilroybot/kilroyws/transport"
)

// Stream sends one data frame per item yielded by Source, in iteration
// order, then a streamEnd frame. If Source raises, that error propagates
// and no streamEnd is emitted.
type Stream struct {
	Source Source
}

// Send implements Sender.
func (s Stream) Send(ctx context.Context, w transport.Writer, chatID uuid.UUID) error {
	for {
		item, ok, err := s.Source.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		data, err := frame.Serialize(frame.NewData(chatID, item))
		if err != nil {
			return err
		}
		if err := w.Write(ctx, data); err != nil {
			return err
		}
	}

	data, err := frame.Serialize(frame.NewStreamEnd(chatID))
	if err != nil {
		return err
	}
	return w.Write(ctx, data)
}
