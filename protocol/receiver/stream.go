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

// Stream yields payloads from data frames until either a streamEnd
// (normal termination) or an error frame is encountered.
type Stream struct{}

// Receive yields payloads until a streamEnd or an error terminates the
// stream. The chat id is verified on every frame, including streamEnd.
//
// On each inbound frame, Receive first attempts to parse it as data; if
// that fails, it attempts streamEnd; if that also fails, the original
// data-parse error (which may already be an AppError/ProtocolError) is
// re-raised rather than whatever the streamEnd attempt produced.
func (Stream) Receive(ctx context.Context, r transport.Reader, chatID uuid.UUID) <-chan Result {
	out := make(chan Result)

	go func() {
		defer close(out)

		for {
			data, err := r.Read(ctx)
			if err != nil {
				sendResult(ctx, out, Result{Err: err})
				return
			}

			msg, dataErr := frame.ParseData(data)
			if dataErr == nil {
				if msg.ChatID != chatID {
					sendResult(ctx, out, Result{Err: kilroyerr.ErrConversationMismatch})
					return
				}
				if !sendResult(ctx, out, Result{Value: msg.Payload}) {
					return
				}
				continue
			}

			end, endErr := frame.ParseStreamEnd(data)
			if endErr != nil {
				sendResult(ctx, out, Result{Err: dataErr})
				return
			}
			if end.ChatID != chatID {
				sendResult(ctx, out, Result{Err: kilroyerr.ErrConversationMismatch})
				return
			}
			return
		}
	}()

	return out
}

// Chain spawns the sender as a concurrent task, then forwards from
// receive; when the consumer stops pulling or the stream terminates, the
// sender is cancelled and the cancellation is absorbed.
func (Stream) Chain(ctx context.Context, send sender.SendFunc, r transport.Reader, chatID uuid.UUID) <-chan Result {
	sendCtx, cancel := context.WithCancel(ctx)

	var g errgroup.Group
	g.Go(func() error {
		return send(sendCtx)
	})

	in := Stream{}.Receive(ctx, r, chatID)
	out := make(chan Result)

	go func() {
		defer close(out)

		for res := range in {
			if !sendResult(ctx, out, res) {
				cancel()
				return
			}
		}

		cancel()
		sendErr := g.Wait()
		if sendErr != nil && !errors.Is(sendErr, context.Canceled) {
			sendResult(ctx, out, Result{Err: sendErr})
		}
	}()

	return out
}

// sendResult forwards res to out, honoring ctx cancellation so an
// abandoned consumer can't block the goroutine forever. It returns false
// if ctx was cancelled first.
func sendResult(ctx context.Context, out chan<- Result, res Result) bool {
	select {
	case out <- res:
		return true
	case <-ctx.Done():
		return false
	}
}
