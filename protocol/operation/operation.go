// Package operation binds a (sender, receiver) pair plus a path to a
// single public call: it opens a transport connection, runs a chat,
// spawns the sender concurrently with the receiver, and surfaces the
// receiver's result to the caller.
package operation

import (
	"io"

	"context"

	"github.com/kilroybot/kilroyws/protocol/chat"
	"github.com/kilroybot/kilroyws/protocol/frame"
	"github.com/kilroybot/kilroyws/protocol/receiver"
	"github.com/kilroybot/kilroyws/protocol/sender"
	"github.com/kilroybot/kilroyws/transport"
)

const normalClosure = 1000

// CallValue runs an operation whose receiver produces exactly one value
// (the Null and Single receiver shapes): dial, open the chat, chain the
// sender with the receiver, await the stop frame, and close.
func CallValue(
	ctx context.Context,
	dial transport.Dialer,
	url string,
	snd sender.Sender,
	rcv receiver.ValueReceiver,
) (frame.JSON, error) {
	conn, err := dial.Dial(ctx, url)
	if err != nil {
		return nil, err
	}

	c, err := chat.Open(ctx, conn)
	if err != nil {
		_ = conn.Close(normalClosure, "")
		return nil, err
	}

	send := func(sctx context.Context) error {
		return snd.Send(sctx, conn, c.ID())
	}

	value, err := rcv.Chain(ctx, send, conn, c.ID())
	if err != nil {
		_ = conn.Close(normalClosure, "")
		return nil, err
	}

	if err := c.Close(ctx); err != nil {
		_ = conn.Close(normalClosure, "")
		return nil, err
	}

	if err := conn.Close(normalClosure, ""); err != nil {
		return nil, err
	}
	return value, nil
}

// CallStream runs an operation whose receiver yields a sequence of values
// (the Stream receiver shape). The returned channel is closed when the
// stream ends, normally or on error; the returned io.Closer must be
// closed by the caller when abandoning the stream before it is drained,
// to release the chat and the underlying transport.
func CallStream(
	ctx context.Context,
	dial transport.Dialer,
	url string,
	snd sender.Sender,
	rcv receiver.StreamReceiver,
) (<-chan receiver.Result, io.Closer, error) {
	conn, err := dial.Dial(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	c, err := chat.Open(ctx, conn)
	if err != nil {
		_ = conn.Close(normalClosure, "")
		return nil, nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)

	send := func(sctx context.Context) error {
		return snd.Send(sctx, conn, c.ID())
	}

	raw := rcv.Chain(streamCtx, send, conn, c.ID())
	out := make(chan receiver.Result)

	go func() {
		defer close(out)
		defer cancel()

		sawErr := false
		for res := range raw {
			if res.Err != nil {
				sawErr = true
			}
			select {
			case out <- res:
			case <-streamCtx.Done():
				_ = conn.Close(normalClosure, "")
				return
			}
		}

		if !sawErr {
			if closeErr := c.Close(ctx); closeErr != nil {
				out <- receiver.Result{Err: closeErr}
			}
		}
		_ = conn.Close(normalClosure, "")
	}()

	closer := closerFunc(func() error {
		cancel()
		return conn.Close(normalClosure, "")
	})
	return out, closer, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
