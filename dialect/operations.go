package dialect

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kilroybot/kilroyws/kilroyerr"
	"github.com/kilroybot/kilroyws/protocol/frame"
	"github.com/kilroybot/kilroyws/protocol/receiver"
	"github.com/kilroybot/kilroyws/protocol/sender"
	"github.com/kilroybot/kilroyws/transport"
)

// Source supplies the payloads for the two stream-in operations, in
// order. It is the same shape as sender.Source so callers can feed a
// dialect A stream into a dialect B request without adapting it.
type Source = sender.Source

// Get reads exactly one data frame from conn and returns its payload.
// Dialect B's push-style endpoints reuse the plain "data" frame shape
// from the frame package rather than request/reply correlation, matching
// the original operations.py.
func Get(ctx context.Context, conn transport.Reader) (frame.JSON, error) {
	data, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := frame.ParseData(data)
	if err != nil {
		return nil, err
	}
	return msg.Payload, nil
}

// Subscribe yields every data frame received on conn until a read error
// (including the connection closing) ends the stream.
func Subscribe(ctx context.Context, conn transport.Reader) <-chan receiver.Result {
	out := make(chan receiver.Result)
	go func() {
		defer close(out)
		for {
			data, err := conn.Read(ctx)
			if err != nil {
				select {
				case out <- receiver.Result{Err: err}:
				case <-ctx.Done():
				}
				return
			}
			msg, err := frame.ParseData(data)
			if err != nil {
				select {
				case out <- receiver.Result{Err: err}:
				case <-ctx.Done():
				}
				return
			}
			select {
			case out <- receiver.Result{Value: msg.Payload}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// GetStream is like Subscribe, but a frame that fails to parse as data
// with a *kilroyerr.ProtocolError is given one more chance as a
// stream-end frame; if that succeeds, the stream ends cleanly instead of
// erroring. An AppError from the data-parse cascade is never given that
// second chance — it always terminates the stream as an error.
func GetStream(ctx context.Context, conn transport.Reader) <-chan receiver.Result {
	out := make(chan receiver.Result)
	go func() {
		defer close(out)
		for {
			data, err := conn.Read(ctx)
			if err != nil {
				emit(ctx, out, receiver.Result{Err: err})
				return
			}

			msg, dataErr := frame.ParseData(data)
			if dataErr == nil {
				if !emit(ctx, out, receiver.Result{Value: msg.Payload}) {
					return
				}
				continue
			}

			var protoErr *kilroyerr.ProtocolError
			if !errors.As(dataErr, &protoErr) {
				emit(ctx, out, receiver.Result{Err: dataErr})
				return
			}
			if _, endErr := ParseStreamEnd(data); endErr != nil {
				emit(ctx, out, receiver.Result{Err: endErr})
				return
			}
			return
		}
	}()
	return out
}

// Request sends one request frame carrying payload and awaits the
// correlated reply.
func Request(ctx context.Context, conn transport.Conn, payload frame.JSON) (frame.JSON, error) {
	req := NewRequest(payload)
	data, err := Serialize(req)
	if err != nil {
		return nil, err
	}
	if err := conn.Write(ctx, data); err != nil {
		return nil, err
	}

	reply, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := ParseReply(reply, req.ID)
	if err != nil {
		return nil, err
	}
	return msg.Payload, nil
}

// RequestStreamOut sends one request frame carrying payload, then yields
// correlated reply payloads until a stream-end frame or an error
// terminates the stream, with the same ProtocolError-only fallback
// GetStream uses.
func RequestStreamOut(ctx context.Context, conn transport.Conn, payload frame.JSON) <-chan receiver.Result {
	req := NewRequest(payload)

	out := make(chan receiver.Result, 1)
	data, err := Serialize(req)
	if err != nil {
		out <- receiver.Result{Err: err}
		close(out)
		return out
	}
	if err := conn.Write(ctx, data); err != nil {
		out <- receiver.Result{Err: err}
		close(out)
		return out
	}
	close(out)

	return replyStream(ctx, conn, req.ID)
}

func replyStream(ctx context.Context, conn transport.Reader, requestID uuid.UUID) <-chan receiver.Result {
	out := make(chan receiver.Result)
	go func() {
		defer close(out)
		for {
			data, err := conn.Read(ctx)
			if err != nil {
				emit(ctx, out, receiver.Result{Err: err})
				return
			}

			msg, replyErr := ParseReply(data, requestID)
			if replyErr == nil {
				if !emit(ctx, out, receiver.Result{Value: msg.Payload}) {
					return
				}
				continue
			}

			var protoErr *kilroyerr.ProtocolError
			if !errors.As(replyErr, &protoErr) {
				emit(ctx, out, receiver.Result{Err: replyErr})
				return
			}
			if _, endErr := ParseStreamEnd(data); endErr != nil {
				emit(ctx, out, receiver.Result{Err: endErr})
				return
			}
			return
		}
	}()
	return out
}

// RequestStreamIn sends one request frame per payload pulled from src, in
// order, then awaits one reply correlated to the last request sent. If
// src yields nothing, there is no request id to correlate a reply
// against, which is a protocol error.
func RequestStreamIn(ctx context.Context, conn transport.Conn, src Source) (frame.JSON, error) {
	lastID, err := sendRequestStream(ctx, conn, src)
	if err != nil {
		return nil, err
	}
	if lastID == uuid.Nil {
		return nil, kilroyerr.NewProtocolError("Can't create data message.")
	}

	data, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := ParseReply(data, lastID)
	if err != nil {
		return nil, err
	}
	return msg.Payload, nil
}

// RequestStreamInOut sends one request frame per payload pulled from src,
// in order, then yields reply payloads correlated to the last request
// sent, until a stream-end frame or an error terminates the stream.
func RequestStreamInOut(ctx context.Context, conn transport.Conn, src Source) <-chan receiver.Result {
	lastID, err := sendRequestStream(ctx, conn, src)
	if err != nil {
		out := make(chan receiver.Result, 1)
		out <- receiver.Result{Err: err}
		close(out)
		return out
	}
	if lastID == uuid.Nil {
		out := make(chan receiver.Result, 1)
		out <- receiver.Result{Err: kilroyerr.NewProtocolError("Can't create data message.")}
		close(out)
		return out
	}
	return replyStream(ctx, conn, lastID)
}

func sendRequestStream(ctx context.Context, conn transport.Writer, src Source) (uuid.UUID, error) {
	var lastID uuid.UUID
	for {
		item, ok, err := src.Next(ctx)
		if err != nil {
			return uuid.Nil, err
		}
		if !ok {
			break
		}

		req := NewRequest(item)
		data, err := Serialize(req)
		if err != nil {
			return uuid.Nil, err
		}
		if err := conn.Write(ctx, data); err != nil {
			return uuid.Nil, err
		}
		lastID = req.ID
	}
	return lastID, nil
}

func emit(ctx context.Context, out chan<- receiver.Result, res receiver.Result) bool {
	select {
	case out <- res:
		return true
	case <-ctx.Done():
		return false
	}
}
