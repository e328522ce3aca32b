package kilroyws

import (
	"context"
	"io"

	"cdr.dev/slog/v3"

	"github.com/kilroybot/kilroyws/kilroyerr"
	"github.com/kilroybot/kilroyws/protocol/frame"
	"github.com/kilroybot/kilroyws/protocol/operation"
	"github.com/kilroybot/kilroyws/protocol/receiver"
	"github.com/kilroybot/kilroyws/protocol/sender"
	"github.com/kilroybot/kilroyws/transport"
	"github.com/kilroybot/kilroyws/wsconn"
)

// JSON is the recursive JSON value every frame payload carries.
type JSON = frame.JSON

// Result is one value from a streaming operation, or a terminal error.
type Result = receiver.Result

// Client is a chat-framed WebSocket RPC client bound to one base URL.
// Each call opens its own connection; the client itself holds no
// persistent connection or state between calls.
type Client struct {
	baseURL     string
	dialOptions []wsconn.Option
	logger      slog.Logger
}

// NewClient builds a Client against baseURL. Extra options are forwarded
// to every call unless overridden per-call.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, newClientError("url is required")
	}

	c := &Client{
		baseURL: baseURL,
		logger:  slog.Make(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger.Debug(context.Background(), "kilroyws client constructed", slog.F("url", c.baseURL))
	return c, nil
}

// dialer builds the transport.Dialer for one call, applying callOpts
// after the client's construction-time options so a per-call option with
// the same effective setting wins.
func (c *Client) dialer(callOpts ...wsconn.Option) transport.Dialer {
	merged := append(append([]wsconn.Option(nil), c.dialOptions...), callOpts...)
	return wsconn.Dialer(merged...)
}

// Get performs a fire-and-forget read: send nothing, await one payload.
func (c *Client) Get(ctx context.Context, path string, opts ...wsconn.Option) (JSON, error) {
	url := joinURL(c.baseURL, path)
	return operation.CallValue(ctx, c.dialer(opts...), url, sender.Null{}, receiver.Single{})
}

// Subscribe opens a persistent subscription: send nothing, yield payloads
// until the server ends the stream. The caller must close the returned
// io.Closer when abandoning the stream before it is drained.
func (c *Client) Subscribe(ctx context.Context, path string, opts ...wsconn.Option) (<-chan Result, io.Closer, error) {
	url := joinURL(c.baseURL, path)
	return operation.CallStream(ctx, c.dialer(opts...), url, sender.Null{}, receiver.Stream{})
}

// Request sends one payload and awaits one reply.
func (c *Client) Request(ctx context.Context, path string, payload JSON, opts ...wsconn.Option) (JSON, error) {
	url := joinURL(c.baseURL, path)
	return operation.CallValue(ctx, c.dialer(opts...), url, sender.Single{Payload: payload}, receiver.Single{})
}

// RequestStreamIn sends a sequence of payloads, then awaits one reply.
func (c *Client) RequestStreamIn(ctx context.Context, path string, src sender.Source, opts ...wsconn.Option) (JSON, error) {
	url := joinURL(c.baseURL, path)
	return operation.CallValue(ctx, c.dialer(opts...), url, sender.Stream{Source: src}, receiver.Single{})
}

// RequestStreamOut sends one payload, then yields a sequence of reply
// payloads. The caller must close the returned io.Closer when abandoning
// the stream before it is drained.
func (c *Client) RequestStreamOut(ctx context.Context, path string, payload JSON, opts ...wsconn.Option) (<-chan Result, io.Closer, error) {
	url := joinURL(c.baseURL, path)
	return operation.CallStream(ctx, c.dialer(opts...), url, sender.Single{Payload: payload}, receiver.Stream{})
}

// RequestStreamInOut sends a sequence of payloads, then yields a sequence
// of reply payloads. The caller must close the returned io.Closer when
// abandoning the stream before it is drained.
func (c *Client) RequestStreamInOut(ctx context.Context, path string, src sender.Source, opts ...wsconn.Option) (<-chan Result, io.Closer, error) {
	url := joinURL(c.baseURL, path)
	return operation.CallStream(ctx, c.dialer(opts...), url, sender.Stream{Source: src}, receiver.Stream{})
}

// Errors re-exported for callers who only need errors.As against the two
// kinds described in spec.md §7, without importing kilroyerr directly.
type (
	ProtocolError = kilroyerr.ProtocolError
	AppError      = kilroyerr.AppError
)
