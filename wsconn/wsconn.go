// Package wsconn adapts github.com/coder/websocket to the transport.Conn
// interface the protocol core depends on. It is a concrete collaborator,
// not part of the core: spec.md explicitly keeps the wire transport out
// of scope, but the façade still needs something real to dial.
package wsconn

import (
	"context"

	"github.com/coder/websocket"

	"github.com/kilroybot/kilroyws/transport"
)

// defaultReadLimit matches the 4MiB ceiling the teacher's own
// codersdk.Client.StreamChat sets on its chat stream connection.
const defaultReadLimit = 1 << 22

type config struct {
	dialOptions *websocket.DialOptions
	readLimit   int64
}

func defaultConfig() *config {
	return &config{
		dialOptions: &websocket.DialOptions{},
		readLimit:   defaultReadLimit,
	}
}

// Option configures a Dial call. Options are applied in order, so a
// later option with the same effective setting overrides an earlier one
// — this is how per-call options override construction-time options with
// the same key.
type Option func(*config)

// WithDialOptions sets the *websocket.DialOptions forwarded verbatim to
// websocket.Dial (headers, subprotocols, compression, HTTP client, ...).
func WithDialOptions(opts *websocket.DialOptions) Option {
	return func(c *config) {
		c.dialOptions = opts
	}
}

// WithReadLimit overrides the maximum inbound message size, in bytes.
func WithReadLimit(n int64) Option {
	return func(c *config) {
		c.readLimit = n
	}
}

// Dial opens a WebSocket connection to url and adapts it to
// transport.Conn.
func Dial(ctx context.Context, url string, opts ...Option) (transport.Conn, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	conn, _, err := websocket.Dial(ctx, url, cfg.dialOptions)
	if err != nil {
		return nil, err
	}
	conn.SetReadLimit(cfg.readLimit)

	return &wsConn{conn: conn}, nil
}

// wsConn wraps a *websocket.Conn as a transport.Conn.
type wsConn struct {
	conn *websocket.Conn
}

func (c *wsConn) Read(ctx context.Context) ([]byte, error) {
	_, data, err := c.conn.Read(ctx)
	return data, err
}

func (c *wsConn) Write(ctx context.Context, data []byte) error {
	return c.conn.Write(ctx, websocket.MessageText, data)
}

func (c *wsConn) Close(code int, reason string) error {
	return c.conn.Close(websocket.StatusCode(code), reason)
}

// Dialer adapts Dial (with a fixed option set) to transport.Dialer.
func Dialer(opts ...Option) transport.Dialer {
	return transport.DialerFunc(func(ctx context.Context, url string) (transport.Conn, error) {
		return Dial(ctx, url, opts...)
	})
}
