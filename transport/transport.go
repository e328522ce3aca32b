// Package transport defines the abstract full-duplex text-frame channel
// the protocol core depends on. The core never constructs a transport
// itself; it is handed one by the caller (see package wsconn for a
// concrete WebSocket-backed implementation).
package transport

import "context"

// Reader reads one application frame (one JSON text message) at a time.
type Reader interface {
	Read(ctx context.Context) ([]byte, error)
}

// Writer writes one application frame at a time.
type Writer interface {
	Write(ctx context.Context, data []byte) error
}

// Conn is a bidirectional text-frame channel: a single transport
// connection, shared by a sender task borrowing Write and a receiver task
// borrowing Read, never touched on the same direction by both at once.
type Conn interface {
	Reader
	Writer
	// Close closes the underlying connection. code and reason follow the
	// WebSocket close-frame convention (e.g. 1000, "").
	Close(code int, reason string) error
}

// Dialer opens a new Conn to url.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// DialerFunc adapts a plain function to a Dialer.
type DialerFunc func(ctx context.Context, url string) (Conn, error)

// Dial implements Dialer.
func (f DialerFunc) Dial(ctx context.Context, url string) (Conn, error) {
	return f(ctx, url)
}
