package kilroyws

import (
	"fmt"

	"cdr.dev/slog/v3"

	"github.com/kilroybot/kilroyws/wsconn"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithDialOptions sets WebSocket dial options forwarded to every call.
// A per-call WithDialOptions on an individual façade method overrides
// these, not merges with them, matching spec.md §6's configuration
// surface.
func WithDialOptions(opts ...wsconn.Option) Option {
	return func(c *Client) {
		c.dialOptions = append([]wsconn.Option(nil), opts...)
	}
}

// WithLogger sets the logger used for diagnostic messages. The client
// writes one debug message to it at construction; the logger is not
// passed to the operation calls, so nothing logs once a call is under
// way, including errors from background stream goroutines.
func WithLogger(logger slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func newClientError(format string, args ...any) error {
	return fmt.Errorf("kilroyws: "+format, args...)
}
