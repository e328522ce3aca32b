package kilroyws

import (
	"context"
	"io"

	"cdr.dev/slog/v3"

	"github.com/kilroybot/kilroyws/dialect"
	"github.com/kilroybot/kilroyws/transport"
	"github.com/kilroybot/kilroyws/wsconn"
)

const statelessNormalClosure = 1000

// StatelessClient is a request/reply WebSocket RPC client bound to one
// base URL, using dialect B: requests and replies correlated by a
// per-request id instead of a shared chat envelope (spec.md §9). Each
// call dials its own connection and closes it when the call completes.
type StatelessClient struct {
	baseURL     string
	dialOptions []wsconn.Option
	logger      slog.Logger
}

// NewStatelessClient builds a StatelessClient against baseURL.
func NewStatelessClient(baseURL string, opts ...Option) (*StatelessClient, error) {
	c, err := NewClient(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	sc := &StatelessClient{baseURL: c.baseURL, dialOptions: c.dialOptions, logger: c.logger}
	sc.logger.Debug(context.Background(), "kilroyws stateless client constructed", slog.F("url", sc.baseURL))
	return sc, nil
}

func (c *StatelessClient) dialer(callOpts ...wsconn.Option) transport.Dialer {
	merged := append(append([]wsconn.Option(nil), c.dialOptions...), callOpts...)
	return wsconn.Dialer(merged...)
}

// Get dials, reads one data frame, and closes the connection.
func (c *StatelessClient) Get(ctx context.Context, path string, opts ...wsconn.Option) (JSON, error) {
	conn, err := c.dialer(opts...).Dial(ctx, joinURL(c.baseURL, path))
	if err != nil {
		return nil, err
	}
	defer conn.Close(statelessNormalClosure, "")

	return dialect.Get(ctx, conn)
}

// Subscribe dials and yields every data frame received until the server
// closes the connection. The caller must close the returned io.Closer
// when abandoning the stream before it is drained.
func (c *StatelessClient) Subscribe(ctx context.Context, path string, opts ...wsconn.Option) (<-chan Result, io.Closer, error) {
	return c.streamPush(ctx, path, dialect.Subscribe, opts...)
}

// GetStream is like Subscribe, but the server may end the stream cleanly
// with a stream-end frame instead of closing the connection.
func (c *StatelessClient) GetStream(ctx context.Context, path string, opts ...wsconn.Option) (<-chan Result, io.Closer, error) {
	return c.streamPush(ctx, path, dialect.GetStream, opts...)
}

func (c *StatelessClient) streamPush(
	ctx context.Context,
	path string,
	op func(context.Context, transport.Reader) <-chan Result,
	opts ...wsconn.Option,
) (<-chan Result, io.Closer, error) {
	conn, err := c.dialer(opts...).Dial(ctx, joinURL(c.baseURL, path))
	if err != nil {
		return nil, nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	raw := op(streamCtx, conn)

	out := make(chan Result)
	go func() {
		defer close(out)
		defer cancel()
		defer conn.Close(statelessNormalClosure, "")
		for res := range raw {
			select {
			case out <- res:
			case <-streamCtx.Done():
				return
			}
		}
	}()

	return out, closerFunc(func() error {
		cancel()
		return conn.Close(statelessNormalClosure, "")
	}), nil
}

// Request sends one payload and awaits one correlated reply.
func (c *StatelessClient) Request(ctx context.Context, path string, payload JSON, opts ...wsconn.Option) (JSON, error) {
	conn, err := c.dialer(opts...).Dial(ctx, joinURL(c.baseURL, path))
	if err != nil {
		return nil, err
	}
	defer conn.Close(statelessNormalClosure, "")

	return dialect.Request(ctx, conn, payload)
}

// RequestStreamOut sends one payload, then yields correlated reply
// payloads until a stream-end frame or an error ends the stream. The
// caller must close the returned io.Closer when abandoning the stream
// before it is drained.
func (c *StatelessClient) RequestStreamOut(ctx context.Context, path string, payload JSON, opts ...wsconn.Option) (<-chan Result, io.Closer, error) {
	conn, err := c.dialer(opts...).Dial(ctx, joinURL(c.baseURL, path))
	if err != nil {
		return nil, nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	raw := dialect.RequestStreamOut(streamCtx, conn, payload)

	out := make(chan Result)
	go func() {
		defer close(out)
		defer cancel()
		defer conn.Close(statelessNormalClosure, "")
		for res := range raw {
			select {
			case out <- res:
			case <-streamCtx.Done():
				return
			}
		}
	}()

	return out, closerFunc(func() error {
		cancel()
		return conn.Close(statelessNormalClosure, "")
	}), nil
}

// RequestStreamIn sends a sequence of payloads, then awaits one reply
// correlated to the last payload sent.
func (c *StatelessClient) RequestStreamIn(ctx context.Context, path string, src dialect.Source, opts ...wsconn.Option) (JSON, error) {
	conn, err := c.dialer(opts...).Dial(ctx, joinURL(c.baseURL, path))
	if err != nil {
		return nil, err
	}
	defer conn.Close(statelessNormalClosure, "")

	return dialect.RequestStreamIn(ctx, conn, src)
}

// RequestStreamInOut sends a sequence of payloads, then yields correlated
// reply payloads until a stream-end frame or an error ends the stream.
// The caller must close the returned io.Closer when abandoning the
// stream before it is drained.
func (c *StatelessClient) RequestStreamInOut(ctx context.Context, path string, src dialect.Source, opts ...wsconn.Option) (<-chan Result, io.Closer, error) {
	conn, err := c.dialer(opts...).Dial(ctx, joinURL(c.baseURL, path))
	if err != nil {
		return nil, nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	raw := dialect.RequestStreamInOut(streamCtx, conn, src)

	out := make(chan Result)
	go func() {
		defer close(out)
		defer cancel()
		defer conn.Close(statelessNormalClosure, "")
		for res := range raw {
			select {
			case out <- res:
			case <-streamCtx.Done():
				return
			}
		}
	}()

	return out, closerFunc(func() error {
		cancel()
		return conn.Close(statelessNormalClosure, "")
	}), nil
}
