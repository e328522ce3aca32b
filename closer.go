package kilroyws

// closerFunc adapts a plain function to an io.Closer, mirroring the same
// adapter in protocol/operation for the stateless client's stream closers.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }
