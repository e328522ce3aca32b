// Package kilroyws is a client for a structured, framed messaging protocol
// layered on top of a bidirectional WebSocket transport. It exposes six
// interaction patterns against a server speaking the same protocol: a
// fire-and-forget read, a persistent subscription, a request/reply, and
// the three streaming variants of request/reply.
package kilroyws
