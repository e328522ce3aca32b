// Package frame implements the chat-framed message model: the discriminated
// union of wire frames, their JSON schema, and the parse/serialize helpers
// that tolerate a server replying with an error frame in place of the
// expected variant.
package frame

import (
	"encoding/json"

	"github.com/google/uuid"
)

// JSON is a JSON value that round-trips byte-for-byte without an
// intermediate interface{} decode.
type JSON = json.RawMessage

// Kind tags the frame variant on the wire, in the field named "type".
type Kind string

const (
	KindStart         Kind = "start"
	KindStop          Kind = "stop"
	KindData          Kind = "data"
	KindStreamEnd     Kind = "streamEnd"
	KindAppError      Kind = "app-error"
	KindProtocolError Kind = "protocol-error"
)

// Start opens a chat.
type Start struct {
	Type   Kind      `json:"type"`
	ID     uuid.UUID `json:"id"`
	ChatID uuid.UUID `json:"chatId"`
}

// Stop closes a chat.
type Stop struct {
	Type   Kind      `json:"type"`
	ID     uuid.UUID `json:"id"`
	ChatID uuid.UUID `json:"chatId"`
}

// Data carries one payload in either direction.
type Data struct {
	Type    Kind      `json:"type"`
	ID      uuid.UUID `json:"id"`
	ChatID  uuid.UUID `json:"chatId"`
	Payload JSON      `json:"payload"`
}

// StreamEnd marks the end of a data stream in one direction.
type StreamEnd struct {
	Type   Kind      `json:"type"`
	ID     uuid.UUID `json:"id"`
	ChatID uuid.UUID `json:"chatId"`
}

// AppError is an application-level error from the server. It terminates
// the chat.
type AppError struct {
	Type   Kind      `json:"type"`
	ID     uuid.UUID `json:"id"`
	ChatID uuid.UUID `json:"chatId"`
	Code   int       `json:"code"`
	Reason string    `json:"reason"`
}

// ProtocolError is a protocol-level error. ChatID may be nil if the error
// occurred before a chat was established. It terminates the chat.
type ProtocolError struct {
	Type   Kind       `json:"type"`
	ID     uuid.UUID  `json:"id"`
	ChatID *uuid.UUID `json:"chatId,omitempty"`
	Reason string     `json:"reason"`
}

// envelope is unmarshaled first to dispatch on the type tag before the
// full variant is decoded.
type envelope struct {
	Type Kind `json:"type"`
}
