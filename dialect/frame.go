// Package dialect implements the stateless request/reply wire protocol
// (spec.md §6/§9, dialect B): no chat envelope, replies correlated to
// requests by UUID instead of a shared chat id. It is grounded directly
// on the original source's operations.py/protocol.py, which implement
// this dialect as plain functions rather than the Sender/Receiver/chat
// machinery dialect A uses.
package dialect

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/kilroybot/kilroyws/kilroyerr"
	"github.com/kilroybot/kilroyws/protocol/frame"
)

// Kind tags the stateless frame variant.
type Kind string

const (
	KindRequest   Kind = "request"
	KindReply     Kind = "reply"
	KindStreamEnd Kind = "stream-end"
)

// Request carries one payload from client to server, tagged with a fresh
// id the matching Reply must echo back.
type Request struct {
	Type    Kind      `json:"type"`
	ID      uuid.UUID `json:"id"`
	Payload frame.JSON `json:"payload"`
}

// Reply carries one payload from server to client, correlated to the
// Request it answers.
type Reply struct {
	Type    Kind       `json:"type"`
	Request uuid.UUID  `json:"request"`
	Payload frame.JSON `json:"payload"`
}

// StreamEnd marks the end of a reply stream; it carries no id, since
// dialect B has no chat to scope it to.
type StreamEnd struct {
	Type Kind `json:"type"`
}

type envelope struct {
	Type Kind `json:"type"`
}

func decodeAs[T any](data []byte, kind Kind) (T, bool) {
	var zero T
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return zero, false
	}
	if env.Type != kind {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, false
	}
	return v, true
}

// promote mirrors the original protocol.py's get_error cascade for this
// dialect: app-error is tried before protocol-error, the reverse of
// dialect A's order in spec.md §4.1 (see DESIGN.md).
func promote(data []byte) error {
	if ae, ok := decodeAs[frame.AppError](data, frame.KindAppError); ok {
		return kilroyerr.NewAppError(ae.Code, ae.Reason)
	}
	if pe, ok := decodeAs[frame.ProtocolError](data, frame.KindProtocolError); ok {
		return kilroyerr.NewProtocolError(pe.Reason)
	}
	return kilroyerr.ErrInvalidMessage
}

// NewRequest builds a request frame carrying payload with a fresh id.
func NewRequest(payload frame.JSON) Request {
	return Request{Type: KindRequest, ID: uuid.New(), Payload: payload}
}

// Serialize emits compact JSON for any stateless frame variant.
func Serialize(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, kilroyerr.ErrCantSerialize
	}
	return b, nil
}

// ParseReply parses data as a reply to requestID, or raises the promoted
// error. A reply correlated to a different request id is a protocol
// error.
func ParseReply(data []byte, requestID uuid.UUID) (Reply, error) {
	reply, ok := decodeAs[Reply](data, KindReply)
	if !ok {
		return Reply{}, promote(data)
	}
	if reply.Request != requestID {
		return Reply{}, kilroyerr.NewProtocolError("Got a reply for different request.")
	}
	return reply, nil
}

// ParseStreamEnd parses data as a stream-end frame, or raises the
// promoted error.
func ParseStreamEnd(data []byte) (StreamEnd, error) {
	if v, ok := decodeAs[StreamEnd](data, KindStreamEnd); ok {
		return v, nil
	}
	return StreamEnd{}, promote(data)
}
