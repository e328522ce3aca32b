// Package kilroyerr defines the two error kinds the chat protocol can
// surface to a caller: ProtocolError for framing violations and AppError
// for application failures reported by the server.
package kilroyerr

import (
	"fmt"
)

// ProtocolError signals a violation of the framing/protocol contract:
// an unparseable frame, the wrong frame variant where a specific one was
// expected, a chat id mismatch, a stray frame after a stream end, or a
// construction/serialization failure.
type ProtocolError struct {
	Reason string
}

// NewProtocolError constructs a ProtocolError with the given reason.
func NewProtocolError(reason string) *ProtocolError {
	return &ProtocolError{Reason: reason}
}

func (e *ProtocolError) Error() string {
	return e.Reason
}

// Fixed reasons used throughout the protocol layer. Keep these strings
// exactly as specified; callers may compare against them with errors.Is.
var (
	ErrInvalidMessage       = NewProtocolError("Invalid message received.")
	ErrConversationMismatch = NewProtocolError("Received incompatible conversation id.")
	ErrCantSerialize        = NewProtocolError("Can't serialize data message.")
	ErrCantCreate           = NewProtocolError("Can't create data message.")
)

// Is lets errors.Is(err, ErrInvalidMessage) match any *ProtocolError with
// the same reason, not just the exact sentinel pointer.
func (e *ProtocolError) Is(target error) bool {
	other, ok := target.(*ProtocolError)
	if !ok {
		return false
	}
	return e.Reason == other.Reason
}

// AppError signals an application-level failure delivered by the server
// as an app-error frame. Code is opaque to the library.
type AppError struct {
	Code   int
	Reason string
}

// NewAppError constructs an AppError.
func NewAppError(code int, reason string) *AppError {
	return &AppError{Code: code, Reason: reason}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Reason)
}

func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == other.Code && e.Reason == other.Reason
}
