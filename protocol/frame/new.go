package frame

import "github.com/google/uuid"

// NewStart builds a start frame for chatID with a freshly generated id.
func NewStart(chatID uuid.UUID) Start {
	return Start{Type: KindStart, ID: uuid.New(), ChatID: chatID}
}

// NewStop builds a stop frame for chatID with a freshly generated id.
func NewStop(chatID uuid.UUID) Stop {
	return Stop{Type: KindStop, ID: uuid.New(), ChatID: chatID}
}

// NewData builds a data frame carrying payload for chatID.
func NewData(chatID uuid.UUID, payload JSON) Data {
	return Data{Type: KindData, ID: uuid.New(), ChatID: chatID, Payload: payload}
}

// NewStreamEnd builds a streamEnd frame for chatID.
func NewStreamEnd(chatID uuid.UUID) StreamEnd {
	return StreamEnd{Type: KindStreamEnd, ID: uuid.New(), ChatID: chatID}
}

// NewAppError builds an app-error frame for chatID.
func NewAppError(chatID uuid.UUID, code int, reason string) AppError {
	return AppError{Type: KindAppError, ID: uuid.New(), ChatID: chatID, Code: code, Reason: reason}
}

// NewProtocolError builds a protocol-error frame. chatID may be nil if the
// error occurred before a chat was established.
func NewProtocolError(chatID *uuid.UUID, reason string) ProtocolError {
	return ProtocolError{Type: KindProtocolError, ID: uuid.New(), ChatID: chatID, Reason: reason}
}
