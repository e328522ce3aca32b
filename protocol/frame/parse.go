package frame

import (
	"encoding/json"

	"github.com/kilroybot/kilroyws/kilroyerr"
)

// decodeAs attempts to unmarshal data as T, first checking that the wire
// "type" tag matches kind. Returns false (without error) on any mismatch
// so callers can fall through to the promotion cascade.
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

// promote turns an unparseable-as-expected frame into the correct error:
// try protocol-error, then app-error, then give up with the fixed
// "Invalid message received." reason.
func promote(data []byte) error {
	if pe, ok := decodeAs[ProtocolError](data, KindProtocolError); ok {
		return kilroyerr.NewProtocolError(pe.Reason)
	}
	if ae, ok := decodeAs[AppError](data, KindAppError); ok {
		return kilroyerr.NewAppError(ae.Code, ae.Reason)
	}
	return kilroyerr.ErrInvalidMessage
}

// ParseStart parses data as a start frame, or raises the promoted error.
func ParseStart(data []byte) (Start, error) {
	if v, ok := decodeAs[Start](data, KindStart); ok {
		return v, nil
	}
	return Start{}, promote(data)
}

// ParseStop parses data as a stop frame, or raises the promoted error.
func ParseStop(data []byte) (Stop, error) {
	if v, ok := decodeAs[Stop](data, KindStop); ok {
		return v, nil
	}
	return Stop{}, promote(data)
}

// ParseData parses data as a data frame, or raises the promoted error.
func ParseData(data []byte) (Data, error) {
	if v, ok := decodeAs[Data](data, KindData); ok {
		return v, nil
	}
	return Data{}, promote(data)
}

// ParseStreamEnd parses data as a streamEnd frame, or raises the promoted
// error.
func ParseStreamEnd(data []byte) (StreamEnd, error) {
	if v, ok := decodeAs[StreamEnd](data, KindStreamEnd); ok {
		return v, nil
	}
	return StreamEnd{}, promote(data)
}
