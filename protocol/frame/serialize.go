package frame

import (
	"encoding/json"

	"github.com/kilroybot/kilroyws/kilroyerr"
)

// Serialize emits compact JSON with camelCase field names for any frame
// variant. It fails with kilroyerr.ErrCantSerialize if the value is not
// representable as JSON (e.g. a payload containing a non-finite number).
func Serialize(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, kilroyerr.ErrCantSerialize
	}
	return b, nil
}
