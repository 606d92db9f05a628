package components

import (
	"encoding/json"
)

// JSON marshals v for a data attribute, returning "{}" on error
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
