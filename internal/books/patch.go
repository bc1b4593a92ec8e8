package books

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Omkar-Hajare/IP-practical/internal/apperr"
)

// ParsePatch reads a partial book from r and returns the fields to $set,
// keyed by their stored names. Unknown keys are dropped. An empty body is
// an empty patch.
func ParsePatch(r io.Reader) (map[string]interface{}, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperr.Wrap(apperr.Validation, "invalid request body", err)
	}

	fields := make(map[string]interface{}, len(raw))
	for _, key := range []string{"title", "author", "isbn"} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil || s == "" {
			return nil, apperr.New(apperr.Validation, fmt.Sprintf("%s must be a non-empty string", key))
		}
		fields[key] = s
	}

	if v, ok := raw["available"]; ok {
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return nil, apperr.New(apperr.Validation, "available must be a boolean")
		}
		fields["available"] = b
	}

	if v, ok := raw["borrowedBy"]; ok {
		var s *string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, apperr.New(apperr.Validation, "borrowedBy must be a string or null")
		}
		if s == nil {
			fields["borrowedBy"] = nil
		} else {
			fields["borrowedBy"] = *s
		}
	}

	return fields, nil
}
