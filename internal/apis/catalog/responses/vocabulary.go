package responses

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseNames reads a vocabulary endpoint: a raw array or {"results": [...]}.
// Only object entries with a non-empty string "name" are kept.
func ParseNames(b []byte) ([]string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}

	var entries []json.RawMessage
	switch b[0] {
	case '[':
		if err := json.Unmarshal(b, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
	case '{':
		var env map[string]json.RawMessage
		if err := json.Unmarshal(b, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		// an object without a results array carries no entries
		if err := json.Unmarshal(env["results"], &entries); err != nil {
			return []string{}, nil
		}
	default:
		return nil, fmt.Errorf("%w: unexpected top-level json", ErrMalformedPayload)
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		var obj map[string]any
		if err := json.Unmarshal(e, &obj); err != nil {
			continue
		}
		if name, ok := obj["name"].(string); ok && name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}
