package domain

import (
	"encoding/json"
	"fmt"
)

// EncodeFields serializes a block's field mapping into the stored data payload.
func EncodeFields(fields map[string]string) (string, error) {
	if fields == nil {
		fields = map[string]string{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode block fields: %w", err)
	}
	return string(b), nil
}

// DecodeFields parses a stored data payload. An empty payload is an empty
// mapping. Non-string values are rejected.
func DecodeFields(data string) (map[string]string, error) {
	fields := map[string]string{}
	if data == "" {
		return fields, nil
	}
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return map[string]string{}, fmt.Errorf("decode block fields: %w", err)
	}
	if fields == nil {
		// payload was the JSON literal null
		fields = map[string]string{}
	}
	return fields, nil
}
