package schema

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned by Decode for blank input.
var ErrEmptyDocument = errors.New("schema: record document is empty")

// Decode parses a JSON or YAML character document into a raw record suitable
// for Validate. JSON input is accepted because it is valid YAML.
func Decode(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("schema: decode record: %w", err)
	}
	if raw == nil {
		return nil, ErrEmptyDocument
	}
	return raw, nil
}
