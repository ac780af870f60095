package schema

import (
	"errors"
	"fmt"
)

// Input wraps a raw character document and its origin.
type Input struct {
	origin Origin
	raw    []byte
}

// NewInput constructs an Input while validating the arguments.
func NewInput(origin Origin, raw []byte) (Input, error) {
	if origin == nil {
		return Input{}, errors.New("schema: origin is required")
	}
	if len(raw) == 0 {
		return Input{}, fmt.Errorf("%s: %w", origin.Location(), ErrEmptyDocument)
	}

	clone := append([]byte(nil), raw...)
	return Input{origin: origin, raw: clone}, nil
}

// MustNewInput panics if the input cannot be created. Useful for tests.
func MustNewInput(origin Origin, raw []byte) Input {
	in, err := NewInput(origin, raw)
	if err != nil {
		panic(err)
	}
	return in
}

// Origin returns the origin metadata for the input.
func (in Input) Origin() Origin {
	return in.origin
}

// Raw returns a copy of the payload.
func (in Input) Raw() []byte {
	return append([]byte(nil), in.raw...)
}

// Location returns the string identifier for the origin.
func (in Input) Location() string {
	if in.origin == nil {
		return ""
	}
	return in.origin.Location()
}

// Decode parses the payload into a raw record.
func (in Input) Decode() (map[string]any, error) {
	raw, err := Decode(in.raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.Location(), err)
	}
	return raw, nil
}
