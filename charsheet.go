package charsheet

import (
	"context"
	"fmt"

	"github.com/goliatone/go-charsheet/pkg/assemble"
	"github.com/goliatone/go-charsheet/pkg/format"
	"github.com/goliatone/go-charsheet/pkg/profile"
	"github.com/goliatone/go-charsheet/pkg/schema"
)

// Document aliases assemble.Document for callers that only import the root
// package.
type Document = assemble.Document

// Warning aliases format.Warning.
type Warning = format.Warning

// ValidationError aliases schema.ValidationError so callers can match it with
// errors.As without importing pkg/schema.
type ValidationError = schema.ValidationError

// Built-in variant names.
const (
	Long  = profile.Long
	Short = profile.Short
)

// NewAssembler exposes the assembler constructor from the top-level module.
func NewAssembler(options ...assemble.Option) *assemble.Assembler {
	return assemble.New(options...)
}

// Render decodes a JSON or YAML character document and renders it as the
// named variant. It is the simplest entry point for callers that just want
// LaTeX output.
func Render(ctx context.Context, data []byte, variant string, options ...assemble.Option) (Document, error) {
	in, err := schema.NewInput(schema.OriginInline(""), data)
	if err != nil {
		return Document{Variant: variant, State: assemble.StateRejected}, err
	}
	return assemble.New(options...).RenderInput(ctx, in, variant)
}

// RenderBoth renders the long and short variants of one document. Both
// variants share the validated record; a validation failure is reported once.
func RenderBoth(ctx context.Context, data []byte, options ...assemble.Option) (long, short Document, err error) {
	raw, err := schema.Decode(data)
	if err != nil {
		return Document{}, Document{}, err
	}
	record, err := schema.Validate(raw)
	if err != nil {
		return Document{}, Document{}, err
	}

	a := assemble.New(options...)
	for _, target := range []struct {
		variant string
		out     *Document
	}{{Long, &long}, {Short, &short}} {
		p, err := a.Profiles().Get(target.variant)
		if err != nil {
			return Document{}, Document{}, fmt.Errorf("charsheet: %w", err)
		}
		*target.out, err = a.Assemble(ctx, record, p)
		if err != nil {
			return Document{}, Document{}, fmt.Errorf("charsheet: %s: %w", target.variant, err)
		}
	}
	return long, short, nil
}

// Validate decodes and validates a character document without rendering it.
// Derivation warnings (clamped values, ignored supplied values) are returned
// alongside the record.
func Validate(data []byte) (schema.CharacterRecord, []Warning, error) {
	raw, err := schema.Decode(data)
	if err != nil {
		return schema.CharacterRecord{}, nil, err
	}
	record, err := schema.Validate(raw)
	if err != nil {
		return schema.CharacterRecord{}, nil, err
	}
	_, warnings := format.Derive(record)
	return record, warnings, nil
}
