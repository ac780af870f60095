// Package loader reads character documents from disk or an fs.FS and wraps
// them as schema.Input values.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-charsheet/pkg/schema"
)

// Loader resolves an Origin to its raw payload.
type Loader struct {
	fs fs.FS
}

// New constructs a Loader. files backs fs origins and may be nil when only
// file origins are used.
func New(files fs.FS) *Loader {
	return &Loader{fs: files}
}

// Load fetches the document behind origin.
func (l *Loader) Load(ctx context.Context, origin schema.Origin) (schema.Input, error) {
	if origin == nil {
		return schema.Input{}, errors.New("loader: origin is nil")
	}

	var (
		data []byte
		err  error
	)
	switch origin.Kind() {
	case schema.OriginKindFile:
		data, err = loadFile(ctx, origin.Location())
	case schema.OriginKindFS:
		data, err = loadFromFS(ctx, l.fs, origin.Location())
	default:
		err = fmt.Errorf("loader: unsupported origin kind %q", origin.Kind())
	}
	if err != nil {
		return schema.Input{}, err
	}

	return schema.NewInput(origin, data)
}

// LoadFile is shorthand for loading a file origin.
func (l *Loader) LoadFile(ctx context.Context, path string) (schema.Input, error) {
	return l.Load(ctx, schema.OriginFromFile(path))
}
