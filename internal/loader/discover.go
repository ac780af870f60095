package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-charsheet/pkg/schema"
)

// IsRecordFile reports whether name looks like a character document.
func IsRecordFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Discover returns file origins for every record document under root, in
// lexical order. A root that names a single file yields just that file.
func Discover(ctx context.Context, root string) ([]schema.Origin, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if !info.IsDir() {
		return []schema.Origin{schema.OriginFromFile(root)}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !IsRecordFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: walk %s: %w", root, err)
	}
	sort.Strings(paths)

	origins := make([]schema.Origin, 0, len(paths))
	for _, path := range paths {
		origins = append(origins, schema.OriginFromFile(path))
	}
	return origins, nil
}

// LoadAll loads every origin, stopping at the first failure.
func (l *Loader) LoadAll(ctx context.Context, origins []schema.Origin) ([]schema.Input, error) {
	inputs := make([]schema.Input, 0, len(origins))
	for _, origin := range origins {
		in, err := l.Load(ctx, origin)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}
