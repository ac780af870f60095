package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/goliatone/go-charsheet/internal/loader"
	"github.com/goliatone/go-charsheet/pkg/schema"
)

// SampleCharacter is the fixture shared by package tests: a level 5 dwarf
// fighter (Eldritch Knight) with STR 16 and a proficient Strength save.
const SampleCharacter = "characters/brenna.yaml"

// FixturePath resolves a path relative to the repository testdata directory,
// independent of the calling package's working directory.
func FixturePath(rel string) string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return filepath.Join("testdata", rel)
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata", rel)
}

// LoadRaw decodes a record fixture without validating it. Each call returns a
// fresh map so tests can mutate it freely.
func LoadRaw(t *testing.T, rel string) map[string]any {
	t.Helper()

	raw, err := LoadRawFromPath(FixturePath(rel))
	if err != nil {
		t.Fatalf("load raw record: %v", err)
	}
	return raw
}

// LoadRawFromPath returns a raw record without requiring testing.T, allowing
// callers to build fixtures in setup functions and benchmarks.
func LoadRawFromPath(path string) (map[string]any, error) {
	if path == "" {
		return nil, errors.New("testsupport: record path is required")
	}
	in, err := loader.New(nil).LoadFile(context.Background(), path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read record: %w", err)
	}
	raw, err := in.Decode()
	if err != nil {
		return nil, fmt.Errorf("testsupport: decode record: %w", err)
	}
	return raw, nil
}

// LoadRecord decodes and validates a record fixture.
func LoadRecord(t *testing.T, rel string) schema.CharacterRecord {
	t.Helper()

	record, err := schema.Validate(LoadRaw(t, rel))
	if err != nil {
		t.Fatalf("validate record: %v", err)
	}
	return record
}

// MustReadGolden reads a golden file and returns its content.
func MustReadGolden(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
