package profile

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed profiles/*.yaml
var embedded embed.FS

// EmbeddedFS exposes the built-in profile documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embedded, "profiles")
	if err != nil {
		panic(err)
	}
	return sub
}

var defaults = sync.OnceValues(func() (*Registry, error) {
	return LoadFS(EmbeddedFS())
})

// Defaults returns a fresh registry holding the built-in "long" and "short"
// profiles. Callers may register more profiles on it.
func Defaults() (*Registry, error) {
	base, err := defaults()
	if err != nil {
		return nil, err
	}
	registry := NewRegistry()
	registry.Merge(base)
	return registry, nil
}

// MustDefaults panics when the embedded profiles fail to load.
func MustDefaults() *Registry {
	registry, err := Defaults()
	if err != nil {
		panic(err)
	}
	return registry
}
