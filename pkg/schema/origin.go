package schema

import "path/filepath"

// Origin identifies where a character document came from so error messages and
// batch results can name it without leaking how it was read.
type Origin interface {
	Kind() OriginKind
	Location() string
}

// OriginKind enumerates the supported input modalities.
type OriginKind string

const (
	OriginKindFile   OriginKind = "file"
	OriginKindFS     OriginKind = "fs"
	OriginKindInline OriginKind = "inline"
)

type fileOrigin struct {
	path string
}

func (o fileOrigin) Location() string { return o.path }
func (o fileOrigin) Kind() OriginKind { return OriginKindFile }

// OriginFromFile returns an Origin pointing to a file path.
func OriginFromFile(path string) Origin {
	return fileOrigin{path: filepath.Clean(path)}
}

type fsOrigin struct {
	name string
}

func (o fsOrigin) Location() string { return o.name }
func (o fsOrigin) Kind() OriginKind { return OriginKindFS }

// OriginFromFS returns an Origin identifying a document inside an fs.FS.
func OriginFromFS(name string) Origin {
	return fsOrigin{name: name}
}

type inlineOrigin struct {
	label string
}

func (o inlineOrigin) Location() string { return o.label }
func (o inlineOrigin) Kind() OriginKind { return OriginKindInline }

// OriginInline labels a document supplied directly by the caller.
func OriginInline(label string) Origin {
	if label == "" {
		label = "<inline>"
	}
	return inlineOrigin{label: label}
}
