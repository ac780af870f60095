package template

import (
	"io"
)

// Renderer executes named templates and inline template strings.
type Renderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
}

// Locator is implemented by renderers that can tell whether a named template
// resolves, so callers can fall back to a generic template.
type Locator interface {
	Exists(name string) bool
}

// Engine combines rendering and lookup. Section and document rendering
// depend on it.
type Engine interface {
	Renderer
	Locator
}
