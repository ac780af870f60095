package charsheet

import (
	"io/fs"

	"github.com/goliatone/go-charsheet/pkg/profile"
	"github.com/goliatone/go-charsheet/pkg/renderers/latex"
)

// EmbeddedTemplates exposes the built-in LaTeX templates so callers can copy
// and customise them for assemble.WithTemplateDir.
func EmbeddedTemplates() fs.FS {
	return latex.Templates()
}

// EmbeddedProfiles exposes the built-in long and short profile files.
func EmbeddedProfiles() fs.FS {
	return profile.EmbeddedFS()
}
