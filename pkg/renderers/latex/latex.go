// Package latex bundles the LaTeX templates and macro packages used to
// render character sheets.
//
// Templates live under templates/: document.tex is the outer document and
// sections/<group>.tex renders a single group, with sections/generic.tex as
// the fallback. Macro packages live under macros/ and are inlined into the
// document preamble verbatim, so every rendered sheet is self-contained.
package latex

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed templates macros
var assets embed.FS

// Templates exposes the embedded template tree rooted at templates/.
func Templates() fs.FS {
	sub, err := fs.Sub(assets, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Macros returns the named macro package (e.g. "short.sty"). When dir is not
// empty a file with the same name there takes precedence over the embedded
// copy.
func Macros(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	if filepath.Base(name) != name {
		return "", fmt.Errorf("latex: macro package %q must be a bare file name", name)
	}

	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("latex: read macros %s: %w", name, err)
		}
	}

	data, err := fs.ReadFile(assets, "macros/"+name)
	if err != nil {
		return "", fmt.Errorf("latex: macro package %q: %w", name, err)
	}
	return string(data), nil
}
