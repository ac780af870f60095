package gotemplate_test

import (
	"bytes"
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-charsheet/pkg/render/template/gotemplate"
)

//go:embed testdata/templates
var embeddedTemplates embed.FS

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	got, err := engine.RenderTemplate("hello", map[string]any{
		"name":  `Brenna \& Co`,
		"items": []string{`50\%`, "plain"},
	}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "\\section*{Brenna \\& Co}\n\\item 50\\%\n\\item plain\n"
	if got != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, got)
	}
	if buf.String() != want {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", want, buf.String())
	}
}

func TestEngine_Deterministic(t *testing.T) {
	engine := newEngine(t)
	data := map[string]any{"name": "x", "items": []string{"a", "b"}}

	first, err := engine.RenderTemplate("hello", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := engine.RenderTemplate("hello", data)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if again != first {
			t.Fatalf("render %d differs:\n%q\n%q", i, first, again)
		}
	}
}

func TestEngine_GlobalDataAndBracedNil(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS(t)),
		gotemplate.WithGlobalData(map[string]any{
			"settings": map[string]any{"accent": "7A1F1F"},
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("sections/generic", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "\\sheetgroup{}{7A1F1F}\n"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderString(`{% autoescape off %}\textbf{{ name|trim|braced }}{% endautoescape %}`, map[string]any{"name": "  Ada "})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != `\textbf{Ada}` {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RejectsUnsupportedView(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("hello", struct{ Name string }{"x"}); err == nil {
		t.Fatal("expected unsupported view error")
	}
}

func TestEngine_Exists(t *testing.T) {
	engine := newEngine(t)
	if !engine.Exists("hello") || !engine.Exists("sections/generic.tex") {
		t.Fatalf("expected embedded templates to exist")
	}
	if engine.Exists("sections/skills") {
		t.Fatalf("unexpected template sections/skills")
	}
}

func TestEngine_BaseDirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	override := "{% autoescape off %}override {{ name }}{% endautoescape %}"
	if err := os.WriteFile(filepath.Join(dir, "hello.tex"), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir), gotemplate.WithFS(templatesFS(t)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("hello", map[string]any{"name": "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "override x" {
		t.Fatalf("expected override template, got %q", got)
	}
	if !engine.Exists("sections/generic") {
		t.Fatalf("fallback filesystem should still resolve")
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS(t)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func templatesFS(t *testing.T) fs.FS {
	t.Helper()

	sub, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	return sub
}
