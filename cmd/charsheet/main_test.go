package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/goliatone/go-charsheet/pkg/testsupport"
)

type stubPrompter struct {
	selected  string
	confirm   bool
	questions []string
}

func (s *stubPrompter) Select(message string, _ []string, _ string) (string, error) {
	s.questions = append(s.questions, message)
	return s.selected, nil
}

func (s *stubPrompter) Confirm(message string, _ bool) (bool, error) {
	s.questions = append(s.questions, message)
	return s.confirm, nil
}

type harness struct {
	app    *app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(stdin string, interactive bool, p prompter) harness {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return harness{
		app: &app{
			stdin:       strings.NewReader(stdin),
			stdout:      stdout,
			stderr:      stderr,
			logger:      zap.NewNop(),
			prompter:    p,
			interactive: func() bool { return interactive },
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func (h harness) run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd(h.app)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func sample() string {
	return testsupport.FixturePath(testsupport.SampleCharacter)
}

func TestRender_Stdout(t *testing.T) {
	h := newHarness("", false, nil)
	if err := h.run(t, "render", "--variant", "short", sample()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(h.stdout.String(), `\documentclass`) {
		t.Fatalf("expected LaTeX on stdout, got %q", h.stdout.String())
	}
}

func TestRender_Stdin(t *testing.T) {
	data, err := os.ReadFile(sample())
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	h := newHarness(string(data), false, nil)
	if err := h.run(t, "render", "-"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "Brenna Ironhart") {
		t.Fatal("expected the character name in the output")
	}
}

func TestRender_BothWritesFiles(t *testing.T) {
	dir := t.TempDir()
	h := newHarness("", false, nil)
	if err := h.run(t, "render", "--variant", "both", "--out", dir, sample()); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, name := range []string{"brenna.long.tex", "brenna.short.tex"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestRender_PromptsForVariant(t *testing.T) {
	p := &stubPrompter{selected: "short"}
	h := newHarness("", true, p)
	if err := h.run(t, "render", sample()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(p.questions) != 1 {
		t.Fatalf("expected one prompt, got %v", p.questions)
	}
	if !strings.Contains(h.stdout.String(), `\begin{multicols}{2}`) {
		t.Fatal("expected the short variant")
	}
}

func TestRender_NoInputSkipsPrompt(t *testing.T) {
	p := &stubPrompter{selected: "short"}
	h := newHarness("", true, p)
	if err := h.run(t, "--no-input", "render", sample()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(p.questions) != 0 {
		t.Fatalf("expected no prompt, got %v", p.questions)
	}
}

func TestRender_RefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "sheet.tex")
	if err := os.WriteFile(target, []byte("keep"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h := newHarness("", false, nil)
	if err := h.run(t, "render", "--out", target, sample()); err == nil {
		t.Fatal("expected overwrite refusal")
	}

	p := &stubPrompter{confirm: false}
	h = newHarness("", true, p)
	if err := h.run(t, "render", "--variant", "long", "--out", target, sample()); err == nil {
		t.Fatal("expected declined overwrite to fail")
	}
	if data, _ := os.ReadFile(target); string(data) != "keep" {
		t.Fatal("file was overwritten")
	}

	h = newHarness("", false, nil)
	if err := h.run(t, "render", "--force", "--out", target, sample()); err != nil {
		t.Fatalf("forced render: %v", err)
	}
	if data, _ := os.ReadFile(target); string(data) == "keep" {
		t.Fatal("file was not overwritten")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("basics: {characterName: 42}\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h := newHarness("", false, nil)
	if err := h.run(t, "validate", sample()); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.HasPrefix(h.stdout.String(), "ok ") {
		t.Fatalf("unexpected output %q", h.stdout.String())
	}

	h = newHarness("", false, nil)
	if err := h.run(t, "validate", dir); err == nil {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(h.stdout.String(), "FAIL "+bad) {
		t.Fatalf("expected failing record to be named, got %q", h.stdout.String())
	}
}

func TestBatch(t *testing.T) {
	in := t.TempDir()
	data, err := os.ReadFile(sample())
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(in, "party"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"a.yaml", "party/b.yaml"} {
		if err := os.WriteFile(filepath.Join(in, name), data, 0o644); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(in, "broken.yaml"), []byte("basics: {characterName: 42}\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	out := t.TempDir()
	h := newHarness("", false, nil)
	err = h.run(t, "batch", "--workers", "2", "--out", out, in)
	if err == nil {
		t.Fatal("expected the broken record to fail the batch")
	}
	for _, name := range []string{"a.long.tex", "a.short.tex", "party/b.long.tex", "party/b.short.tex"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	if !strings.Contains(h.stderr.String(), "broken.yaml") {
		t.Fatalf("expected the failure to be reported, got %q", h.stderr.String())
	}
}

func TestBatch_UnknownVariant(t *testing.T) {
	h := newHarness("", false, nil)
	err := h.run(t, "batch", "--variant", "poster", "--out", t.TempDir(), sample())
	if err == nil || !strings.Contains(err.Error(), "poster") {
		t.Fatalf("expected unknown variant error, got %v", err)
	}
}

func TestProfiles_MergesProfileDir(t *testing.T) {
	dir := t.TempDir()
	custom := `name: poster
budget: {pages: 1, linesPerPage: 80, charsPerLine: 90}
groups:
  - {id: basics}
`
	if err := os.WriteFile(filepath.Join(dir, "poster.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h := newHarness("", false, nil)
	if err := h.run(t, "--profile-dir", dir, "profiles"); err != nil {
		t.Fatalf("profiles: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected three profiles, got %q", h.stdout.String())
	}
	for i, name := range []string{"long", "poster", "short"} {
		if !strings.HasPrefix(lines[i], name) {
			t.Fatalf("line %d: expected %s, got %q", i, name, lines[i])
		}
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CHARSHEET_THEME_ACCENT", "not-a-colour")
	h := newHarness("", false, nil)
	err := h.run(t, "render", sample())
	if err == nil {
		t.Fatal("expected invalid accent to fail the render")
	}
	if errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error %v", err)
	}
}
