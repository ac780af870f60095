package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/goliatone/go-charsheet/internal/config"
	"github.com/goliatone/go-charsheet/pkg/assemble"
	"github.com/goliatone/go-charsheet/pkg/format"
	"github.com/goliatone/go-charsheet/pkg/profile"
)

// app carries the state shared by every subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg      config.Config
	logger   *zap.Logger
	prompter prompter
	// interactive reports whether prompts may be shown.
	interactive func() bool
	noInput     bool
}

func newApp(stdin *os.File, stdout, stderr io.Writer) *app {
	return &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		logger:   zap.NewNop(),
		prompter: surveyPrompter{},
		interactive: func() bool {
			fd := stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}
}

func (a *app) canPrompt() bool {
	return !a.noInput && a.interactive != nil && a.interactive()
}

// profiles returns the built-in profiles with the configured profile
// directory layered on top.
func (a *app) profiles() (*profile.Registry, error) {
	registry, err := profile.Defaults()
	if err != nil {
		return nil, err
	}
	if a.cfg.ProfileDir == "" {
		return registry, nil
	}
	extra, err := profile.LoadFS(os.DirFS(a.cfg.ProfileDir))
	if err != nil {
		return nil, fmt.Errorf("profiles %s: %w", a.cfg.ProfileDir, err)
	}
	registry.Merge(extra)
	a.logger.Debug("profiles merged", zap.String("dir", a.cfg.ProfileDir), zap.Strings("profiles", extra.List()))
	return registry, nil
}

func (a *app) assembler() (*assemble.Assembler, error) {
	registry, err := a.profiles()
	if err != nil {
		return nil, err
	}
	options := []assemble.Option{
		assemble.WithProfiles(registry),
		assemble.WithLogger(a.logger.Named("assemble")),
	}
	if a.cfg.TemplateDir != "" {
		options = append(options, assemble.WithTemplateDir(a.cfg.TemplateDir))
	}
	if a.cfg.MacroDir != "" {
		options = append(options, assemble.WithMacroDir(a.cfg.MacroDir))
	}
	if a.cfg.Accent != "" {
		options = append(options, assemble.WithAccent(a.cfg.Accent))
	}
	return assemble.New(options...), nil
}

func (a *app) warn(location string, warnings []format.Warning) {
	for _, w := range warnings {
		if w.Path != "" {
			fmt.Fprintf(a.stderr, "%s: %s: %s: %s\n", location, w.Kind, w.Path, w.Message)
			continue
		}
		fmt.Fprintf(a.stderr, "%s: %s: %s\n", location, w.Kind, w.Message)
	}
}

// writeFile writes data to path, asking before replacing an existing file
// unless force is set.
func (a *app) writeFile(path string, data string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		if !a.canPrompt() {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		ok, err := a.prompter.Confirm(fmt.Sprintf("Overwrite %s?", path), false)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: not overwritten", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(data), 0o644)
}

// outputName is the file a rendered variant of location is written to.
func outputName(location, variant string) string {
	base := filepath.Base(location)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "." + variant + ".tex"
}
