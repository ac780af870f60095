package assemble

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-charsheet/pkg/format"
	"github.com/goliatone/go-charsheet/pkg/profile"
	"github.com/goliatone/go-charsheet/pkg/render/template"
	"github.com/goliatone/go-charsheet/pkg/render/template/gotemplate"
	"github.com/goliatone/go-charsheet/pkg/renderers/latex"
	"github.com/goliatone/go-charsheet/pkg/schema"
	"github.com/goliatone/go-charsheet/pkg/section"
)

// Assembler coordinates the full pipeline from raw record to LaTeX document.
// It applies sensible defaults (embedded profiles and templates) while
// remaining open to dependency injection.
type Assembler struct {
	engine      template.Engine
	renderer    *section.Renderer
	profiles    *profile.Registry
	logger      *zap.Logger
	themes      theme.ThemeSelector
	templateDir string
	macroDir    string
	accent      string

	strictBudget  bool
	initialiseErr error
}

// New constructs an Assembler applying any provided options. Missing
// dependencies are initialised with the built-in implementations; a failure
// to do so is reported by the first call to Assemble or Render.
func New(options ...Option) *Assembler {
	a := &Assembler{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	a.applyDefaults()
	return a
}

// Profiles exposes the registry used to resolve variant names.
func (a *Assembler) Profiles() *profile.Registry {
	return a.profiles
}

// Render validates a raw record and assembles it for the named variant. A
// record that fails validation yields a Rejected document and a
// *schema.ValidationError; nothing is rendered.
func (a *Assembler) Render(ctx context.Context, raw map[string]any, variant string) (Document, error) {
	doc := Document{Variant: variant}
	if err := a.ready(ctx); err != nil {
		return doc, err
	}
	a.transition(variant, StateReceived)
	doc.State = StateReceived

	p, err := a.profile(variant)
	if err != nil {
		return doc, err
	}

	record, err := schema.Validate(raw)
	if err != nil {
		a.transition(variant, StateRejected)
		doc.State = StateRejected
		return doc, err
	}
	a.transition(variant, StateValidated)

	return a.assemble(ctx, record, p)
}

// RenderInput decodes in and renders it like Render. Decode failures are
// returned as errors with the input location.
func (a *Assembler) RenderInput(ctx context.Context, in schema.Input, variant string) (Document, error) {
	raw, err := in.Decode()
	if err != nil {
		return Document{Variant: variant, State: StateRejected}, err
	}
	doc, err := a.Render(ctx, raw, variant)
	if err != nil {
		return doc, fmt.Errorf("%s: %w", in.Location(), err)
	}
	return doc, nil
}

// Assemble renders an already validated record with p.
func (a *Assembler) Assemble(ctx context.Context, record schema.CharacterRecord, p profile.Profile) (Document, error) {
	if err := a.ready(ctx); err != nil {
		return Document{Variant: p.Name}, err
	}
	a.transition(p.Name, StateReceived)
	a.transition(p.Name, StateValidated)
	return a.assemble(ctx, record, p)
}

func (a *Assembler) assemble(ctx context.Context, record schema.CharacterRecord, p profile.Profile) (Document, error) {
	doc := Document{Variant: p.Name, State: StateValidated}

	derived, warnings := format.Derive(record)
	a.transition(p.Name, StateFormatted)
	doc.State = StateFormatted

	fragments := make([]section.Fragment, 0, len(p.Groups))
	for _, group := range p.Order() {
		if err := ctx.Err(); err != nil {
			return doc, err
		}
		fragment, err := a.renderer.Render(ctx, group, record, derived, p)
		if err != nil {
			return doc, fmt.Errorf("assemble: render %s: %w", group, err)
		}
		if fragment.Omitted {
			continue
		}
		fragments = append(fragments, fragment)
	}
	a.transition(p.Name, StateRendered)
	doc.State = StateRendered

	fit, err := a.fit(ctx, record, derived, p, fragments)
	if err != nil {
		return doc, err
	}

	for _, fragment := range fit.fragments {
		warnings = append(warnings, fragment.Warnings...)
	}
	warnings = append(warnings, fit.warnings...)

	markup, err := a.document(record, p, fit.fragments)
	if err != nil {
		return doc, err
	}
	a.transition(p.Name, StateAssembled)

	doc.Markup = markup
	doc.Lines = fit.lines
	doc.Pages = max(1, p.Budget.PagesFor(fit.lines))
	doc.Fragments = fit.fragments
	doc.Warnings = warnings
	doc.State = StateDone
	a.transition(p.Name, StateDone)
	a.logger.Debug("document assembled",
		zap.String("variant", p.Name),
		zap.Int("fragments", len(fit.fragments)),
		zap.Int("lines", fit.lines),
		zap.Int("pages", doc.Pages),
		zap.Int("warnings", len(warnings)),
	)
	return doc, nil
}

func (a *Assembler) document(record schema.CharacterRecord, p profile.Profile, fragments []section.Fragment) (string, error) {
	colours, err := a.palette(p)
	if err != nil {
		return "", err
	}
	macros, err := latex.Macros(a.macroDir, p.Document.Macros)
	if err != nil {
		return "", fmt.Errorf("assemble: %w", err)
	}

	parts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		parts = append(parts, strings.TrimRight(fragment.Markup, "\n"))
	}

	syntax := a.renderer.Syntax()
	view := documentView{
		Options: p.Document.Options,
		Macros:  strings.TrimRight(macros, "\n"),
		Accent:  colours.accent,
		Paper:   colours.paper,
		Title:   string(syntax.Escape(p.Title)),
		Name:    string(syntax.Escape(strings.TrimSpace(record.Basics.CharacterName))),
		Columns: p.Document.Columns,
		Body:    strings.Join(parts, p.Separator),
	}

	markup, err := a.engine.RenderTemplate(p.Document.Template, view.context())
	if err != nil {
		return "", fmt.Errorf("assemble: render document %s: %w", p.Document.Template, err)
	}
	return markup, nil
}

func (a *Assembler) profile(variant string) (profile.Profile, error) {
	if variant == "" {
		return profile.Profile{}, errors.New("assemble: variant is required")
	}
	p, err := a.profiles.Get(variant)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("assemble: %w", err)
	}
	return p, nil
}

func (a *Assembler) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("assemble: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.initialiseErr
}

func (a *Assembler) transition(variant string, state State) {
	a.logger.Debug("render state", zap.String("variant", variant), zap.String("state", string(state)))
}

func (a *Assembler) applyDefaults() {
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	if a.profiles == nil {
		registry, err := profile.Defaults()
		if err != nil {
			a.initialiseErr = fmt.Errorf("assemble: default profiles: %w", err)
			return
		}
		a.profiles = registry
	}
	if a.engine == nil {
		options := []gotemplate.Option{gotemplate.WithFS(latex.Templates())}
		if a.templateDir != "" {
			options = append(options, gotemplate.WithBaseDir(a.templateDir))
		}
		engine, err := gotemplate.New(options...)
		if err != nil {
			a.initialiseErr = fmt.Errorf("assemble: template engine: %w", err)
			return
		}
		a.engine = engine
	}
	if a.renderer == nil {
		renderer, err := section.NewRenderer(a.engine, section.WithLogger(a.logger.Named("section")))
		if err != nil {
			a.initialiseErr = fmt.Errorf("assemble: section renderer: %w", err)
			return
		}
		a.renderer = renderer
	}
}
