package assemble

import (
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-charsheet/pkg/profile"
	"github.com/goliatone/go-charsheet/pkg/render/template"
	"github.com/goliatone/go-charsheet/pkg/section"
)

// Option customises the assembler configuration.
type Option func(*Assembler)

// WithEngine injects the template engine used for sections and the outer
// document. Defaults to the embedded LaTeX bundle.
func WithEngine(engine template.Engine) Option {
	return func(a *Assembler) {
		a.engine = engine
	}
}

// WithRenderer injects a preconfigured section renderer. When set, the
// renderer's own engine renders sections while the assembler's engine renders
// the document.
func WithRenderer(renderer *section.Renderer) Option {
	return func(a *Assembler) {
		a.renderer = renderer
	}
}

// WithProfiles replaces the profile registry used to resolve variant names.
func WithProfiles(registry *profile.Registry) Option {
	return func(a *Assembler) {
		a.profiles = registry
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// WithTemplateDir overlays templates found in dir on top of the embedded
// bundle. Ignored when WithEngine is supplied.
func WithTemplateDir(dir string) Option {
	return func(a *Assembler) {
		a.templateDir = dir
	}
}

// WithMacroDir lets macro packages found in dir replace the embedded ones.
func WithMacroDir(dir string) Option {
	return func(a *Assembler) {
		a.macroDir = dir
	}
}

// WithTheme resolves profile themes through a go-theme selector. The
// selection's "accent" and "parchment" tokens override the profile colours.
func WithTheme(selector theme.ThemeSelector) Option {
	return func(a *Assembler) {
		a.themes = selector
	}
}

// WithAccent forces the accent colour (six hex digits) for every themed
// profile.
func WithAccent(hex string) Option {
	return func(a *Assembler) {
		a.accent = hex
	}
}

// WithStrictBudget makes a truncate profile that cannot fit its budget fail
// with ErrBudgetExceeded instead of returning the truncated document with an
// overflow warning.
func WithStrictBudget() Option {
	return func(a *Assembler) {
		a.strictBudget = true
	}
}
