package section

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/goliatone/go-charsheet/pkg/format"
	"github.com/goliatone/go-charsheet/pkg/profile"
	"github.com/goliatone/go-charsheet/pkg/render/template"
	"github.com/goliatone/go-charsheet/pkg/schema"
	"github.com/goliatone/go-charsheet/pkg/visibility"
	"github.com/goliatone/go-charsheet/pkg/visibility/expr"
)

const genericTemplate = "sections/generic"

// Fragment is the rendered markup of one group for one profile.
type Fragment struct {
	Group   schema.GroupID
	Title   string
	Markup  string
	Lines   int
	Omitted bool
	// Kept lists the rendered entries in record order.
	Kept []Kept
	// Dropped holds the record indexes removed by the caller through
	// Rerender.
	Dropped []int
	// Hidden counts entries cut by the group limit or dropped.
	Hidden   int
	Warnings []format.Warning
}

// Kept describes a rendered entry and its truncation rank: higher ranks are
// less important.
type Kept struct {
	Index int
	Name  string
	Rank  int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEvaluator replaces the CEL rule evaluator.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(r *Renderer) {
		if evaluator != nil {
			r.evaluator = evaluator
		}
	}
}

// WithSyntax replaces the escaping syntax. Defaults to format.LaTeX.
func WithSyntax(syntax format.Syntax) Option {
	return func(r *Renderer) {
		if syntax != nil {
			r.syntax = syntax
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSection adds or replaces the Section for its group.
func WithSection(section Section) Option {
	return func(r *Renderer) {
		if section != nil {
			r.sections[section.Group()] = section
		}
	}
}

// Renderer renders groups through a template engine. It holds no per-render
// state and is safe for concurrent use.
type Renderer struct {
	engine    template.Engine
	evaluator visibility.Evaluator
	syntax    format.Syntax
	logger    *zap.Logger
	sections  map[schema.GroupID]Section
}

// NewRenderer constructs a Renderer over engine.
func NewRenderer(engine template.Engine, options ...Option) (*Renderer, error) {
	if engine == nil {
		return nil, errors.New("section: template engine is required")
	}
	r := &Renderer{
		engine:   engine,
		syntax:   format.LaTeX,
		logger:   zap.NewNop(),
		sections: make(map[schema.GroupID]Section),
	}
	for _, s := range Sections() {
		r.sections[s.Group()] = s
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.evaluator == nil {
		evaluator, err := expr.New()
		if err != nil {
			return nil, err
		}
		r.evaluator = evaluator
	}
	return r, nil
}

// Syntax returns the escaping syntax used for values.
func (r *Renderer) Syntax() format.Syntax {
	return r.syntax
}

// Render renders group for p. Groups absent from the profile, and groups with
// no visible rows or entries, yield an omitted fragment with no markup.
func (r *Renderer) Render(ctx context.Context, group schema.GroupID, record schema.CharacterRecord, derived format.Derived, p profile.Profile) (Fragment, error) {
	return r.Rerender(ctx, group, record, derived, p, nil)
}

// Rerender renders group without the entries whose record indexes are in
// dropped. Dropped entries are counted in the visible truncation marker.
func (r *Renderer) Rerender(ctx context.Context, group schema.GroupID, record schema.CharacterRecord, derived format.Derived, p profile.Profile, dropped []int) (Fragment, error) {
	if err := ctx.Err(); err != nil {
		return Fragment{}, err
	}

	fragment := Fragment{Group: group, Omitted: true}
	rule, ok := p.Group(group)
	if !ok {
		return fragment, nil
	}
	sec, ok := r.sections[group]
	if !ok {
		return Fragment{}, fmt.Errorf("section: no section for group %q", group)
	}

	fragment.Title = sec.Title()
	if rule.Title != "" {
		fragment.Title = rule.Title
	}

	content := sec.Build(record, derived)
	var warnings []format.Warning

	rows := r.rows(group, "", content.Rows, rule, &warnings)

	included, err := r.include(group, content.Entries, rule)
	if err != nil {
		return Fragment{}, err
	}

	limited := included
	if rule.Limit > 0 && len(included) > rule.Limit {
		limited = included[:rule.Limit]
		warnings = append(warnings, format.Warning{
			Kind:    format.WarningOverflow,
			Path:    string(group),
			Message: fmt.Sprintf("showing the first %d of %d entries", rule.Limit, len(included)),
		})
	}
	hidden := len(included) - len(limited)

	drop := make(map[int]bool, len(dropped))
	for _, index := range dropped {
		drop[index] = true
	}

	entries := make([]entryView, 0, len(limited))
	for _, entry := range limited {
		if drop[entry.Index] {
			hidden++
			fragment.Dropped = append(fragment.Dropped, entry.Index)
			continue
		}
		rank, err := r.rank(group, entry, rule)
		if err != nil {
			return Fragment{}, err
		}
		name, nameWarnings := format.FormatLimited(entry.Path+".name", entry.Name, rule.MaxChars, r.syntax)
		warnings = append(warnings, nameWarnings...)

		details := r.rows(group, entry.Path, entry.Details, rule, &warnings)
		values := make(map[string]string, len(details))
		for _, d := range details {
			values[d.Field] = d.Value
		}
		entries = append(entries, entryView{
			Index:   entry.Index,
			Name:    string(name),
			Details: details,
			Values:  values,
		})
		fragment.Kept = append(fragment.Kept, Kept{Index: entry.Index, Name: entry.Name, Rank: rank})
	}
	fragment.Hidden = hidden
	fragment.Warnings = warnings

	if len(rows) == 0 && len(entries) == 0 && hidden == 0 {
		r.logger.Debug("section omitted", zap.String("group", string(group)))
		return fragment, nil
	}

	view := sectionView{
		Group:   string(group),
		Title:   string(r.syntax.Escape(fragment.Title)),
		Rows:    rows,
		Entries: entries,
	}
	if hidden > 0 {
		view.Omitted = string(r.syntax.Escape(hiddenMessage(hidden)))
	}

	name := "sections/" + string(group)
	if !r.engine.Exists(name) {
		name = genericTemplate
	}
	markup, err := r.engine.RenderTemplate(name, view.context())
	if err != nil {
		return Fragment{}, fmt.Errorf("section: render %s: %w", group, err)
	}

	fragment.Omitted = false
	fragment.Markup = markup
	fragment.Lines = r.estimate(view, p.Budget.CharsPerLine)
	r.logger.Debug("section rendered",
		zap.String("group", string(group)),
		zap.String("template", name),
		zap.Int("lines", fragment.Lines),
		zap.Int("entries", len(entries)),
		zap.Int("hidden", hidden),
	)
	return fragment, nil
}

func (r *Renderer) rows(group schema.GroupID, base string, in []Row, rule profile.GroupRule, warnings *[]format.Warning) []rowView {
	out := make([]rowView, 0, len(in))
	for _, row := range in {
		if !rule.Allows(row.Field) {
			continue
		}
		path := row.Path
		if path == "" {
			if base == "" {
				path = string(group) + "." + row.Field
			} else {
				path = base + "." + row.Field
			}
		}

		value, rowWarnings := r.value(path, row.Value, rule.MaxChars)
		*warnings = append(*warnings, rowWarnings...)
		if value == "" {
			continue
		}

		text := row.Label
		if text == "" {
			text = label(row.Field)
		}
		out = append(out, rowView{
			Field: row.Field,
			Label: string(r.syntax.Escape(text)),
			Value: string(value),
		})
	}
	return out
}

func (r *Renderer) value(path string, value any, maxChars int) (format.SafeText, []format.Warning) {
	switch v := value.(type) {
	case string:
		return format.FormatLimited(path, v, maxChars, r.syntax)
	case []string:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		return format.FormatLimited(path, strings.Join(parts, ", "), maxChars, r.syntax)
	default:
		return format.Format(path, value, r.syntax)
	}
}

func (r *Renderer) include(group schema.GroupID, entries []Entry, rule profile.GroupRule) ([]Entry, error) {
	if strings.TrimSpace(rule.Include) == "" {
		return entries, nil
	}
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		ok, err := r.evaluator.Eval(entry.Path, rule.Include, ruleContext(group, entry))
		if err != nil {
			return nil, fmt.Errorf("section: %s include: %w", group, err)
		}
		if ok {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *Renderer) rank(group schema.GroupID, entry Entry, rule profile.GroupRule) (int, error) {
	for i, priority := range rule.Priority {
		ok, err := r.evaluator.Eval(entry.Path, priority, ruleContext(group, entry))
		if err != nil {
			return 0, fmt.Errorf("section: %s priority: %w", group, err)
		}
		if ok {
			return i, nil
		}
	}
	return len(rule.Priority), nil
}

func ruleContext(group schema.GroupID, entry Entry) visibility.Context {
	values := make(map[string]any, len(entry.Attrs)+2)
	for key, value := range entry.Attrs {
		values[key] = value
	}
	values["name"] = entry.Name
	values["index"] = entry.Index
	return visibility.Context{
		Values: values,
		Extras: map[string]any{"group": string(group)},
	}
}

// estimate counts wrapped text lines: one for the heading, one or more per
// row and entry, one for the truncation marker.
func (r *Renderer) estimate(view sectionView, charsPerLine int) int {
	lines := 1
	for _, row := range view.Rows {
		lines += wrapped(r.width(row.Label)+2+r.width(row.Value), charsPerLine)
	}
	for _, entry := range view.Entries {
		width := r.width(entry.Name)
		for _, d := range entry.Details {
			width += 2 + r.width(d.Label) + 2 + r.width(d.Value)
		}
		lines += wrapped(width, charsPerLine)
	}
	if view.Omitted != "" {
		lines++
	}
	return lines
}

func (r *Renderer) width(markup string) int {
	return utf8.RuneCountInString(r.syntax.Unescape(format.SafeText(markup)))
}

func wrapped(width, charsPerLine int) int {
	if charsPerLine <= 0 || width <= charsPerLine {
		return 1
	}
	return (width + charsPerLine - 1) / charsPerLine
}

func hiddenMessage(n int) string {
	if n == 1 {
		return "1 more entry not shown"
	}
	return fmt.Sprintf("%d more entries not shown", n)
}
