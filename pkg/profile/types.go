package profile

import (
	"slices"

	"github.com/goliatone/go-charsheet/pkg/schema"
)

// Built-in variant names.
const (
	Long  = "long"
	Short = "short"
)

// Policy names the overflow behaviour applied when the size estimate exceeds
// the page budget.
type Policy string

const (
	// PolicyExtend never drops content; exceeding the budget only warns.
	PolicyExtend Policy = "extend"
	// PolicyTruncate drops the lowest-priority entries with a visible marker
	// until the document fits.
	PolicyTruncate Policy = "truncate"
)

// Profile is the declarative rule set for one variant. Values returned by a
// Registry are copies; mutating them does not affect later lookups.
type Profile struct {
	Name      string      `json:"name" yaml:"name"`
	Title     string      `json:"title,omitempty" yaml:"title,omitempty"`
	Document  Document    `json:"document" yaml:"document"`
	Separator string      `json:"separator,omitempty" yaml:"separator,omitempty"`
	Budget    Budget      `json:"budget" yaml:"budget"`
	Overflow  Overflow    `json:"overflow" yaml:"overflow"`
	Groups    []GroupRule `json:"groups" yaml:"groups"`
	Theme     Theme       `json:"theme,omitempty" yaml:"theme,omitempty"`

	// Source records the file the profile was loaded from.
	Source string `json:"-" yaml:"-"`
}

// Document configures the outer document template.
type Document struct {
	Template string `json:"template,omitempty" yaml:"template,omitempty"`
	Macros   string `json:"macros,omitempty" yaml:"macros,omitempty"`
	Options  string `json:"options,omitempty" yaml:"options,omitempty"`
	Columns  int    `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// Budget is the space budget. Pages is a hard limit under PolicyTruncate and
// a soft limit under PolicyExtend.
type Budget struct {
	Pages        int `json:"pages" yaml:"pages"`
	LinesPerPage int `json:"linesPerPage" yaml:"linesPerPage"`
	CharsPerLine int `json:"charsPerLine" yaml:"charsPerLine"`
	HeaderLines  int `json:"headerLines,omitempty" yaml:"headerLines,omitempty"`
}

// MaxLines is the number of estimated lines that fit the budget.
func (b Budget) MaxLines() int {
	return b.Pages * b.LinesPerPage
}

// PagesFor converts a line estimate into pages, rounding up.
func (b Budget) PagesFor(lines int) int {
	if b.LinesPerPage <= 0 || lines <= 0 {
		return 0
	}
	return (lines + b.LinesPerPage - 1) / b.LinesPerPage
}

// Overflow selects the policy and, for PolicyTruncate, the groups entries may
// be dropped from, in the order they are tried.
type Overflow struct {
	Policy Policy           `json:"policy" yaml:"policy"`
	Order  []schema.GroupID `json:"order,omitempty" yaml:"order,omitempty"`
}

// GroupRule configures one group within a profile.
type GroupRule struct {
	ID    schema.GroupID `json:"id" yaml:"id"`
	Title string         `json:"title,omitempty" yaml:"title,omitempty"`
	// Fields is the allow-list of row and entry detail fields. Empty means
	// every field.
	Fields []string `json:"fields,omitempty" yaml:"fields,omitempty"`
	// Include is a rule every list entry must satisfy to be rendered.
	Include string `json:"include,omitempty" yaml:"include,omitempty"`
	// Priority ranks entries for truncation: an entry's rank is the index of
	// the first matching rule, or len(Priority) when none matches.
	Priority []string `json:"priority,omitempty" yaml:"priority,omitempty"`
	// Limit keeps only the first N included entries. Zero disables it.
	Limit int `json:"limit,omitempty" yaml:"limit,omitempty"`
	// MaxChars bounds every free-text value of the group. Zero disables it.
	MaxChars int `json:"maxChars,omitempty" yaml:"maxChars,omitempty"`
}

// Allows reports whether field passes the allow-list.
func (g GroupRule) Allows(field string) bool {
	return len(g.Fields) == 0 || slices.Contains(g.Fields, field)
}

// Theme carries presentation tokens for the document template.
type Theme struct {
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Accent    string `json:"accent,omitempty" yaml:"accent,omitempty"`
	Parchment bool   `json:"parchment,omitempty" yaml:"parchment,omitempty"`
}

// Group returns the rule for id.
func (p Profile) Group(id schema.GroupID) (GroupRule, bool) {
	for _, rule := range p.Groups {
		if rule.ID == id {
			return rule, true
		}
	}
	return GroupRule{}, false
}

// Includes reports whether the profile renders group id.
func (p Profile) Includes(id schema.GroupID) bool {
	_, ok := p.Group(id)
	return ok
}

// Order returns the group ids in rendering order.
func (p Profile) Order() []schema.GroupID {
	out := make([]schema.GroupID, 0, len(p.Groups))
	for _, rule := range p.Groups {
		out = append(out, rule.ID)
	}
	return out
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	out := p
	out.Overflow.Order = slices.Clone(p.Overflow.Order)
	out.Groups = make([]GroupRule, len(p.Groups))
	for i, rule := range p.Groups {
		rule.Fields = slices.Clone(rule.Fields)
		rule.Priority = slices.Clone(rule.Priority)
		out.Groups[i] = rule
	}
	return out
}
