package section

import (
	"github.com/goliatone/go-charsheet/pkg/format"
	"github.com/goliatone/go-charsheet/pkg/schema"
)

// Row is a scalar field of a group. Value is raw: strings and string lists
// are escaped (and shortened to the profile limit), ints are formatted,
// format.SafeText passes through untouched and nil means blank.
type Row struct {
	Field string
	Label string
	// Path addresses the value for warnings and range lookups. Defaults to
	// "<group>.<field>".
	Path  string
	Value any
}

// Entry is one element of a group list. Attrs feed the profile rules and are
// never rendered directly; Details are rendered under the entry name.
type Entry struct {
	// Index is the position of the entry in the record list.
	Index   int
	Path    string
	Name    string
	Attrs   map[string]any
	Details []Row
}

// Content is what a Section contributes before profile rules apply.
type Content struct {
	Rows    []Row
	Entries []Entry
}

// Section is implemented once per schema group.
type Section interface {
	Group() schema.GroupID
	Title() string
	Build(record schema.CharacterRecord, derived format.Derived) Content
}

// Sections returns the built-in section for every schema group, in schema
// order.
func Sections() []Section {
	return []Section{
		identitySection{},
		basicsSection{},
		abilitiesSection{},
		derivedSection{},
		combatSection{},
		defensesSection{},
		proficienciesSection{},
		skillsSection{},
		sensesSection{},
		actionsSection{},
		featuresSection{},
		equipmentSection{},
		spellsSection{},
		roleplayingSection{},
		alliesSection{},
		notesSection{},
		cosmeticSection{},
	}
}

func nonZero(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func flag(set bool, text string) any {
	if !set {
		return nil
	}
	return text
}
