package section

import (
	"fmt"

	"github.com/goliatone/go-charsheet/pkg/format"
	"github.com/goliatone/go-charsheet/pkg/schema"
)

type roleplayingSection struct{}

func (roleplayingSection) Group() schema.GroupID { return schema.GroupRoleplaying }
func (roleplayingSection) Title() string { return "Personality & Backstory" }

func (roleplayingSection) Build(record schema.CharacterRecord, _ format.Derived) Content {
	r := record.Roleplaying
	return Content{Rows: []Row{
		{Field: "personalityTraits", Value: r.PersonalityTraits},
		{Field: "ideals", Value: r.Ideals},
		{Field: "bonds", Value: r.Bonds},
		{Field: "flaws", Value: r.Flaws},
		{Field: "motivations", Value: r.Motivations},
		{Field: "goals", Value: r.Goals},
		{Field: "quirks", Value: r.Quirks},
		{Field: "secrets", Value: r.Secrets},
		{Field: "backstory", Value: r.Backstory},
	}}
}

type alliesSection struct{}

func (alliesSection) Group() schema.GroupID { return schema.GroupAllies }
func (alliesSection) Title() string { return "Allies & Organizations" }

func (alliesSection) Build(record schema.CharacterRecord, _ format.Derived) Content {
	entries := make([]Entry, 0, len(record.Allies))
	for i, ally := range record.Allies {
		entries = append(entries, Entry{
			Index: i,
			Path:  fmt.Sprintf("allies[%d]", i),
			Name:  ally.Name,
			Attrs: map[string]any{"kind": ally.Kind},
			Details: []Row{
				{Field: "kind", Value: ally.Kind},
				{Field: "relationship", Value: ally.Relationship},
				{Field: "notes", Value: ally.Notes},
			},
		})
	}
	return Content{Entries: entries}
}

type notesSection struct{}

func (notesSection) Group() schema.GroupID { return schema.GroupNotes }
func (notesSection) Title() string { return "Notes" }

func (notesSection) Build(record schema.CharacterRecord, _ format.Derived) Content {
	n := record.Notes
	return Content{Rows: []Row{
		{Field: "lifestyle", Value: n.Lifestyle},
		{Field: "titles", Value: n.Titles},
		{Field: "reputation", Value: n.Reputation},
		{Field: "downtime", Value: n.Downtime},
		{Field: "custom", Label: "Other Notes", Value: n.Custom},
	}}
}

type cosmeticSection struct{}

func (cosmeticSection) Group() schema.GroupID { return schema.GroupCosmetic }
func (cosmeticSection) Title() string { return "Flourishes" }

func (cosmeticSection) Build(record schema.CharacterRecord, _ format.Derived) Content {
	c := record.Cosmetic
	return Content{Rows: []Row{
		{Field: "symbol", Value: c.Symbol},
		{Field: "quote", Value: c.Quote},
		{Field: "themeSong", Value: c.ThemeSong},
		{Field: "artwork", Value: c.Artwork},
		{Field: "handwriting", Value: c.Handwriting},
	}}
}
