package section

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-charsheet/pkg/format"
	"github.com/goliatone/go-charsheet/pkg/schema"
)

type featuresSection struct{}

func (featuresSection) Group() schema.GroupID { return schema.GroupFeatures }
func (featuresSection) Title() string { return "Features & Traits" }

func (featuresSection) Build(record schema.CharacterRecord, _ format.Derived) Content {
	entries := make([]Entry, 0, len(record.Features))
	for i, feature := range record.Features {
		entries = append(entries, Entry{
			Index: i,
			Path:  fmt.Sprintf("features[%d]", i),
			Name:  feature.Name,
			Attrs: map[string]any{"source": string(feature.Source)},
			Details: []Row{
				{Field: "uses", Value: feature.Uses},
				{Field: "description", Value: feature.Description},
				{Field: "source", Value: feature.Source},
			},
		})
	}
	return Content{Entries: entries}
}

type equipmentSection struct{}

func (equipmentSection) Group() schema.GroupID { return schema.GroupEquipment }
func (equipmentSection) Title() string { return "Equipment" }

func (equipmentSection) Build(record schema.CharacterRecord, _ format.Derived) Content {
	e := record.Equipment

	entries := make([]Entry, 0, len(e.Items))
	for i, item := range e.Items {
		status := ""
		switch {
		case item.Equipped:
			status = "equipped"
		case item.Carried:
			status = "carried"
		}
		entries = append(entries, Entry{
			Index: i,
			Path:  fmt.Sprintf("equipment.items[%d]", i),
			Name:  item.Name,
			Attrs: map[string]any{
				"category": string(item.Category),
				"equipped": item.Equipped,
				"carried":  item.Carried,
				"quantity": item.Quantity,
				"source":   string(item.Source),
			},
			Details: []Row{
				{Field: "quantity", Value: quantity(item.Quantity)},
				{Field: "category", Value: string(item.Category)},
				{Field: "status", Value: status},
				{Field: "weight", Value: item.Weight},
				{Field: "notes", Value: item.Notes},
				{Field: "source", Value: item.Source},
			},
		})
	}

	return Content{
		Rows:    []Row{{Field: "currency", Value: currency(e.Currency)}},
		Entries: entries,
	}
}

func quantity(n int) any {
	if n <= 1 {
		return nil
	}
	return format.Number(n)
}

func currency(c schema.Currency) []string {
	var out []string
	for _, coin := range []struct {
		name  string
		count int
	}{{"pp", c.PP}, {"gp", c.GP}, {"ep", c.EP}, {"sp", c.SP}, {"cp", c.CP}} {
		if coin.count != 0 {
			out = append(out, fmt.Sprintf("%d %s", coin.count, coin.name))
		}
	}
	return out
}

type spellsSection struct{}

func (spellsSection) Group() schema.GroupID { return schema.GroupSpells }
func (spellsSection) Title() string { return "Spellcasting" }

func (spellsSection) Build(record schema.CharacterRecord, derived format.Derived) Content {
	s := record.Spells

	var rows []Row
	if derived.Spellcasting {
		slots := make([]string, 0, len(s.Slots))
		for _, slot := range s.Slots {
			text := fmt.Sprintf("%s %d", ordinal(slot.Level), slot.Total)
			if slot.Used > 0 {
				text += fmt.Sprintf(" (%d used)", slot.Used)
			}
			slots = append(slots, text)
		}
		rows = []Row{
			{Field: "ability", Label: "Spellcasting Ability", Value: derived.SpellAbility.Name()},
			{Field: "saveDC", Label: "Spell Save DC", Value: format.Number(derived.SpellSaveDC)},
			{Field: "attackBonus", Label: "Spell Attack Bonus", Value: format.Signed(derived.SpellAttackBonus)},
			{Field: "slots", Label: "Spell Slots", Value: slots},
		}
	}

	entries := make([]Entry, 0, len(s.List))
	for i, spell := range s.List {
		entries = append(entries, Entry{
			Index: i,
			Path:  fmt.Sprintf("spells.list[%d]", i),
			Name:  spell.Name,
			Attrs: map[string]any{
				"level":         spell.Level,
				"prepared":      spell.Prepared,
				"ritual":        spell.Ritual,
				"concentration": spell.Concentration,
				"source":        string(spell.Source),
			},
			Details: []Row{
				{Field: "level", Value: ordinal(spell.Level)},
				{Field: "prepared", Value: flag(spell.Prepared, "prepared")},
				{Field: "tags", Value: spellTags(spell)},
				{Field: "castingTime", Value: spell.CastingTime},
				{Field: "range", Value: spell.Range},
				{Field: "components", Value: spell.Components},
				{Field: "duration", Value: spell.Duration},
				{Field: "description", Value: spell.Description},
				{Field: "cost", Value: spell.Cost},
				{Field: "acquisition", Value: spell.Acquisition},
				{Field: "source", Value: spell.Source},
			},
		})
	}

	return Content{Rows: rows, Entries: entries}
}

func spellTags(spell schema.Spell) any {
	var tags []string
	if spell.Ritual {
		tags = append(tags, "ritual")
	}
	if spell.Concentration {
		tags = append(tags, "concentration")
	}
	if len(tags) == 0 {
		return nil
	}
	return strings.Join(tags, ", ")
}
