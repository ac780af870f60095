package section

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-charsheet/pkg/format"
	"github.com/goliatone/go-charsheet/pkg/schema"
)

type combatSection struct{}

func (combatSection) Group() schema.GroupID { return schema.GroupCombat }
func (combatSection) Title() string { return "Combat" }

// Build always yields the two death-save rows: they are tick boxes on paper,
// so zero is a value rather than a blank.
func (combatSection) Build(record schema.CharacterRecord, _ format.Derived) Content {
	c := record.Combat

	entries := make([]Entry, 0, len(c.Resources))
	for i, resource := range c.Resources {
		entries = append(entries, Entry{
			Index: i,
			Path:  fmt.Sprintf("combat.resources[%d]", i),
			Name:  resource.Name,
			Attrs: map[string]any{
				"current":  resource.Current,
				"max":      resource.Max,
				"recharge": resource.Recharge,
				"source":   string(resource.Source),
			},
			Details: []Row{
				{Field: "uses", Value: fmt.Sprintf("%d / %d", resource.Current, resource.Max)},
				{Field: "recharge", Value: resource.Recharge},
				{Field: "source", Value: resource.Source},
			},
		})
	}

	return Content{
		Rows: []Row{
			{Field: "deathSaveSuccesses", Label: "Death Save Successes", Path: "combat.deathSaves.successes", Value: c.DeathSaves.Successes},
			{Field: "deathSaveFailures", Label: "Death Save Failures", Path: "combat.deathSaves.failures", Value: c.DeathSaves.Failures},
			{Field: "conditions", Value: c.Conditions},
		},
		Entries: entries,
	}
}

type defensesSection struct{}

func (defensesSection) Group() schema.GroupID { return schema.GroupDefenses }
func (defensesSection) Title() string { return "Defenses" }

func (defensesSection) Build(record schema.CharacterRecord, _ format.Derived) Content {
	d := record.Defenses
	return Content{Rows: []Row{
		{Field: "resistances", Value: d.Resistances},
		{Field: "vulnerabilities", Value: d.Vulnerabilities},
		{Field: "immunities", Value: d.Immunities},
	}}
}

type proficienciesSection struct{}

func (proficienciesSection) Group() schema.GroupID { return schema.GroupProficiencies }
func (proficienciesSection) Title() string { return "Proficiencies & Languages" }

func (proficienciesSection) Build(record schema.CharacterRecord, _ format.Derived) Content {
	p := record.Proficiencies
	return Content{Rows: []Row{
		{Field: "armor", Value: proficiencyNames(p.Armor)},
		{Field: "weapons", Value: proficiencyNames(p.Weapons)},
		{Field: "tools", Value: proficiencyNames(p.Tools)},
		{Field: "languages", Value: proficiencyNames(p.Languages)},
	}}
}

func proficiencyNames(list []schema.Proficiency) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, sourced(p.Name, string(p.Source)))
	}
	return out
}

type skillsSection struct{}

func (skillsSection) Group() schema.GroupID { return schema.GroupSkills }
func (skillsSection) Title() string { return "Skills" }

func (skillsSection) Build(record schema.CharacterRecord, derived format.Derived) Content {
	entries := make([]Entry, 0, 18)
	for i, skill := range schema.Skills() {
		values := derived.Skills[skill]
		entry := record.Skills[skill]

		training := ""
		switch {
		case values.Expertise:
			training = "expertise"
		case values.Proficient:
			training = "proficient"
		}

		entries = append(entries, Entry{
			Index: i,
			Path:  "skills." + string(skill),
			Name:  skill.Name(),
			Attrs: map[string]any{
				"skill":      string(skill),
				"ability":    string(values.Ability),
				"proficient": values.Proficient,
				"expertise":  values.Expertise,
				"total":      values.Total,
			},
			Details: []Row{
				{Field: "ability", Value: strings.ToUpper(string(values.Ability))},
				{Field: "total", Value: format.Signed(values.Total)},
				{Field: "proficiency", Value: training},
				{Field: "source", Value: entry.Source},
			},
		})
	}
	return Content{Entries: entries}
}

type sensesSection struct{}

func (sensesSection) Group() schema.GroupID { return schema.GroupSenses }
func (sensesSection) Title() string { return "Senses" }

func (sensesSection) Build(record schema.CharacterRecord, _ format.Derived) Content {
	entries := make([]Entry, 0, len(record.Senses))
	for i, sense := range record.Senses {
		entries = append(entries, Entry{
			Index: i,
			Path:  fmt.Sprintf("senses[%d]", i),
			Name:  sense.Name,
			Attrs: map[string]any{"range": sense.Range, "source": string(sense.Source)},
			Details: []Row{
				{Field: "range", Value: feet(sense.Range)},
				{Field: "source", Value: sense.Source},
			},
		})
	}
	return Content{Entries: entries}
}

type actionsSection struct{}

func (actionsSection) Group() schema.GroupID { return schema.GroupActions }
func (actionsSection) Title() string { return "Actions" }

func (actionsSection) Build(record schema.CharacterRecord, derived format.Derived) Content {
	entries := make([]Entry, 0, len(record.Actions))
	for i, action := range record.Actions {
		var attack any
		if bonus, ok := derived.AttackBonuses[i]; ok {
			attack = format.Signed(bonus)
		}
		entries = append(entries, Entry{
			Index: i,
			Path:  fmt.Sprintf("actions[%d]", i),
			Name:  action.Name,
			Attrs: map[string]any{
				"kind":       string(action.Kind),
				"ability":    string(action.Ability),
				"proficient": action.Proficient,
				"source":     string(action.Source),
			},
			Details: []Row{
				{Field: "kind", Value: string(action.Kind)},
				{Field: "attack", Label: "Attack Bonus", Value: attack},
				{Field: "damage", Value: action.Damage},
				{Field: "range", Value: action.Range},
				{Field: "notes", Value: action.Notes},
				{Field: "source", Value: action.Source},
			},
		})
	}
	return Content{Entries: entries}
}
