package section

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-charsheet/pkg/format"
	"github.com/goliatone/go-charsheet/pkg/schema"
)

type identitySection struct{}

func (identitySection) Group() schema.GroupID { return schema.GroupIdentity }
func (identitySection) Title() string { return "Identity" }

func (identitySection) Build(record schema.CharacterRecord, _ format.Derived) Content {
	id := record.Identity
	return Content{Rows: []Row{
		{Field: "playerName", Value: id.PlayerName},
		{Field: "campaign", Value: id.Campaign},
		{Field: "party", Value: id.Party},
		{Field: "alignment", Value: id.Alignment},
		{Field: "deity", Value: id.Deity},
		{Field: "gender", Value: id.Gender},
		{Field: "pronouns", Value: id.Pronouns},
		{Field: "age", Value: id.Age},
		{Field: "height", Value: id.Height},
		{Field: "weight", Value: id.Weight},
		{Field: "eyes", Value: id.Eyes},
		{Field: "hair", Value: id.Hair},
		{Field: "skin", Value: id.Skin},
		{Field: "appearance", Value: id.Appearance},
		{Field: "distinguishingFeatures", Value: id.DistinguishingFeatures},
		{Field: "voice", Value: id.Voice},
	}}
}

type basicsSection struct{}

func (basicsSection) Group() schema.GroupID { return schema.GroupBasics }
func (basicsSection) Title() string { return "Character" }

func (basicsSection) Build(record schema.CharacterRecord, derived format.Derived) Content {
	b := record.Basics

	species := b.Species
	if b.Subrace != "" {
		species = b.Subrace
		if b.Species != "" && !strings.Contains(b.Subrace, b.Species) {
			species = b.Subrace + " " + b.Species
		}
	}

	classes := make([]string, 0, len(b.Classes))
	for _, class := range b.Classes {
		text := fmt.Sprintf("%s %d", class.Name, class.Level)
		if class.Subclass != "" {
			text += " (" + class.Subclass + ")"
		}
		classes = append(classes, text)
	}

	return Content{Rows: []Row{
		{Field: "characterName", Label: "Name", Value: b.CharacterName},
		{Field: "species", Value: species},
		{Field: "classes", Label: "Class", Value: classes},
		{Field: "level", Path: "basics.level", Value: format.Number(derived.Level)},
		{Field: "background", Value: b.Background},
		{Field: "experience", Value: nonZero(b.Experience)},
	}}
}

type abilitiesSection struct{}

func (abilitiesSection) Group() schema.GroupID { return schema.GroupAbilities }
func (abilitiesSection) Title() string { return "Ability Scores" }

func (abilitiesSection) Build(_ schema.CharacterRecord, derived format.Derived) Content {
	entries := make([]Entry, 0, 6)
	for i, ability := range schema.Abilities() {
		values := derived.Abilities[ability]
		path := "abilities." + string(ability)
		entries = append(entries, Entry{
			Index: i,
			Path:  path,
			Name:  ability.Name(),
			Attrs: map[string]any{
				"ability":        string(ability),
				"score":          values.Score,
				"saveProficient": values.SaveProficient,
			},
			Details: []Row{
				{Field: "score", Path: path + ".score", Value: format.Number(values.Score)},
				{Field: "modifier", Value: format.Signed(values.Modifier)},
				{Field: "save", Value: format.Signed(values.Save)},
				{Field: "proficient", Label: "Save Proficiency", Value: flag(values.SaveProficient, "proficient")},
			},
		})
	}
	return Content{Entries: entries}
}

type derivedSection struct{}

func (derivedSection) Group() schema.GroupID { return schema.GroupDerived }
func (derivedSection) Title() string { return "Vital Statistics" }

func (derivedSection) Build(record schema.CharacterRecord, derived format.Derived) Content {
	d := record.Derived

	hitPoints := fmt.Sprintf("%d / %d", d.HitPoints.Current, d.HitPoints.Max)

	hitDice := make([]string, 0, len(d.HitDice))
	for _, dice := range d.HitDice {
		text := fmt.Sprintf("%d%s", dice.Total, dice.Die)
		if dice.Used > 0 {
			text += fmt.Sprintf(" (%d used)", dice.Used)
		}
		hitDice = append(hitDice, text)
	}

	return Content{Rows: []Row{
		{Field: "armorClass", Value: d.ArmorClass},
		{Field: "initiative", Value: format.Signed(derived.Initiative)},
		{Field: "speed", Value: speeds(d.Speed)},
		{Field: "proficiencyBonus", Value: format.Signed(derived.ProficiencyBonus)},
		{Field: "hitPoints", Label: "Hit Points (current / max)", Value: hitPoints},
		{Field: "temporaryHitPoints", Path: "derived.hitPoints.temporary", Value: nonZero(d.HitPoints.Temporary)},
		{Field: "hitDice", Value: hitDice},
		{Field: "passivePerception", Value: format.Number(derived.PassivePerception)},
		{Field: "passiveInvestigation", Value: format.Number(derived.PassiveInvestigation)},
		{Field: "passiveInsight", Value: format.Number(derived.PassiveInsight)},
	}}
}

func speeds(s schema.Speed) []string {
	var out []string
	add := func(mode string, distance int) {
		if distance == 0 {
			return
		}
		if mode == "" {
			out = append(out, fmt.Sprintf("%d ft", distance))
			return
		}
		out = append(out, fmt.Sprintf("%s %d ft", mode, distance))
	}
	add("", s.Walk)
	add("fly", s.Fly)
	add("swim", s.Swim)
	add("climb", s.Climb)
	add("burrow", s.Burrow)
	return out
}
