package format

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/goliatone/go-charsheet/pkg/schema"
)

const (
	MinAbilityScore = 1
	MaxAbilityScore = 30
	MinLevel        = 1
	MaxLevel        = 20
)

// Modifier returns floor((score - 10) / 2).
func Modifier(score int) int {
	return floorDiv(score-10, 2)
}

// ProficiencyBonus returns 2 + floor((level - 1) / 4) with level clamped to
// the 1-20 table.
func ProficiencyBonus(level int) int {
	level, _ = ClampLevel(level)
	return 2 + (level-1)/4
}

// ClampScore bounds an ability score to 1-30. The flag reports a change.
func ClampScore(score int) (int, bool) {
	return clamp(score, MinAbilityScore, MaxAbilityScore)
}

// ClampLevel bounds a character level to 1-20. The flag reports a change.
func ClampLevel(level int) (int, bool) {
	return clamp(level, MinLevel, MaxLevel)
}

// Passive returns 10 + modifier plus the proficiency bonus when proficient,
// doubled with expertise.
func Passive(modifier, proficiencyBonus int, proficient, expertise bool) int {
	return 10 + modifier + trainingBonus(proficiencyBonus, proficient, expertise)
}

// SpellSaveDC returns 8 + proficiency bonus + spellcasting modifier.
func SpellSaveDC(proficiencyBonus, modifier int) int {
	return 8 + proficiencyBonus + modifier
}

// SpellAttackBonus returns proficiency bonus + spellcasting modifier.
func SpellAttackBonus(proficiencyBonus, modifier int) int {
	return proficiencyBonus + modifier
}

// AbilityValues holds the derived numbers for one ability.
type AbilityValues struct {
	Score          int
	Modifier       int
	Save           int
	SaveProficient bool
}

// SkillValues holds the derived total for one skill.
type SkillValues struct {
	Ability    schema.Ability
	Total      int
	Proficient bool
	Expertise  bool
}

// Derived collects every computed value used by the sheet.
type Derived struct {
	Level                int
	ProficiencyBonus     int
	Abilities            map[schema.Ability]AbilityValues
	Skills               map[schema.Skill]SkillValues
	Initiative           int
	PassivePerception    int
	PassiveInvestigation int
	PassiveInsight       int

	Spellcasting     bool
	SpellAbility     schema.Ability
	SpellSaveDC      int
	SpellAttackBonus int

	// AttackBonuses maps an index into record.Actions to the derived attack
	// bonus of that attack.
	AttackBonuses map[int]int
}

// Derive computes every derived value for the record. Warnings report clamped
// inputs and caller-supplied derived values that disagree with the result.
func Derive(record schema.CharacterRecord) (Derived, []Warning) {
	var warnings []Warning
	d := Derived{
		Abilities:     make(map[schema.Ability]AbilityValues, 6),
		Skills:        make(map[schema.Skill]SkillValues, 18),
		AttackBonuses: make(map[int]int),
	}

	level, clamped := ClampLevel(record.Basics.TotalLevel())
	if clamped {
		warnings = append(warnings, Warning{
			Kind:    WarningDerivation,
			Path:    "basics.classes",
			Message: fmt.Sprintf("total level %d clamped to %d", record.Basics.TotalLevel(), level),
		})
	}
	d.Level = level
	d.ProficiencyBonus = ProficiencyBonus(level)

	for _, ability := range schema.Abilities() {
		raw := record.Abilities.Get(ability)
		score, clamped := ClampScore(raw.Score)
		if clamped {
			warnings = append(warnings, Warning{
				Kind:    WarningDerivation,
				Path:    "abilities." + string(ability) + ".score",
				Message: fmt.Sprintf("score %d clamped to %d", raw.Score, score),
			})
		}
		mod := Modifier(score)
		d.Abilities[ability] = AbilityValues{
			Score:          score,
			Modifier:       mod,
			Save:           mod + trainingBonus(d.ProficiencyBonus, raw.SaveProficient, false),
			SaveProficient: raw.SaveProficient,
		}
	}

	for _, skill := range schema.Skills() {
		entry := record.Skills[skill]
		mod := d.Abilities[skill.Ability()].Modifier
		d.Skills[skill] = SkillValues{
			Ability:    skill.Ability(),
			Total:      mod + trainingBonus(d.ProficiencyBonus, entry.Proficient, entry.Expertise) + entry.Bonus,
			Proficient: entry.Proficient || entry.Expertise,
			Expertise:  entry.Expertise,
		}
	}

	d.Initiative = d.Abilities[schema.AbilityDexterity].Modifier + record.Derived.InitiativeBonus
	d.PassivePerception = passiveFor(record, d, schema.SkillPerception)
	d.PassiveInvestigation = passiveFor(record, d, schema.SkillInvestigation)
	d.PassiveInsight = passiveFor(record, d, schema.SkillInsight)

	if record.Spells.Ability != "" {
		mod := d.Abilities[record.Spells.Ability].Modifier
		d.Spellcasting = true
		d.SpellAbility = record.Spells.Ability
		d.SpellSaveDC = SpellSaveDC(d.ProficiencyBonus, mod)
		d.SpellAttackBonus = SpellAttackBonus(d.ProficiencyBonus, mod)
	}

	for i, action := range record.Actions {
		if action.Kind != schema.ActionAttack {
			continue
		}
		mod := d.Abilities[action.Ability].Modifier
		d.AttackBonuses[i] = mod + trainingBonus(d.ProficiencyBonus, action.Proficient, false) + action.Bonus
	}

	warnings = append(warnings, suppliedWarnings(record.Supplied, d.values())...)
	return d, warnings
}

// values maps derived field paths (as accepted by the schema) to the
// recomputed numbers.
func (d Derived) values() map[string]int {
	out := map[string]int{
		"derived.proficiencyBonus":     d.ProficiencyBonus,
		"derived.initiative":           d.Initiative,
		"derived.passivePerception":    d.PassivePerception,
		"derived.passiveInvestigation": d.PassiveInvestigation,
		"derived.passiveInsight":       d.PassiveInsight,
	}
	for ability, values := range d.Abilities {
		out["abilities."+string(ability)+".modifier"] = values.Modifier
		out["abilities."+string(ability)+".save"] = values.Save
	}
	for skill, values := range d.Skills {
		out["skills."+string(skill)+".total"] = values.Total
	}
	if d.Spellcasting {
		out["spells.saveDC"] = d.SpellSaveDC
		out["spells.attackBonus"] = d.SpellAttackBonus
	}
	for index, bonus := range d.AttackBonuses {
		out["actions["+strconv.Itoa(index)+"].attackBonus"] = bonus
	}
	return out
}

func suppliedWarnings(supplied map[string]int, derived map[string]int) []Warning {
	if len(supplied) == 0 {
		return nil
	}
	paths := make([]string, 0, len(supplied))
	for path := range supplied {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var warnings []Warning
	for _, path := range paths {
		value := supplied[path]
		computed, ok := derived[path]
		switch {
		case !ok:
			warnings = append(warnings, Warning{
				Kind:    WarningDerivation,
				Path:    path,
				Message: fmt.Sprintf("supplied value %d ignored; nothing is derived for this field", value),
			})
		case computed != value:
			warnings = append(warnings, Warning{
				Kind:    WarningDerivation,
				Path:    path,
				Message: fmt.Sprintf("supplied value %d ignored; derived value is %d", value, computed),
			})
		}
	}
	return warnings
}

func passiveFor(record schema.CharacterRecord, d Derived, skill schema.Skill) int {
	entry := record.Skills[skill]
	mod := d.Abilities[skill.Ability()].Modifier
	return Passive(mod, d.ProficiencyBonus, entry.Proficient, entry.Expertise)
}

func trainingBonus(proficiencyBonus int, proficient, expertise bool) int {
	switch {
	case expertise:
		return 2 * proficiencyBonus
	case proficient:
		return proficiencyBonus
	default:
		return 0
	}
}

func clamp(value, lo, hi int) (int, bool) {
	switch {
	case value < lo:
		return lo, true
	case value > hi:
		return hi, true
	default:
		return value, false
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
