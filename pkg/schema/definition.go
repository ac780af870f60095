package schema

import "strings"

// Kind is the primitive type of a schema field.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindList    Kind = "list"
	KindStrings Kind = "strings"
)

// FieldSpec declares one field of the raw record. Object and List fields carry
// their nested fields in Fields; List elements are always objects.
type FieldSpec struct {
	Name     string
	Kind     Kind
	Required bool
	// Derived marks values recomputed at render time. They are accepted and
	// type-checked but never bound into CharacterRecord.
	Derived bool
	// FreeText marks user prose that must be escaped before embedding.
	FreeText bool
	Min      *int
	Max      *int
	Enum     []string
	Fields   []FieldSpec
	// Check runs cross-field rules against the raw object (every element for
	// List fields) after its own fields have been type-checked.
	Check func(path string, obj map[string]any) []Issue
}

// Field returns the nested spec with the given name.
func (f FieldSpec) Field(name string) (FieldSpec, bool) {
	for _, nested := range f.Fields {
		if nested.Name == name {
			return nested, true
		}
	}
	return FieldSpec{}, false
}

func (f FieldSpec) required() FieldSpec {
	f.Required = true
	return f
}

func (f FieldSpec) min(value int) FieldSpec {
	f.Min = &value
	return f
}

func (f FieldSpec) between(lo, hi int) FieldSpec {
	f.Min = &lo
	f.Max = &hi
	return f
}

func (f FieldSpec) check(fn func(path string, obj map[string]any) []Issue) FieldSpec {
	f.Check = fn
	return f
}

func str(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindString}
}

func text(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindString, FreeText: true}
}

func integer(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindInteger}
}

func count(name string) FieldSpec {
	return integer(name).min(0)
}

func boolean(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindBoolean}
}

func texts(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindStrings, FreeText: true}
}

func derived(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindInteger, Derived: true}
}

func enum(name string, values ...string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindString, Enum: values}
}

func object(name string, fields ...FieldSpec) FieldSpec {
	return FieldSpec{Name: name, Kind: KindObject, Fields: fields}
}

func list(name string, fields ...FieldSpec) FieldSpec {
	return FieldSpec{Name: name, Kind: KindList, Fields: fields}
}

func sourceField() FieldSpec {
	values := make([]string, 0, 8)
	for _, source := range Sources() {
		values = append(values, string(source))
	}
	return enum("source", values...)
}

func abilityField(name string) FieldSpec {
	values := make([]string, 0, len(abilityOrder))
	for _, ability := range abilityOrder {
		values = append(values, string(ability))
	}
	return enum(name, values...)
}

// sourced appends a mandatory source tag to list element fields.
func sourced(name string, fields ...FieldSpec) FieldSpec {
	fields = append(fields, sourceField().required())
	return list(name, fields...)
}

func proficiencyList(name string) FieldSpec {
	return sourced(name, text("name").required())
}

var definition = object("",
	object(string(GroupIdentity),
		text("playerName"),
		text("campaign"),
		text("party"),
		text("alignment"),
		text("deity"),
		text("gender"),
		text("pronouns"),
		text("age"),
		text("height"),
		text("weight"),
		text("eyes"),
		text("hair"),
		text("skin"),
		text("appearance"),
		text("distinguishingFeatures"),
		text("voice"),
	),
	object(string(GroupBasics),
		text("characterName").required(),
		text("species"),
		text("subrace"),
		list("classes",
			text("name").required(),
			text("subclass"),
			integer("level").required(),
		).required(),
		text("background"),
		count("experience"),
	).required(),
	abilitiesSpec().required(),
	object(string(GroupDerived),
		count("armorClass").required(),
		integer("initiativeBonus"),
		object("speed",
			count("walk"),
			count("fly"),
			count("swim"),
			count("climb"),
			count("burrow"),
		),
		object("hitPoints",
			count("max").required(),
			count("current").required(),
			count("temporary"),
		).required().check(checkNotAbove("current", "max")),
		list("hitDice",
			str("die").required(),
			count("total").required(),
			count("used"),
		).check(checkNotAbove("used", "total")),
		derived("proficiencyBonus"),
		derived("initiative"),
		derived("passivePerception"),
		derived("passiveInvestigation"),
		derived("passiveInsight"),
	).required(),
	object(string(GroupCombat),
		object("deathSaves",
			integer("successes").between(0, 3),
			integer("failures").between(0, 3),
		),
		sourced("resources",
			text("name").required(),
			count("current"),
			count("max"),
			text("recharge"),
		).check(checkNotAbove("current", "max")),
		texts("conditions"),
	),
	object(string(GroupDefenses),
		texts("resistances"),
		texts("vulnerabilities"),
		texts("immunities"),
	),
	object(string(GroupProficiencies),
		proficiencyList("armor"),
		proficiencyList("weapons"),
		proficiencyList("tools"),
		proficiencyList("languages"),
	),
	skillsSpec(),
	sourced(string(GroupSenses),
		text("name").required(),
		count("range"),
	),
	sourced(string(GroupActions),
		text("name").required(),
		enum("kind",
			string(ActionStandard),
			string(ActionBonus),
			string(ActionReaction),
			string(ActionAttack),
			string(ActionCantrip),
			string(ActionSpecial),
		).required(),
		abilityField("ability"),
		boolean("proficient"),
		integer("bonus"),
		text("damage"),
		text("range"),
		text("notes"),
		derived("attackBonus"),
	).check(checkAttackAbility),
	sourced(string(GroupFeatures),
		text("name").required(),
		text("description"),
		text("uses"),
	),
	object(string(GroupEquipment),
		sourced("items",
			text("name").required(),
			enum("category",
				string(ItemWeapon),
				string(ItemArmor),
				string(ItemTool),
				string(ItemMagic),
				string(ItemGear),
				string(ItemTreasure),
				string(ItemOther),
			).required(),
			count("quantity"),
			boolean("equipped"),
			boolean("carried"),
			text("weight"),
			text("notes"),
		),
		object("currency",
			count("cp"),
			count("sp"),
			count("ep"),
			count("gp"),
			count("pp"),
		),
	),
	object(string(GroupSpells),
		abilityField("ability"),
		list("slots",
			integer("level").between(1, 9).required(),
			count("total").required(),
			count("used"),
		).check(checkNotAbove("used", "total")),
		sourced("list",
			text("name").required(),
			integer("level").between(0, 9).required(),
			boolean("prepared"),
			boolean("ritual"),
			boolean("concentration"),
			text("castingTime"),
			text("range"),
			text("components"),
			text("duration"),
			text("description"),
			text("cost"),
			text("acquisition"),
		),
		derived("saveDC"),
		derived("attackBonus"),
	),
	object(string(GroupRoleplaying),
		text("personalityTraits"),
		text("ideals"),
		text("bonds"),
		text("flaws"),
		text("backstory"),
		text("motivations"),
		text("quirks"),
		text("secrets"),
		text("goals"),
	),
	list(string(GroupAllies),
		text("name").required(),
		enum("kind", "ally", "contact", "faction", "organization", "rival", "enemy"),
		text("relationship"),
		text("notes"),
	),
	object(string(GroupNotes),
		text("downtime"),
		enum("lifestyle", "wretched", "squalid", "poor", "modest", "comfortable", "wealthy", "aristocratic"),
		text("titles"),
		text("reputation"),
		text("custom"),
	),
	object(string(GroupCosmetic),
		text("symbol"),
		text("quote"),
		text("themeSong"),
		text("artwork"),
		text("handwriting"),
	),
)

func abilitiesSpec() FieldSpec {
	fields := make([]FieldSpec, 0, len(abilityOrder))
	for _, ability := range abilityOrder {
		fields = append(fields, object(string(ability),
			integer("score").required(),
			boolean("saveProficient"),
			derived("modifier"),
			derived("save"),
		).required())
	}
	return object(string(GroupAbilities), fields...)
}

func skillsSpec() FieldSpec {
	fields := make([]FieldSpec, 0, len(skillOrder))
	for _, skill := range skillOrder {
		fields = append(fields, object(string(skill),
			boolean("proficient"),
			boolean("expertise"),
			integer("bonus"),
			sourceField(),
			derived("total"),
		).check(checkSkillSource))
	}
	return object(string(GroupSkills), fields...)
}

// Definition returns the root field table. The returned value shares nested
// slices with the package table and must be treated as read-only.
func Definition() FieldSpec {
	return definition
}

// Fields returns the specs declared for a top-level group.
func Fields(group GroupID) []FieldSpec {
	spec, ok := definition.Field(string(group))
	if !ok {
		return nil
	}
	return spec.Fields
}

// Lookup resolves a dotted field path (list indexes omitted), such as
// "spells.list.description".
func Lookup(path string) (FieldSpec, bool) {
	current := definition
	for _, segment := range strings.Split(path, ".") {
		next, ok := current.Field(segment)
		if !ok {
			return FieldSpec{}, false
		}
		current = next
	}
	return current, true
}

func checkNotAbove(field, limit string) func(string, map[string]any) []Issue {
	return func(path string, obj map[string]any) []Issue {
		value, ok := intValue(obj[field])
		if !ok {
			return nil
		}
		bound, ok := intValue(obj[limit])
		if !ok {
			return nil
		}
		if value > bound {
			return []Issue{{
				Path:   joinPath(path, field),
				Reason: "must not exceed " + limit,
			}}
		}
		return nil
	}
}

func checkSkillSource(path string, obj map[string]any) []Issue {
	proficient, _ := obj["proficient"].(bool)
	expertise, _ := obj["expertise"].(bool)
	if !proficient && !expertise {
		return nil
	}
	if source, _ := obj["source"].(string); strings.TrimSpace(source) == "" {
		return []Issue{{Path: joinPath(path, "source"), Reason: "is required when the skill is proficient"}}
	}
	return nil
}

func checkAttackAbility(path string, obj map[string]any) []Issue {
	if kind, _ := obj["kind"].(string); kind != string(ActionAttack) {
		return nil
	}
	if ability, _ := obj["ability"].(string); strings.TrimSpace(ability) == "" {
		return []Issue{{Path: joinPath(path, "ability"), Reason: "is required for attacks"}}
	}
	return nil
}
