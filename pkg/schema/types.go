package schema

// GroupID identifies a named sub-record of CharacterRecord. Group ids double as
// the top-level keys of the raw input document and as profile group ids.
type GroupID string

const (
	GroupIdentity      GroupID = "identity"
	GroupBasics        GroupID = "basics"
	GroupAbilities     GroupID = "abilities"
	GroupDerived       GroupID = "derived"
	GroupCombat        GroupID = "combat"
	GroupDefenses      GroupID = "defenses"
	GroupProficiencies GroupID = "proficiencies"
	GroupSkills        GroupID = "skills"
	GroupSenses        GroupID = "senses"
	GroupActions       GroupID = "actions"
	GroupFeatures      GroupID = "features"
	GroupEquipment     GroupID = "equipment"
	GroupSpells        GroupID = "spells"
	GroupRoleplaying   GroupID = "roleplaying"
	GroupAllies        GroupID = "allies"
	GroupNotes         GroupID = "notes"
	GroupCosmetic      GroupID = "cosmetic"
)

var groupOrder = []GroupID{
	GroupIdentity,
	GroupBasics,
	GroupAbilities,
	GroupDerived,
	GroupCombat,
	GroupDefenses,
	GroupProficiencies,
	GroupSkills,
	GroupSenses,
	GroupActions,
	GroupFeatures,
	GroupEquipment,
	GroupSpells,
	GroupRoleplaying,
	GroupAllies,
	GroupNotes,
	GroupCosmetic,
}

// Groups returns every group id in canonical order.
func Groups() []GroupID {
	return append([]GroupID(nil), groupOrder...)
}

// KnownGroup reports whether id names a schema group.
func KnownGroup(id GroupID) bool {
	for _, candidate := range groupOrder {
		if candidate == id {
			return true
		}
	}
	return false
}

// Ability is one of the six core ability keys.
type Ability string

const (
	AbilityStrength     Ability = "str"
	AbilityDexterity    Ability = "dex"
	AbilityConstitution Ability = "con"
	AbilityIntelligence Ability = "int"
	AbilityWisdom       Ability = "wis"
	AbilityCharisma     Ability = "cha"
)

var abilityOrder = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

var abilityNames = map[Ability]string{
	AbilityStrength:     "Strength",
	AbilityDexterity:    "Dexterity",
	AbilityConstitution: "Constitution",
	AbilityIntelligence: "Intelligence",
	AbilityWisdom:       "Wisdom",
	AbilityCharisma:     "Charisma",
}

// Abilities returns the six abilities in sheet order (STR, DEX, CON, INT, WIS, CHA).
func Abilities() []Ability {
	return append([]Ability(nil), abilityOrder...)
}

// Name returns the display name of the ability.
func (a Ability) Name() string {
	return abilityNames[a]
}

// Skill is one of the 18 fixed skill keys.
type Skill string

const (
	SkillAcrobatics     Skill = "acrobatics"
	SkillAnimalHandling Skill = "animalHandling"
	SkillArcana         Skill = "arcana"
	SkillAthletics      Skill = "athletics"
	SkillDeception      Skill = "deception"
	SkillHistory        Skill = "history"
	SkillInsight        Skill = "insight"
	SkillIntimidation   Skill = "intimidation"
	SkillInvestigation  Skill = "investigation"
	SkillMedicine       Skill = "medicine"
	SkillNature         Skill = "nature"
	SkillPerception     Skill = "perception"
	SkillPerformance    Skill = "performance"
	SkillPersuasion     Skill = "persuasion"
	SkillReligion       Skill = "religion"
	SkillSleightOfHand  Skill = "sleightOfHand"
	SkillStealth        Skill = "stealth"
	SkillSurvival       Skill = "survival"
)

type skillInfo struct {
	name    string
	ability Ability
}

var skillOrder = []Skill{
	SkillAcrobatics,
	SkillAnimalHandling,
	SkillArcana,
	SkillAthletics,
	SkillDeception,
	SkillHistory,
	SkillInsight,
	SkillIntimidation,
	SkillInvestigation,
	SkillMedicine,
	SkillNature,
	SkillPerception,
	SkillPerformance,
	SkillPersuasion,
	SkillReligion,
	SkillSleightOfHand,
	SkillStealth,
	SkillSurvival,
}

var skillTable = map[Skill]skillInfo{
	SkillAcrobatics:     {"Acrobatics", AbilityDexterity},
	SkillAnimalHandling: {"Animal Handling", AbilityWisdom},
	SkillArcana:         {"Arcana", AbilityIntelligence},
	SkillAthletics:      {"Athletics", AbilityStrength},
	SkillDeception:      {"Deception", AbilityCharisma},
	SkillHistory:        {"History", AbilityIntelligence},
	SkillInsight:        {"Insight", AbilityWisdom},
	SkillIntimidation:   {"Intimidation", AbilityCharisma},
	SkillInvestigation:  {"Investigation", AbilityIntelligence},
	SkillMedicine:       {"Medicine", AbilityWisdom},
	SkillNature:         {"Nature", AbilityIntelligence},
	SkillPerception:     {"Perception", AbilityWisdom},
	SkillPerformance:    {"Performance", AbilityCharisma},
	SkillPersuasion:     {"Persuasion", AbilityCharisma},
	SkillReligion:       {"Religion", AbilityIntelligence},
	SkillSleightOfHand:  {"Sleight of Hand", AbilityDexterity},
	SkillStealth:        {"Stealth", AbilityDexterity},
	SkillSurvival:       {"Survival", AbilityWisdom},
}

// Skills returns the 18 skills in alphabetical sheet order.
func Skills() []Skill {
	return append([]Skill(nil), skillOrder...)
}

// Name returns the display name of the skill.
func (s Skill) Name() string {
	return skillTable[s].name
}

// Ability returns the ability the skill keys off.
func (s Skill) Ability() Ability {
	return skillTable[s].ability
}

// Source tags the game element that grants an entry.
type Source string

const (
	SourceClass      Source = "class"
	SourceSubclass   Source = "subclass"
	SourceSpecies    Source = "species"
	SourceSubrace    Source = "subrace"
	SourceBackground Source = "background"
	SourceFeat       Source = "feat"
	SourceItem       Source = "item"
	SourceOther      Source = "other"
)

// Sources lists every accepted source tag.
func Sources() []Source {
	return []Source{
		SourceClass,
		SourceSubclass,
		SourceSpecies,
		SourceSubrace,
		SourceBackground,
		SourceFeat,
		SourceItem,
		SourceOther,
	}
}

// CharacterRecord is the validated in-memory representation of one character.
// It owns every group exclusively and is treated as read-only by the renderer.
type CharacterRecord struct {
	Identity      Identity             `yaml:"identity"`
	Basics        Basics               `yaml:"basics"`
	Abilities     AbilityScores        `yaml:"abilities"`
	Derived       DerivedStats         `yaml:"derived"`
	Combat        CombatResources      `yaml:"combat"`
	Defenses      Defenses             `yaml:"defenses"`
	Proficiencies Proficiencies        `yaml:"proficiencies"`
	Skills        map[Skill]SkillEntry `yaml:"skills"`
	Senses        []Sense              `yaml:"senses"`
	Actions       []Action             `yaml:"actions"`
	Features      []Feature            `yaml:"features"`
	Equipment     Equipment            `yaml:"equipment"`
	Spells        Spells               `yaml:"spells"`
	Roleplaying   Roleplaying          `yaml:"roleplaying"`
	Allies        []Ally               `yaml:"allies"`
	Notes         Notes                `yaml:"notes"`
	Cosmetic      Cosmetic             `yaml:"cosmetic"`

	// Supplied holds caller-provided values for derived fields keyed by field
	// path (e.g. "abilities.str.modifier"). They are never rendered.
	Supplied map[string]int `yaml:"-"`
}

type Identity struct {
	PlayerName             string `yaml:"playerName"`
	Campaign               string `yaml:"campaign"`
	Party                  string `yaml:"party"`
	Alignment              string `yaml:"alignment"`
	Deity                  string `yaml:"deity"`
	Gender                 string `yaml:"gender"`
	Pronouns               string `yaml:"pronouns"`
	Age                    string `yaml:"age"`
	Height                 string `yaml:"height"`
	Weight                 string `yaml:"weight"`
	Eyes                   string `yaml:"eyes"`
	Hair                   string `yaml:"hair"`
	Skin                   string `yaml:"skin"`
	Appearance             string `yaml:"appearance"`
	DistinguishingFeatures string `yaml:"distinguishingFeatures"`
	Voice                  string `yaml:"voice"`
}

type Basics struct {
	CharacterName string       `yaml:"characterName"`
	Species       string       `yaml:"species"`
	Subrace       string       `yaml:"subrace"`
	Classes       []ClassLevel `yaml:"classes"`
	Background    string       `yaml:"background"`
	Experience    int          `yaml:"experience"`
}

// TotalLevel sums every class level.
func (b Basics) TotalLevel() int {
	total := 0
	for _, class := range b.Classes {
		total += class.Level
	}
	return total
}

type ClassLevel struct {
	Name     string `yaml:"name"`
	Subclass string `yaml:"subclass"`
	Level    int    `yaml:"level"`
}

// AbilityScore holds the primitive inputs for one ability. The modifier is
// always derived from Score and is not stored.
type AbilityScore struct {
	Score          int  `yaml:"score"`
	SaveProficient bool `yaml:"saveProficient"`
}

type AbilityScores struct {
	Str AbilityScore `yaml:"str"`
	Dex AbilityScore `yaml:"dex"`
	Con AbilityScore `yaml:"con"`
	Int AbilityScore `yaml:"int"`
	Wis AbilityScore `yaml:"wis"`
	Cha AbilityScore `yaml:"cha"`
}

// Get returns the score for the ability; unknown abilities yield the zero value.
func (s AbilityScores) Get(a Ability) AbilityScore {
	switch a {
	case AbilityStrength:
		return s.Str
	case AbilityDexterity:
		return s.Dex
	case AbilityConstitution:
		return s.Con
	case AbilityIntelligence:
		return s.Int
	case AbilityWisdom:
		return s.Wis
	case AbilityCharisma:
		return s.Cha
	default:
		return AbilityScore{}
	}
}

type DerivedStats struct {
	ArmorClass      int       `yaml:"armorClass"`
	InitiativeBonus int       `yaml:"initiativeBonus"`
	Speed           Speed     `yaml:"speed"`
	HitPoints       HitPoints `yaml:"hitPoints"`
	HitDice         []HitDice `yaml:"hitDice"`
}

type Speed struct {
	Walk   int `yaml:"walk"`
	Fly    int `yaml:"fly"`
	Swim   int `yaml:"swim"`
	Climb  int `yaml:"climb"`
	Burrow int `yaml:"burrow"`
}

// HitPoints keeps temporary hit points apart from the maximum.
type HitPoints struct {
	Max       int `yaml:"max"`
	Current   int `yaml:"current"`
	Temporary int `yaml:"temporary"`
}

type HitDice struct {
	Die   string `yaml:"die"`
	Total int    `yaml:"total"`
	Used  int    `yaml:"used"`
}

type CombatResources struct {
	DeathSaves DeathSaves `yaml:"deathSaves"`
	Resources  []Resource `yaml:"resources"`
	Conditions []string   `yaml:"conditions"`
}

type DeathSaves struct {
	Successes int `yaml:"successes"`
	Failures  int `yaml:"failures"`
}

// Resource models class pools such as ki, rage or sorcery points.
type Resource struct {
	Name     string `yaml:"name"`
	Current  int    `yaml:"current"`
	Max      int    `yaml:"max"`
	Recharge string `yaml:"recharge"`
	Source   Source `yaml:"source"`
}

type Defenses struct {
	Resistances     []string `yaml:"resistances"`
	Vulnerabilities []string `yaml:"vulnerabilities"`
	Immunities      []string `yaml:"immunities"`
}

type Proficiencies struct {
	Armor     []Proficiency `yaml:"armor"`
	Weapons   []Proficiency `yaml:"weapons"`
	Tools     []Proficiency `yaml:"tools"`
	Languages []Proficiency `yaml:"languages"`
}

type Proficiency struct {
	Name   string `yaml:"name"`
	Source Source `yaml:"source"`
}

// SkillEntry records training in a single skill. Source is mandatory whenever
// Proficient or Expertise is set.
type SkillEntry struct {
	Proficient bool   `yaml:"proficient"`
	Expertise  bool   `yaml:"expertise"`
	Bonus      int    `yaml:"bonus"`
	Source     Source `yaml:"source"`
}

type Sense struct {
	Name   string `yaml:"name"`
	Range  int    `yaml:"range"`
	Source Source `yaml:"source"`
}

// ActionKind buckets entries of the Actions group.
type ActionKind string

const (
	ActionStandard ActionKind = "action"
	ActionBonus    ActionKind = "bonus"
	ActionReaction ActionKind = "reaction"
	ActionAttack   ActionKind = "attack"
	ActionCantrip  ActionKind = "cantrip"
	ActionSpecial  ActionKind = "special"
)

// Action is a usable action. For attacks the attack bonus is derived from
// Ability, Proficient and Bonus.
type Action struct {
	Name       string     `yaml:"name"`
	Kind       ActionKind `yaml:"kind"`
	Ability    Ability    `yaml:"ability"`
	Proficient bool       `yaml:"proficient"`
	Bonus      int        `yaml:"bonus"`
	Damage     string     `yaml:"damage"`
	Range      string     `yaml:"range"`
	Notes      string     `yaml:"notes"`
	Source     Source     `yaml:"source"`
}

type Feature struct {
	Name        string `yaml:"name"`
	Source      Source `yaml:"source"`
	Description string `yaml:"description"`
	Uses        string `yaml:"uses"`
}

// ItemCategory buckets equipment items; it drives the short sheet subset.
type ItemCategory string

const (
	ItemWeapon   ItemCategory = "weapon"
	ItemArmor    ItemCategory = "armor"
	ItemTool     ItemCategory = "tool"
	ItemMagic    ItemCategory = "magic"
	ItemGear     ItemCategory = "gear"
	ItemTreasure ItemCategory = "treasure"
	ItemOther    ItemCategory = "other"
)

type Equipment struct {
	Items    []Item   `yaml:"items"`
	Currency Currency `yaml:"currency"`
}

type Item struct {
	Name     string       `yaml:"name"`
	Category ItemCategory `yaml:"category"`
	Quantity int          `yaml:"quantity"`
	Equipped bool         `yaml:"equipped"`
	Carried  bool         `yaml:"carried"`
	Weight   string       `yaml:"weight"`
	Source   Source       `yaml:"source"`
	Notes    string       `yaml:"notes"`
}

type Currency struct {
	CP int `yaml:"cp"`
	SP int `yaml:"sp"`
	EP int `yaml:"ep"`
	GP int `yaml:"gp"`
	PP int `yaml:"pp"`
}

// Empty reports whether every coin count is zero.
func (c Currency) Empty() bool {
	return c == Currency{}
}

type Spells struct {
	Ability Ability     `yaml:"ability"`
	Slots   []SpellSlot `yaml:"slots"`
	List    []Spell     `yaml:"list"`
}

type SpellSlot struct {
	Level int `yaml:"level"`
	Total int `yaml:"total"`
	Used  int `yaml:"used"`
}

type Spell struct {
	Name          string `yaml:"name"`
	Level         int    `yaml:"level"`
	Prepared      bool   `yaml:"prepared"`
	Ritual        bool   `yaml:"ritual"`
	Concentration bool   `yaml:"concentration"`
	CastingTime   string `yaml:"castingTime"`
	Range         string `yaml:"range"`
	Components    string `yaml:"components"`
	Duration      string `yaml:"duration"`
	Description   string `yaml:"description"`
	Cost          string `yaml:"cost"`
	Acquisition   string `yaml:"acquisition"`
	Source        Source `yaml:"source"`
}

type Roleplaying struct {
	PersonalityTraits string `yaml:"personalityTraits"`
	Ideals            string `yaml:"ideals"`
	Bonds             string `yaml:"bonds"`
	Flaws             string `yaml:"flaws"`
	Backstory         string `yaml:"backstory"`
	Motivations       string `yaml:"motivations"`
	Quirks            string `yaml:"quirks"`
	Secrets           string `yaml:"secrets"`
	Goals             string `yaml:"goals"`
}

type Ally struct {
	Name         string `yaml:"name"`
	Kind         string `yaml:"kind"`
	Relationship string `yaml:"relationship"`
	Notes        string `yaml:"notes"`
}

type Notes struct {
	Downtime   string `yaml:"downtime"`
	Lifestyle  string `yaml:"lifestyle"`
	Titles     string `yaml:"titles"`
	Reputation string `yaml:"reputation"`
	Custom     string `yaml:"custom"`
}

type Cosmetic struct {
	Symbol      string `yaml:"symbol"`
	Quote       string `yaml:"quote"`
	ThemeSong   string `yaml:"themeSong"`
	Artwork     string `yaml:"artwork"`
	Handwriting string `yaml:"handwriting"`
}
