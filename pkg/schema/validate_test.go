package schema_test

import (
	"errors"
	"math"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-charsheet/pkg/schema"
)

const sampleRecordPath = "../../testdata/characters/brenna.yaml"

func loadRaw(t *testing.T) map[string]any {
	t.Helper()
	data, err := os.ReadFile(sampleRecordPath)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	raw, err := schema.Decode(data)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return raw
}

func validationIssues(t *testing.T, err error) []schema.Issue {
	t.Helper()
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *schema.ValidationError, got %T (%v)", err, err)
	}
	return verr.Issues
}

func TestValidate_SampleRecord(t *testing.T) {
	record, err := schema.Validate(loadRaw(t))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if record.Basics.CharacterName != "Brenna Ironhart" {
		t.Fatalf("unexpected character name %q", record.Basics.CharacterName)
	}
	if got := record.Basics.TotalLevel(); got != 5 {
		t.Fatalf("total level: want 5, got %d", got)
	}
	if !record.Abilities.Get(schema.AbilityStrength).SaveProficient {
		t.Fatalf("expected strength save proficiency")
	}
	if record.Derived.HitPoints != (schema.HitPoints{Max: 49, Current: 41, Temporary: 5}) {
		t.Fatalf("unexpected hit points %+v", record.Derived.HitPoints)
	}
	entry := record.Skills[schema.SkillHistory]
	if !entry.Expertise || entry.Source != schema.SourceSubrace {
		t.Fatalf("unexpected history entry %+v", entry)
	}

	wantItems := []string{"Warhammer", "Plate armor", "Shield", "Light crossbow", "Crossbow bolts", "Smith's tools", "Hooded lantern"}
	gotItems := make([]string, 0, len(record.Equipment.Items))
	for _, item := range record.Equipment.Items {
		gotItems = append(gotItems, item.Name)
	}
	if diff := cmp.Diff(wantItems, gotItems); diff != "" {
		t.Fatalf("equipment order mismatch (-want +got):\n%s", diff)
	}
	if record.Supplied != nil {
		t.Fatalf("expected no supplied derived values, got %v", record.Supplied)
	}
}

func TestValidate_MissingLanguageSource(t *testing.T) {
	raw := loadRaw(t)
	languages := raw["proficiencies"].(map[string]any)["languages"].([]any)
	delete(languages[0].(map[string]any), "source")

	record, err := schema.Validate(raw)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if record.Basics.CharacterName != "" {
		t.Fatalf("expected zero record on failure")
	}

	want := []schema.Issue{{Path: "proficiencies.languages[0].source", Reason: "is required"}}
	if diff := cmp.Diff(want, validationIssues(t, err)); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RejectsUnknownSourceTag(t *testing.T) {
	raw := loadRaw(t)
	features := raw["features"].([]any)
	features[1].(map[string]any)["source"] = "deity"

	_, err := schema.Validate(raw)
	issues := validationIssues(t, err)
	if len(issues) != 1 || issues[0].Path != "features[1].source" {
		t.Fatalf("unexpected issues %+v", issues)
	}
}

func TestValidate_CollectsEveryIssue(t *testing.T) {
	raw := map[string]any{
		"basics": map[string]any{
			"classes": []any{
				map[string]any{"name": "Wizard", "level": "three"},
			},
		},
		"derived": map[string]any{
			"armorClass": 12,
			"hitPoints":  map[string]any{"max": 10, "current": 12},
		},
		"mystery": true,
	}

	_, err := schema.Validate(raw)

	want := []schema.Issue{
		{Path: "abilities", Reason: "is required"},
		{Path: "basics.characterName", Reason: "is required"},
		{Path: "basics.classes[0].level", Reason: "must be an integer"},
		{Path: "derived.hitPoints.current", Reason: "must not exceed max"},
		{Path: "mystery", Reason: "unknown field"},
	}
	if diff := cmp.Diff(want, validationIssues(t, err)); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_SkillSourceRequiredWhenProficient(t *testing.T) {
	raw := loadRaw(t)
	skills := raw["skills"].(map[string]any)
	skills["stealth"] = map[string]any{"proficient": true}
	skills["arcana"] = map[string]any{"bonus": 1}

	_, err := schema.Validate(raw)
	want := []schema.Issue{{Path: "skills.stealth.source", Reason: "is required when the skill is proficient"}}
	if diff := cmp.Diff(want, validationIssues(t, err)); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RangesAndEnums(t *testing.T) {
	raw := loadRaw(t)
	raw["combat"].(map[string]any)["deathSaves"] = map[string]any{"successes": 4}
	raw["notes"].(map[string]any)["lifestyle"] = "lavish"
	raw["equipment"].(map[string]any)["items"].([]any)[0].(map[string]any)["quantity"] = -1

	_, err := schema.Validate(raw)
	want := []schema.Issue{
		{Path: "combat.deathSaves.successes", Reason: "must be between 0 and 3"},
		{Path: "equipment.items[0].quantity", Reason: "must be at least 0"},
		{Path: "notes.lifestyle", Reason: "must be one of: wretched, squalid, poor, modest, comfortable, wealthy, aristocratic"},
	}
	if diff := cmp.Diff(want, validationIssues(t, err)); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RejectsIntegersOutsideInt64(t *testing.T) {
	cases := []struct {
		name  string
		value any
	}{
		{name: "huge float", value: 1e300},
		{name: "negative huge float", value: -1e300},
		{name: "two to the 63", value: 9223372036854775808.0},
		{name: "uint64 above max", value: uint64(math.MaxUint64)},
		{name: "uint above max", value: ^uint(0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := loadRaw(t)
			raw["abilities"].(map[string]any)["str"].(map[string]any)["score"] = tc.value

			_, err := schema.Validate(raw)
			want := []schema.Issue{{Path: "abilities.str.score", Reason: "must be an integer"}}
			if diff := cmp.Diff(want, validationIssues(t, err)); diff != "" {
				t.Fatalf("issues mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_AcceptsButDoesNotBindDerivedValues(t *testing.T) {
	raw := loadRaw(t)
	raw["abilities"].(map[string]any)["str"].(map[string]any)["modifier"] = 5
	raw["derived"].(map[string]any)["proficiencyBonus"] = 4.0

	record, err := schema.Validate(raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	want := map[string]int{
		"abilities.str.modifier":   5,
		"derived.proficiencyBonus": 4,
	}
	if diff := cmp.Diff(want, record.Supplied); diff != "" {
		t.Fatalf("supplied mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_AttackRequiresAbility(t *testing.T) {
	raw := loadRaw(t)
	delete(raw["actions"].([]any)[0].(map[string]any), "ability")

	_, err := schema.Validate(raw)
	want := []schema.Issue{{Path: "actions[0].ability", Reason: "is required for attacks"}}
	if diff := cmp.Diff(want, validationIssues(t, err)); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Empty(t *testing.T) {
	if _, err := schema.Decode([]byte("  \n")); !errors.Is(err, schema.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestDecode_JSON(t *testing.T) {
	raw, err := schema.Decode([]byte(`{"basics": {"characterName": "Ash"}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw["basics"].(map[string]any)["characterName"] != "Ash" {
		t.Fatalf("unexpected decode result %v", raw)
	}
}

func TestLookup(t *testing.T) {
	spec, ok := schema.Lookup("spells.list.description")
	if !ok || !spec.FreeText {
		t.Fatalf("expected free-text spell description, got %+v (ok=%v)", spec, ok)
	}
	if _, ok := schema.Lookup("spells.list.nope"); ok {
		t.Fatalf("expected missing lookup")
	}
}
