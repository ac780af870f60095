package section_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-charsheet/pkg/format"
	"github.com/goliatone/go-charsheet/pkg/profile"
	"github.com/goliatone/go-charsheet/pkg/render/template/gotemplate"
	"github.com/goliatone/go-charsheet/pkg/renderers/latex"
	"github.com/goliatone/go-charsheet/pkg/schema"
	"github.com/goliatone/go-charsheet/pkg/section"
	"github.com/goliatone/go-charsheet/pkg/testsupport"
)

func TestRender_AbilitiesUseDerivedValues(t *testing.T) {
	r, record, derived := setup(t)

	fragment, err := r.Render(context.Background(), schema.GroupAbilities, record, derived, defaults(t, profile.Long))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if fragment.Omitted {
		t.Fatal("abilities should not be omitted")
	}
	for _, want := range []string{
		`\sheetsection{Ability Scores}`,
		`\sheetability{Strength}{16}{+3}{+6}{proficient}`,
		`\sheetability{Wisdom}{10}{+0}{+0}{}`,
		`\sheetability{Charisma}{8}{-1}{-1}{}`,
	} {
		if !strings.Contains(fragment.Markup, want) {
			t.Errorf("missing %q in:\n%s", want, fragment.Markup)
		}
	}
	assertBalanced(t, fragment.Markup)
}

func TestRender_GroupAbsentFromProfileIsOmitted(t *testing.T) {
	r, record, derived := setup(t)

	fragment, err := r.Render(context.Background(), schema.GroupRoleplaying, record, derived, defaults(t, profile.Short))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !fragment.Omitted || fragment.Markup != "" || fragment.Lines != 0 {
		t.Fatalf("expected omitted fragment, got %+v", fragment)
	}
}

func TestRender_EmptyGroupIsOmitted(t *testing.T) {
	r, record, derived := setup(t)
	record.Equipment = schema.Equipment{}

	fragment, err := r.Render(context.Background(), schema.GroupEquipment, record, derived, defaults(t, profile.Long))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !fragment.Omitted || fragment.Markup != "" {
		t.Fatalf("expected omitted fragment, got %+v", fragment)
	}
	if strings.Contains(fragment.Markup, "Equipment") {
		t.Fatal("omitted fragment must not carry a heading")
	}
}

func TestRender_ShortEquipmentKeepsWeaponsAndArmor(t *testing.T) {
	r, record, derived := setup(t)

	fragment, err := r.Render(context.Background(), schema.GroupEquipment, record, derived, defaults(t, profile.Short))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []section.Kept{
		{Index: 0, Name: "Warhammer", Rank: 0},
		{Index: 1, Name: "Plate armor", Rank: 1},
		{Index: 2, Name: "Shield", Rank: 1},
		{Index: 3, Name: "Light crossbow", Rank: 2},
	}
	if diff := cmp.Diff(want, fragment.Kept); diff != "" {
		t.Fatalf("kept mismatch (-want +got):\n%s", diff)
	}
	if fragment.Hidden != 0 || strings.Contains(fragment.Markup, `\sheettruncated`) {
		t.Fatalf("include rules must not produce a truncation marker:\n%s", fragment.Markup)
	}
	for _, unwanted := range []string{"Crossbow bolts", "Smith's tools", "Hooded lantern", "112 gp"} {
		if strings.Contains(fragment.Markup, unwanted) {
			t.Errorf("short equipment should not render %q", unwanted)
		}
	}
	if !strings.Contains(fragment.Markup, `\sheetdetail{Status}{equipped}`) {
		t.Errorf("missing status detail:\n%s", fragment.Markup)
	}
	if strings.Contains(fragment.Markup, `\sheetdetail{Source}`) {
		t.Error("short equipment allow-list excludes source")
	}
}

func TestRender_LongEquipmentRendersEverything(t *testing.T) {
	r, record, derived := setup(t)

	fragment, err := r.Render(context.Background(), schema.GroupEquipment, record, derived, defaults(t, profile.Long))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(fragment.Kept) != len(record.Equipment.Items) {
		t.Fatalf("expected %d entries, got %d", len(record.Equipment.Items), len(fragment.Kept))
	}
	for _, want := range []string{
		`\sheetfield{Currency}{112 gp, 14 sp, 30 cp}`,
		`\begin{sheetentry}{Crossbow bolts}`,
		`\sheetdetail{Quantity}{20}`,
		`\begin{sheetentry}{Smith's tools}`,
	} {
		if !strings.Contains(fragment.Markup, want) {
			t.Errorf("missing %q in:\n%s", want, fragment.Markup)
		}
	}
}

func TestRender_AllowListDropsFields(t *testing.T) {
	r, record, derived := setup(t)

	short, err := r.Render(context.Background(), schema.GroupSpells, record, derived, defaults(t, profile.Short))
	if err != nil {
		t.Fatalf("render short: %v", err)
	}
	long, err := r.Render(context.Background(), schema.GroupSpells, record, derived, defaults(t, profile.Long))
	if err != nil {
		t.Fatalf("render long: %v", err)
	}

	const description = "Sheathe your weapon in thunder."
	if strings.Contains(short.Markup, description) {
		t.Errorf("short spells should not include descriptions:\n%s", short.Markup)
	}
	if !strings.Contains(long.Markup, description) {
		t.Errorf("long spells should include descriptions:\n%s", long.Markup)
	}
	for _, want := range []string{`\sheetfield{Spell Save DC}{12}`, `\sheetfield{Spell Slots}{1st 3 (1 used)}`} {
		if !strings.Contains(short.Markup, want) {
			t.Errorf("short spells missing %q", want)
		}
	}
}

func TestRender_ShortSpellRanks(t *testing.T) {
	r, record, derived := setup(t)

	fragment, err := r.Render(context.Background(), schema.GroupSpells, record, derived, defaults(t, profile.Short))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	ranks := map[string]int{}
	for _, kept := range fragment.Kept {
		ranks[kept.Name] = kept.Rank
	}
	want := map[string]int{"Booming Blade": 0, "Light": 0, "Shield": 1, "Absorb Elements": 1}
	if diff := cmp.Diff(want, ranks); diff != "" {
		t.Fatalf("rank mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_LimitAddsMarkerAndWarning(t *testing.T) {
	r, record, derived := setup(t)
	p := custom(t, `
name: card
budget: {pages: 1, linesPerPage: 40, charsPerLine: 60}
groups:
  - id: features
    fields: [source]
    limit: 2
`)

	fragment, err := r.Render(context.Background(), schema.GroupFeatures, record, derived, p)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if fragment.Hidden != 2 {
		t.Fatalf("expected 2 hidden entries, got %d", fragment.Hidden)
	}
	if !strings.Contains(fragment.Markup, `\sheettruncated{2 more entries not shown}`) {
		t.Fatalf("missing truncation marker:\n%s", fragment.Markup)
	}
	if strings.Contains(fragment.Markup, "Weapon Bond") {
		t.Fatal("third feature should be cut by the limit")
	}
	want := []format.Warning{{
		Kind:    format.WarningOverflow,
		Path:    "features",
		Message: "showing the first 2 of 4 entries",
	}}
	if diff := cmp.Diff(want, fragment.Warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestRerender_DroppedEntriesAreCounted(t *testing.T) {
	r, record, derived := setup(t)
	p := defaults(t, profile.Short)

	full, err := r.Render(context.Background(), schema.GroupEquipment, record, derived, p)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	cut, err := r.Rerender(context.Background(), schema.GroupEquipment, record, derived, p, []int{3})
	if err != nil {
		t.Fatalf("rerender: %v", err)
	}

	if cut.Hidden != 1 || len(cut.Kept) != len(full.Kept)-1 {
		t.Fatalf("expected one dropped entry, got hidden=%d kept=%d", cut.Hidden, len(cut.Kept))
	}
	if diff := cmp.Diff([]int{3}, cut.Dropped); diff != "" {
		t.Fatalf("dropped mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(cut.Markup, "Light crossbow") {
		t.Fatal("dropped entry still rendered")
	}
	if !strings.Contains(cut.Markup, `\sheettruncated{1 more entry not shown}`) {
		t.Fatalf("missing truncation marker:\n%s", cut.Markup)
	}
	if cut.Lines > full.Lines {
		t.Fatalf("dropping an entry grew the estimate: %d > %d", cut.Lines, full.Lines)
	}
}

func TestRender_MaxCharsShortensNames(t *testing.T) {
	r, record, derived := setup(t)
	p := custom(t, `
name: card
budget: {pages: 1, linesPerPage: 40, charsPerLine: 60}
groups:
  - id: allies
    fields: [kind]
    maxChars: 10
`)

	fragment, err := r.Render(context.Background(), schema.GroupAllies, record, derived, p)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(fragment.Markup, `\begin{sheetentry}{Smiths' Gu\ldots{}}`) {
		t.Fatalf("expected shortened name:\n%s", fragment.Markup)
	}

	var paths []string
	for _, w := range fragment.Warnings {
		if w.Kind == format.WarningOverflow {
			paths = append(paths, w.Path)
		}
	}
	want := []string{"allies[0].name", "allies[1].name", "allies[1].kind"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("warning paths mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_EscapesFreeText(t *testing.T) {
	r, record, derived := setup(t)

	fragment, err := r.Render(context.Background(), schema.GroupRoleplaying, record, derived, defaults(t, profile.Long))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `Owes 50\% of her wages \& a debt to the \#3 Forge\_Street guild \{sic\}.`
	if !strings.Contains(fragment.Markup, want) {
		t.Fatalf("missing escaped bonds %q in:\n%s", want, fragment.Markup)
	}
	assertBalanced(t, fragment.Markup)
}

func TestRender_CombatAlwaysHasDeathSaves(t *testing.T) {
	r, record, derived := setup(t)
	record.Combat = schema.CombatResources{}

	fragment, err := r.Render(context.Background(), schema.GroupCombat, record, derived, defaults(t, profile.Short))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`\sheetboxes{Death Save Successes}{0}`, `\sheetboxes{Death Save Failures}{0}`} {
		if !strings.Contains(fragment.Markup, want) {
			t.Errorf("missing %q in:\n%s", want, fragment.Markup)
		}
	}
}

func TestRender_ClampsOutOfRangeCounters(t *testing.T) {
	r, record, derived := setup(t)
	record.Combat.DeathSaves.Failures = 5

	fragment, err := r.Render(context.Background(), schema.GroupCombat, record, derived, defaults(t, profile.Long))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(fragment.Markup, `\sheetboxes{Death Save Failures}{3}`) {
		t.Fatalf("expected clamped failures:\n%s", fragment.Markup)
	}
	want := []format.Warning{{
		Kind:    format.WarningDerivation,
		Path:    "combat.deathSaves.failures",
		Message: "value 5 clamped to 3",
	}}
	if diff := cmp.Diff(want, fragment.Warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_EveryGroupIsDeterministicAndBalanced(t *testing.T) {
	r, record, derived := setup(t)

	for _, name := range []string{profile.Long, profile.Short} {
		p := defaults(t, name)
		for _, group := range schema.Groups() {
			first, err := r.Render(context.Background(), group, record, derived, p)
			if err != nil {
				t.Fatalf("%s/%s: %v", name, group, err)
			}
			second, err := r.Render(context.Background(), group, record, derived, p)
			if err != nil {
				t.Fatalf("%s/%s: %v", name, group, err)
			}
			if diff := cmp.Diff(first, second); diff != "" {
				t.Fatalf("%s/%s not deterministic:\n%s", name, group, diff)
			}
			if first.Omitted {
				continue
			}
			if first.Lines < 1 {
				t.Errorf("%s/%s: line estimate %d", name, group, first.Lines)
			}
			assertBalanced(t, first.Markup)
		}
	}
}

func TestRender_HonoursCancellation(t *testing.T) {
	r, record, derived := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, schema.GroupBasics, record, derived, defaults(t, profile.Long))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewRenderer_RequiresEngine(t *testing.T) {
	if _, err := section.NewRenderer(nil); err == nil {
		t.Fatal("expected error without engine")
	}
}

func setup(t *testing.T) (*section.Renderer, schema.CharacterRecord, format.Derived) {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(latex.Templates()))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	r, err := section.NewRenderer(engine)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	record := testsupport.LoadRecord(t, testsupport.SampleCharacter)
	derived, _ := format.Derive(record)
	return r, record, derived
}

func defaults(t *testing.T, name string) profile.Profile {
	t.Helper()
	p, err := profile.MustDefaults().Get(name)
	if err != nil {
		t.Fatalf("profile %s: %v", name, err)
	}
	return p
}

func custom(t *testing.T, doc string) profile.Profile {
	t.Helper()
	p, err := profile.Parse([]byte(doc), "inline.yaml")
	if err != nil {
		t.Fatalf("parse profile: %v", err)
	}
	return p
}

// assertBalanced checks that braces and environments pair up, ignoring
// escaped characters and comment lines.
func assertBalanced(t *testing.T, markup string) {
	t.Helper()

	depth := 0
	for i := 0; i < len(markup); i++ {
		switch markup[i] {
		case '\\':
			i++
		case '%':
			for i < len(markup) && markup[i] != '\n' {
				i++
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				t.Fatalf("unbalanced closing brace at %d:\n%s", i, markup)
			}
		}
	}
	if depth != 0 {
		t.Fatalf("unbalanced braces (depth %d):\n%s", depth, markup)
	}
	if begins, ends := strings.Count(markup, `\begin{`), strings.Count(markup, `\end{`); begins != ends {
		t.Fatalf("begin/end mismatch %d/%d:\n%s", begins, ends, markup)
	}
}

func TestRender_SensesGolden(t *testing.T) {
	r, record, derived := setup(t)

	fragment, err := r.Render(context.Background(), schema.GroupSenses, record, derived, defaults(t, profile.Long))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	golden := filepath.Join("testdata", "senses_long.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(fragment.Markup)) {
		return
	}
	if diff := cmp.Diff(testsupport.MustReadGolden(t, golden), fragment.Markup); diff != "" {
		t.Fatalf("fragment mismatch (-want +got):\n%s", diff)
	}
}
