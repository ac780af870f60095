package charsheet_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"

	charsheet "github.com/goliatone/go-charsheet"
	"github.com/goliatone/go-charsheet/pkg/format"
	"github.com/goliatone/go-charsheet/pkg/testsupport"
)

func sample(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(testsupport.FixturePath(testsupport.SampleCharacter))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestRender(t *testing.T) {
	doc, err := charsheet.Render(context.Background(), sample(t), charsheet.Short)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(doc.Markup, `\sheetability{Strength}{16}{+3}`) {
		t.Fatal("short sheet should carry the Strength row")
	}
	if doc.State != "done" {
		t.Fatalf("unexpected state %q", doc.State)
	}
}

func TestRender_Empty(t *testing.T) {
	if _, err := charsheet.Render(context.Background(), nil, charsheet.Long); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestRenderBoth(t *testing.T) {
	long, short, err := charsheet.RenderBoth(context.Background(), sample(t))
	if err != nil {
		t.Fatalf("render both: %v", err)
	}
	if long.Variant != charsheet.Long || short.Variant != charsheet.Short {
		t.Fatalf("unexpected variants %q/%q", long.Variant, short.Variant)
	}
	if !strings.Contains(long.Markup, "Personality") || strings.Contains(short.Markup, "Personality") {
		t.Fatal("roleplaying belongs to the long sheet only")
	}
	if len(long.Fragments) <= len(short.Fragments) {
		t.Fatalf("long sheet should have more sections (%d vs %d)", len(long.Fragments), len(short.Fragments))
	}
}

func TestRenderBoth_ValidationError(t *testing.T) {
	_, _, err := charsheet.RenderBoth(context.Background(), []byte("basics: {characterName: 42}"))
	var verr *charsheet.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	record, warnings, err := charsheet.Validate(sample(t))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if record.Basics.CharacterName != "Brenna Ironhart" {
		t.Fatalf("unexpected record name %q", record.Basics.CharacterName)
	}
	for _, w := range warnings {
		if w.Kind != format.WarningDerivation {
			t.Fatalf("unexpected warning %+v", w)
		}
	}
}

func TestEmbeddedAssets(t *testing.T) {
	if _, err := fs.Stat(charsheet.EmbeddedTemplates(), "document.tex"); err != nil {
		t.Fatalf("document template: %v", err)
	}
	for _, name := range []string{"long.yaml", "short.yaml"} {
		if _, err := fs.Stat(charsheet.EmbeddedProfiles(), name); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}
