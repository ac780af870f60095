package expr

import (
	"errors"
	"testing"

	"github.com/goliatone/go-charsheet/pkg/visibility"
)

func TestEvaluatorIncludeRule(t *testing.T) {
	t.Parallel()

	eval := MustNew()
	rule := `entry.category in ["weapon", "armor"]`

	for category, want := range map[string]bool{"weapon": true, "armor": true, "gear": false} {
		ok, err := eval.Eval("equipment.items", rule, visibility.Context{
			Values: map[string]any{"category": category},
		})
		if err != nil {
			t.Fatalf("Eval returned error: %v", err)
		}
		if ok != want {
			t.Fatalf("category %q: expected %v, got %v", category, want, ok)
		}
	}
}

func TestEvaluatorCompositeRule(t *testing.T) {
	t.Parallel()

	eval := MustNew()
	rule := `entry.equipped && entry.category == "weapon" && entry.quantity >= 1`

	ok, err := eval.Eval("equipment.items[0]", rule, visibility.Context{
		Values: map[string]any{"equipped": true, "category": "weapon", "quantity": 1},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected equipped weapon to match")
	}

	ok, err = eval.Eval("equipment.items[1]", rule, visibility.Context{
		Values: map[string]any{"equipped": false, "category": "weapon", "quantity": 1},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected unequipped weapon not to match")
	}
}

func TestEvaluatorExtrasAndStrings(t *testing.T) {
	t.Parallel()

	eval := MustNew()
	ok, err := eval.Eval("spells.list[0]", `extras.group == "spells" && entry.name.lowerAscii().startsWith("shield")`, visibility.Context{
		Values: map[string]any{"name": "Shield"},
		Extras: map[string]any{"group": "spells"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected rule to match")
	}
}

func TestEvaluatorEmptyRule(t *testing.T) {
	t.Parallel()

	ok, err := MustNew().Eval("features", "  ", visibility.Context{})
	if err != nil || !ok {
		t.Fatalf("empty rule should hold, got %v / %v", ok, err)
	}
}

func TestEvaluatorRejectsNonBoolean(t *testing.T) {
	t.Parallel()

	eval := MustNew()
	if err := eval.Compile(`"weapon"`); !errors.Is(err, ErrNotBoolean) {
		t.Fatalf("expected ErrNotBoolean, got %v", err)
	}

	_, err := eval.Eval("equipment.items[0]", `entry.name`, visibility.Context{
		Values: map[string]any{"name": "Warhammer"},
	})
	if !errors.Is(err, ErrNotBoolean) {
		t.Fatalf("expected ErrNotBoolean for dynamic string result, got %v", err)
	}
}

func TestEvaluatorCompileErrors(t *testing.T) {
	t.Parallel()

	if err := MustNew().Compile(`entry.category ==`); err == nil {
		t.Fatalf("expected syntax error")
	}
}

func TestEvaluatorMissingAttribute(t *testing.T) {
	t.Parallel()

	_, err := MustNew().Eval("equipment.items[0]", `entry.missing == "x"`, visibility.Context{
		Values: map[string]any{"name": "Warhammer"},
	})
	if err == nil {
		t.Fatalf("expected evaluation error for missing attribute")
	}
}

func TestEvaluatorFuncAdapter(t *testing.T) {
	t.Parallel()

	var called string
	fn := visibility.EvaluatorFunc(func(path, rule string, _ visibility.Context) (bool, error) {
		called = path + ":" + rule
		return true, nil
	})
	if ok, _ := fn.Eval("a", "b", visibility.Context{}); !ok || called != "a:b" {
		t.Fatalf("adapter did not delegate, got %q", called)
	}
}
