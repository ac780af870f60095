package expr

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"

	"github.com/goliatone/go-charsheet/pkg/visibility"
)

// Evaluator compiles rules as CEL expressions over two variables:
//
//   - entry: the attributes of the entry under test (visibility.Context.Values)
//   - extras: caller metadata (visibility.Context.Extras)
//
// A rule must evaluate to a boolean. Compiled programs are cached by rule
// text, so repeated evaluation across entries and renders is cheap.
type Evaluator struct {
	env *cel.Env

	mu       sync.RWMutex
	programs map[string]cel.Program
}

var (
	_ visibility.Evaluator = (*Evaluator)(nil)
	_ visibility.Compiler  = (*Evaluator)(nil)
)

// ErrNotBoolean reports a rule whose result is not a boolean.
var ErrNotBoolean = errors.New("visibility/expr: rule must evaluate to a boolean")

// New constructs an Evaluator with the rule environment.
func New() (*Evaluator, error) {
	env, err := cel.NewEnv(
		ext.Strings(),
		cel.Variable("entry", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("extras", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("visibility/expr: create environment: %w", err)
	}
	return &Evaluator{
		env:      env,
		programs: make(map[string]cel.Program),
	}, nil
}

// MustNew is New for package-level defaults.
func MustNew() *Evaluator {
	e, err := New()
	if err != nil {
		panic(err)
	}
	return e
}

// Compile parses and type-checks rule without evaluating it.
func (e *Evaluator) Compile(rule string) error {
	_, err := e.program(rule)
	return err
}

// Eval evaluates rule against ctx. An empty rule always holds.
func (e *Evaluator) Eval(path, rule string, ctx visibility.Context) (bool, error) {
	if strings.TrimSpace(rule) == "" {
		return true, nil
	}

	prg, err := e.program(rule)
	if err != nil {
		return false, err
	}

	activation := map[string]any{
		"entry":  orEmpty(ctx.Values),
		"extras": orEmpty(ctx.Extras),
	}
	out, _, err := prg.Eval(activation)
	if err != nil {
		return false, fmt.Errorf("visibility/expr: evaluate %q for %s: %w", rule, path, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q for %s returned %v", ErrNotBoolean, rule, path, out.Type())
	}
	return result, nil
}

func (e *Evaluator) program(rule string) (cel.Program, error) {
	key := strings.TrimSpace(rule)

	e.mu.RLock()
	prg, ok := e.programs[key]
	e.mu.RUnlock()
	if ok {
		return prg, nil
	}

	ast, issues := e.env.Compile(key)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("visibility/expr: compile %q: %w", key, issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && out.Kind() != cel.DynKind {
		return nil, fmt.Errorf("%w: %q has type %s", ErrNotBoolean, key, out)
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("visibility/expr: program %q: %w", key, err)
	}

	e.mu.Lock()
	e.programs[key] = prg
	e.mu.Unlock()
	return prg, nil
}

func orEmpty(values map[string]any) map[string]any {
	if values == nil {
		return map[string]any{}
	}
	return values
}
