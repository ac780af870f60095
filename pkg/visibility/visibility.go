package visibility

// Evaluator decides whether a rule holds for one list entry. Rules are used
// by profiles both to filter entries (include) and to rank them for
// truncation (priority).
type Evaluator interface {
	Eval(path, rule string, ctx Context) (bool, error)
}

// Compiler is implemented by evaluators that can check a rule without data,
// so profiles can reject malformed rules at load time.
type Compiler interface {
	Compile(rule string) error
}

// Context provides inputs to an Evaluator. Values holds the attributes of the
// entry under test and is exposed to rules as `entry`; Extras is exposed as
// `extras` and carries caller metadata such as the group id.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(path, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(path, rule string, ctx Context) (bool, error) {
	return fn(path, rule, ctx)
}
