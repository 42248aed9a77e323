package condition

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-formjourney/pkg/definition"
)

// New builds the evaluator for a validated definition. Structured conditions
// are handled by the Items evaluator; expression conditions are compiled once
// here, so a malformed expression surfaces as a configuration error at
// journey start instead of mid-journey. Runtime evaluation stays total: an
// expression that fails against a given answer set evaluates false.
func New(def *definition.Definition) (Evaluator, error) {
	compiled := &compiledEvaluator{
		items:    NewItems(),
		programs: make(map[string]*vm.Program),
	}
	for _, cond := range def.Conditions {
		if cond.Expr == "" {
			continue
		}
		program, err := compileExpr(cond.Expr)
		if err != nil {
			return nil, fmt.Errorf("condition: compile %q: %w", cond.Name, err)
		}
		compiled.programs[cond.Name] = program
	}
	return compiled, nil
}

type compiledEvaluator struct {
	items    Items
	programs map[string]*vm.Program
}

func (e *compiledEvaluator) Evaluate(cond definition.Condition, answers map[string]any) bool {
	if cond.Expr == "" {
		return e.items.Evaluate(cond, answers)
	}
	program, ok := e.programs[cond.Name]
	if !ok {
		// Condition not known at construction time; compile ad hoc so
		// hand-built conditions in tests still evaluate.
		var err error
		program, err = compileExpr(cond.Expr)
		if err != nil {
			return false
		}
	}
	env := make(map[string]any, len(answers))
	for key, value := range answers {
		env[key] = value
	}
	result, err := expr.Run(program, env)
	if err != nil {
		return false
	}
	holds, ok := result.(bool)
	return ok && holds
}

// compileExpr compiles against an empty map environment so expressions may
// reference answers that have not been collected yet; those resolve to nil
// at run time, keeping evaluation total.
func compileExpr(source string) (*vm.Program, error) {
	return expr.Compile(source,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
}
