// Package condition evaluates journey conditions against accumulated
// answers. Evaluation is pure and total: a referenced answer that has not
// been collected yet evaluates false for every operator, so a condition can
// be asked about at any point of a partially completed journey without
// error.
package condition

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formjourney/pkg/definition"
)

// Evaluator decides whether a condition holds for a set of answers.
// Implementations must be pure: no side effects, and repeated calls with the
// same inputs return the same result.
type Evaluator interface {
	Evaluate(cond definition.Condition, answers map[string]any) bool
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(cond definition.Condition, answers map[string]any) bool

// Evaluate delegates to the underlying function.
func (fn EvaluatorFunc) Evaluate(cond definition.Condition, answers map[string]any) bool {
	return fn(cond, answers)
}

// Items is the structured evaluator: every condition item must hold
// (conjunction), and an item referencing an absent answer never holds.
type Items struct{}

// NewItems returns the structured condition evaluator.
func NewItems() Items { return Items{} }

// Evaluate reports whether every item of the condition holds against
// answers. Conditions authored as expressions always report false here; use
// New (or an Expr evaluator) when a definition carries expression
// conditions.
func (Items) Evaluate(cond definition.Condition, answers map[string]any) bool {
	if len(cond.Items) == 0 {
		return false
	}
	for _, item := range cond.Items {
		if !evaluateItem(item, answers) {
			return false
		}
	}
	return true
}

func evaluateItem(item definition.ConditionItem, answers map[string]any) bool {
	answer, ok := answers[item.Field]
	if !ok || answer == nil {
		// Not yet answered: the answer matches no asserted value.
		return false
	}

	switch item.Operator {
	case definition.OperatorIs:
		return looselyEqual(answer, item.Value)
	case definition.OperatorIsNot:
		return !looselyEqual(answer, item.Value)
	case definition.OperatorContains:
		return contains(answer, item.Value)
	case definition.OperatorDoesNotContain:
		return !contains(answer, item.Value)
	case definition.OperatorIsLongerThan:
		length, threshold, ok := lengthAndThreshold(answer, item.Value)
		return ok && length > threshold
	case definition.OperatorIsShorterThan:
		length, threshold, ok := lengthAndThreshold(answer, item.Value)
		return ok && length < threshold
	case definition.OperatorIsMoreThan:
		a, b, ok := numericPair(answer, item.Value)
		return ok && a > b
	case definition.OperatorIsLessThan:
		a, b, ok := numericPair(answer, item.Value)
		return ok && a < b
	default:
		return false
	}
}

// looselyEqual compares an answer against an authored literal, coercing
// across the scalar types YAML and HTML forms produce: true == "true",
// 2 == "2" == 2.0.
func looselyEqual(answer, literal any) bool {
	if a, b, ok := numericPair(answer, literal); ok {
		return a == b
	}
	if a, ok := toBool(answer); ok {
		if b, ok := toBool(literal); ok {
			return a == b
		}
	}
	return canonical(answer) == canonical(literal)
}

func contains(answer, literal any) bool {
	want := canonical(literal)
	switch v := answer.(type) {
	case []string:
		for _, entry := range v {
			if entry == want {
				return true
			}
		}
		return false
	case []any:
		for _, entry := range v {
			if canonical(entry) == want {
				return true
			}
		}
		return false
	case string:
		return strings.Contains(v, want)
	default:
		return false
	}
}

func lengthAndThreshold(answer, literal any) (int, int, bool) {
	text, ok := answer.(string)
	if !ok {
		return 0, 0, false
	}
	threshold, ok := toFloat(literal)
	if !ok {
		return 0, 0, false
	}
	return utf8.RuneCountInString(text), int(threshold), true
}

func numericPair(answer, literal any) (float64, float64, bool) {
	a, okA := toFloat(answer)
	b, okB := toFloat(literal)
	return a, b, okA && okB
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes":
			return true, true
		case "false", "no":
			return false, true
		}
	}
	return false, false
}

func canonical(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
