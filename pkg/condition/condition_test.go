package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formjourney/pkg/condition"
	"github.com/goliatone/go-formjourney/pkg/definition"
)

func item(field string, op definition.Operator, value any) definition.ConditionItem {
	return definition.ConditionItem{Field: field, Operator: op, Value: value}
}

func TestItemsEvaluate(t *testing.T) {
	evaluator := condition.NewItems()

	tests := []struct {
		name    string
		items   []definition.ConditionItem
		answers map[string]any
		want    bool
	}{
		{
			name:    "is matches bool",
			items:   []definition.ConditionItem{item("isOverEighteen", definition.OperatorIs, false)},
			answers: map[string]any{"isOverEighteen": false},
			want:    true,
		},
		{
			name:    "is matches string against bool",
			items:   []definition.ConditionItem{item("isOverEighteen", definition.OperatorIs, "true")},
			answers: map[string]any{"isOverEighteen": true},
			want:    true,
		},
		{
			name:    "is matches number against string",
			items:   []definition.ConditionItem{item("guests", definition.OperatorIs, "2")},
			answers: map[string]any{"guests": 2.0},
			want:    true,
		},
		{
			name:    "isNot holds when different",
			items:   []definition.ConditionItem{item("size", definition.OperatorIsNot, "large")},
			answers: map[string]any{"size": "small"},
			want:    true,
		},
		{
			name:    "contains on slice",
			items:   []definition.ConditionItem{item("toppings", definition.OperatorContains, "olives")},
			answers: map[string]any{"toppings": []string{"mozzarella", "olives"}},
			want:    true,
		},
		{
			name:    "contains on decoded slice",
			items:   []definition.ConditionItem{item("toppings", definition.OperatorContains, "olives")},
			answers: map[string]any{"toppings": []any{"olives"}},
			want:    true,
		},
		{
			name:    "doesNotContain requires presence",
			items:   []definition.ConditionItem{item("toppings", definition.OperatorDoesNotContain, "anchovies")},
			answers: map[string]any{"toppings": []string{"olives"}},
			want:    true,
		},
		{
			name:    "isLongerThan",
			items:   []definition.ConditionItem{item("notes", definition.OperatorIsLongerThan, 3)},
			answers: map[string]any{"notes": "abcd"},
			want:    true,
		},
		{
			name:    "isMoreThan",
			items:   []definition.ConditionItem{item("guests", definition.OperatorIsMoreThan, 1)},
			answers: map[string]any{"guests": 2.0},
			want:    true,
		},
		{
			name:    "isLessThan false on equal",
			items:   []definition.ConditionItem{item("guests", definition.OperatorIsLessThan, 2)},
			answers: map[string]any{"guests": 2.0},
			want:    false,
		},
		{
			name: "conjunction requires every item",
			items: []definition.ConditionItem{
				item("isOverEighteen", definition.OperatorIs, true),
				item("size", definition.OperatorIs, "large"),
			},
			answers: map[string]any{"isOverEighteen": true, "size": "small"},
			want:    false,
		},
		{
			name:    "no items never holds",
			items:   nil,
			answers: map[string]any{"x": 1},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := definition.Condition{Name: "test", Items: tt.items}
			assert.Equal(t, tt.want, evaluator.Evaluate(cond, tt.answers))
		})
	}
}

// Absent data means "not yet answered" and must match no asserted value, for
// every operator: evaluation is total and never errors.
func TestItemsEvaluateAbsentAnswerIsFalse(t *testing.T) {
	evaluator := condition.NewItems()
	operators := []definition.Operator{
		definition.OperatorIs,
		definition.OperatorIsNot,
		definition.OperatorContains,
		definition.OperatorDoesNotContain,
		definition.OperatorIsLongerThan,
		definition.OperatorIsShorterThan,
		definition.OperatorIsMoreThan,
		definition.OperatorIsLessThan,
	}
	for _, op := range operators {
		cond := definition.Condition{Name: "absent", Items: []definition.ConditionItem{item("missing", op, "x")}}
		assert.False(t, evaluator.Evaluate(cond, map[string]any{}), "operator %s", op)
		assert.False(t, evaluator.Evaluate(cond, map[string]any{"missing": nil}), "operator %s with nil", op)
	}
}

func TestExprConditions(t *testing.T) {
	def := &definition.Definition{
		Name:      "expr",
		StartPath: "/a",
		Pages:     []definition.Page{{Path: "/a", Controller: definition.ControllerPlain}},
		Conditions: []definition.Condition{
			{Name: "adult", Expr: "isOverEighteen == true"},
			{Name: "party", Expr: "guests > 4"},
		},
	}

	evaluator, err := condition.New(def)
	require.NoError(t, err)

	adult := *def.FindCondition("adult")
	assert.True(t, evaluator.Evaluate(adult, map[string]any{"isOverEighteen": true}))
	assert.False(t, evaluator.Evaluate(adult, map[string]any{"isOverEighteen": false}))
	assert.False(t, evaluator.Evaluate(adult, map[string]any{}), "absent answer must evaluate false")

	party := *def.FindCondition("party")
	assert.True(t, evaluator.Evaluate(party, map[string]any{"guests": 6.0}))
	assert.False(t, evaluator.Evaluate(party, map[string]any{}), "comparison against missing answer must evaluate false")
}

func TestExprCompileErrorIsConfigurationError(t *testing.T) {
	def := &definition.Definition{
		Name:      "expr",
		StartPath: "/a",
		Pages:     []definition.Page{{Path: "/a", Controller: definition.ControllerPlain}},
		Conditions: []definition.Condition{
			{Name: "broken", Expr: "guests >>> 4"},
		},
	}
	_, err := condition.New(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `compile "broken"`)
}

func TestExprFallsBackToItems(t *testing.T) {
	def := &definition.Definition{Name: "mixed", StartPath: "/a", Pages: []definition.Page{{Path: "/a"}}}
	evaluator, err := condition.New(def)
	require.NoError(t, err)

	structured := definition.Condition{
		Name:  "underage",
		Items: []definition.ConditionItem{item("isOverEighteen", definition.OperatorIs, false)},
	}
	assert.True(t, evaluator.Evaluate(structured, map[string]any{"isOverEighteen": false}))
}
