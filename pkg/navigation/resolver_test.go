package navigation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formjourney/pkg/condition"
	"github.com/goliatone/go-formjourney/pkg/definition"
	"github.com/goliatone/go-formjourney/pkg/navigation"
	"github.com/goliatone/go-formjourney/pkg/state"
)

func newResolver(t *testing.T, raw string) *navigation.Resolver {
	t.Helper()
	def, err := definition.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	evaluator, err := condition.New(def)
	if err != nil {
		t.Fatalf("condition.New() error = %v", err)
	}
	return navigation.NewResolver(def, evaluator)
}

const ageJourney = `
name: pizza
startPath: /age
pages:
  - path: /age
    components:
      - name: isOverEighteen
        type: yesno
        required: true
    next:
      - target: /unavailable
        condition: underage
      - target: /pizza
  - path: /unavailable
    controller: terminal
  - path: /pizza
    next:
      - target: /summary
  - path: /summary
    controller: summary
conditions:
  - name: underage
    items:
      - field: isOverEighteen
        operator: is
        value: false
`

func TestNextFollowsFirstMatchingEdge(t *testing.T) {
	resolver := newResolver(t, ageJourney)

	next, err := resolver.Next("/age", state.Answers{"isOverEighteen": false})
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if next != "/unavailable" {
		t.Fatalf("Next() = %q, want /unavailable", next)
	}

	next, err = resolver.Next("/age", state.Answers{"isOverEighteen": true})
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if next != "/pizza" {
		t.Fatalf("Next() = %q, want /pizza", next)
	}
}

func TestNextWithUnansweredQuestionSkipsConditionalEdge(t *testing.T) {
	resolver := newResolver(t, ageJourney)

	next, err := resolver.Next("/age", state.Answers{})
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if next != "/pizza" {
		t.Fatalf("Next() = %q, want the unconditional /pizza edge", next)
	}
}

func TestNextReportsDeadEnd(t *testing.T) {
	resolver := newResolver(t, `
name: stuck
startPath: /a
pages:
  - path: /a
    next:
      - target: /b
        condition: never
  - path: /b
conditions:
  - name: never
    items:
      - field: ghost
        operator: is
        value: true
`)

	_, err := resolver.Next("/a", state.Answers{})
	if !errors.Is(err, navigation.ErrDeadEnd) {
		t.Fatalf("Next() error = %v, want ErrDeadEnd", err)
	}
}

func TestNextReportsUnknownPage(t *testing.T) {
	resolver := newResolver(t, ageJourney)
	if _, err := resolver.Next("/nowhere", state.Answers{}); err == nil {
		t.Fatal("expected error for unknown page")
	}
}

func TestNextSkipsGuardedFalsePages(t *testing.T) {
	resolver := newResolver(t, `
name: guarded
startPath: /a
pages:
  - path: /a
    next:
      - target: /b
  - path: /b
    condition: adult
    next:
      - target: /c
  - path: /c
conditions:
  - name: adult
    items:
      - field: isOverEighteen
        operator: is
        value: true
`)

	// /b is guarded false: resolution re-runs from /b's own edges and
	// lands on /c without ever offering /b.
	next, err := resolver.Next("/a", state.Answers{"isOverEighteen": false})
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if next != "/c" {
		t.Fatalf("Next() = %q, want /c", next)
	}

	next, err = resolver.Next("/a", state.Answers{"isOverEighteen": true})
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if next != "/b" {
		t.Fatalf("Next() = %q, want /b", next)
	}
}

func TestNextReportsGuardCycles(t *testing.T) {
	resolver := newResolver(t, `
name: looping
startPath: /a
pages:
  - path: /a
    next:
      - target: /b
  - path: /b
    condition: never
    next:
      - target: /c
  - path: /c
    condition: never
    next:
      - target: /b
conditions:
  - name: never
    items:
      - field: ghost
        operator: is
        value: true
`)

	_, err := resolver.Next("/a", state.Answers{})
	if !errors.Is(err, navigation.ErrTooManyRedirects) {
		t.Fatalf("Next() error = %v, want ErrTooManyRedirects", err)
	}
}

func TestRelevantPagesExcludesGuardedFalse(t *testing.T) {
	resolver := newResolver(t, `
name: relevance
startPath: /a
pages:
  - path: /a
    components:
      - name: isOverEighteen
        type: yesno
  - path: /b
    condition: adult
    components:
      - name: drink
        type: text
  - path: /c
    components:
      - name: dessert
        type: text
conditions:
  - name: adult
    items:
      - field: isOverEighteen
        operator: is
        value: true
`)

	pages := resolver.RelevantPages(state.Answers{"isOverEighteen": false})
	paths := make([]string, 0, len(pages))
	for _, page := range pages {
		paths = append(paths, page.Path)
	}
	if diff := cmp.Diff([]string{"/a", "/c"}, paths); diff != "" {
		t.Fatalf("relevant pages mismatch (-want +got):\n%s", diff)
	}

	answers := state.Answers{
		"isOverEighteen": false,
		"drink":          "wine",
		"dessert":        "tiramisu",
	}
	relevant := resolver.RelevantAnswers(answers)
	want := state.Answers{
		"isOverEighteen": false,
		"dessert":        "tiramisu",
	}
	if diff := cmp.Diff(want, relevant); diff != "" {
		t.Fatalf("relevant answers mismatch (-want +got):\n%s", diff)
	}
}
