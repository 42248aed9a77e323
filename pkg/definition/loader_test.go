package definition_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formjourney/pkg/definition"
)

const journeyYAML = `
name: pizza
startPath: /age
pages:
  - path: /age
    title: How old are you?
    components:
      - name: isOverEighteen
        type: yesno
        title: Are you over 18?
        required: true
    next:
      - target: /unavailable
        condition: underage
      - target: /pizza
  - path: /unavailable
    controller: terminal
  - path: /pizza
    title: Build your pizza
    components:
      - name: toppings
        type: checkboxes
        title: Toppings
        list: toppingList
        required: true
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
lists:
  - name: toppingList
    items:
      - text: Mozzarella
        value: mozzarella
      - text: Olives
        value: olives
`

func TestParseAppliesDefaults(t *testing.T) {
	def, err := definition.Parse([]byte(journeyYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	age := def.FindPage("/age")
	if age == nil {
		t.Fatal("expected /age page")
	}
	if age.Controller != definition.ControllerPlain {
		t.Fatalf("controller = %q, want plain default", age.Controller)
	}

	cond := def.FindCondition("underage")
	if cond == nil {
		t.Fatal("expected underage condition")
	}
	if cond.Coordinator != definition.CoordinatorAnd {
		t.Fatalf("coordinator = %q, want %q default", cond.Coordinator, definition.CoordinatorAnd)
	}

	wantNext := []definition.Link{
		{Target: "/unavailable", Condition: "underage"},
		{Target: "/pizza"},
	}
	if diff := cmp.Diff(wantNext, age.Next); diff != "" {
		t.Fatalf("next edges mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNormalizesPaths(t *testing.T) {
	def, err := definition.Parse([]byte(`
name: trimmed
startPath: start
pages:
  - path: start/
    next:
      - target: end
  - path: /end
    controller: terminal
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if def.StartPath != "/start" {
		t.Fatalf("startPath = %q, want /start", def.StartPath)
	}
	if def.FindPage("/start") == nil {
		t.Fatal("expected normalized /start page")
	}
	if got := def.Pages[0].Next[0].Target; got != "/end" {
		t.Fatalf("target = %q, want /end", got)
	}
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	if _, err := definition.Parse(nil); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestValidateReportsDanglingReferences(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown next target",
			yaml: `
name: broken
startPath: /a
pages:
  - path: /a
    next:
      - target: /missing
`,
			want: `links to unknown page "/missing"`,
		},
		{
			name: "unknown edge condition",
			yaml: `
name: broken
startPath: /a
pages:
  - path: /a
    next:
      - target: /a
        condition: ghost
`,
			want: `references unknown condition "ghost"`,
		},
		{
			name: "unknown guard condition",
			yaml: `
name: broken
startPath: /a
pages:
  - path: /a
    condition: ghost
`,
			want: `references unknown condition "ghost"`,
		},
		{
			name: "unknown list",
			yaml: `
name: broken
startPath: /a
pages:
  - path: /a
    components:
      - name: topping
        type: select
        list: ghosts
`,
			want: `references unknown list "ghosts"`,
		},
		{
			name: "unknown controller",
			yaml: `
name: broken
startPath: /a
pages:
  - path: /a
    controller: wizard
`,
			want: `unknown controller "wizard"`,
		},
		{
			name: "duplicate page path",
			yaml: `
name: broken
startPath: /a
pages:
  - path: /a
  - path: /a
`,
			want: `duplicate page path "/a"`,
		},
		{
			name: "missing start page",
			yaml: `
name: broken
startPath: /nowhere
pages:
  - path: /a
`,
			want: `startPath "/nowhere" is not a page`,
		},
		{
			name: "condition with neither items nor expr",
			yaml: `
name: broken
startPath: /a
pages:
  - path: /a
conditions:
  - name: empty
`,
			want: `declares neither items nor expr`,
		},
		{
			name: "unsupported coordinator",
			yaml: `
name: broken
startPath: /a
pages:
  - path: /a
conditions:
  - name: either
    coordinator: or
    items:
      - field: x
        operator: is
        value: 1
`,
			want: `unsupported coordinator "or"`,
		},
		{
			name: "repeat page without schema",
			yaml: `
name: broken
startPath: /a
pages:
  - path: /a
    controller: repeat
`,
			want: `missing a repeat schema`,
		},
		{
			name: "repeat min above max",
			yaml: `
name: broken
startPath: /a
pages:
  - path: /a
    controller: repeat
    repeat:
      min: 5
      max: 2
`,
			want: `repeat min 5 exceeds max 2`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := definition.Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestIsFormComponent(t *testing.T) {
	if (definition.Component{Type: definition.ComponentHTML}).IsFormComponent() {
		t.Fatal("html component must not be a form component")
	}
	if !(definition.Component{Type: definition.ComponentText}).IsFormComponent() {
		t.Fatal("text component must be a form component")
	}
}
