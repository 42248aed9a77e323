package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formjourney/pkg/definition"
	"github.com/goliatone/go-formjourney/pkg/engine"
	"github.com/goliatone/go-formjourney/pkg/render"
)

func TestSanitizeMarkupStripsScripts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "script removed",
			input: `<p>hello</p><script>alert(1)</script>`,
			want:  `<p>hello</p>`,
		},
		{
			name:  "event handler removed",
			input: `<a href="/next" onclick="steal()">next</a>`,
			want:  `<a href="/next" rel="nofollow">next</a>`,
		},
		{
			name:  "plain text untouched",
			input: "just a hint",
			want:  "just a hint",
		},
		{
			name:  "empty",
			input: "  ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render.SanitizeMarkup(tt.input); got != tt.want {
				t.Errorf("SanitizeMarkup(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeDefinitionCleansContentAndHints(t *testing.T) {
	def := &definition.Definition{
		Name:      "demo",
		StartPath: "/start",
		Pages: []definition.Page{
			{
				Path: "/start",
				Components: []definition.Component{
					{Name: "intro", Type: definition.ComponentHTML, Content: `<p>hi</p><script>x()</script>`},
					{Name: "email", Type: definition.ComponentText, Hint: `we keep it <iframe src="evil"></iframe>private`},
				},
			},
		},
		Lists: []definition.List{
			{
				Name: "choices",
				Items: []definition.ListItem{
					{Text: "A", Value: "a", Hint: `<img src=x onerror=steal()>safe`},
				},
			},
		},
	}

	render.SanitizeDefinition(def)

	if got := def.Pages[0].Components[0].Content; strings.Contains(got, "script") {
		t.Errorf("content not cleaned: %q", got)
	}
	if got := def.Pages[0].Components[1].Hint; strings.Contains(got, "iframe") {
		t.Errorf("hint not cleaned: %q", got)
	}
	if got := def.Lists[0].Items[0].Hint; strings.Contains(got, "onerror") {
		t.Errorf("list hint not cleaned: %q", got)
	}
}

func TestSanitizeDefinitionNil(t *testing.T) {
	if render.SanitizeDefinition(nil) != nil {
		t.Error("expected nil passthrough")
	}
}

type stubRenderer struct{ name string }

func (r stubRenderer) Name() string        { return r.name }
func (r stubRenderer) ContentType() string { return "text/plain" }
func (r stubRenderer) Render(context.Context, definition.Page, *engine.FormContext) ([]byte, error) {
	return []byte(r.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()

	if err := registry.Register(stubRenderer{name: "plain"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := registry.Register(stubRenderer{name: "plain"}); err == nil {
		t.Fatal("expected error on duplicate registration")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatal("expected error on empty name")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatal("expected error on nil renderer")
	}

	registry.MustRegister(stubRenderer{name: "json"})

	if !registry.Has("plain") {
		t.Error("Has(plain) = false")
	}
	if _, err := registry.Get("ghost"); err == nil {
		t.Error("expected error for unknown renderer")
	}

	want := []string{"json", "plain"}
	got := registry.List()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("List() = %v, want %v", got, want)
	}
}
