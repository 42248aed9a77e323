package engine

import (
	"net/url"

	"github.com/goliatone/go-formjourney/pkg/definition"
	"github.com/goliatone/go-formjourney/pkg/state"
)

// FieldError is one validation failure. An empty Name marks a form-level
// error (for example a repeat section below its minimum item count).
type FieldError struct {
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// SummaryRow is one aggregated answer on a summary page.
type SummaryRow struct {
	PagePath  string `json:"pagePath"`
	PageTitle string `json:"pageTitle,omitempty"`
	Component string `json:"component"`
	Title     string `json:"title,omitempty"`
	Value     any    `json:"value,omitempty"`
}

// ComponentView pairs a component definition with its form-component
// annotation for renderers that cannot call methods.
type ComponentView struct {
	definition.Component
	IsForm bool `json:"isFormComponent"`
}

// FormContext is the per-request view handed to the renderer: the component
// map, the relevant answers, resolved option lists, validation errors and,
// for repeat pages, the item collection or the item being edited or
// deleted. The engine never inspects what the renderer produces from it.
type FormContext struct {
	Page        definition.Page
	Components  map[string]ComponentView
	Answers     state.Answers
	Values      url.Values
	Errors      []FieldError
	Options     map[string][]definition.ListItem
	Items       []state.RepeatItem
	Item        *state.RepeatItem
	Rows        []SummaryRow
	ForceAccess bool
}

// HasErrors reports whether the context carries validation errors.
func (c *FormContext) HasErrors() bool {
	return len(c.Errors) > 0
}

// pageContext assembles the render view for a page. Option lists are
// filtered against scope, which is the item's own answers inside a repeat
// sub-flow and the journey answers everywhere else.
func (e *Engine) pageContext(page definition.Page, scope state.Answers, force bool) *FormContext {
	components := make(map[string]ComponentView, len(page.Components))
	options := make(map[string][]definition.ListItem)
	for _, component := range page.Components {
		components[component.Name] = ComponentView{Component: component, IsForm: component.IsFormComponent()}
		if resolved := e.componentOptions(component, scope); len(resolved) > 0 {
			options[component.Name] = resolved
		}
	}
	return &FormContext{
		Page:        page,
		Components:  components,
		Answers:     e.resolver.RelevantAnswers(scope),
		Options:     options,
		ForceAccess: force,
	}
}

// componentOptions resolves a component's selectable entries, dropping
// entries whose condition does not hold for scope.
func (e *Engine) componentOptions(component definition.Component, scope state.Answers) []definition.ListItem {
	items := component.Options
	if component.List != "" {
		if list := e.def.FindList(component.List); list != nil {
			items = list.Items
		}
	}
	if len(items) == 0 {
		return nil
	}

	out := make([]definition.ListItem, 0, len(items))
	for _, item := range items {
		if item.Condition != "" {
			cond := e.def.FindCondition(item.Condition)
			if cond != nil && !e.conditions.Evaluate(*cond, scope) {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// summaryRows aggregates every relevant answer across the journey, in page
// and component order. Answers behind a false guard are excluded.
func (e *Engine) summaryRows(answers state.Answers) []SummaryRow {
	var rows []SummaryRow
	for _, page := range e.resolver.RelevantPages(answers) {
		for _, component := range page.FormComponents() {
			value, ok := answers[component.Name]
			if !ok {
				continue
			}
			rows = append(rows, SummaryRow{
				PagePath:  page.Path,
				PageTitle: page.Title,
				Component: component.Name,
				Title:     component.Title,
				Value:     value,
			})
		}
	}
	return rows
}
