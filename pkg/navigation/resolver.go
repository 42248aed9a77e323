// Package navigation resolves the next page of a journey from the current
// page and the accumulated answers. Resolution is a synchronous pure
// computation over the definition's page graph; the only failure modes are
// authoring defects, which surface as distinct configuration errors.
package navigation

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formjourney/pkg/condition"
	"github.com/goliatone/go-formjourney/pkg/definition"
	"github.com/goliatone/go-formjourney/pkg/state"
)

// ErrDeadEnd reports a page whose outgoing edges all failed their conditions
// with no unconditional fallback. The journey cannot proceed; this is a
// definition-authoring error, not a recoverable runtime condition.
var ErrDeadEnd = errors.New("navigation: dead end")

// ErrTooManyRedirects reports a cycle among guarded pages encountered while
// skipping over guard-false targets. Each resolution visits a page at most
// once; a second visit means the definition loops.
var ErrTooManyRedirects = errors.New("navigation: too many redirects")

// Resolver walks a definition's page graph.
type Resolver struct {
	def        *definition.Definition
	conditions condition.Evaluator
}

// NewResolver builds a resolver over a validated definition.
func NewResolver(def *definition.Definition, conditions condition.Evaluator) *Resolver {
	return &Resolver{def: def, conditions: conditions}
}

// Next computes the path that follows currentPath given the answers. Edges
// are scanned in declared order and the first whose condition holds (an
// edge without a condition always holds) wins. A target whose own guard
// evaluates false is never offered: resolution transparently re-runs from
// that target's edges, bounded by a per-call visited set.
func (r *Resolver) Next(currentPath string, answers state.Answers) (string, error) {
	visited := make(map[string]struct{})
	path := currentPath

	for {
		if _, seen := visited[path]; seen {
			return "", fmt.Errorf("%w: revisited %q resolving from %q", ErrTooManyRedirects, path, currentPath)
		}
		visited[path] = struct{}{}

		page := r.def.FindPage(path)
		if page == nil {
			return "", fmt.Errorf("navigation: unknown page %q", path)
		}

		target, ok := r.matchEdge(*page, answers)
		if !ok {
			return "", fmt.Errorf("%w: no matching edge out of %q", ErrDeadEnd, path)
		}

		next := r.def.FindPage(target)
		if next == nil {
			return "", fmt.Errorf("navigation: unknown page %q", target)
		}
		if !r.guardHolds(*next, answers) {
			// Guarded-false page: resolve onward from its own edges.
			path = next.Path
			continue
		}
		return next.Path, nil
	}
}

// GuardHolds reports whether the page's guarding condition allows entry. A
// page without a guard always admits.
func (r *Resolver) GuardHolds(page definition.Page, answers state.Answers) bool {
	return r.guardHolds(page, answers)
}

// RelevantPages returns, in definition order, the pages whose guarding
// condition currently holds. Pages behind a false guard are excluded from
// relevance, so their answers never leak into summaries.
func (r *Resolver) RelevantPages(answers state.Answers) []definition.Page {
	out := make([]definition.Page, 0, len(r.def.Pages))
	for _, page := range r.def.Pages {
		if r.guardHolds(page, answers) {
			out = append(out, page)
		}
	}
	return out
}

// RelevantAnswers filters the answer store down to components that live on
// currently relevant pages.
func (r *Resolver) RelevantAnswers(answers state.Answers) state.Answers {
	relevant := make(state.Answers)
	for _, page := range r.RelevantPages(answers) {
		for _, component := range page.FormComponents() {
			if value, ok := answers[component.Name]; ok {
				relevant[component.Name] = value
			}
		}
	}
	return relevant
}

func (r *Resolver) matchEdge(page definition.Page, answers state.Answers) (string, bool) {
	for _, link := range page.Next {
		if link.Condition == "" {
			return link.Target, true
		}
		cond := r.def.FindCondition(link.Condition)
		if cond == nil {
			continue
		}
		if r.conditions.Evaluate(*cond, answers) {
			return link.Target, true
		}
	}
	return "", false
}

func (r *Resolver) guardHolds(page definition.Page, answers state.Answers) bool {
	if page.Condition == "" {
		return true
	}
	cond := r.def.FindCondition(page.Condition)
	if cond == nil {
		return true
	}
	return r.conditions.Evaluate(*cond, answers)
}
