package engine

import (
	"net/url"

	"github.com/goliatone/go-formjourney/pkg/definition"
)

// Request is one inbound form request, already resolved by the host's
// routing layer: the path under the journey's mount point, the HTTP method,
// the parsed form payload and the force-access signal. The engine never
// computes ForceAccess itself.
type Request struct {
	SessionKey  string
	Path        string
	Method      string
	Form        url.Values
	ForceAccess bool
}

// OutcomeKind discriminates the closed set of dispatch results.
type OutcomeKind int

const (
	// OutcomeRender asks the host to render Page with Context.
	OutcomeRender OutcomeKind = iota + 1
	// OutcomeRedirect asks the host to redirect to RedirectTo.
	OutcomeRedirect
	// OutcomeNotFound reports a path, method or item the journey does not
	// serve; the host translates it into a user-visible not-found response.
	OutcomeNotFound
	// OutcomeCompleted reports that the journey finished and its session
	// was destroyed.
	OutcomeCompleted
)

// Outcome is the result of dispatching one request. Exactly the fields
// implied by Kind are populated.
type Outcome struct {
	Kind       OutcomeKind
	RedirectTo string
	Page       *definition.Page
	Context    *FormContext
}

func renderOutcome(page definition.Page, formContext *FormContext) Outcome {
	return Outcome{Kind: OutcomeRender, Page: &page, Context: formContext}
}

func redirectOutcome(path string) Outcome {
	return Outcome{Kind: OutcomeRedirect, RedirectTo: path}
}

func notFoundOutcome() Outcome {
	return Outcome{Kind: OutcomeNotFound}
}

func completedOutcome() Outcome {
	return Outcome{Kind: OutcomeCompleted}
}
