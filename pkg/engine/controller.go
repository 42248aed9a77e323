package engine

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formjourney/pkg/definition"
	"github.com/goliatone/go-formjourney/pkg/state"
)

// handleGet renders the requested page or sub-route view. The switch over
// controller kinds is exhaustive: an unknown kind cannot reach here because
// definitions validate at load time.
func (e *Engine) handleGet(rt route, req Request, session *state.Session) (Outcome, bool, error) {
	page := *rt.page

	switch rt.action {
	case actionPage:
		switch page.Controller {
		case definition.ControllerPlain, definition.ControllerTerminal:
			return renderOutcome(page, e.pageContext(page, session.Answers, req.ForceAccess)), false, nil

		case definition.ControllerUpload:
			formContext := e.pageContext(page, session.Answers, req.ForceAccess)
			formContext.Items = session.Items(page.Path)
			return renderOutcome(page, formContext), false, nil

		case definition.ControllerRepeat:
			return renderOutcome(page, e.listingContext(page, session, req.ForceAccess, nil)), false, nil

		case definition.ControllerSummary:
			formContext := e.pageContext(page, session.Answers, req.ForceAccess)
			formContext.Rows = e.summaryRows(session.Answers)
			return renderOutcome(page, formContext), false, nil

		default:
			return Outcome{}, false, fmt.Errorf("engine: page %q has unhandled controller %q", page.Path, page.Controller)
		}

	case actionAdd:
		return e.repeatAddForm(page, session, req)

	case actionEdit:
		return e.repeatEditForm(page, session, req, rt.itemID)

	case actionDelete:
		if page.Controller != definition.ControllerRepeat {
			// Upload deletes are POST-only.
			return notFoundOutcome(), false, nil
		}
		return e.repeatDeleteForm(page, session, req, rt.itemID)

	default:
		return notFoundOutcome(), false, nil
	}
}

// handlePost validates and applies the submitted payload, then instructs a
// redirect per the page graph. Validation failure re-renders the same page
// with field errors and the submitted values preserved; no state mutates.
func (e *Engine) handlePost(ctx context.Context, rt route, req Request, session *state.Session) (Outcome, bool, error) {
	page := *rt.page

	switch rt.action {
	case actionPage:
		switch page.Controller {
		case definition.ControllerPlain:
			return e.plainPost(page, session, req)

		case definition.ControllerUpload:
			return e.uploadPost(page, session, req)

		case definition.ControllerRepeat:
			return e.repeatContinue(page, session, req)

		case definition.ControllerSummary:
			return e.summaryPost(ctx, page, session, req)

		case definition.ControllerTerminal:
			// A terminal page is a read-only endpoint; POST is not a
			// valid transition.
			return notFoundOutcome(), false, nil

		default:
			return Outcome{}, false, fmt.Errorf("engine: page %q has unhandled controller %q", page.Path, page.Controller)
		}

	case actionAdd:
		return e.repeatAddSubmit(page, session, req)

	case actionEdit:
		return e.repeatEditSubmit(page, session, req, rt.itemID)

	case actionDelete:
		return e.itemDeleteSubmit(page, session, req, rt.itemID)

	default:
		return notFoundOutcome(), false, nil
	}
}

func (e *Engine) plainPost(page definition.Page, session *state.Session, req Request) (Outcome, bool, error) {
	answers, fieldErrors := e.validatePage(page, session.Answers, req.Form)
	if len(fieldErrors) > 0 {
		return renderOutcome(page, e.invalidContext(page, session.Answers, req, fieldErrors)), false, nil
	}

	session.Answers.Merge(answers)
	next, err := e.resolver.Next(page.Path, session.Answers)
	if err != nil {
		return Outcome{}, false, err
	}
	return redirectOutcome(next), true, nil
}

// uploadPost behaves like plainPost except that answers from file components
// become items of the page's upload list, so they can be removed through the
// item-delete sub-route.
func (e *Engine) uploadPost(page definition.Page, session *state.Session, req Request) (Outcome, bool, error) {
	answers, fieldErrors := e.validatePage(page, session.Answers, req.Form)
	if len(fieldErrors) > 0 {
		return renderOutcome(page, e.invalidContext(page, session.Answers, req, fieldErrors)), false, nil
	}

	for _, component := range page.FormComponents() {
		if component.Type != definition.ComponentFile {
			continue
		}
		value, ok := answers[component.Name]
		if !ok {
			continue
		}
		session.AddItem(page.Path, state.Answers{component.Name: value})
		delete(answers, component.Name)
	}

	session.Answers.Merge(answers)
	next, err := e.resolver.Next(page.Path, session.Answers)
	if err != nil {
		return Outcome{}, false, err
	}
	return redirectOutcome(next), true, nil
}

// summaryPost confirms the journey. With outgoing edges the completed
// session is kept and the caller continues along the graph; without them the
// journey is over and the session is destroyed.
func (e *Engine) summaryPost(ctx context.Context, page definition.Page, session *state.Session, req Request) (Outcome, bool, error) {
	session.Completed = true

	if len(page.Next) > 0 {
		next, err := e.resolver.Next(page.Path, session.Answers)
		if err != nil {
			return Outcome{}, false, err
		}
		return redirectOutcome(next), true, nil
	}

	if err := e.sessions.Delete(ctx, req.SessionKey); err != nil {
		return Outcome{}, false, fmt.Errorf("engine: delete session: %w", err)
	}
	return completedOutcome(), false, nil
}

// invalidContext re-renders a page after validation failure, preserving the
// submitted values for redisplay.
func (e *Engine) invalidContext(page definition.Page, scope state.Answers, req Request, fieldErrors []FieldError) *FormContext {
	formContext := e.pageContext(page, scope, req.ForceAccess)
	formContext.Values = req.Form
	formContext.Errors = fieldErrors
	return formContext
}
