package engine

import (
	"fmt"

	"github.com/goliatone/go-formjourney/pkg/definition"
	"github.com/goliatone/go-formjourney/pkg/state"
)

// The repeater runs a nested mini-journey per repeat page. Its states map to
// sub-routes: the page itself lists items (Listing), /add and /{id} collect
// or replace one item's answers (EditingItem), /{id}/delete asks for and
// performs removal (ConfirmingDelete). Item-level condition lookups resolve
// against the item's own answers, never the parent store.

func (e *Engine) listingContext(page definition.Page, session *state.Session, force bool, fieldErrors []FieldError) *FormContext {
	formContext := e.pageContext(page, session.Answers, force)
	formContext.Items = session.Items(page.Path)
	formContext.Errors = fieldErrors
	return formContext
}

// itemContext builds the edit/confirm view scoped to one item's answers.
func (e *Engine) itemContext(page definition.Page, item *state.RepeatItem, force bool) *FormContext {
	scope := state.Answers{}
	if item != nil {
		scope = item.Answers
	}
	formContext := e.pageContext(page, scope, force)
	formContext.Answers = scope.Clone()
	formContext.Item = item
	return formContext
}

func (e *Engine) repeatAddForm(page definition.Page, session *state.Session, req Request) (Outcome, bool, error) {
	if atCapacity(page, session) {
		return redirectOutcome(page.Path), false, nil
	}
	return renderOutcome(page, e.itemContext(page, nil, req.ForceAccess)), false, nil
}

func (e *Engine) repeatEditForm(page definition.Page, session *state.Session, req Request, itemID string) (Outcome, bool, error) {
	item, ok := session.Item(page.Path, itemID)
	if !ok {
		return notFoundOutcome(), false, nil
	}
	return renderOutcome(page, e.itemContext(page, &item, req.ForceAccess)), false, nil
}

func (e *Engine) repeatDeleteForm(page definition.Page, session *state.Session, req Request, itemID string) (Outcome, bool, error) {
	item, ok := session.Item(page.Path, itemID)
	if !ok {
		return notFoundOutcome(), false, nil
	}
	return renderOutcome(page, e.itemContext(page, &item, req.ForceAccess)), false, nil
}

// repeatAddSubmit appends a new item on valid submit and returns to the
// listing.
func (e *Engine) repeatAddSubmit(page definition.Page, session *state.Session, req Request) (Outcome, bool, error) {
	if atCapacity(page, session) {
		message := fmt.Sprintf("no more than %d entries can be added", page.Repeat.Max)
		return renderOutcome(page, e.listingContext(page, session, req.ForceAccess, []FieldError{{Message: message}})), false, nil
	}

	answers, fieldErrors := e.validatePage(page, state.Answers{}, req.Form)
	if len(fieldErrors) > 0 {
		formContext := e.itemContext(page, nil, req.ForceAccess)
		formContext.Values = req.Form
		formContext.Errors = fieldErrors
		return renderOutcome(page, formContext), false, nil
	}

	session.AddItem(page.Path, answers)
	return redirectOutcome(page.Path), true, nil
}

// repeatEditSubmit replaces the identified item's answers in place: same id,
// same position.
func (e *Engine) repeatEditSubmit(page definition.Page, session *state.Session, req Request, itemID string) (Outcome, bool, error) {
	item, ok := session.Item(page.Path, itemID)
	if !ok {
		return notFoundOutcome(), false, nil
	}

	answers, fieldErrors := e.validatePage(page, item.Answers, req.Form)
	if len(fieldErrors) > 0 {
		formContext := e.itemContext(page, &item, req.ForceAccess)
		formContext.Values = req.Form
		formContext.Errors = fieldErrors
		return renderOutcome(page, formContext), false, nil
	}

	session.ReplaceItem(page.Path, itemID, answers)
	return redirectOutcome(page.Path), true, nil
}

// itemDeleteSubmit serves the delete sub-route of repeat and upload pages.
// Forced access is read-only for mutating sub-routes: an out-of-sequence
// delete is answered not-found, never performed.
func (e *Engine) itemDeleteSubmit(page definition.Page, session *state.Session, req Request, itemID string) (Outcome, bool, error) {
	if req.ForceAccess {
		return notFoundOutcome(), false, nil
	}
	if _, ok := session.Item(page.Path, itemID); !ok {
		return notFoundOutcome(), false, nil
	}

	if page.Controller == definition.ControllerUpload {
		session.RemoveItem(page.Path, itemID)
		return redirectOutcome(page.Path), true, nil
	}

	// Repeat deletes go through confirmation; a submit without confirm is
	// a cancel and mutates nothing.
	if req.Form.Get("confirm") != "true" {
		return redirectOutcome(page.Path), false, nil
	}
	session.RemoveItem(page.Path, itemID)
	return redirectOutcome(page.Path), true, nil
}

// repeatContinue leaves the repeat section, gated by the schema's minimum
// item count.
func (e *Engine) repeatContinue(page definition.Page, session *state.Session, req Request) (Outcome, bool, error) {
	items := session.Items(page.Path)
	if page.Repeat != nil && len(items) < page.Repeat.Min {
		message := fmt.Sprintf("add at least %d entries before continuing", page.Repeat.Min)
		if page.Repeat.Min == 1 {
			message = "add at least 1 entry before continuing"
		}
		return renderOutcome(page, e.listingContext(page, session, req.ForceAccess, []FieldError{{Message: message}})), false, nil
	}

	next, err := e.resolver.Next(page.Path, session.Answers)
	if err != nil {
		return Outcome{}, false, err
	}
	return redirectOutcome(next), false, nil
}

func atCapacity(page definition.Page, session *state.Session) bool {
	return page.Repeat != nil && page.Repeat.Max > 0 && len(session.Items(page.Path)) >= page.Repeat.Max
}
