package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-formjourney/pkg/sessionstore"
	"github.com/goliatone/go-formjourney/pkg/state"
)

// Dispatch handles one request against the journey. The returned Outcome is
// a closed variant the host translates into a response; a non-nil error
// reports a configuration, routing or persistence fault the host should
// surface as a server error. Mutations are all-or-nothing: handlers work on
// a clone of the loaded session and the clone is only persisted on success.
func (e *Engine) Dispatch(ctx context.Context, req Request) (Outcome, error) {
	rt, ok := e.match(req.Path)
	if !ok {
		e.logger.Debug("no page registered for path", zap.String("path", req.Path))
		return notFoundOutcome(), nil
	}
	if req.Method != http.MethodGet && req.Method != http.MethodPost {
		return notFoundOutcome(), nil
	}

	session, fresh, err := e.loadSession(ctx, req.SessionKey)
	if err != nil {
		return Outcome{}, err
	}
	working := session.Clone()

	// A page behind a false guard is never served directly; resolution
	// re-routes the caller the same way Next skips it as a target. Forced
	// access (a "change your answer" revisit) bypasses the re-route.
	if !req.ForceAccess && !e.resolver.GuardHolds(*rt.page, working.Answers) {
		next, err := e.resolver.Next(rt.page.Path, working.Answers)
		if err != nil {
			return Outcome{}, err
		}
		return redirectOutcome(next), nil
	}

	var outcome Outcome
	var mutated bool
	switch req.Method {
	case http.MethodGet:
		outcome, mutated, err = e.handleGet(rt, req, working)
	case http.MethodPost:
		outcome, mutated, err = e.handlePost(ctx, rt, req, working)
	}
	if err != nil {
		return Outcome{}, err
	}

	persist := mutated || (fresh && outcome.Kind != OutcomeNotFound && outcome.Kind != OutcomeCompleted)
	if persist {
		working.Touch()
		if err := e.sessions.Save(ctx, req.SessionKey, working); err != nil {
			return Outcome{}, fmt.Errorf("engine: save session: %w", err)
		}
	}

	e.logger.Debug("dispatched",
		zap.String("path", req.Path),
		zap.String("method", req.Method),
		zap.Int("outcome", int(outcome.Kind)),
		zap.Bool("mutated", mutated))
	return outcome, nil
}

func (e *Engine) loadSession(ctx context.Context, key string) (*state.Session, bool, error) {
	session, err := e.sessions.Load(ctx, key)
	if errors.Is(err, sessionstore.ErrNotFound) {
		return state.NewSession(), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("engine: load session: %w", err)
	}
	return session, false, nil
}
