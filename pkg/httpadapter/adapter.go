// Package httpadapter mounts a journey engine behind net/http. It owns the
// glue the engine deliberately avoids: session cookies, the force-access
// signal, renderer lookup and the mapping from dispatch outcomes to HTTP
// responses.
package httpadapter

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formjourney/pkg/engine"
	"github.com/goliatone/go-formjourney/pkg/render"
)

const (
	defaultCookieName  = "formjourney_session"
	defaultForceParam  = "force"
	defaultContentType = "text/html; charset=utf-8"
)

// Config wires an adapter. Engine, Renderers and Renderer are required.
type Config struct {
	Engine    *engine.Engine
	Renderers *render.Registry
	// Renderer names the registered renderer used for every page.
	Renderer string
	// BasePath prefixes redirect targets when the adapter is mounted below
	// the server root (for example "/apply").
	BasePath string
	// CookieName overrides the session cookie name.
	CookieName string
	// ForceAccessParam names the query parameter carrying the force-access
	// signal. The adapter never sets it; links from summary pages do.
	ForceAccessParam string
	// SessionKey overrides cookie-based session keys, for hosts that carry
	// their own session identity.
	SessionKey func(r *http.Request) (string, bool)
	// OnCompleted handles the end of a journey. Defaults to a redirect to
	// the journey's start path.
	OnCompleted http.Handler
	Logger      *zap.Logger
}

// Adapter is an http.Handler serving one journey.
type Adapter struct {
	engine     *engine.Engine
	renderer   render.Renderer
	basePath   string
	cookieName string
	forceParam string
	sessionKey func(r *http.Request) (string, bool)
	completed  http.Handler
	logger     *zap.Logger
	router     chi.Router
}

// New validates the configuration and builds the adapter.
func New(cfg Config) (*Adapter, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("httpadapter: engine is required")
	}
	if cfg.Renderers == nil {
		return nil, fmt.Errorf("httpadapter: renderer registry is required")
	}
	renderer, err := cfg.Renderers.Get(cfg.Renderer)
	if err != nil {
		return nil, err
	}

	adapter := &Adapter{
		engine:     cfg.Engine,
		renderer:   renderer,
		basePath:   cfg.BasePath,
		cookieName: cfg.CookieName,
		forceParam: cfg.ForceAccessParam,
		sessionKey: cfg.SessionKey,
		completed:  cfg.OnCompleted,
		logger:     cfg.Logger,
	}
	if adapter.cookieName == "" {
		adapter.cookieName = defaultCookieName
	}
	if adapter.forceParam == "" {
		adapter.forceParam = defaultForceParam
	}
	if adapter.logger == nil {
		adapter.logger = zap.NewNop()
	}

	router := chi.NewRouter()
	router.Get("/*", adapter.handle)
	router.Post("/*", adapter.handle)
	adapter.router = router

	return adapter, nil
}

// ServeHTTP implements http.Handler.
func (a *Adapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *Adapter) handle(w http.ResponseWriter, r *http.Request) {
	key := a.resolveSessionKey(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	req := engine.Request{
		SessionKey:  key,
		Path:        "/" + chi.URLParam(r, "*"),
		Method:      r.Method,
		Form:        r.PostForm,
		ForceAccess: r.URL.Query().Get(a.forceParam) == "true",
	}

	outcome, err := a.engine.Dispatch(r.Context(), req)
	if err != nil {
		a.logger.Error("dispatch failed",
			zap.String("path", req.Path),
			zap.String("method", req.Method),
			zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	switch outcome.Kind {
	case engine.OutcomeRender:
		body, err := a.renderer.Render(r.Context(), *outcome.Page, outcome.Context)
		if err != nil {
			a.logger.Error("render failed", zap.String("page", outcome.Page.Path), zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		contentType := a.renderer.ContentType()
		if contentType == "" {
			contentType = defaultContentType
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(body)

	case engine.OutcomeRedirect:
		http.Redirect(w, r, a.basePath+outcome.RedirectTo, http.StatusSeeOther)

	case engine.OutcomeNotFound:
		http.NotFound(w, r)

	case engine.OutcomeCompleted:
		if a.completed != nil {
			a.completed.ServeHTTP(w, r)
			return
		}
		http.Redirect(w, r, a.basePath+a.engine.Definition().StartPath, http.StatusSeeOther)

	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (a *Adapter) resolveSessionKey(w http.ResponseWriter, r *http.Request) string {
	if a.sessionKey != nil {
		if key, ok := a.sessionKey(r); ok {
			return key
		}
	}
	if cookie, err := r.Cookie(a.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	key := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    key,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return key
}
