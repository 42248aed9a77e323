// Package engine drives form journeys: it decides per request which page to
// handle, whether submitted answers are valid, where the journey goes next
// and how repeating sections mutate. The engine performs no I/O of its own
// beyond the session store; rendering, routing and access-control signals
// belong to the host.
package engine

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/goliatone/go-formjourney/pkg/condition"
	"github.com/goliatone/go-formjourney/pkg/definition"
	"github.com/goliatone/go-formjourney/pkg/navigation"
	"github.com/goliatone/go-formjourney/pkg/sessionstore"
)

// Config carries the collaborators an engine needs. Definition and Sessions
// are required; Conditions defaults to the definition-compiled evaluator and
// Logger defaults to a nop logger.
type Config struct {
	Definition *definition.Definition
	Sessions   sessionstore.Store
	Conditions condition.Evaluator
	Logger     *zap.Logger
}

// Engine is the per-journey navigation and state machine. It is safe for
// concurrent use: all mutable state lives in the session record owned by the
// current request.
type Engine struct {
	def        *definition.Definition
	sessions   sessionstore.Store
	conditions condition.Evaluator
	resolver   *navigation.Resolver
	logger     *zap.Logger
	routes     []route
	patterns   map[string]*regexp.Regexp
}

// New validates the configuration and builds an engine. Expression
// conditions compile here and malformed validation patterns are rejected, so
// every remaining failure mode during dispatch is either user input or a
// collaborator fault.
func New(cfg Config) (*Engine, error) {
	if cfg.Definition == nil {
		return nil, fmt.Errorf("engine: definition is required")
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("engine: session store is required")
	}
	if err := cfg.Definition.Validate(); err != nil {
		return nil, err
	}

	conditions := cfg.Conditions
	if conditions == nil {
		built, err := condition.New(cfg.Definition)
		if err != nil {
			return nil, err
		}
		conditions = built
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := &Engine{
		def:        cfg.Definition,
		sessions:   cfg.Sessions,
		conditions: conditions,
		resolver:   navigation.NewResolver(cfg.Definition, conditions),
		logger:     logger,
	}
	engine.routes = buildRoutes(cfg.Definition)

	patterns, err := compilePatterns(cfg.Definition)
	if err != nil {
		return nil, err
	}
	engine.patterns = patterns

	return engine, nil
}

// Definition returns the journey definition the engine serves.
func (e *Engine) Definition() *definition.Definition {
	return e.def
}

// Resolver exposes the page graph resolver, mainly for hosts that build
// navigation aids (progress indicators, back links) around the engine.
func (e *Engine) Resolver() *navigation.Resolver {
	return e.resolver
}

func compilePatterns(def *definition.Definition) (map[string]*regexp.Regexp, error) {
	patterns := make(map[string]*regexp.Regexp)
	for _, page := range def.Pages {
		for _, component := range page.Components {
			for _, rule := range component.Validations {
				if rule.Kind != definition.ValidationRulePattern {
					continue
				}
				pattern := rule.Params["pattern"]
				if pattern == "" {
					return nil, fmt.Errorf("engine: component %q has a pattern rule without a pattern", component.Name)
				}
				if _, ok := patterns[pattern]; ok {
					continue
				}
				compiled, err := regexp.Compile(pattern)
				if err != nil {
					return nil, fmt.Errorf("engine: component %q pattern: %w", component.Name, err)
				}
				patterns[pattern] = compiled
			}
		}
	}
	return patterns, nil
}
