package formjourney

import (
	"github.com/goliatone/go-formjourney/pkg/definition"
	"github.com/goliatone/go-formjourney/pkg/engine"
	"github.com/goliatone/go-formjourney/pkg/sessionstore"
)

// Definition aliases the journey definition model for convenience.
type Definition = definition.Definition

// Config aliases the engine configuration.
type Config = engine.Config

// Engine aliases the journey engine.
type Engine = engine.Engine

// Request aliases one dispatchable request.
type Request = engine.Request

// Outcome aliases the dispatch result variant.
type Outcome = engine.Outcome

// Parse decodes and validates a journey definition from YAML or JSON.
func Parse(raw []byte) (*Definition, error) {
	return definition.Parse(raw)
}

// New builds an engine from the configuration.
func New(cfg Config) (*Engine, error) {
	return engine.New(cfg)
}

// NewMemoryStore returns an in-memory session store, the simplest backing
// for tests and single-instance hosts.
func NewMemoryStore() *sessionstore.Memory {
	return sessionstore.NewMemory()
}
