// Package sessionstore defines the persistence boundary for journey
// sessions and ships in-memory and Redis-backed implementations. The engine
// treats a missing session as "start a new journey" and a failed save as a
// fatal request error; it never retries, so Save must be atomic per call.
package sessionstore

import (
	"context"
	"errors"

	"github.com/goliatone/go-formjourney/pkg/state"
)

// ErrNotFound is returned by Load when no session exists under the key.
var ErrNotFound = errors.New("sessionstore: session not found")

// Store persists journey sessions. Concurrent saves for the same key are not
// coordinated here: last write wins, which matches the engine's
// one-session-per-request model.
type Store interface {
	// Load returns the session stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) (*state.Session, error)

	// Save writes the session under key, replacing any previous value.
	Save(ctx context.Context, key string, session *state.Session) error

	// Delete removes the session under key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error
}
