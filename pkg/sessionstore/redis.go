package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-formjourney/pkg/state"
)

const defaultRedisPrefix = "formjourney:session:"

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithPrefix overrides the key prefix sessions are stored under.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithTTL expires sessions after the given duration. Zero keeps sessions
// until deleted.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// Redis stores sessions as JSON values in Redis. The client is owned by the
// caller; the store never closes it.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis wraps an existing client. Options configure key prefix and TTL.
func NewRedis(client *redis.Client, opts ...RedisOption) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("sessionstore: redis client is required")
	}
	store := &Redis{client: client, prefix: defaultRedisPrefix}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Load fetches and decodes the session stored under key.
func (r *Redis) Load(ctx context.Context, key string) (*state.Session, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: key %q", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("sessionstore: redis get %q: %w", key, err)
	}

	var session state.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("sessionstore: decode session %q: %w", key, err)
	}
	if session.Answers == nil {
		session.Answers = make(state.Answers)
	}
	return &session, nil
}

// Save encodes the session and writes it in a single SET, refreshing the TTL
// when one is configured.
func (r *Redis) Save(ctx context.Context, key string, session *state.Session) error {
	if session == nil {
		return fmt.Errorf("sessionstore: session is required")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("sessionstore: encode session %q: %w", key, err)
	}
	if err := r.client.Set(ctx, r.prefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("sessionstore: redis set %q: %w", key, err)
	}
	return nil
}

// Delete removes the session under key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("sessionstore: redis del %q: %w", key, err)
	}
	return nil
}
