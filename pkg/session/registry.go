package session

import (
	"context"
	"errors"
	"time"
)

// Registry issues and resolves sessions on top of a Store.
type Registry struct {
	store  Store
	ttl    time.Duration
	rotate bool
	now    func() time.Time
	token  func() (string, error)
}

// Option configures a Registry.
type Option func(*Registry)

// WithTTL sets the session lifetime. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if ttl >= 0 {
			r.ttl = ttl
		}
	}
}

// WithRotation makes Create revoke every earlier session of the identity.
func WithRotation(enabled bool) Option {
	return func(r *Registry) { r.rotate = enabled }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithTokenGenerator overrides token generation. Intended for tests.
func WithTokenGenerator(gen func() (string, error)) Option {
	return func(r *Registry) {
		if gen != nil {
			r.token = gen
		}
	}
}

// NewRegistry creates a Registry backed by store.
func NewRegistry(store Store, opts ...Option) *Registry {
	r := &Registry{
		store: store,
		now:   time.Now,
		token: GenerateToken,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create issues a fresh session for identity.
func (r *Registry) Create(ctx context.Context, identity string) (*Session, error) {
	token, err := r.token()
	if err != nil {
		return nil, errors.Join(ErrTokenGeneration, err)
	}

	if r.rotate {
		if err := r.store.DeleteByIdentity(ctx, identity); err != nil {
			return nil, err
		}
	}

	session := NewSession(token, identity, r.now(), r.ttl)
	if err := r.store.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Lookup resolves a token to the identity it was issued for.
func (r *Registry) Lookup(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrSessionNotFound
	}
	session, err := r.store.Get(ctx, token)
	if err != nil {
		return "", err
	}
	return session.Identity, nil
}

// Get returns the full session for token.
func (r *Registry) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	return r.store.Get(ctx, token)
}

// Revoke deletes a single session.
func (r *Registry) Revoke(ctx context.Context, token string) error {
	return r.store.Delete(ctx, token)
}

// RevokeAll deletes every session of identity.
func (r *Registry) RevokeAll(ctx context.Context, identity string) error {
	return r.store.DeleteByIdentity(ctx, identity)
}
