package session

import "context"

// Store persists sessions keyed by token.
//
// Get reports ErrSessionNotFound for unknown tokens and ErrSessionExpired for
// tokens past their expiry. Deletes are idempotent.
type Store interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
	// DeleteByIdentity revokes every session of identity.
	DeleteByIdentity(ctx context.Context, identity string) error
}
