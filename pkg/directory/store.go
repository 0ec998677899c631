package directory

import "context"

// Store persists user records keyed by identity.
type Store interface {
	// Get returns the record for identity or ErrNotFound.
	Get(ctx context.Context, identity string) (Record, error)

	// Put stores the record, replacing any existing one for the same identity.
	Put(ctx context.Context, rec Record) error

	// Delete removes the record. Deleting a missing identity is not an error.
	Delete(ctx context.Context, identity string) error
}
