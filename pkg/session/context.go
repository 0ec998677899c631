package session

import "context"

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session attached by Middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s, s != nil
}

// IdentityFromContext returns the identity owning the session in ctx.
func IdentityFromContext(ctx context.Context) (string, bool) {
	if s, ok := FromContext(ctx); ok {
		return s.Identity, true
	}
	return "", false
}
