// Package session is the session registry: it maps opaque bearer tokens to the
// identity that authenticated with them.
//
// Tokens carry 256 bits from crypto/rand and are encoded with URL-safe base64
// (see GenerateToken). Sessions never expire unless a TTL is configured.
//
// Storage is pluggable through Store. MemoryStore keeps sessions in process
// and can sweep expired entries periodically; RedisStore relies on key TTLs
// and keeps a per-identity index so RevokeAll stays cheap.
//
//	reg := session.NewRegistry(session.NewMemoryStore(time.Minute), session.WithTTL(24*time.Hour))
//	s, err := reg.Create(ctx, "alice")
//	identity, err := reg.Lookup(ctx, s.Token)
//
// Registry.Middleware and Registry.RequireAuth resolve "Authorization: Bearer"
// headers for HTTP handlers; IdentityFromContext reads the result.
package session
