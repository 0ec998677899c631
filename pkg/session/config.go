package session

import "time"

// Config holds session configuration
type Config struct {
	// TTL bounds the lifetime of a session (0 disables expiry)
	TTL time.Duration `env:"SESSION_TTL" envDefault:"0"`

	// CleanupInterval for expired sessions in the memory store (0 to disable)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1m"`

	// Rotate revokes earlier sessions of an identity whenever a new one is issued
	Rotate bool `env:"SESSION_ROTATE" envDefault:"false"`
}

// NewRegistryFromConfig creates a Registry over store using the env-loaded Config.
func NewRegistryFromConfig(cfg Config, store Store, opts ...Option) *Registry {
	configOpts := []Option{WithTTL(cfg.TTL), WithRotation(cfg.Rotate)}
	return NewRegistry(store, append(configOpts, opts...)...)
}
