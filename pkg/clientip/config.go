package clientip

// Config lists the proxy headers trusted for client address resolution.
type Config struct {
	TrustedHeaders []string `env:"TRUSTED_PROXY_HEADERS" envSeparator:","`
}

// NewFromConfig returns a Resolver trusting the configured headers.
func NewFromConfig(cfg Config) *Resolver {
	return New(WithTrustedHeaders(cfg.TrustedHeaders...))
}
