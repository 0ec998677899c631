package gateway

import "time"

// Config holds websocket gateway settings.
type Config struct {
	OutboundBuffer int           `env:"WS_OUTBOUND_BUFFER" envDefault:"16"`         // queued outbound events per connection before it is dropped
	ReadLimit      int64         `env:"WS_READ_LIMIT" envDefault:"65536"`           // maximum inbound message size in bytes
	WriteTimeout   time.Duration `env:"WS_WRITE_TIMEOUT" envDefault:"10s"`          // per-message write deadline
	AllowedOrigins []string      `env:"WS_ALLOWED_ORIGINS" envSeparator:","`        // origin patterns accepted besides same-origin
	InsecureOrigin bool          `env:"WS_INSECURE_SKIP_ORIGIN" envDefault:"false"` // accept any origin; development only
}

// NewFromConfig creates a Server from the provided Config.
// Only non-zero values from the config are applied.
func NewFromConfig(cfg Config, dispatcher Dispatcher, opts ...Option) *Server {
	configOpts := make([]Option, 0, 5)

	if cfg.OutboundBuffer > 0 {
		configOpts = append(configOpts, WithOutboundBuffer(cfg.OutboundBuffer))
	}
	if cfg.ReadLimit > 0 {
		configOpts = append(configOpts, WithReadLimit(cfg.ReadLimit))
	}
	if cfg.WriteTimeout > 0 {
		configOpts = append(configOpts, WithWriteTimeout(cfg.WriteTimeout))
	}
	if len(cfg.AllowedOrigins) > 0 {
		configOpts = append(configOpts, WithOriginPatterns(cfg.AllowedOrigins...))
	}
	if cfg.InsecureOrigin {
		configOpts = append(configOpts, WithInsecureSkipOriginCheck())
	}

	return New(dispatcher, append(configOpts, opts...)...)
}
