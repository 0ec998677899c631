package gateway

import (
	"io"
	"log/slog"
	"time"
)

// Option configures the gateway server.
type Option func(*config)

type config struct {
	outboundBuffer int
	readLimit      int64
	writeTimeout   time.Duration
	originPatterns []string
	skipOrigin     bool
	logger         *slog.Logger
}

func defaultConfig() *config {
	return &config{
		outboundBuffer: 16,
		readLimit:      64 << 10,
		writeTimeout:   10 * time.Second,
	}
}

// WithOutboundBuffer sets how many outbound events may queue per connection.
func WithOutboundBuffer(n int) Option {
	if n <= 0 {
		panic("WithOutboundBuffer: size must be > 0")
	}
	return func(c *config) { c.outboundBuffer = n }
}

// WithReadLimit sets the maximum size of an inbound message.
func WithReadLimit(n int64) Option {
	if n <= 0 {
		panic("WithReadLimit: limit must be > 0")
	}
	return func(c *config) { c.readLimit = n }
}

// WithWriteTimeout bounds every outbound write.
func WithWriteTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("WithWriteTimeout: duration must be > 0")
	}
	return func(c *config) { c.writeTimeout = d }
}

// WithOriginPatterns accepts cross-origin handshakes from hosts matching the patterns.
func WithOriginPatterns(patterns ...string) Option {
	return func(c *config) { c.originPatterns = append(c.originPatterns, patterns...) }
}

// WithInsecureSkipOriginCheck disables origin verification.
func WithInsecureSkipOriginCheck() Option {
	return func(c *config) { c.skipOrigin = true }
}

// WithLogger supplies an external slog.Logger instance.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
