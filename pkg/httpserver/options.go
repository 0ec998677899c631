package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the HTTP server.
type Option func(*config)

// WithAddr sets the listen address, e.g. ":9000" or "127.0.0.1:0".
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: empty address")
	}
	return func(c *config) { c.addr = addr }
}

func WithReadHeaderTimeout(d time.Duration) Option {
	return withDuration("read header timeout", d, func(c *config) { c.readHeaderTimeout = d })
}

func WithReadTimeout(d time.Duration) Option {
	return withDuration("read timeout", d, func(c *config) { c.readTimeout = d })
}

func WithWriteTimeout(d time.Duration) Option {
	return withDuration("write timeout", d, func(c *config) { c.writeTimeout = d })
}

func WithIdleTimeout(d time.Duration) Option {
	return withDuration("idle timeout", d, func(c *config) { c.idleTimeout = d })
}

// WithShutdownTimeout bounds how long Shutdown waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return withDuration("shutdown timeout", d, func(c *config) { c.shutdownTimeout = d })
}

// WithLogger sets the logger for lifecycle events and net/http errors. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOnShutdown registers f with http.Server.RegisterOnShutdown. Use it to
// close hijacked connections such as websockets, which Shutdown does not track.
func WithOnShutdown(f func()) Option {
	if f == nil {
		panic("httpserver: nil shutdown hook")
	}
	return func(c *config) { c.onShutdown = append(c.onShutdown, f) }
}

func withDuration(name string, d time.Duration, apply func(*config)) Option {
	if d <= 0 {
		panic("httpserver: " + name + " must be positive")
	}
	return apply
}
