package gateway

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/totpgate/pkg/logger"
)

type connIDKey struct{}

// WithConnID stores the connection ID in ctx.
func WithConnID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, connIDKey{}, id)
}

// ConnIDFromContext returns the ID of the connection that produced ctx.
func ConnIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(connIDKey{}).(string)
	return id, ok && id != ""
}

// LogExtractor adds conn_id to every log record written with a connection context.
func LogExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := ConnIDFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.ConnID(id), true
}
