// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// New builds a *slog.Logger from Option values. The concrete handler is either
// slog.NewTextHandler or slog.NewJSONHandler, wrapped by ContextHandler
// which runs every registered ContextExtractor on each record. This is how
// connection and request identifiers reach log lines without being threaded
// through every call.
//
// NewFromConfig reads the same settings from Config, which is loaded from the
// environment (APP_ENV, APP_NAME, LOG_LEVEL, LOG_FORMAT).
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(logger.EnvProduction, "totpgate"),
//	    logger.WithContextValue("conn_id", connIDKey{}),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "user registered",
//	    logger.Identity("alice"),
//	    logger.Event("register"),
//	)
//
// # Attributes
//
// Helpers in attr.go (Identity, ConnID, Event, State, Error, ...) keep
// attribute keys consistent across packages. Error and Errors return an empty
// Attr for nil errors, so they can be passed unconditionally.
package logger
