// Package httpserver wraps net/http with graceful shutdown, functional options
// and liveness/readiness handlers.
//
// Run blocks until its context is cancelled, then calls http.Server.Shutdown
// bounded by the shutdown timeout. Connections hijacked for websockets are not
// tracked by http.Server, so their owner registers a WithOnShutdown hook.
//
// Only ReadHeaderTimeout is enabled by default. Read and write timeouts would
// also cut off upgraded connections and are left to the caller.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log, 2*time.Second, redis.Healthcheck(client)))
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithOnShutdown(gw.Close),
//	)
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// # Errors
//
// Run wraps listen and serve errors with ErrStart and Shutdown wraps shutdown
// errors with ErrShutdown. Use errors.Is to distinguish them.
package httpserver
