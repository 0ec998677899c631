// Package requestid assigns a correlation ID to every HTTP request.
//
// Middleware reuses a well-formed X-Request-ID header or generates a UUID,
// stores the ID in the request context and writes it back to the response.
// LogExtractor plugs into the logger package so the ID appears on every
// record written with that context:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LogExtractor))
//	r.Use(requestid.Middleware)
package requestid
