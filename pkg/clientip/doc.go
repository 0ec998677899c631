// Package clientip resolves the originating client address of HTTP requests.
//
// By default only the TCP peer address is used. Deployments behind a proxy
// can trust specific headers, which are checked in the configured order:
//
//	resolver := clientip.New(clientip.WithTrustedHeaders(
//		clientip.HeaderCFConnectingIP,
//		clientip.HeaderXForwardedFor,
//	))
//	r.Use(resolver.Middleware)
//
// The resolved address is kept in the request context and LogExtractor
// exposes it to the logger, so connection logs carry the client address.
package clientip
