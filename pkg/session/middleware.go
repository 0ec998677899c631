package session

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// TokenFromRequest extracts a bearer token from the Authorization header.
func TokenFromRequest(r *http.Request) (string, bool) {
	value := r.Header.Get("Authorization")
	if len(value) <= len(bearerPrefix) || !strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	return strings.TrimSpace(value[len(bearerPrefix):]), true
}

// Middleware attaches the session named by the bearer token, if any, to the request context.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		token, ok := TokenFromRequest(req)
		if !ok {
			next.ServeHTTP(w, req)
			return
		}

		session, err := r.Get(req.Context(), token)
		if err != nil {
			next.ServeHTTP(w, req)
			return
		}

		next.ServeHTTP(w, req.WithContext(WithSession(req.Context(), session)))
	})
}

// RequireAuth rejects requests without a valid session with 401.
func (r *Registry) RequireAuth(next http.Handler) http.Handler {
	return r.Middleware(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if _, ok := FromContext(req.Context()); !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, req)
	}))
}
