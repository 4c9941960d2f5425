// Package middleware provides shared chi middleware for the HTTP layer.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"ownergraph/pkg/requestcontext"
)

// RequestIDHeader is echoed back to callers for correlation.
const RequestIDHeader = "X-Request-Id"

// RequestID assigns each request a UUID (or propagates the caller's) and
// stores it on the context for handlers and services to log.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), id)
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
