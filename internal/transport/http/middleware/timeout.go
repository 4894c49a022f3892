package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout caps every request context so a hung store or downstream call
// fails the request instead of holding the connection open. Handlers map
// the expired context to a retryable error response.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
