// Package requesttime pins a single "now" and request ID for the lifetime of a
// request, so every date computed while handling it agrees on what "today" is.
package requesttime

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"staywatch/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request and copies
// the chi request ID into requestcontext. Mount it after chimw.RequestID.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWithClock(time.Now)(next)
}

// MiddlewareWithClock is Middleware with an injectable clock.
func MiddlewareWithClock(clock func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), clock())
			if reqID := chimw.GetReqID(ctx); reqID != "" {
				ctx = requestcontext.WithRequestID(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
