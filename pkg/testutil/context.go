package testutil

import (
	"net/http"
	"time"

	"staywatch/pkg/requestcontext"
)

// WithRequestTime pins the request clock, as the request-time middleware would.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithRequestID sets the correlation ID the handlers log with.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
