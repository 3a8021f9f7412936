package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"staywatch/pkg/requestcontext"
)

func TestMiddlewarePinsTimeAndRequestID(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	var gotTime time.Time
	var gotID string
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(MiddlewareWithClock(func() time.Time { return fixed }))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gotTime = requestcontext.Now(r.Context())
		gotID = requestcontext.RequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "req-123")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, fixed, gotTime)
	assert.Equal(t, "req-123", gotID)
}
