package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/platform/metrics"
)

// Metrics records per-route counters and latency. The chi route pattern is
// used instead of the raw path so ids do not explode the label space.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			m.RecordRequest(r.Method, route, recorder.status, time.Since(start))
		})
	}
}
