package middleware

import (
	"net/http"
	"time"

	"github.com/dukerupert/flexidiet/internal/metrics"
)

// Metrics records request counts and latency by route pattern. It must wrap
// the mux directly so the matched pattern is visible after ServeHTTP.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.ObserveRequest(r.Method, route, rec.status, time.Since(start))
		})
	}
}
