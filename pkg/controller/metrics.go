package controller

import (
	"net/http"
	"sincromei/pkg/metrics"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// WithMetrics returns a middleware that records request count and latency,
// labelled with the matched chi route pattern.
func WithMetrics(m *metrics.HTTP) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.Requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
			m.Duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}
