package controller

import (
	"net/http"
	"sincromei/pkg/ratelimit"
	"strconv"
)

// RateLimitedMessage is returned with 429 responses.
const RateLimitedMessage = "Too many requests, please try again later."

// WithRateLimit returns a middleware that counts every request against the
// window of its client address and rejects it with 429 once the window is
// exhausted.
func WithRateLimit(l *ratelimit.Limiter, clientIP func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := l.Allow(clientIP(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(res.RetryAfterSeconds()))
				WriteError(w, http.StatusTooManyRequests, RateLimitedMessage)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
