package controller

import "net/http"

// PayloadTooLargeMessage is returned when a request body exceeds the limit.
const PayloadTooLargeMessage = "Payload too large"

// WithBodyLimit returns a middleware that rejects bodies declared larger than
// limit bytes and caps the reader for bodies of unknown length.
func WithBodyLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 {
				next.ServeHTTP(w, r)

				return
			}
			if r.ContentLength > limit {
				WriteError(w, http.StatusRequestEntityTooLarge, PayloadTooLargeMessage)

				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
