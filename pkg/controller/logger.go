package controller

import (
	"context"
	"net"
	"net/http"
	"sincromei/pkg/logger"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// statusRecorder wraps http.ResponseWriter to capture the final HTTP status
// code written by the downstream handler.
type statusRecorder struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
}

// WriteHeader records the status code and forwards the call to the underlying writer.
func (rec *statusRecorder) WriteHeader(code int) {
	if !rec.wroteHeader {
		rec.status = code
		rec.wroteHeader = true
	}
	rec.ResponseWriter.WriteHeader(code)
}

// Write marks the header as written with the implicit 200 status.
func (rec *statusRecorder) Write(b []byte) (int, error) {
	rec.wroteHeader = true

	return rec.ResponseWriter.Write(b) //nolint: wrapcheck
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}

	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// RemoteIP returns the host part of the connection's remote address.
func RemoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}

// GetClientIP attempts to determine the originating client IP address for the
// given request by checking X-Forwarded-For and X-Real-IP headers before
// falling back to the connection's remote address.
func GetClientIP(r *http.Request) string {
	// check X-Forwarded-For first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// may contain multiple IPs: "client, proxy1, proxy2"
		ips := strings.Split(xff, ",")

		return strings.TrimSpace(ips[0]) // the first is original client
	}

	// then check X-Real-IP
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}

	return RemoteIP(r)
}

// ClientIPFunc returns the client address resolver to use. Forwarding headers
// are only honoured when the server sits behind a trusted proxy.
func ClientIPFunc(trustProxy bool) func(*http.Request) string {
	if trustProxy {
		return GetClientIP
	}

	return RemoteIP
}

// CtxKey is a string-based type used for storing values in request contexts.
// It avoids collisions with other packages' context keys.
type CtxKey string

const (
	// RequestIDKey is the context key under which the current request ID is stored.
	RequestIDKey CtxKey = "RequestID"
)

// WithLogger returns a middleware that injects a request-scoped logger and
// request ID into the context, then logs a structured access log after the
// handler finishes.
func WithLogger(clientIP func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// set request ID
			requestID := r.Header.Get("X-Request-Id")
			if requestID == "" {
				requestID = uuid.New().String()
			}
			ctx = context.WithValue(ctx, RequestIDKey, requestID)
			w.Header().Set("X-Request-Id", requestID)

			// set logger
			ctx = logger.WithFields(ctx, zap.String(string(RequestIDKey), requestID))

			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r.WithContext(ctx))

			logger.Info(ctx, "Access log",
				zap.Int("status_code", rec.status),
				zap.Float64("latency", time.Since(start).Seconds()),
				zap.String("client_ip", clientIP(r)),
				zap.String("user_agent", r.UserAgent()),
				zap.String("url", r.URL.String()),
				zap.String("referer", r.Referer()),
				zap.String("method", r.Method),
				zap.String("proto", r.Proto),
			)
		})
	}
}
