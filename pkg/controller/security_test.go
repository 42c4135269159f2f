package controller_test

import (
	"net/http"
	"net/http/httptest"
	"sincromei/pkg/controller"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithSecurityHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	controller.WithSecurityHeaders(controller.DefaultSecurityHeaders())(next).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	res := rec.Result()
	require.Equal(t, "nosniff", res.Header.Get("X-Content-Type-Options"))
	require.Equal(t, "SAMEORIGIN", res.Header.Get("X-Frame-Options"))
	require.Equal(t, "no-referrer", res.Header.Get("Referrer-Policy"))
	require.Contains(t, res.Header.Get("Content-Security-Policy"), "default-src 'self'")
	require.Contains(t, res.Header.Get("Strict-Transport-Security"), "max-age=31536000")
	require.Equal(t, "0", res.Header.Get("X-XSS-Protection"))
}
