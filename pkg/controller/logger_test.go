package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sincromei/pkg/controller"
	"sincromei/pkg/logger"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetClientIP_XForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	require.Equal(t, "1.2.3.4", controller.GetClientIP(req))
}

func TestGetClientIP_XRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "9.8.7.6")
	require.Equal(t, "9.8.7.6", controller.GetClientIP(req))
}

func TestGetClientIP_RemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	require.Equal(t, "10.0.0.1", controller.GetClientIP(req))
}

func TestGetClientIP_InvalidRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "not-an-addr"
	require.Equal(t, "not-an-addr", controller.GetClientIP(req))
}

func TestClientIPFunc(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	req.Header.Set("X-Forwarded-For", "1.2.3.4")

	require.Equal(t, "10.0.0.1", controller.ClientIPFunc(false)(req), "untrusted proxy headers are ignored")
	require.Equal(t, "1.2.3.4", controller.ClientIPFunc(true)(req))
}

func TestWithLogger_SetsRequestIDAndPassesStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	baseCtx := logger.WithLogger(context.Background(), zap.New(core))

	// Handler echoes request ID from context into a header so we can assert it.
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		val := r.Context().Value(controller.RequestIDKey)
		if s, _ := val.(string); s != "" {
			w.Header().Set("X-Echo-Request-Id", s)
		}
		w.WriteHeader(http.StatusCreated)
	})
	mw := controller.WithLogger(controller.RemoteIP)

	// Case 1: request provides X-Request-Id header
	req1 := httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(baseCtx)
	req1.Header.Set("X-Request-Id", "abc-123")
	rec1 := httptest.NewRecorder()
	mw(next).ServeHTTP(rec1, req1)
	res1 := rec1.Result()
	require.Equal(t, http.StatusCreated, res1.StatusCode)
	require.Equal(t, "abc-123", res1.Header.Get("X-Echo-Request-Id"))
	require.Equal(t, "abc-123", res1.Header.Get("X-Request-Id"))

	// Case 2: request without header should still receive a generated ID
	req2 := httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(baseCtx)
	rec2 := httptest.NewRecorder()
	mw(next).ServeHTTP(rec2, req2)
	require.NotEmpty(t, rec2.Result().Header.Get("X-Echo-Request-Id"))

	// one access log entry per request, tagged with the request ID
	entries := logs.FilterMessage("Access log").All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	require.Equal(t, "abc-123", fields[string(controller.RequestIDKey)])
	require.Equal(t, int64(http.StatusCreated), fields["status_code"])
	require.Equal(t, "/health", fields["url"])
	require.Equal(t, http.MethodGet, fields["method"])
}

func TestWithLogger_ImplicitOK(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	baseCtx := logger.WithLogger(context.Background(), zap.New(core))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(baseCtx)
	controller.WithLogger(controller.RemoteIP)(next).ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	require.Equal(t, int64(http.StatusOK), logs.All()[0].ContextMap()["status_code"])
}
