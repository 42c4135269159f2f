// Package api configures and exposes the public HTTP server of the CNPJ
// lookup service, its middleware stages and the separate ops listener.
package api

import (
	_ "embed"
	"errors"
	"net/http"
	"sincromei/internal/api/handler"
	"sincromei/internal/config"
	"sincromei/pkg/controller"
	"sincromei/pkg/metrics"
	"sincromei/pkg/ratelimit"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
)

// v1Spec contains the embedded OpenAPI description of the public routes.
//
//go:embed specs/v1.yaml
var v1Spec []byte

const (
	// SpecPath serves the OpenAPI document on the ops listener.
	SpecPath = "/specs/v1.yaml"
	// DocsPath serves the Swagger UI on the ops listener.
	DocsPath = "/docs/"
)

// Options holds configuration for the HTTP servers.
// It is typically created from a config.Config via NewOptions.
// Zero durations fall back to the net/http defaults.
type Options struct {
	// Addr is the TCP address the public server listens on, e.g. ":8001".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64
	// TrustProxy makes client addresses come from forwarding headers.
	TrustProxy bool

	// OpsAddr is the listen address of the metrics and profiling server.
	OpsAddr string
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.Addr(),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		TrustProxy:        cfg.HTTP.TrustProxy,
		OpsAddr:           cfg.Ops.Addr,
		MetricsPath:       cfg.Ops.MetricsPath,
	}
}

type Deps struct {
	handler.Deps

	Limiter *ratelimit.Limiter
	Metrics *metrics.HTTP
}

// Stages returns the request processing stages in the order they run. The
// rate limit stage comes before routing, so requests carrying a malformed
// CNPJ and requests to unknown paths still consume quota. HEAD requests are
// served by the GET routes.
func Stages(deps Deps, opts Options) []func(http.Handler) http.Handler {
	clientIP := controller.ClientIPFunc(opts.TrustProxy)

	stages := []func(http.Handler) http.Handler{
		controller.WithSecurityHeaders(controller.DefaultSecurityHeaders()),
		controller.WithCORS,
		controller.WithBodyLimit(opts.MaxBodyBytes),
		controller.WithLogger(clientIP),
		controller.WithRecover,
	}
	if deps.Metrics != nil {
		stages = append(stages, controller.WithMetrics(deps.Metrics))
	}

	return append(stages,
		controller.WithRateLimit(deps.Limiter, clientIP),
		middleware.GetHead,
	)
}

// NewRouter builds the public routes behind the middleware stages.
func NewRouter(deps Deps, opts Options) (http.Handler, error) {
	if deps.Lookup == nil {
		return nil, errors.New("lookup service is required")
	}
	if deps.Limiter == nil {
		return nil, errors.New("rate limiter is required")
	}

	h := handler.New(deps.Deps)

	r := chi.NewRouter()
	r.Use(Stages(deps, opts)...)

	r.Get("/sincromei/{"+handler.CNPJParam+"}", h.GetCNPJ)
	r.Get("/health", h.Health)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	return r, nil
}

// NewServer wires up and returns the public *http.Server.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	router, err := NewRouter(deps, opts)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}

// NewOpsServer returns the server exposing Prometheus metrics gathered from
// gatherer, the API docs and the pprof endpoints. It returns nil when OpsAddr
// is empty.
func NewOpsServer(gatherer prometheus.Gatherer, opts Options) *http.Server {
	if opts.OpsAddr == "" {
		return nil
	}

	mux := http.NewServeMux()

	// prometheus metrics
	mux.Handle(opts.MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// v1 specs file
	mux.HandleFunc(SpecPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// swagger playground
	mux.Handle(DocsPath, v5emb.New("Sincromei", SpecPath, DocsPath))

	// pprof
	mux.Handle(controller.PprofPrefix, controller.PprofMux())

	return &http.Server{
		Addr:              opts.OpsAddr,
		Handler:           mux,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		IdleTimeout:       opts.IdleTimeout,
	}
}
