// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithSecurityHeaders: Sets hardening response headers.
//   - WithCORS: Allows any origin and answers OPTIONS preflight.
//   - WithBodyLimit: Caps request body size.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - WithRecover: Converts panics into a generic 500 JSON response.
//   - WithRateLimit: Rejects clients that exhausted their request window.
//   - WithMetrics: Records Prometheus request metrics.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers.
//   - WriteJSON: Writes a JSON response with a status code.
package controller
