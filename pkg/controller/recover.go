package controller

import (
	"fmt"
	"net/http"
	"sincromei/pkg/logger"

	"go.uber.org/zap"
)

// WithRecover returns a middleware that turns a panicking handler into a
// generic 500 response. Internal details are logged, never sent.
func WithRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := newStatusRecorder(w)
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler { //nolint: errorlint
				panic(p)
			}

			logger.Error(r.Context(), "Unhandled error", zap.String("error", fmt.Sprint(p)))
			if !rec.wroteHeader {
				WriteError(rec, http.StatusInternalServerError, InternalErrorMessage)
			}
		}()

		next.ServeHTTP(rec, r)
	})
}
