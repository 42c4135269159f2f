// Package handler implements the HTTP endpoints of the lookup API and the
// mapping of semantic errors onto fixed client-facing responses.
package handler

import (
	"context"
	"net/http"
	"sincromei/internal/sincromei"
	"sincromei/pkg/cnpj"
	"sincromei/pkg/controller"
	"sincromei/pkg/logger"
	"sincromei/pkg/serrors"

	"go.uber.org/zap"
)

// NotFoundMessage is returned for unknown routes.
const NotFoundMessage = "Not found"

// Deps holds the services the handlers depend on.
type Deps struct {
	Lookup sincromei.Service
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// errorMessage returns the fixed response message for err's kind. Only these
// messages ever reach a client.
func errorMessage(err error) string {
	switch serrors.KindOf(err) {
	case serrors.ErrInvalidArgument:
		return cnpj.InvalidFormatMessage
	case serrors.ErrUpstream:
		return sincromei.FetchFailedMessage
	case serrors.ErrRateLimited:
		return controller.RateLimitedMessage
	case serrors.ErrNotFound:
		return NotFoundMessage
	default:
		return controller.InternalErrorMessage
	}
}

// WriteError responds with the status and message for err. Errors without a
// known kind are logged since nothing upstream has reported them.
func (h Handler) WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	if serrors.KindOf(err) == serrors.ErrInternal {
		logger.Error(ctx, "Unhandled error", zap.String("error", err.Error()))
	}

	controller.WriteError(w, serrors.StatusCode(err), errorMessage(err))
}

// NotFound answers requests that matched no route.
func (h Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteError(r.Context(), w, serrors.KindOnly(serrors.ErrNotFound))
}
