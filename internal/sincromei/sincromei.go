// Package sincromei implements the CNPJ lookup pipeline: identifier
// validation, the registry call and the reshaping into the public schema.
package sincromei

import (
	"context"
	"sincromei/pkg/cnpj"
	"sincromei/pkg/domain"
	"sincromei/pkg/logger"
	"sincromei/pkg/registry"
	"sincromei/pkg/serrors"
	"time"

	"go.uber.org/zap"
)

// FetchFailedMessage is the client-facing message for registry failures.
const FetchFailedMessage = "Error fetching data"

// Options configure the lookup service.
type Options struct {
	// Now returns the current time; the calendar year drives the yearly status
	// list. Defaults to time.Now.
	Now func() time.Time
}

// service is the concrete implementation of the Service interface.
type service struct {
	client registry.Client
	now    func() time.Time
}

// Ensure service implements Service.
var _ Service = (*service)(nil)

// New returns a Service that fetches records through client.
func New(client registry.Client, opts Options) Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &service{client: client, now: opts.Now}
}

// Lookup validates id, fetches its record and reshapes it. A malformed id
// fails with ErrInvalidArgument before the registry is contacted; any
// registry failure is logged and returned as ErrUpstream.
func (s *service) Lookup(ctx context.Context, id string) (*domain.PublicRecord, error) {
	if err := cnpj.Validate(id); err != nil {
		return nil, err //nolint: wrapcheck
	}

	rec, err := s.client.Fetch(ctx, id)
	if err != nil {
		logger.Error(ctx, "Error fetching data from ReceitaWS",
			zap.String("error", err.Error()),
			zap.String("cnpj", id))

		return nil, serrors.Wrap(serrors.ErrUpstream, err, FetchFailedMessage)
	}

	return Transform(rec, s.now()), nil
}
