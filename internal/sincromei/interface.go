package sincromei

import (
	"context"
	"sincromei/pkg/domain"
)

// Service resolves a CNPJ into the public record returned by the API.
//
//go:generate mockgen -package mocksincromei -source=interface.go -destination=mock/mocksincromei.go *
type Service interface {
	Lookup(ctx context.Context, cnpj string) (*domain.PublicRecord, error)
}
