// Package registry defines the abstraction over the third-party CNPJ registry
// service used to look up legal entities.
package registry

import (
	"context"
	"sincromei/pkg/domain"
)

// Client fetches registry records by CNPJ.
//
//go:generate mockgen -package mockregistry -source=interface.go -destination=mock/mockregistry.go *
type Client interface {
	// Fetch retrieves the raw record for a validated 14-digit CNPJ. Any
	// network, status or decoding failure is returned as an error.
	Fetch(ctx context.Context, cnpj string) (domain.Record, error)
}
