package ports

import (
	"context"

	"github.com/tunebridge/tunebridge/internal/domain"
	"github.com/tunebridge/tunebridge/internal/match"
)

// CatalogProvider defines the contract every streaming-platform adapter
// must implement. This is the primary driven port of the hexagonal
// architecture: the conversion pipeline only ever talks to catalogs
// through it.
type CatalogProvider interface {
	// Lookup returns canonical metadata for a platform-native identifier.
	// Returns domain.ErrMetadataNotFound when the catalog has no record.
	Lookup(ctx context.Context, id string, region string, contentType domain.ContentType) (domain.ContentMetadata, error)

	// Search runs one catalog search query and returns scored-ready
	// candidates in the catalog's own ranking order.
	Search(ctx context.Context, query string, contentType domain.ContentType, limit int) ([]domain.Candidate, error)

	// Policy returns the selection thresholds calibrated for this catalog
	// as a search target.
	Policy() match.Policy

	// Name returns the platform this adapter serves.
	Name() domain.Platform
}

// ConversionService defines the driving port for the core use case: turn a
// link on one platform into the equivalent link on the other.
type ConversionService interface {
	Convert(ctx context.Context, link string) (*domain.ConversionResult, error)
}
