package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/tunebridge/tunebridge/internal/adapters"
	"github.com/tunebridge/tunebridge/internal/domain"
	"github.com/tunebridge/tunebridge/internal/link"
	"github.com/tunebridge/tunebridge/internal/match"
)

// Service implements ports.ConversionService. One conversion is one
// sequential pipeline: parse the link, fetch source metadata, generate
// queries, search the target platform query by query, score and select,
// then compute the user-facing confidence. Queries run strictly in order
// because the early ones are higher precision and a hit stops further
// network calls.
type Service struct {
	registry    *adapters.ProviderRegistry
	selector    *match.Selector
	logger      *log.Logger
	searchLimit int
}

// NewService creates a conversion service over the given provider
// registry. searchLimit bounds how many candidates each search query may
// return.
func NewService(registry *adapters.ProviderRegistry, logger *log.Logger, searchLimit int) *Service {
	if logger == nil {
		logger = log.Default()
	}
	if searchLimit < 1 {
		searchLimit = 5
	}
	return &Service{
		registry:    registry,
		selector:    match.NewSelector(logger, searchLimit),
		logger:      logger,
		searchLimit: searchLimit,
	}
}

// Convert turns a link on one platform into the equivalent link on the
// other, with a 0-100 confidence score for the match.
func (s *Service) Convert(ctx context.Context, rawLink string) (*domain.ConversionResult, error) {
	parsed, err := link.Parse(rawLink)
	if err != nil {
		return nil, err
	}

	source, err := s.registry.Get(parsed.Platform)
	if err != nil {
		return nil, fmt.Errorf("source platform error: %w", err)
	}
	target, err := s.registry.Get(parsed.Platform.Other())
	if err != nil {
		return nil, fmt.Errorf("target platform error: %w", err)
	}

	s.logger.Info("fetching source metadata",
		"platform", parsed.Platform, "type", parsed.ContentType, "id", parsed.ID, "region", parsed.Region)

	sourceMeta, err := source.Lookup(ctx, parsed.ID, parsed.Region, parsed.ContentType)
	if err != nil {
		return nil, err
	}

	queries := match.GenerateQueries(sourceMeta)
	s.logger.Debug("generated search queries",
		"count", len(queries), "title", sourceMeta.Title, "artist", sourceMeta.Artist)

	best, err := s.selector.SelectBest(ctx, target, sourceMeta, queries, target.Policy())
	if err != nil {
		return nil, err
	}

	confidence := match.Confidence(sourceMeta, best.Candidate.Metadata)
	s.logger.Info("conversion complete",
		"matched_url", best.Candidate.URL, "score", best.RawScore, "confidence", confidence)

	return &domain.ConversionResult{
		Direction:       directionFrom(parsed.Platform),
		SourceMetadata:  sourceMeta,
		MatchedURL:      best.Candidate.URL,
		MatchedMetadata: best.Candidate.Metadata,
		Confidence:      confidence,
	}, nil
}

func directionFrom(source domain.Platform) domain.Direction {
	if source == domain.PlatformAppleMusic {
		return domain.DirectionAppleToSpotify
	}
	return domain.DirectionSpotifyToApple
}
