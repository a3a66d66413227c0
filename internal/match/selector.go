package match

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/tunebridge/tunebridge/internal/domain"
)

const (
	// Boosts applied inside the decent band. An exact-artist candidate may
	// override up to 0.15 of raw text advantage; popularity up to 0.05.
	// Cover versions with accidentally better text similarity lose to the
	// original this way.
	originalArtistBoost = 0.15
	maxPopularityBoost  = 0.05
)

// Searcher is the slice of a catalog adapter the selector needs: one
// search call and a name for logging.
type Searcher interface {
	Search(ctx context.Context, query string, contentType domain.ContentType, limit int) ([]domain.Candidate, error)
	Name() domain.Platform
}

// Selector runs generated queries against a target catalog in strict
// sequence, scores every returned candidate, and picks the best one under
// the target's policy. Queries are ordered most-specific first, so an
// early hit stops further network calls.
type Selector struct {
	logger *log.Logger
	limit  int
}

// NewSelector creates a selector that requests up to limit candidates per
// search query.
func NewSelector(logger *log.Logger, limit int) *Selector {
	if limit < 1 {
		limit = 5
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Selector{logger: logger, limit: limit}
}

// SelectBest iterates queries against the target catalog and returns the
// winning candidate. A failed search call is logged and treated as "no
// results" for that query; only total exhaustion surfaces an error.
func (s *Selector) SelectBest(
	ctx context.Context,
	target Searcher,
	source domain.ContentMetadata,
	queries []string,
	policy Policy,
) (domain.ScoredCandidate, error) {

	var best *domain.ScoredCandidate
	var lastErr error
	sawCandidates := false

	for _, query := range queries {
		candidates, err := target.Search(ctx, query, source.ContentType, s.limit)
		if err != nil {
			s.logger.Warn("search query failed, trying next",
				"platform", target.Name(), "query", query, "err", err)
			lastErr = err
			continue
		}

		var queryBest *domain.ScoredCandidate
		for i := range candidates {
			sawCandidates = true
			scored := s.scoreCandidate(candidates[i], source, policy)
			if queryBest == nil || scored.RawScore > queryBest.RawScore {
				copied := scored
				queryBest = &copied
			}
			if best == nil || scored.BoostedScore > best.BoostedScore {
				copied := scored
				best = &copied
			}
		}

		// High-confidence short-circuit: a single query produced a match
		// good enough that further (costly) searches add nothing.
		if queryBest != nil && queryBest.RawScore > policy.HighConfidence {
			s.logger.Debug("high-confidence match, stopping early",
				"platform", target.Name(), "query", query, "score", queryBest.RawScore)
			return *queryBest, nil
		}
	}

	if best != nil && best.RawScore > policy.AcceptFloor {
		return *best, nil
	}

	if !sawCandidates && lastErr != nil {
		return domain.ScoredCandidate{}, lastErr
	}
	return domain.ScoredCandidate{}, fmt.Errorf("%w on %s", domain.ErrNoMatchFound, target.Name())
}

// scoreCandidate computes the raw similarity plus the boosted score used
// for cross-query ranking. Boosts only apply inside the decent band:
// below it the candidate is too weak to rank, above the high-confidence
// cutoff the raw text evidence speaks for itself.
func (s *Selector) scoreCandidate(candidate domain.Candidate, source domain.ContentMetadata, policy Policy) domain.ScoredCandidate {
	raw := Score(candidate.Metadata, source)
	boosted := raw

	if raw > policy.DecentScore && raw <= policy.HighConfidence {
		if NormalizeArtist(candidate.Metadata.Artist) == NormalizeArtist(source.Artist) {
			boosted += originalArtistBoost
		}
		boosted += float64(candidate.Metadata.Popularity) / 100 * maxPopularityBoost
	}

	return domain.ScoredCandidate{
		Candidate:    candidate,
		RawScore:     raw,
		BoostedScore: boosted,
	}
}
