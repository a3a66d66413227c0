package match

import (
	"strings"

	"github.com/tunebridge/tunebridge/internal/domain"
)

const (
	titleWeight    = 0.40
	artistWeight   = 0.40
	durationBonus  = 0.10
	albumBonus     = 0.10
	nameWeight     = 0.80
	genreBonus     = 0.20
	tributePenalty = 0.1

	// Two seconds covers platform rounding differences without grouping
	// genuinely different cuts (live, extended) together.
	durationToleranceMillis = 2000
)

// Score computes the raw similarity between a search candidate and the
// source metadata. The result is a signal, not a probability: bonuses can
// push it slightly past 1.0 before policy thresholds are applied.
func Score(candidate, source domain.ContentMetadata) float64 {
	var score float64
	if source.ContentType == domain.ContentTypeArtist {
		score = artistScore(candidate, source)
	} else {
		score = trackAlbumScore(candidate, source)
	}

	// A tribute or cover act can have near-perfect text similarity; the
	// penalty keeps it below any acceptance floor unless nothing else
	// exists at all.
	if IsTributeBand(candidate.Artist, source.Artist) {
		score *= tributePenalty
	}

	return score
}

func trackAlbumScore(candidate, source domain.ContentMetadata) float64 {
	score := titleWeight * textTier(candidate.Title, source.Title)
	score += artistWeight * artistTier(candidate.Artist, source.Artist)

	if source.DurationMillis > 0 && candidate.DurationMillis > 0 {
		diff := source.DurationMillis - candidate.DurationMillis
		if diff < 0 {
			diff = -diff
		}
		if diff <= durationToleranceMillis {
			score += durationBonus
		}
	}

	if source.Album != "" && candidate.Album != "" && Clean(source.Album) == Clean(candidate.Album) {
		score += albumBonus
	}

	return score
}

func artistScore(candidate, source domain.ContentMetadata) float64 {
	candidateName := Clean(firstNonEmpty(candidate.Artist, candidate.Title))
	sourceName := Clean(firstNonEmpty(source.Artist, source.Title))

	var score float64
	switch {
	case sourceName != "" && candidateName == sourceName:
		score = nameWeight
	case sourceName != "" && candidateName != "" &&
		(strings.Contains(candidateName, sourceName) || strings.Contains(sourceName, candidateName)):
		score = nameWeight * 0.5
	}

	score += genreBonus * genreOverlap(source.Genres, candidate.Genres)
	return score
}

// textTier grades a title pair: 1.0 for clean equality, 0.75 when equal
// after featuring credits are stripped, 0.5 for containment, else 0.
func textTier(candidate, source string) float64 {
	candClean := Clean(candidate)
	srcClean := Clean(source)
	if srcClean == "" || candClean == "" {
		return 0
	}
	if candClean == srcClean {
		return 1.0
	}
	if Clean(RemoveFeaturing(candidate)) == Clean(RemoveFeaturing(source)) {
		return 0.75
	}
	if strings.Contains(candClean, srcClean) || strings.Contains(srcClean, candClean) {
		return 0.5
	}
	return 0
}

// artistTier applies the same grading over order-normalized artist credits,
// so "A & B" matches "B, A" at full weight.
func artistTier(candidate, source string) float64 {
	candNorm := NormalizeArtist(candidate)
	srcNorm := NormalizeArtist(source)
	if srcNorm == "" || candNorm == "" {
		return 0
	}
	if candNorm == srcNorm {
		return 1.0
	}
	if strings.Contains(candNorm, srcNorm) || strings.Contains(srcNorm, candNorm) {
		return 0.5
	}
	return 0
}

// genreOverlap returns the fraction of source genres present on the
// candidate, comparing cleaned names.
func genreOverlap(source, candidate []string) float64 {
	if len(source) == 0 || len(candidate) == 0 {
		return 0
	}

	candidateSet := make(map[string]struct{}, len(candidate))
	for _, g := range candidate {
		if cleaned := Clean(g); cleaned != "" {
			candidateSet[cleaned] = struct{}{}
		}
	}

	shared := 0
	for _, g := range source {
		if _, ok := candidateSet[Clean(g)]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(source))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
