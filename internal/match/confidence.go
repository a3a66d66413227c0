package match

import (
	"math"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/tunebridge/tunebridge/internal/domain"
)

const (
	confidenceTitleWeight  = 0.40
	confidenceArtistWeight = 0.40
	confidenceAlbumWeight  = 0.20

	// The continuous fallback stays strictly inside the tier boundaries:
	// below the 0.95 feature-stripped tier, never below 0.30.
	similarityCeil  = 0.90
	similarityFloor = 0.30
)

// Confidence produces the user-facing 0-100 score comparing the source and
// the matched metadata. A shared ISRC is treated as proof of identity and
// returns 100 regardless of how the display text diverges. Otherwise the
// score is a weighted blend of per-field similarities, renormalized over
// the fields present on both sides so missing data does not dilute it.
func Confidence(source, matched domain.ContentMetadata) int {
	if source.ISRC != "" && matched.ISRC != "" && strings.EqualFold(source.ISRC, matched.ISRC) {
		return 100
	}

	var total, weights float64

	if source.Title != "" && matched.Title != "" {
		total += confidenceTitleWeight * fieldSimilarity(source.Title, matched.Title)
		weights += confidenceTitleWeight
	}
	if source.Artist != "" && matched.Artist != "" {
		total += confidenceArtistWeight * fieldSimilarity(source.Artist, matched.Artist)
		weights += confidenceArtistWeight
	}
	if source.Album != "" && matched.Album != "" {
		total += confidenceAlbumWeight * fieldSimilarity(source.Album, matched.Album)
		weights += confidenceAlbumWeight
	}

	if weights == 0 {
		return 0
	}

	return int(math.Round(total / weights * 100))
}

// fieldSimilarity grades one field pair: exact cleaned equality is 1.0,
// equality after stripping featuring credits is 0.95, anything else falls
// back to Jaro-Winkler clamped into [0.30, 0.90].
func fieldSimilarity(a, b string) float64 {
	cleanA := Clean(a)
	cleanB := Clean(b)
	if cleanA == cleanB {
		return 1.0
	}
	if Clean(RemoveFeaturing(a)) == Clean(RemoveFeaturing(b)) {
		return 0.95
	}

	sim, err := edlib.StringsSimilarity(cleanA, cleanB, edlib.JaroWinkler)
	if err != nil {
		return similarityFloor
	}
	return math.Min(similarityCeil, math.Max(similarityFloor, float64(sim)))
}
