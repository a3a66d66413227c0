package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tunebridge/tunebridge/internal/domain"
)

func TestConfidence_ISRCShortCircuit(t *testing.T) {
	source := domain.ContentMetadata{
		ContentType: domain.ContentTypeTrack,
		Title:       "Totally Different Display Title",
		Artist:      "Somebody",
		ISRC:        "USRC17607839",
	}
	matched := domain.ContentMetadata{
		ContentType: domain.ContentTypeTrack,
		Title:       "Another Title Entirely",
		Artist:      "Somebody Else",
		ISRC:        "usrc17607839",
	}

	assert.Equal(t, 100, Confidence(source, matched))
}

func TestConfidence_ExactFields(t *testing.T) {
	source := domain.ContentMetadata{
		Title:  "Blinding Lights",
		Artist: "The Weeknd",
		Album:  "After Hours",
	}
	matched := domain.ContentMetadata{
		Title:  "Blinding Lights",
		Artist: "The Weeknd",
		Album:  "After Hours",
	}

	assert.Equal(t, 100, Confidence(source, matched))
}

func TestConfidence_MissingAlbumRenormalizes(t *testing.T) {
	source := domain.ContentMetadata{
		Title:  "Blinding Lights",
		Artist: "The Weeknd",
		Album:  "After Hours",
	}
	matched := domain.ContentMetadata{
		Title:  "Blinding Lights",
		Artist: "The Weeknd",
	}

	// Album is absent on the matched side: excluded from numerator and
	// denominator both, so two perfect fields still give 100.
	assert.Equal(t, 100, Confidence(source, matched))
}

func TestConfidence_FeatureStrippedTier(t *testing.T) {
	source := domain.ContentMetadata{
		Title:  "Lose Yourself (feat. Dido)",
		Artist: "Eminem",
	}
	matched := domain.ContentMetadata{
		Title:  "Lose Yourself",
		Artist: "Eminem",
	}

	// Title 0.95, artist 1.0, equal weights: round(97.5) = 98.
	assert.Equal(t, 98, Confidence(source, matched))
}

func TestConfidence_ContinuousFallbackBounded(t *testing.T) {
	source := domain.ContentMetadata{
		Title:  "Blinding Lights",
		Artist: "The Weeknd",
	}
	matched := domain.ContentMetadata{
		Title:  "Blinding Lights - Single Version Extended",
		Artist: "The Weeknd",
	}

	got := Confidence(source, matched)
	// Title falls to the continuous band [0.30, 0.90]; artist stays 1.0.
	assert.GreaterOrEqual(t, got, 65)
	assert.Less(t, got, 98)
}

func TestConfidence_NoComparableFields(t *testing.T) {
	assert.Equal(t, 0, Confidence(domain.ContentMetadata{}, domain.ContentMetadata{}))
}
