package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunebridge/tunebridge/internal/adapters"
	"github.com/tunebridge/tunebridge/internal/domain"
	"github.com/tunebridge/tunebridge/internal/match"
)

// -- Mock catalog provider ---------------------------------------------------

type mockProvider struct {
	name        domain.Platform
	policy      match.Policy
	lookup      map[string]domain.ContentMetadata
	lookupErr   error
	searchHits  []domain.Candidate
	searchErr   error
	searchCalls int
}

func (m *mockProvider) Name() domain.Platform { return m.name }

func (m *mockProvider) Policy() match.Policy { return m.policy }

func (m *mockProvider) Lookup(_ context.Context, id string, _ string, _ domain.ContentType) (domain.ContentMetadata, error) {
	if m.lookupErr != nil {
		return domain.ContentMetadata{}, m.lookupErr
	}
	meta, ok := m.lookup[id]
	if !ok {
		return domain.ContentMetadata{}, domain.ErrMetadataNotFound
	}
	return meta, nil
}

func (m *mockProvider) Search(_ context.Context, _ string, _ domain.ContentType, _ int) ([]domain.Candidate, error) {
	m.searchCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchHits, nil
}

func newTestRegistry(apple, spotify *mockProvider) *adapters.ProviderRegistry {
	registry := adapters.NewProviderRegistry()
	registry.Register(apple)
	registry.Register(spotify)
	return registry
}

// -- Tests -------------------------------------------------------------------

func TestConvert_AppleToSpotify_PrefersOriginalOverPopularTribute(t *testing.T) {
	sourceMeta := domain.ContentMetadata{
		ContentType: domain.ContentTypeTrack,
		Title:       "Blinding Lights",
		Artist:      "The Weeknd",
		Album:       "After Hours",
	}

	apple := &mockProvider{
		name:   domain.PlatformAppleMusic,
		policy: match.DefaultPolicy,
		lookup: map[string]domain.ContentMetadata{"1499378615": sourceMeta},
	}
	spotify := &mockProvider{
		name:   domain.PlatformSpotify,
		policy: match.DefaultPolicy,
		searchHits: []domain.Candidate{
			{
				Metadata: domain.ContentMetadata{
					ContentType: domain.ContentTypeTrack,
					Title:       "Blinding Lights",
					Artist:      "The Weeknd Tribute",
					Popularity:  99,
				},
				URL: "https://open.spotify.com/track/tribute",
			},
			{
				Metadata: domain.ContentMetadata{
					ContentType: domain.ContentTypeTrack,
					Title:       "Blinding Lights",
					Artist:      "The Weeknd",
					Album:       "After Hours",
					Popularity:  40,
				},
				URL: "https://open.spotify.com/track/original",
			},
		},
	}

	svc := NewService(newTestRegistry(apple, spotify), nil, 5)
	result, err := svc.Convert(context.Background(), "https://music.apple.com/us/song/blinding-lights/1499378615")

	require.NoError(t, err)
	assert.Equal(t, domain.DirectionAppleToSpotify, result.Direction)
	assert.Equal(t, "https://open.spotify.com/track/original", result.MatchedURL)
	assert.Equal(t, "The Weeknd", result.MatchedMetadata.Artist)
	assert.Equal(t, 100, result.Confidence)
}

func TestConvert_SpotifyToApple(t *testing.T) {
	sourceMeta := domain.ContentMetadata{
		ContentType: domain.ContentTypeTrack,
		Title:       "Get Lucky",
		Artist:      "Daft Punk",
		ISRC:        "USQX91300108",
	}

	spotify := &mockProvider{
		name:   domain.PlatformSpotify,
		policy: match.DefaultPolicy,
		lookup: map[string]domain.ContentMetadata{"69kOkLUCkxIZYexIgSG8rq": sourceMeta},
	}
	apple := &mockProvider{
		name:   domain.PlatformAppleMusic,
		policy: match.Policy{HighConfidence: 0.7, AcceptFloor: 0.3, DecentScore: 0.5},
		searchHits: []domain.Candidate{
			{
				Metadata: domain.ContentMetadata{
					ContentType: domain.ContentTypeTrack,
					Title:       "Get Lucky",
					Artist:      "Daft Punk",
				},
				URL: "https://music.apple.com/us/album/get-lucky/617154241?i=617154365",
			},
		},
	}

	svc := NewService(newTestRegistry(apple, spotify), nil, 5)
	result, err := svc.Convert(context.Background(), "https://open.spotify.com/track/69kOkLUCkxIZYexIgSG8rq")

	require.NoError(t, err)
	assert.Equal(t, domain.DirectionSpotifyToApple, result.Direction)
	assert.Equal(t, "https://music.apple.com/us/album/get-lucky/617154241?i=617154365", result.MatchedURL)
	// First query (isrc:...) already scores past the high-confidence
	// cutoff on exact title+artist, so only one search runs.
	assert.Equal(t, 1, apple.searchCalls)
}

func TestConvert_InvalidLink(t *testing.T) {
	svc := NewService(newTestRegistry(
		&mockProvider{name: domain.PlatformAppleMusic, policy: match.DefaultPolicy},
		&mockProvider{name: domain.PlatformSpotify, policy: match.DefaultPolicy},
	), nil, 5)

	_, err := svc.Convert(context.Background(), "https://example.com/nope")
	assert.ErrorIs(t, err, domain.ErrInvalidLink)
}

func TestConvert_MetadataNotFound(t *testing.T) {
	apple := &mockProvider{name: domain.PlatformAppleMusic, policy: match.DefaultPolicy}
	spotify := &mockProvider{name: domain.PlatformSpotify, policy: match.DefaultPolicy}

	svc := NewService(newTestRegistry(apple, spotify), nil, 5)
	_, err := svc.Convert(context.Background(), "https://music.apple.com/us/song/gone/12345")

	assert.ErrorIs(t, err, domain.ErrMetadataNotFound)
	assert.Zero(t, spotify.searchCalls)
}

func TestConvert_NoMatchFound(t *testing.T) {
	apple := &mockProvider{
		name:   domain.PlatformAppleMusic,
		policy: match.DefaultPolicy,
		lookup: map[string]domain.ContentMetadata{
			"12345": {ContentType: domain.ContentTypeTrack, Title: "Obscure B-Side", Artist: "Nobody Known"},
		},
	}
	spotify := &mockProvider{name: domain.PlatformSpotify, policy: match.DefaultPolicy}

	svc := NewService(newTestRegistry(apple, spotify), nil, 5)
	_, err := svc.Convert(context.Background(), "https://music.apple.com/us/song/obscure/12345")

	assert.ErrorIs(t, err, domain.ErrNoMatchFound)
	assert.Greater(t, spotify.searchCalls, 0)
}
