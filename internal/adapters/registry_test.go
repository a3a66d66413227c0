package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunebridge/tunebridge/internal/domain"
	"github.com/tunebridge/tunebridge/internal/match"
)

// -- Minimal stub for registry tests -----------------------------------------

type stubProvider struct {
	name domain.Platform
}

func (s *stubProvider) Name() domain.Platform { return s.name }
func (s *stubProvider) Policy() match.Policy  { return match.DefaultPolicy }
func (s *stubProvider) Lookup(_ context.Context, _ string, _ string, _ domain.ContentType) (domain.ContentMetadata, error) {
	return domain.ContentMetadata{}, nil
}
func (s *stubProvider) Search(_ context.Context, _ string, _ domain.ContentType, _ int) ([]domain.Candidate, error) {
	return nil, nil
}

// -- Tests -------------------------------------------------------------------

func TestProviderRegistry_RegisterAndGet(t *testing.T) {
	registry := NewProviderRegistry()
	registry.Register(&stubProvider{name: domain.PlatformSpotify})
	registry.Register(&stubProvider{name: domain.PlatformAppleMusic})

	spotify, err := registry.Get(domain.PlatformSpotify)
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformSpotify, spotify.Name())

	apple, err := registry.Get(domain.PlatformAppleMusic)
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformAppleMusic, apple.Name())
}

func TestProviderRegistry_GetUnknown(t *testing.T) {
	registry := NewProviderRegistry()

	_, err := registry.Get(domain.PlatformSpotify)
	assert.Error(t, err)
}

func TestProviderRegistry_Available(t *testing.T) {
	registry := NewProviderRegistry()
	assert.Empty(t, registry.Available())

	registry.Register(&stubProvider{name: domain.PlatformSpotify})
	registry.Register(&stubProvider{name: domain.PlatformAppleMusic})
	assert.ElementsMatch(t,
		[]domain.Platform{domain.PlatformSpotify, domain.PlatformAppleMusic},
		registry.Available())
}
