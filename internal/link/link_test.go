package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunebridge/tunebridge/internal/domain"
)

func TestParse_AppleTrackQueryParamOverride(t *testing.T) {
	parsed, err := Parse("https://music.apple.com/us/album/some-song/1440857781?i=1440857782")

	require.NoError(t, err)
	assert.Equal(t, domain.PlatformAppleMusic, parsed.Platform)
	assert.Equal(t, domain.ContentTypeTrack, parsed.ContentType)
	assert.Equal(t, "1440857782", parsed.ID)
	assert.Equal(t, "us", parsed.Region)
}

func TestParse_AppleAlbum(t *testing.T) {
	parsed, err := Parse("https://music.apple.com/gb/album/after-hours/1499378108")

	require.NoError(t, err)
	assert.Equal(t, domain.ContentTypeAlbum, parsed.ContentType)
	assert.Equal(t, "1499378108", parsed.ID)
	assert.Equal(t, "gb", parsed.Region)
}

func TestParse_AppleArtist(t *testing.T) {
	parsed, err := Parse("https://music.apple.com/us/artist/the-weeknd/479756766")

	require.NoError(t, err)
	assert.Equal(t, domain.ContentTypeArtist, parsed.ContentType)
	assert.Equal(t, "479756766", parsed.ID)
}

func TestParse_AppleSong(t *testing.T) {
	parsed, err := Parse("https://music.apple.com/us/song/blinding-lights/1499378615")

	require.NoError(t, err)
	assert.Equal(t, domain.ContentTypeTrack, parsed.ContentType)
	assert.Equal(t, "1499378615", parsed.ID)
}

func TestParse_SpotifyTrack(t *testing.T) {
	parsed, err := Parse("https://open.spotify.com/track/6rqhFgbbKwnb9MLmUQDhG6")

	require.NoError(t, err)
	assert.Equal(t, domain.PlatformSpotify, parsed.Platform)
	assert.Equal(t, domain.ContentTypeTrack, parsed.ContentType)
	assert.Equal(t, "6rqhFgbbKwnb9MLmUQDhG6", parsed.ID)
	assert.Equal(t, "us", parsed.Region)
}

func TestParse_SpotifyLocalePrefix(t *testing.T) {
	parsed, err := Parse("https://open.spotify.com/intl-pt/album/4yP0hdKOZPNshxUOjY0cZj")

	require.NoError(t, err)
	assert.Equal(t, domain.ContentTypeAlbum, parsed.ContentType)
	assert.Equal(t, "4yP0hdKOZPNshxUOjY0cZj", parsed.ID)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"unsupported host", "https://example.com/track/abc"},
		{"missing apple segments", "https://music.apple.com/us"},
		{"missing spotify segments", "https://open.spotify.com/track"},
		{"unsupported spotify type", "https://open.spotify.com/episode/abc123"},
		{"unsupported apple type", "https://music.apple.com/us/playlist/cool/pl.123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.url)
			assert.ErrorIs(t, err, domain.ErrInvalidLink)
		})
	}
}
