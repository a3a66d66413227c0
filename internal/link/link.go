// Package link turns raw streaming-platform URLs into typed identifiers.
package link

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tunebridge/tunebridge/internal/domain"
)

const defaultRegion = "us"

var appleContentTypes = map[string]domain.ContentType{
	"album":  domain.ContentTypeAlbum,
	"song":   domain.ContentTypeTrack,
	"artist": domain.ContentTypeArtist,
}

var spotifyContentTypes = map[string]domain.ContentType{
	"track":  domain.ContentTypeTrack,
	"album":  domain.ContentTypeAlbum,
	"artist": domain.ContentTypeArtist,
}

// Parse extracts platform, content type, identifier and region from a raw
// URL. Unrecognized hosts and malformed paths fail with
// domain.ErrInvalidLink.
func Parse(rawURL string) (domain.ParsedLink, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return domain.ParsedLink{}, fmt.Errorf("%w: %v", domain.ErrInvalidLink, err)
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	segments := splitPath(parsed.Path)

	switch host {
	case "music.apple.com", "itunes.apple.com", "geo.music.apple.com":
		return parseApple(parsed, segments)
	case "open.spotify.com", "play.spotify.com":
		return parseSpotify(segments)
	default:
		return domain.ParsedLink{}, fmt.Errorf("%w: unsupported host %q", domain.ErrInvalidLink, parsed.Hostname())
	}
}

// parseApple handles /<region>/<type>/<name>/<id> paths. Apple Music
// album pages can point at an individual track through the "i" query
// parameter; when present it forces track type and overrides the
// path-derived identifier.
func parseApple(parsed *url.URL, segments []string) (domain.ParsedLink, error) {
	region := defaultRegion
	rest := segments
	if len(segments) > 0 && len(segments[0]) == 2 {
		region = strings.ToLower(segments[0])
		rest = segments[1:]
	}

	if len(rest) < 2 {
		return domain.ParsedLink{}, fmt.Errorf("%w: apple music path is missing segments", domain.ErrInvalidLink)
	}

	contentType, ok := appleContentTypes[strings.ToLower(rest[0])]
	if !ok {
		return domain.ParsedLink{}, fmt.Errorf("%w: unsupported apple music content type %q", domain.ErrInvalidLink, rest[0])
	}

	id := rest[len(rest)-1]
	if trackID := parsed.Query().Get("i"); trackID != "" {
		contentType = domain.ContentTypeTrack
		id = trackID
	}
	if id == "" {
		return domain.ParsedLink{}, fmt.Errorf("%w: apple music link has no identifier", domain.ErrInvalidLink)
	}

	return domain.ParsedLink{
		Platform:     domain.PlatformAppleMusic,
		ContentType:  contentType,
		ID:           id,
		Region:       region,
		PathSegments: segments,
	}, nil
}

// parseSpotify handles /<type>/<id> paths. Spotify share links sometimes
// carry a locale segment ("intl-pt") before the type; it is skipped.
// Spotify catalogs are global, so region stays at the default.
func parseSpotify(segments []string) (domain.ParsedLink, error) {
	if len(segments) > 0 && strings.HasPrefix(segments[0], "intl-") {
		segments = segments[1:]
	}

	if len(segments) < 2 {
		return domain.ParsedLink{}, fmt.Errorf("%w: spotify path is missing segments", domain.ErrInvalidLink)
	}

	contentType, ok := spotifyContentTypes[strings.ToLower(segments[0])]
	if !ok {
		return domain.ParsedLink{}, fmt.Errorf("%w: unsupported spotify content type %q", domain.ErrInvalidLink, segments[0])
	}

	return domain.ParsedLink{
		Platform:     domain.PlatformSpotify,
		ContentType:  contentType,
		ID:           segments[1],
		Region:       defaultRegion,
		PathSegments: segments,
	}, nil
}

func splitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
