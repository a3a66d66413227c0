package domain

// Platform identifies a supported streaming service.
type Platform string

const (
	PlatformAppleMusic Platform = "apple_music"
	PlatformSpotify    Platform = "spotify"
)

// ContentType determines which metadata fields are meaningful and which
// scoring branch applies during matching.
type ContentType string

const (
	ContentTypeTrack  ContentType = "track"
	ContentTypeAlbum  ContentType = "album"
	ContentTypeArtist ContentType = "artist"
)

// Direction describes which way a conversion runs.
type Direction string

const (
	DirectionAppleToSpotify Direction = "apple_to_spotify"
	DirectionSpotifyToApple Direction = "spotify_to_apple"
)

// ParsedLink holds the typed identifiers extracted from a source platform
// URL. It is immutable once parsed.
type ParsedLink struct {
	Platform     Platform    `json:"platform"`
	ContentType  ContentType `json:"content_type"`
	ID           string      `json:"id"`
	Region       string      `json:"region"`
	PathSegments []string    `json:"-"`
}

// ContentMetadata is the canonical exchange format between all matching
// components. Both the source (what we start with) and every search
// candidate are represented in this shape. Which optional fields are set
// depends on ContentType and on what the platform exposes.
type ContentMetadata struct {
	ContentType    ContentType `json:"content_type"`
	Title          string      `json:"title"`
	Artist         string      `json:"artist"`
	Album          string      `json:"album,omitempty"`
	ISRC           string      `json:"isrc,omitempty"`
	ArtworkURL     string      `json:"artwork_url,omitempty"`
	ReleaseDate    string      `json:"release_date,omitempty"`
	Genres         []string    `json:"genres,omitempty"`
	TrackNumber    int         `json:"track_number,omitempty"`
	TotalTracks    int         `json:"total_tracks,omitempty"`
	DiscNumber     int         `json:"disc_number,omitempty"`
	TotalDiscs     int         `json:"total_discs,omitempty"`
	DurationMillis int         `json:"duration_ms,omitempty"`
	Popularity     int         `json:"popularity,omitempty"`
	PreviewURL     string      `json:"preview_url,omitempty"`
}

// Candidate is a single search hit on the target platform: canonical
// metadata plus the external link it resolves to.
type Candidate struct {
	Metadata   ContentMetadata `json:"metadata"`
	URL        string          `json:"url"`
	ExternalID string          `json:"external_id,omitempty"`
}

// ScoredCandidate pairs a candidate with its similarity scores. It lives
// only within one selection pass and is never persisted.
type ScoredCandidate struct {
	Candidate    Candidate
	RawScore     float64
	BoostedScore float64
}

// ConversionRequest is the inbound payload for a conversion.
type ConversionRequest struct {
	Link string `json:"link" binding:"required"`
}

// ConversionResult is returned to the caller after a successful
// conversion. The caller owns any persistence (e.g. client-side history).
type ConversionResult struct {
	Direction       Direction       `json:"direction"`
	SourceMetadata  ContentMetadata `json:"source_metadata"`
	MatchedURL      string          `json:"matched_url"`
	MatchedMetadata ContentMetadata `json:"matched_metadata"`
	Confidence      int             `json:"confidence"`
}

// Other returns the opposite platform, i.e. the conversion target.
func (p Platform) Other() Platform {
	if p == PlatformAppleMusic {
		return PlatformSpotify
	}
	return PlatformAppleMusic
}
