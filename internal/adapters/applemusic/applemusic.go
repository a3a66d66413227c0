package applemusic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/tunebridge/tunebridge/internal/domain"
	"github.com/tunebridge/tunebridge/internal/match"
)

const (
	defaultBaseURL = "https://itunes.apple.com"
	defaultRPS     = 5

	// The lookup API hands out 100x100 artwork; the same CDN serves larger
	// renditions when the size token in the URL is rewritten.
	artworkSmallToken = "100x100"
	artworkLargeToken = "600x600"
)

// selectionPolicy holds the thresholds calibrated for iTunes search as a
// conversion target. The floor sits lower than Spotify's: iTunes search is
// noisier and its text fields drift more (remaster suffixes, localized
// collection names), so demanding 0.6 would reject legitimate matches.
var selectionPolicy = match.Policy{
	HighConfidence: 0.7,
	AcceptFloor:    0.3,
	DecentScore:    0.5,
}

var searchEntities = map[domain.ContentType]string{
	domain.ContentTypeTrack:  "song",
	domain.ContentTypeAlbum:  "album",
	domain.ContentTypeArtist: "musicArtist",
}

// Provider implements ports.CatalogProvider for Apple Music through the
// iTunes Lookup and Search APIs. Those endpoints are unauthenticated, so
// unlike the Spotify adapter there is no credential contract to enforce.
type Provider struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

// NewProvider creates an Apple Music provider with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewProvider(client *http.Client, rps float64) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	if rps <= 0 {
		rps = defaultRPS
	}
	return &Provider{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		baseURL: defaultBaseURL,
	}
}

func (p *Provider) Name() domain.Platform {
	return domain.PlatformAppleMusic
}

func (p *Provider) Policy() match.Policy {
	return selectionPolicy
}

// -- API response types (internal) ------------------------------------------

type lookupResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []lookupResult `json:"results"`
}

type lookupResult struct {
	WrapperType      string  `json:"wrapperType"`
	Kind             string  `json:"kind"`
	TrackID          int64   `json:"trackId"`
	CollectionID     int64   `json:"collectionId"`
	ArtistID         int64   `json:"artistId"`
	TrackName        string  `json:"trackName"`
	CollectionName   string  `json:"collectionName"`
	ArtistName       string  `json:"artistName"`
	TrackViewURL     string  `json:"trackViewUrl"`
	CollectionViewURL string `json:"collectionViewUrl"`
	ArtistViewURL    string  `json:"artistLinkUrl"`
	ArtworkURL100    string  `json:"artworkUrl100"`
	ReleaseDate      string  `json:"releaseDate"`
	PrimaryGenreName string  `json:"primaryGenreName"`
	TrackTimeMillis  int     `json:"trackTimeMillis"`
	TrackNumber      int     `json:"trackNumber"`
	TrackCount       int     `json:"trackCount"`
	DiscNumber       int     `json:"discNumber"`
	DiscCount        int     `json:"discCount"`
	PreviewURL       string  `json:"previewUrl"`
	Country          string  `json:"country"`
}

// -- CatalogProvider implementation ------------------------------------------

// Lookup fetches canonical metadata for an iTunes store identifier in the
// given storefront region.
func (p *Provider) Lookup(ctx context.Context, id string, region string, contentType domain.ContentType) (domain.ContentMetadata, error) {
	endpoint := fmt.Sprintf("%s/lookup?id=%s&country=%s", p.baseURL, url.QueryEscape(id), url.QueryEscape(region))

	resp, err := p.doGet(ctx, endpoint, "")
	if err != nil {
		return domain.ContentMetadata{}, err
	}
	if resp.ResultCount == 0 || len(resp.Results) == 0 {
		return domain.ContentMetadata{}, domain.ErrMetadataNotFound
	}

	return toMetadata(resp.Results[0], contentType), nil
}

// Search runs one iTunes Search API query and maps the hits to candidates
// in the store's own ranking order.
func (p *Provider) Search(ctx context.Context, query string, contentType domain.ContentType, limit int) ([]domain.Candidate, error) {
	entity, ok := searchEntities[contentType]
	if !ok {
		return nil, fmt.Errorf("applemusic: unsupported content type %q", contentType)
	}

	endpoint := fmt.Sprintf("%s/search?term=%s&entity=%s&limit=%d",
		p.baseURL, url.QueryEscape(query), entity, limit)

	resp, err := p.doGet(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(resp.Results))
	for _, result := range resp.Results {
		meta := toMetadata(result, contentType)
		candidates = append(candidates, domain.Candidate{
			Metadata:   meta,
			URL:        viewURL(result, contentType),
			ExternalID: externalID(result, contentType),
		})
	}

	return candidates, nil
}

// -- HTTP helpers ------------------------------------------------------------

func (p *Provider) doGet(ctx context.Context, endpoint string, query string) (*lookupResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &domain.ExternalAPIError{Platform: domain.PlatformAppleMusic, Query: query, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ExternalAPIError{Platform: domain.PlatformAppleMusic, Query: query, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ExternalAPIError{
			Platform:   domain.PlatformAppleMusic,
			StatusCode: resp.StatusCode,
			Query:      query,
			Err:        fmt.Errorf("itunes API: %s", strings.TrimSpace(string(body))),
		}
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("applemusic: failed to parse response: %w", err)
	}

	return &parsed, nil
}

// -- Mappers -----------------------------------------------------------------

// toMetadata maps an iTunes record into the canonical shape. iTunes has no
// popularity concept, so popularity stays at its zero value, and the
// public lookup API exposes no ISRC.
func toMetadata(r lookupResult, contentType domain.ContentType) domain.ContentMetadata {
	switch contentType {
	case domain.ContentTypeAlbum:
		return domain.ContentMetadata{
			ContentType: domain.ContentTypeAlbum,
			Title:       r.CollectionName,
			Artist:      r.ArtistName,
			Album:       r.CollectionName,
			ArtworkURL:  upgradeArtwork(r.ArtworkURL100),
			ReleaseDate: r.ReleaseDate,
			Genres:      genreSet(r.PrimaryGenreName),
			TotalTracks: r.TrackCount,
			TotalDiscs:  r.DiscCount,
		}
	case domain.ContentTypeArtist:
		return domain.ContentMetadata{
			ContentType: domain.ContentTypeArtist,
			Title:       r.ArtistName,
			Artist:      r.ArtistName,
			Genres:      genreSet(r.PrimaryGenreName),
		}
	default:
		return domain.ContentMetadata{
			ContentType:    domain.ContentTypeTrack,
			Title:          r.TrackName,
			Artist:         r.ArtistName,
			Album:          r.CollectionName,
			ArtworkURL:     upgradeArtwork(r.ArtworkURL100),
			ReleaseDate:    r.ReleaseDate,
			Genres:         genreSet(r.PrimaryGenreName),
			TrackNumber:    r.TrackNumber,
			TotalTracks:    r.TrackCount,
			DiscNumber:     r.DiscNumber,
			TotalDiscs:     r.DiscCount,
			DurationMillis: r.TrackTimeMillis,
			PreviewURL:     r.PreviewURL,
		}
	}
}

// upgradeArtwork rewrites the fixed-size token in the CDN URL to the
// highest rendition the store serves.
func upgradeArtwork(artworkURL string) string {
	return strings.Replace(artworkURL, artworkSmallToken, artworkLargeToken, 1)
}

func genreSet(primary string) []string {
	if primary == "" {
		return nil
	}
	return []string{primary}
}

func viewURL(r lookupResult, contentType domain.ContentType) string {
	switch contentType {
	case domain.ContentTypeAlbum:
		return r.CollectionViewURL
	case domain.ContentTypeArtist:
		return r.ArtistViewURL
	default:
		if r.TrackViewURL != "" {
			return r.TrackViewURL
		}
		return r.CollectionViewURL
	}
}

func externalID(r lookupResult, contentType domain.ContentType) string {
	switch contentType {
	case domain.ContentTypeAlbum:
		return fmt.Sprintf("%d", r.CollectionID)
	case domain.ContentTypeArtist:
		return fmt.Sprintf("%d", r.ArtistID)
	default:
		return fmt.Sprintf("%d", r.TrackID)
	}
}
