package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/tunebridge/tunebridge/internal/domain"
	"github.com/tunebridge/tunebridge/internal/match"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"
	tokenURL       = "https://accounts.spotify.com/api/token"
	defaultRPS     = 10
)

// selectionPolicy holds the thresholds calibrated for Spotify search as a
// conversion target.
var selectionPolicy = match.Policy{
	HighConfidence: 0.8,
	AcceptFloor:    0.6,
	DecentScore:    0.5,
}

// Provider implements ports.CatalogProvider for Spotify using the Web API
// with client-credentials authentication.
type Provider struct {
	client  *http.Client
	tokens  oauth2.TokenSource
	limiter *rate.Limiter
	baseURL string
}

// NewProvider creates a Spotify provider. When clientID or clientSecret is
// empty the provider still constructs, but every call fails with
// domain.ErrCredentialsMissing; the decision how to surface that belongs
// to the caller. The token source caches and refreshes the access token
// and is safe under concurrent use.
func NewProvider(clientID, clientSecret string, client *http.Client, rps float64) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	if rps <= 0 {
		rps = defaultRPS
	}

	var tokens oauth2.TokenSource
	if clientID != "" && clientSecret != "" {
		cfg := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
		tokens = cfg.TokenSource(ctx)
	}

	return &Provider{
		client:  client,
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		baseURL: defaultBaseURL,
	}
}

// NewProviderWithTokenSource creates a provider with an injected token
// source. Tests substitute a static source here.
func NewProviderWithTokenSource(tokens oauth2.TokenSource, client *http.Client) *Provider {
	p := NewProvider("", "", client, 0)
	p.tokens = tokens
	return p
}

func (p *Provider) Name() domain.Platform {
	return domain.PlatformSpotify
}

func (p *Provider) Policy() match.Policy {
	return selectionPolicy
}

// -- API response types (internal) ------------------------------------------

type trackData struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Artists      []artistData `json:"artists"`
	Album        albumData    `json:"album"`
	ExternalIDs  externalIDs  `json:"external_ids"`
	ExternalURLs externalURLs `json:"external_urls"`
	DurationMS   int          `json:"duration_ms"`
	Popularity   int          `json:"popularity"`
	TrackNumber  int          `json:"track_number"`
	DiscNumber   int          `json:"disc_number"`
	PreviewURL   string       `json:"preview_url"`
}

type albumData struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Artists      []artistData `json:"artists"`
	Images       []imageData  `json:"images"`
	ReleaseDate  string       `json:"release_date"`
	TotalTracks  int          `json:"total_tracks"`
	Popularity   int          `json:"popularity"`
	ExternalURLs externalURLs `json:"external_urls"`
	Genres       []string     `json:"genres"`
}

type artistData struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Genres       []string     `json:"genres"`
	Images       []imageData  `json:"images"`
	Popularity   int          `json:"popularity"`
	ExternalURLs externalURLs `json:"external_urls"`
}

type imageData struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type externalIDs struct {
	ISRC string `json:"isrc"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

type searchResponse struct {
	Tracks  itemPage[trackData]  `json:"tracks"`
	Albums  itemPage[albumData]  `json:"albums"`
	Artists itemPage[artistData] `json:"artists"`
}

type itemPage[T any] struct {
	Items []T `json:"items"`
}

// -- CatalogProvider implementation ------------------------------------------

// Lookup fetches canonical metadata for a Spotify identifier through the
// typed by-id endpoints.
func (p *Provider) Lookup(ctx context.Context, id string, region string, contentType domain.ContentType) (domain.ContentMetadata, error) {
	var endpoint string
	switch contentType {
	case domain.ContentTypeTrack:
		endpoint = fmt.Sprintf("%s/tracks/%s", p.baseURL, id)
	case domain.ContentTypeAlbum:
		endpoint = fmt.Sprintf("%s/albums/%s", p.baseURL, id)
	case domain.ContentTypeArtist:
		endpoint = fmt.Sprintf("%s/artists/%s", p.baseURL, id)
	default:
		return domain.ContentMetadata{}, fmt.Errorf("spotify: unsupported content type %q", contentType)
	}

	body, err := p.doGet(ctx, endpoint, "")
	if err != nil {
		var apiErr *domain.ExternalAPIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return domain.ContentMetadata{}, domain.ErrMetadataNotFound
		}
		return domain.ContentMetadata{}, err
	}

	switch contentType {
	case domain.ContentTypeTrack:
		var t trackData
		if err := json.Unmarshal(body, &t); err != nil {
			return domain.ContentMetadata{}, fmt.Errorf("spotify: failed to parse track response: %w", err)
		}
		return toTrackMetadata(t), nil
	case domain.ContentTypeAlbum:
		var a albumData
		if err := json.Unmarshal(body, &a); err != nil {
			return domain.ContentMetadata{}, fmt.Errorf("spotify: failed to parse album response: %w", err)
		}
		return toAlbumMetadata(a), nil
	default:
		var a artistData
		if err := json.Unmarshal(body, &a); err != nil {
			return domain.ContentMetadata{}, fmt.Errorf("spotify: failed to parse artist response: %w", err)
		}
		return toArtistMetadata(a), nil
	}
}

// Search runs one catalog search and maps the hits to candidates in
// Spotify's own ranking order.
func (p *Provider) Search(ctx context.Context, query string, contentType domain.ContentType, limit int) ([]domain.Candidate, error) {
	searchType := string(contentType)
	endpoint := fmt.Sprintf("%s/search?type=%s&limit=%d&q=%s",
		p.baseURL, searchType, limit, url.QueryEscape(query))

	body, err := p.doGet(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse search response: %w", err)
	}

	var candidates []domain.Candidate
	switch contentType {
	case domain.ContentTypeTrack:
		for _, t := range resp.Tracks.Items {
			candidates = append(candidates, domain.Candidate{
				Metadata:   toTrackMetadata(t),
				URL:        externalURL(t.ExternalURLs, "track", t.ID),
				ExternalID: t.ID,
			})
		}
	case domain.ContentTypeAlbum:
		for _, a := range resp.Albums.Items {
			candidates = append(candidates, domain.Candidate{
				Metadata:   toAlbumMetadata(a),
				URL:        externalURL(a.ExternalURLs, "album", a.ID),
				ExternalID: a.ID,
			})
		}
	case domain.ContentTypeArtist:
		for _, a := range resp.Artists.Items {
			candidates = append(candidates, domain.Candidate{
				Metadata:   toArtistMetadata(a),
				URL:        externalURL(a.ExternalURLs, "artist", a.ID),
				ExternalID: a.ID,
			})
		}
	}

	return candidates, nil
}

// -- HTTP helpers ------------------------------------------------------------

func (p *Provider) doGet(ctx context.Context, endpoint string, query string) ([]byte, error) {
	if p.tokens == nil {
		return nil, fmt.Errorf("%w: spotify client id/secret not configured", domain.ErrCredentialsMissing)
	}
	token, err := p.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCredentialsMissing, err)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	token.SetAuthHeader(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &domain.ExternalAPIError{Platform: domain.PlatformSpotify, Query: query, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ExternalAPIError{Platform: domain.PlatformSpotify, Query: query, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ExternalAPIError{
			Platform:   domain.PlatformSpotify,
			StatusCode: resp.StatusCode,
			Query:      query,
			Err:        fmt.Errorf("spotify API: %s", strings.TrimSpace(string(body))),
		}
	}

	return body, nil
}

// -- Mappers -----------------------------------------------------------------

func toTrackMetadata(t trackData) domain.ContentMetadata {
	return domain.ContentMetadata{
		ContentType:    domain.ContentTypeTrack,
		Title:          t.Name,
		Artist:         joinArtists(t.Artists),
		Album:          t.Album.Name,
		ISRC:           t.ExternalIDs.ISRC,
		ArtworkURL:     largestImage(t.Album.Images),
		ReleaseDate:    t.Album.ReleaseDate,
		TrackNumber:    t.TrackNumber,
		TotalTracks:    t.Album.TotalTracks,
		DiscNumber:     t.DiscNumber,
		DurationMillis: t.DurationMS,
		Popularity:     t.Popularity,
		PreviewURL:     t.PreviewURL,
	}
}

func toAlbumMetadata(a albumData) domain.ContentMetadata {
	return domain.ContentMetadata{
		ContentType: domain.ContentTypeAlbum,
		Title:       a.Name,
		Artist:      joinArtists(a.Artists),
		Album:       a.Name,
		ArtworkURL:  largestImage(a.Images),
		ReleaseDate: a.ReleaseDate,
		TotalTracks: a.TotalTracks,
		Genres:      a.Genres,
		Popularity:  a.Popularity,
	}
}

func toArtistMetadata(a artistData) domain.ContentMetadata {
	return domain.ContentMetadata{
		ContentType: domain.ContentTypeArtist,
		Title:       a.Name,
		Artist:      a.Name,
		ArtworkURL:  largestImage(a.Images),
		Genres:      a.Genres,
		Popularity:  a.Popularity,
	}
}

func joinArtists(artists []artistData) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// largestImage picks the highest-resolution artwork. Spotify orders
// images widest first, but the contract does not promise it.
func largestImage(images []imageData) string {
	best := ""
	bestWidth := -1
	for _, img := range images {
		if img.Width > bestWidth {
			best = img.URL
			bestWidth = img.Width
		}
	}
	return best
}

func externalURL(urls externalURLs, kind, id string) string {
	if urls.Spotify != "" {
		return urls.Spotify
	}
	return fmt.Sprintf("https://open.spotify.com/%s/%s", kind, id)
}
