// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vvaidy/spotify-track-info/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	defaultRateLimit = 5.0
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	AlbumType   string          `json:"album_type"`
	Artists     []SpotifyArtist `json:"artists"`
	ReleaseDate string          `json:"release_date"`
	TotalTracks int             `json:"total_tracks"`
	Images      []SpotifyImage  `json:"images"`
	URI         string          `json:"uri"`
}

// SpotifyTrack represents a Spotify track. Simplified listings (album tracks,
// artist top tracks) populate a subset of these fields; notably the album
// track listing omits Popularity.
type SpotifyTrack struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Artists      []SpotifyArtist   `json:"artists"`
	Album        SpotifyAlbum      `json:"album"`
	DurationMS   int               `json:"duration_ms"`
	Explicit     bool              `json:"explicit"`
	Popularity   int               `json:"popularity"`
	PreviewURL   *string           `json:"preview_url"`
	TrackNumber  int               `json:"track_number"`
	DiscNumber   int               `json:"disc_number"`
	IsPlayable   *bool             `json:"is_playable"`
	ExternalIDs  map[string]string `json:"external_ids"`
	ExternalURLs map[string]string `json:"external_urls"`
	URI          string            `json:"uri"`
}

// Playable resolves the optional is_playable field, which the API omits
// outside market-restricted requests. Absent means playable.
func (t *SpotifyTrack) Playable() bool {
	return t.IsPlayable == nil || *t.IsPlayable
}

// SpotifyService implements the Catalog interface for Spotify API interactions.
// Uses the OAuth2 client-credentials grant, which covers the metadata-only
// endpoints this tool needs, and paces requests with a [rate.Limiter].
type SpotifyService struct {
	creds      *clientcredentials.Config
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	return &SpotifyService{
		creds: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotifyTokenURL,
		},
		limiter: rate.NewLimiter(rate.Limit(defaultRateLimit), 1),
		baseURL: spotifyBaseURL,
	}, nil
}

// SetRateLimit adjusts the request pacing in requests per second.
func (s *SpotifyService) SetRateLimit(perSecond float64) {
	if perSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Authenticate exchanges the client credentials for an access token and
// installs a token-refreshing HTTP client.
func (s *SpotifyService) Authenticate(ctx context.Context) error {
	if _, err := s.creds.Token(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	s.httpClient = oauth2.NewClient(ctx, s.creds.TokenSource(ctx))
	return nil
}

// doRequest performs an authenticated GET against the Spotify API and decodes
// the JSON response into result.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.httpClient == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrTrackNotFound, endpoint)
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: status 401", shared.ErrNotAuthenticated)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Track retrieves a single track by ID, restricted to the given market.
func (s *SpotifyService) Track(ctx context.Context, trackID, market string) (*SpotifyTrack, error) {
	endpoint := fmt.Sprintf("/tracks/%s", url.PathEscape(trackID))
	if market != "" {
		endpoint += "?market=" + url.QueryEscape(market)
	}

	var track SpotifyTrack
	if err := s.doRequest(ctx, endpoint, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// TrackFull retrieves a single track by ID without market restriction.
func (s *SpotifyService) TrackFull(ctx context.Context, trackID string) (*SpotifyTrack, error) {
	return s.Track(ctx, trackID, "")
}

// ArtistTopTracks retrieves an artist's top tracks for the given market.
func (s *SpotifyService) ArtistTopTracks(ctx context.Context, artistID, market string) ([]SpotifyTrack, error) {
	endpoint := fmt.Sprintf("/artists/%s/top-tracks?market=%s", url.PathEscape(artistID), url.QueryEscape(market))

	var response struct {
		Tracks []SpotifyTrack `json:"tracks"`
	}
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	return response.Tracks, nil
}

// AlbumTracks retrieves the track listing of an album. The listing entries
// carry no album object and no popularity score.
func (s *SpotifyService) AlbumTracks(ctx context.Context, albumID string) ([]SpotifyTrack, error) {
	endpoint := fmt.Sprintf("/albums/%s/tracks", url.PathEscape(albumID))

	var response struct {
		Items []SpotifyTrack `json:"items"`
	}
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	return response.Items, nil
}

// ArtistAlbums retrieves up to limit albums by an artist, filtered to the
// given release types.
func (s *SpotifyService) ArtistAlbums(ctx context.Context, artistID string, types []string, limit int) ([]SpotifyAlbum, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	endpoint := fmt.Sprintf("/artists/%s/albums?limit=%d", url.PathEscape(artistID), limit)
	if len(types) > 0 {
		endpoint += "&include_groups=" + url.QueryEscape(strings.Join(types, ","))
	}

	var response struct {
		Items []SpotifyAlbum `json:"items"`
	}
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	return response.Items, nil
}
