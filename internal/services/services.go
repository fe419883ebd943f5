// package services defines interface Catalog for interacting with the remote track catalog
package services

import (
	"context"
)

// Catalog defines read-only access to a remote music catalog. The concrete
// implementation owns credential acquisition and token refresh; callers only
// see typed records or errors.
type Catalog interface {
	// Authenticate acquires an access token for subsequent requests.
	// Returns an error if credential exchange fails.
	Authenticate(ctx context.Context) error

	// Track retrieves a single track by ID, restricted to the given market.
	// The returned record carries the canonical ID, which may differ from the
	// requested one for relinked tracks.
	Track(ctx context.Context, trackID, market string) (*SpotifyTrack, error)

	// TrackFull retrieves a single track without market restriction. Used to
	// backfill popularity for listings that omit it.
	TrackFull(ctx context.Context, trackID string) (*SpotifyTrack, error)

	// ArtistTopTracks retrieves an artist's top tracks for the given market.
	ArtistTopTracks(ctx context.Context, artistID, market string) ([]SpotifyTrack, error)

	// AlbumTracks retrieves the track listing of an album. Entries omit
	// popularity.
	AlbumTracks(ctx context.Context, albumID string) ([]SpotifyTrack, error)

	// ArtistAlbums retrieves up to limit albums by an artist, filtered to the
	// given release types (e.g. "album", "single").
	ArtistAlbums(ctx context.Context, artistID string, types []string, limit int) ([]SpotifyAlbum, error)

	// Name returns the name of the catalog service (e.g. "Spotify")
	Name() string
}
