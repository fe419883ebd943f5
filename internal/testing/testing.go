// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/vvaidy/spotify-track-info/internal/services"
)

// MockCatalog is a test double for [services.Catalog]. Each method delegates
// to the corresponding function field when set and succeeds with zero values
// otherwise.
type MockCatalog struct {
	AuthenticateFn    func(ctx context.Context) error
	TrackFn           func(ctx context.Context, trackID, market string) (*services.SpotifyTrack, error)
	TrackFullFn       func(ctx context.Context, trackID string) (*services.SpotifyTrack, error)
	ArtistTopTracksFn func(ctx context.Context, artistID, market string) ([]services.SpotifyTrack, error)
	AlbumTracksFn     func(ctx context.Context, albumID string) ([]services.SpotifyTrack, error)
	ArtistAlbumsFn    func(ctx context.Context, artistID string, types []string, limit int) ([]services.SpotifyAlbum, error)
}

func (m *MockCatalog) Authenticate(ctx context.Context) error {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx)
	}
	return nil
}

func (m *MockCatalog) Track(ctx context.Context, trackID, market string) (*services.SpotifyTrack, error) {
	if m.TrackFn != nil {
		return m.TrackFn(ctx, trackID, market)
	}
	return &services.SpotifyTrack{ID: trackID}, nil
}

func (m *MockCatalog) TrackFull(ctx context.Context, trackID string) (*services.SpotifyTrack, error) {
	if m.TrackFullFn != nil {
		return m.TrackFullFn(ctx, trackID)
	}
	return &services.SpotifyTrack{ID: trackID}, nil
}

func (m *MockCatalog) ArtistTopTracks(ctx context.Context, artistID, market string) ([]services.SpotifyTrack, error) {
	if m.ArtistTopTracksFn != nil {
		return m.ArtistTopTracksFn(ctx, artistID, market)
	}
	return nil, nil
}

func (m *MockCatalog) AlbumTracks(ctx context.Context, albumID string) ([]services.SpotifyTrack, error) {
	if m.AlbumTracksFn != nil {
		return m.AlbumTracksFn(ctx, albumID)
	}
	return nil, nil
}

func (m *MockCatalog) ArtistAlbums(ctx context.Context, artistID string, types []string, limit int) ([]services.SpotifyAlbum, error) {
	if m.ArtistAlbumsFn != nil {
		return m.ArtistAlbumsFn(ctx, artistID, types, limit)
	}
	return nil, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// StrPtr returns a pointer to s, for optional string fields in fixtures.
func StrPtr(s string) *string { return &s }
