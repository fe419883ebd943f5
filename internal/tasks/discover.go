package tasks

import (
	"context"

	"github.com/vvaidy/spotify-track-info/internal/models"
	"github.com/vvaidy/spotify-track-info/internal/services"
)

// Per-source entry caps for similar-track discovery.
const (
	topTrackLimit   = 3
	albumTrackLimit = 2
	otherAlbumLimit = 2
)

// discoverSimilar assembles a best-effort list of tracks related to seed from
// three sources in fixed order: the primary artist's top tracks, other tracks
// on the seed's album, and the first track of up to two other releases by the
// primary artist.
//
// Each source is attempted independently; a failing source contributes
// nothing and is logged at warn level, so discovery never fails the
// surrounding track. The sources are concatenated without cross-source
// deduplication: a track reachable through two sources appears once per
// source tag.
func (e *TrackEngine) discoverSimilar(ctx context.Context, seed *services.SpotifyTrack, market string) []models.SimilarTrack {
	similar := make([]models.SimilarTrack, 0)

	if len(seed.Artists) == 0 {
		return similar
	}
	artistID := seed.Artists[0].ID

	if tracks, err := e.fromArtistTop(ctx, seed, artistID, market); err != nil {
		e.logger.Warn("artist top tracks lookup failed", "artist", artistID, "error", err)
	} else {
		similar = append(similar, tracks...)
	}

	if tracks, err := e.fromSameAlbum(ctx, seed); err != nil {
		e.logger.Warn("album tracks lookup failed", "album", seed.Album.ID, "error", err)
	} else {
		similar = append(similar, tracks...)
	}

	if tracks, err := e.fromOtherAlbums(ctx, seed, artistID); err != nil {
		e.logger.Warn("artist albums lookup failed", "artist", artistID, "error", err)
	} else {
		similar = append(similar, tracks...)
	}

	return similar
}

// fromArtistTop takes up to the first three of the primary artist's top
// tracks, excluding the seed itself. The top-tracks response already carries
// popularity, so no second fetch is needed.
func (e *TrackEngine) fromArtistTop(ctx context.Context, seed *services.SpotifyTrack, artistID, market string) ([]models.SimilarTrack, error) {
	top, err := e.catalog.ArtistTopTracks(ctx, artistID, market)
	if err != nil {
		return nil, err
	}

	if len(top) > topTrackLimit {
		top = top[:topTrackLimit]
	}

	var out []models.SimilarTrack
	for _, t := range top {
		if t.ID == seed.ID {
			continue
		}
		out = append(out, models.SimilarTrack{
			ID:           t.ID,
			Name:         t.Name,
			Artists:      artistNames(t.Artists),
			Popularity:   t.Popularity,
			PreviewURL:   t.PreviewURL,
			ExternalURLs: t.ExternalURLs,
			Source:       models.SourceArtistTop,
		})
	}
	return out, nil
}

// fromSameAlbum takes up to two tracks from the seed's own album, excluding
// the seed. The album listing omits popularity, so each entry needs a full
// track fetch to backfill it.
func (e *TrackEngine) fromSameAlbum(ctx context.Context, seed *services.SpotifyTrack) ([]models.SimilarTrack, error) {
	tracks, err := e.catalog.AlbumTracks(ctx, seed.Album.ID)
	if err != nil {
		return nil, err
	}

	var out []models.SimilarTrack
	for _, t := range tracks {
		if t.ID == seed.ID {
			continue
		}
		if len(out) == albumTrackLimit {
			break
		}
		out = append(out, e.liteSimilar(ctx, t, models.SourceSameAlbum))
	}
	return out, nil
}

// fromOtherAlbums walks up to two other releases (albums or singles) by the
// primary artist, skipping the seed's album, and takes the first track of
// each. Per-album listing failures degrade to skipping that album.
func (e *TrackEngine) fromOtherAlbums(ctx context.Context, seed *services.SpotifyTrack, artistID string) ([]models.SimilarTrack, error) {
	albums, err := e.catalog.ArtistAlbums(ctx, artistID, []string{"album", "single"}, otherAlbumLimit)
	if err != nil {
		return nil, err
	}

	var out []models.SimilarTrack
	for _, album := range albums {
		if album.ID == seed.Album.ID {
			continue
		}

		tracks, err := e.catalog.AlbumTracks(ctx, album.ID)
		if err != nil {
			e.logger.Warn("album tracks lookup failed", "album", album.ID, "error", err)
			continue
		}
		if len(tracks) == 0 {
			continue
		}

		out = append(out, e.liteSimilar(ctx, tracks[0], models.SourceOtherAlbum))
	}
	return out, nil
}

// liteSimilar projects a simplified track listing entry into a SimilarTrack,
// backfilling popularity with a full track fetch. When that fetch fails the
// entry is kept with popularity 0 rather than dropped.
func (e *TrackEngine) liteSimilar(ctx context.Context, t services.SpotifyTrack, source string) models.SimilarTrack {
	popularity := 0
	if full, err := e.catalog.TrackFull(ctx, t.ID); err != nil {
		e.logger.Debug("popularity backfill failed", "track", t.ID, "error", err)
	} else {
		popularity = full.Popularity
	}

	return models.SimilarTrack{
		ID:           t.ID,
		Name:         t.Name,
		Artists:      artistNames(t.Artists),
		Popularity:   popularity,
		PreviewURL:   t.PreviewURL,
		ExternalURLs: t.ExternalURLs,
		Source:       source,
	}
}
