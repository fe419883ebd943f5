// package tasks implements the per-identifier retrieval and enrichment pipeline.
//
// The core abstraction is TrackEngine, which resolves each input identifier
// against the catalog, enriches it with similar tracks, and isolates failures
// so one identifier never affects another. Operations emit progress updates
// via channels for non-blocking status reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/vvaidy/spotify-track-info/internal/models"
	"github.com/vvaidy/spotify-track-info/internal/services"
	"github.com/vvaidy/spotify-track-info/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultMarket restricts track lookups when no market is configured.
const DefaultMarket = "US"

// FetchOpts contains configuration for a fetch run.
type FetchOpts struct {
	Market    string  // Market restriction for catalog lookups (default: US)
	Workers   int     // Concurrent identifier workers (default 1 = strictly sequential)
	RateLimit float64 // Identifier dispatch rate per second when Workers > 1 (default: 5)
}

// TrackEngine resolves input identifiers against the catalog and assembles
// one [models.TrackResult] per identifier.
type TrackEngine struct {
	catalog services.Catalog
	logger  *log.Logger
}

// NewTrackEngine creates a TrackEngine bound to the given catalog. A nil
// logger falls back to the shared default.
func NewTrackEngine(catalog services.Catalog, logger *log.Logger) *TrackEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &TrackEngine{catalog: catalog, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *TrackEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Fetch resolves every identifier and returns a ResultSet with exactly one
// entry per input, in input order, failures included. Identifier-level
// failures are recorded in the corresponding entry and never abort the batch.
//
// With Workers <= 1 identifiers are processed strictly one at a time. Larger
// values fan out across a bounded worker pool; results still land at their
// input index regardless of completion order.
func (e *TrackEngine) Fetch(ctx context.Context, progress chan<- ProgressUpdate, ids []string, opts FetchOpts) (*models.ResultSet, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Market == "" {
		opts.Market = DefaultMarket
	}
	if opts.Workers > 10 {
		opts.Workers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	results := make([]models.TrackResult, len(ids))

	if opts.Workers <= 1 {
		for i, id := range ids {
			e.sendProgress(progress, fetchTrackUpdate(i+1, len(ids), id))
			results[i] = e.fetchOne(ctx, id, opts.Market)
			e.sendProgress(progress, trackDoneUpdate(i+1, len(ids), results[i]))
		}
	} else {
		e.fetchPooled(ctx, progress, ids, opts, results)
	}

	return &models.ResultSet{TrackCount: len(results), Tracks: results}, nil
}

// fetchPooled fans identifiers out across a bounded worker pool. Each index is
// owned by exactly one worker, so results need no locking.
func (e *TrackEngine) fetchPooled(ctx context.Context, progress chan<- ProgressUpdate, ids []string, opts FetchOpts, results []models.TrackResult) {
	jobs := make(chan int)
	var wg sync.WaitGroup
	var completed atomic.Int64

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.fetchOne(ctx, ids[i], opts.Market)
				done := int(completed.Add(1))
				e.sendProgress(progress, trackDoneUpdate(done, len(ids), results[i]))
			}
		}()
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	for i := range ids {
		if err := limiter.Wait(ctx); err != nil {
			results[i] = models.TrackResult{TrackID: ids[i], Status: models.StatusFailed, Error: err.Error()}
			continue
		}
		e.sendProgress(progress, fetchTrackUpdate(i+1, len(ids), ids[i]))
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// fetchOne resolves a single identifier into a TrackResult. Catalog failures
// are downgraded to a failed entry carrying the original identifier string.
func (e *TrackEngine) fetchOne(ctx context.Context, rawID, market string) models.TrackResult {
	id := shared.NormalizeTrackID(rawID)

	track, err := e.catalog.Track(ctx, id, market)
	if err != nil {
		e.logger.Warn("track fetch failed", "track", rawID, "error", err)
		return models.TrackResult{
			TrackID: rawID,
			Status:  models.StatusFailed,
			Error:   err.Error(),
		}
	}

	record := buildRecord(track)
	record.SimilarTracks = e.discoverSimilar(ctx, track, market)
	record.SimilarTracksCount = len(record.SimilarTracks)

	return models.TrackResult{
		TrackID:     rawID,
		Status:      models.StatusRetrieved,
		TrackRecord: record,
	}
}

// buildRecord maps a catalog track onto the output document shape.
func buildRecord(track *services.SpotifyTrack) *models.TrackRecord {
	images := make([]models.Image, 0, len(track.Album.Images))
	for _, img := range track.Album.Images {
		images = append(images, models.Image{URL: img.URL, Height: img.Height, Width: img.Width})
	}

	externalIDs := track.ExternalIDs
	if externalIDs == nil {
		externalIDs = map[string]string{}
	}
	externalURLs := track.ExternalURLs
	if externalURLs == nil {
		externalURLs = map[string]string{}
	}

	return &models.TrackRecord{
		ActualTrackID: track.ID,
		Name:          track.Name,
		Artists:       artistNames(track.Artists),
		Album: models.AlbumSummary{
			Name:        track.Album.Name,
			ReleaseDate: track.Album.ReleaseDate,
			TotalTracks: track.Album.TotalTracks,
			Images:      images,
		},
		TrackDetails: models.TrackDetails{
			DurationMS:  track.DurationMS,
			Explicit:    track.Explicit,
			Popularity:  track.Popularity,
			PreviewURL:  track.PreviewURL,
			TrackNumber: track.TrackNumber,
			IsPlayable:  track.Playable(),
			ExternalIDs: externalIDs,
			DiscNumber:  track.DiscNumber,
		},
		ExternalURLs: externalURLs,
	}
}

func artistNames(artists []services.SpotifyArtist) []string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return names
}
