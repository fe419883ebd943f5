package tasks

import (
	"fmt"

	"github.com/vvaidy/spotify-track-info/internal/models"
)

// ProgressUpdate represents a progress event during a fetch run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchTrack Phase = iota
	TrackRetrieved
	TrackFailed
)

func (p Phase) String() string {
	switch p {
	case FetchTrack:
		return "fetch_track"
	case TrackRetrieved:
		return "track_retrieved"
	case TrackFailed:
		return "track_failed"
	default:
		return ""
	}
}

func fetchTrackUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTrack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching %s...", step, total, id),
	}
}

func trackDoneUpdate(step, total int, res models.TrackResult) ProgressUpdate {
	if res.Status == models.StatusFailed {
		return ProgressUpdate{
			Phase:   TrackFailed,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ✗ %s: %s", step, total, res.TrackID, res.Error),
			Data:    res,
		}
	}
	return ProgressUpdate{
		Phase:   TrackRetrieved,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d similar tracks)", step, total, res.Name, res.SimilarTracksCount),
		Data:    res,
	}
}
