// package models defines the output document types for the track-info exporter
package models

// TrackResult status values.
const (
	StatusRetrieved = "retrieved"
	StatusFailed    = "failed"
)

// SimilarTrack source tags. A track discovered through more than one source
// appears once per source; no cross-source deduplication is performed.
const (
	SourceArtistTop  = "artist_top_tracks"
	SourceSameAlbum  = "same_album"
	SourceOtherAlbum = "other_album"
)

// Image represents an album cover image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// AlbumSummary is the album slice of a retrieved track.
type AlbumSummary struct {
	Name        string  `json:"name"`
	ReleaseDate string  `json:"release_date"`
	TotalTracks int     `json:"total_tracks"`
	Images      []Image `json:"images"`
}

// TrackDetails holds playback metadata for a retrieved track.
type TrackDetails struct {
	DurationMS  int               `json:"duration_ms"`
	Explicit    bool              `json:"explicit"`
	Popularity  int               `json:"popularity"`
	PreviewURL  *string           `json:"preview_url"`
	TrackNumber int               `json:"track_number"`
	IsPlayable  bool              `json:"is_playable"`
	ExternalIDs map[string]string `json:"external_ids"`
	DiscNumber  int               `json:"disc_number"`
}

// SimilarTrack is a light projection of a track discovered through one of the
// similar-track sources. It never includes the track that seeded the lookup.
type SimilarTrack struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Artists      []string          `json:"artists"`
	Popularity   int               `json:"popularity"`
	PreviewURL   *string           `json:"preview_url"`
	ExternalURLs map[string]string `json:"external_urls"`
	Source       string            `json:"source"`
}

// TrackRecord holds the catalog-resolved fields of a successfully retrieved
// track. ActualTrackID may differ from the requested identifier when the
// catalog relinks a regional track to its canonical equivalent.
type TrackRecord struct {
	ActualTrackID      string            `json:"actual_track_id"`
	Name               string            `json:"name"`
	Artists            []string          `json:"artists"`
	Album              AlbumSummary      `json:"album"`
	TrackDetails       TrackDetails      `json:"track_details"`
	ExternalURLs       map[string]string `json:"external_urls"`
	SimilarTracks      []SimilarTrack    `json:"similar_tracks"`
	SimilarTracksCount int               `json:"similar_tracks_count"`
}

// TrackResult is the outcome of processing one input identifier. TrackID
// preserves the original, possibly URI-form, input string. The embedded
// record is nil for failed lookups, which keeps its fields out of the
// serialized document.
type TrackResult struct {
	TrackID string `json:"track_id"`
	Status  string `json:"status"`
	*TrackRecord
	Error string `json:"error,omitempty"`
}

// ResultSet is the top-level output document for one run. TrackCount always
// equals the number of input identifiers, failures included.
type ResultSet struct {
	TrackCount int           `json:"track_count"`
	Tracks     []TrackResult `json:"tracks"`
}
