// Package tasks orchestrates track retrieval and similar-track enrichment
// with real-time progress reporting.
//
// # Core Operation
//
// [TrackEngine.Fetch] turns a list of input identifiers into a
// [models.ResultSet]:
//
//  1. Each identifier is normalized (URI prefixes stripped) and resolved via
//     [services.Catalog] with a fixed market restriction.
//  2. Resolved tracks are enriched with similar tracks from three
//     independent sources (artist top tracks, same album, other albums).
//  3. Every identifier yields exactly one result entry at its input index;
//     a catalog failure produces a failed entry instead of aborting the run.
//
// # Failure Isolation
//
// Failure handling narrows with scope. An identifier that cannot be resolved
// becomes a failed entry. A discovery source that cannot be fetched drops out
// of that track's similar list. A popularity backfill that fails leaves the
// entry in place with popularity 0. None of these propagate upward.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates. The
// [ProgressUpdate] struct contains phase, step counters, messages, and the
// finished result for advanced UI rendering. Updates use select with default
// to prevent blocking.
package tasks
