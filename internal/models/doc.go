// Package models defines the serialized document shapes for a fetch run.
//
// The package contains two categories of types:
//
// 1. Per-track outcomes:
//   - [TrackResult] : One entry per input identifier, retrieved or failed
//   - [TrackRecord] : Catalog-resolved fields of a retrieved track
//   - [SimilarTrack] : Light projection of a discovered related track
//
// 2. Aggregates:
//   - [ResultSet] : The top-level {track_count, tracks} document
//
// All entities are built once during aggregation and never mutated afterwards;
// the JSON tags define the wire format of the written document.
package models
