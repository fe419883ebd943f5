// Package services defines the [Catalog] interface for the remote track
// catalog and implements it for the Spotify Web API.
//
// # Catalog Interface
//
// The rest of the application depends only on [Catalog]; the Spotify
// implementation is constructed once at startup and passed by reference into
// the fetch engine. No package-level client state exists.
//
// # Spotify Implementation
//
// [SpotifyService] authenticates with the OAuth2 client-credentials grant.
// Track, album, and artist metadata require no user consent, so the
// authorization-code flow of the Web API is unnecessary here. The
// [oauth2.TokenSource] transparently refreshes expired tokens.
//
// Requests are paced with a [rate.Limiter] (default 5 req/s) since the
// enrichment step fans out into several catalog lookups per input track.
//
// # Error Handling
//
// Methods wrap failures in typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called or token rejected
//   - [shared.ErrAuthFailed] : credential exchange failed
//   - [shared.ErrTrackNotFound] : catalog returned 404
//   - [shared.ErrAPIRequest] : transport failure or unexpected status
package services
