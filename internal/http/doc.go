// Package http provides the HTTP client used to talk to the upstream
// manga source.
//
// The client is a thin wrapper around net/http that adds a stable
// User-Agent, request timeouts, and helpers for the two access patterns
// the application needs:
//
//	client := http.NewClient()
//
//	// API metadata (JSON)
//	body, err := client.GetString(ctx, titleURL)
//
//	// Page images, fetched into memory
//	data, err := client.DownloadBytes(ctx, pageURL)
//
// All methods take a context.Context and honor cancellation.
package http
