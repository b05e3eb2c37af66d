// Package config manages persistent application settings.
//
// Settings are stored as a single JSON file. Loading a path that does
// not exist yields the defaults, so the application works out of the
// box:
//
//	settings, err := config.Load("~/.config/mangadl/settings.json")
//
// # Notable options
//
//   - Destination / SaveFormat: where exports land and which backend
//     ("raw", "cbz", "pdf") packages them
//   - ChapterBegin / ChapterEnd: inclusive numeric bounds for chapter
//     selection; extras and oneshots always pass the filter
//   - DownloadMaxRetries and friends: exponential backoff for page
//     downloads
//   - ResizePages / PageMaxSize: optional downscaling of oversized pages
package config
