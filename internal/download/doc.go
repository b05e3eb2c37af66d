// Package download provides the orchestration logic for fetching
// chapters from the upstream source and handing their pages to an
// exporter.
//
// # Manager
//
// The Manager coordinates the whole process:
//
//  1. Parse the requested title IDs
//  2. Fetch title metadata and chapter listings
//  3. Apply the configured chapter bounds
//  4. For each chapter, fetch pages strictly in order and feed them to
//     the configured exporter (raw, cbz or pdf)
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx, "100056"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := manager.StartDownloads(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// Chapters are exported concurrently up to
// settings.MaxConcurrentChapters. Each chapter is fully independent:
// its exporter, naming context and buffers are owned by one goroutine,
// and pages inside a chapter are processed sequentially in page order.
//
// # Resume
//
// The manager consults the exporter's SkipImage before downloading
// anything, so re-running against an already-exported chapter does not
// refetch or rewrite it.
//
// # Retry Logic
//
// Failed page downloads are retried with exponential backoff,
// configurable via settings.DownloadMaxRetries,
// settings.DownloadRetryCooldown and settings.DownloadRetryExponent.
// Export (filesystem) failures are not retried; they abort the chapter.
package download
