// Package source parses upstream manga source API responses into
// model types.
//
// The upstream schema is deliberately treated as opaque beyond the
// fields the exporter needs: a title's name and language, each
// chapter's name, subtitle and publication timestamp, and the ordered
// page listing with spread markers.
//
// # Usage
//
//	parser := source.NewParser()
//
//	title, chapters, err := parser.ParseTitle(titleJSON)
//	pages, err := parser.ParsePages(chapterJSON)
//
// Parsing is pure string-in, values-out; the download manager owns all
// network access.
package source
