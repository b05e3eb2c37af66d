// Package model defines the core data structures used throughout
// the mangadl application.
//
// # Title and Chapter
//
// Title and Chapter carry the raw metadata delivered by an upstream
// source. They are plain immutable values; all naming logic lives in
// the name package:
//
//	title := model.Title{Name: "attack: on titan", Language: model.LanguageEnglish}
//	chapter := model.Chapter{Name: "#042", StartTimestamp: 1573776000}
//
// # Page Indices
//
// PageIndex identifies where a downloaded image belongs in a chapter,
// either a single page or a merged two-page spread:
//
//	model.Page(3)      // rendered as "p003" in file names
//	model.Spread(3, 5) // rendered as "p003-005"
//
// # Languages
//
// Language is a closed set of three-letter codes. English is the
// unmarked default; all other languages show up as a "[code]" tag in
// generated names.
package model
