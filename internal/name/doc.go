// Package name derives filesystem-safe, convention-compliant file and
// directory names from raw chapter metadata.
//
// The naming scheme follows the widely used manga archival convention
// (https://github.com/Daiz/manga-naming-scheme): a sanitized title,
// an optional language tag, a chapter-number token such as "c042" or
// "c005x1", the publication year, a "(web)" marker, and bracketed
// extra-info tags.
//
// # Sanitization
//
// Sanitize cleans raw names for filesystem use and applies consistent
// casing. It is idempotent, so already-clean names pass through
// untouched:
//
//	name.Sanitize("Attack: On Titan") // "Attack - On Titan"
//
// # Naming Context
//
// A Context bundles every derived name for one chapter. It is built
// once per (title, chapter) pair and is immutable afterwards:
//
//	ctx := name.NewContext(title, chapter, nextChapter, false)
//	ctx.ChapterName                      // directory / archive name
//	ctx.PageName(model.Page(3), ".jpg")  // one page's file name
//
// All functions in this package are pure: no I/O, and garbage input
// (empty strings, non-numeric chapter names) never causes an error.
package name
