package model

// Chapter represents a single chapter of a title as supplied by an
// upstream metadata source.
//
// Chapter is an immutable input. Name is typically a "#042"-style number
// but may be non-numeric ("ex" for extra chapters, "omake", ...) or
// already prefixed; the name package is responsible for making sense
// of it and must never fail on garbage.
type Chapter struct {
	// ID is the upstream identifier of the chapter.
	ID string

	// Name is the raw chapter name, e.g. "#042" or "ex".
	Name string

	// SubTitle is the chapter's subtitle, if any.
	SubTitle string

	// StartTimestamp is the publication time as unix seconds.
	StartTimestamp int64
}

// PageIndex identifies the slot a page image occupies within a chapter:
// either a single page or a merged two-page spread.
//
// Use Page or Spread to construct values:
//
//	model.Page(4)      // page 4
//	model.Spread(4, 5) // pages 4-5 merged into one image
type PageIndex struct {
	// Start is the first page number covered by this image.
	Start int

	// Stop is the last page number covered by this image.
	// Equal to Start for a single page.
	Stop int

	// IsSpread is true when the image covers a merged multi-page spread.
	IsSpread bool
}

// Page returns the PageIndex for a single page.
func Page(n int) PageIndex {
	return PageIndex{Start: n, Stop: n}
}

// Spread returns the PageIndex for a merged multi-page spread covering
// pages start through stop.
func Spread(start, stop int) PageIndex {
	return PageIndex{Start: start, Stop: stop, IsSpread: true}
}

// Width returns the number of page slots this index occupies.
func (p PageIndex) Width() int {
	if p.IsSpread {
		return p.Stop - p.Start + 1
	}
	return 1
}
