package export

import (
	"fmt"
	"sort"

	"github.com/rokuso/mangadl/internal/model"
	"github.com/rokuso/mangadl/internal/name"
)

// Exporter persists one chapter's page images under names derived from
// the chapter's naming context.
//
// The lifecycle of an Exporter is: construct it for one (title, chapter)
// pair, then for each page in order call SkipImage and, if it returns
// false, AddImage; finally call Close exactly once. An Exporter must not
// be reused across chapters.
type Exporter interface {
	// Format returns the registry name of this backend ("raw", "cbz", "pdf").
	Format() string

	// SkipImage reports whether the page at index has already been
	// persisted by a previous run. Callers must consult it before
	// AddImage; adding an image that SkipImage reported true for is
	// outside the contract.
	SkipImage(index model.PageIndex) bool

	// AddImage persists one page's bytes under the computed file name.
	// It is a silent no-op when the whole chapter is being skipped.
	AddImage(data []byte, index model.PageIndex) error

	// Close finalizes the backend: flushes the archive to disk, encodes
	// the buffered document, or does nothing for raw mode. A second
	// Close is a no-op.
	Close() error
}

// Options carries everything needed to construct an exporter for one
// chapter.
type Options struct {
	// Destination is the root output directory.
	Destination string

	// Title and Chapter identify what is being exported.
	Title   model.Title
	Chapter model.Chapter

	// NextChapter is the chapter following this one in the title's
	// listing, if known. Extra chapters derive their number from it.
	NextChapter *model.Chapter

	// AddChapterTitle appends the sanitized chapter subtitle to page
	// names as an extra-info tag.
	AddChapterTitle bool

	// Extension is the page image extension without semantics attached;
	// empty means "jpg". A leading dot is tolerated.
	Extension string

	// ComicInfo embeds a ComicInfo.xml metadata entry in archive
	// output. Ignored by the other backends.
	ComicInfo bool
}

// Factory constructs an exporter from options. Backends register one
// under their format name.
type Factory func(opts Options) (Exporter, error)

var registry = make(map[string]Factory)

// Register makes a backend available under the given format name.
// It is called from the backends' init functions, the same way image
// decoders self-register.
func Register(format string, factory Factory) {
	registry[format] = factory
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	formats := make([]string, 0, len(registry))
	for f := range registry {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// New constructs the exporter registered under format.
//
// An unknown format is a configuration error and is reported before any
// directory or file is touched.
func New(format string, opts Options) (Exporter, error) {
	factory, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q (available: %v)", format, Formats())
	}
	return factory(opts)
}

// base carries the state shared by every backend: the destination root,
// the immutable naming context and the page extension.
type base struct {
	destination string
	naming      name.Context
	extension   string
}

// newBase builds the shared exporter state. The naming context is
// computed here, once, and never changes afterwards.
func newBase(opts Options) base {
	ext := opts.Extension
	if ext == "" {
		ext = "jpg"
	}
	return base{
		destination: opts.Destination,
		naming:      name.NewContext(opts.Title, opts.Chapter, opts.NextChapter, opts.AddChapterTitle),
		extension:   ext,
	}
}

// pageName returns the file name for the page at index.
func (b base) pageName(index model.PageIndex) string {
	return b.naming.PageName(index, b.extension)
}
