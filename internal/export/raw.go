package export

import (
	"path/filepath"

	ioutils "github.com/rokuso/mangadl/internal/io"
	"github.com/rokuso/mangadl/internal/model"
)

// FormatRaw is the registry name of the directory-of-files backend.
const FormatRaw = "raw"

func init() {
	Register(FormatRaw, newRawExporter)
}

// RawExporter writes one file per page under
// <destination>/<TitleName>/<ChapterName>/.
//
// Resume is fine-grained: SkipImage checks each page file individually,
// so an interrupted chapter continues where it left off.
type RawExporter struct {
	base
	dir string
}

func newRawExporter(opts Options) (Exporter, error) {
	b := newBase(opts)
	dir := filepath.Join(b.destination, b.naming.TitleName, b.naming.ChapterName)
	if err := ioutils.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &RawExporter{base: b, dir: dir}, nil
}

// Format returns "raw".
func (e *RawExporter) Format() string { return FormatRaw }

// SkipImage reports whether the page file already exists on disk.
func (e *RawExporter) SkipImage(index model.PageIndex) bool {
	return ioutils.FileExists(filepath.Join(e.dir, e.pageName(index)))
}

// AddImage writes the page bytes directly to its file.
func (e *RawExporter) AddImage(data []byte, index model.PageIndex) error {
	return ioutils.WriteFile(filepath.Join(e.dir, e.pageName(index)), data)
}

// Close is a no-op: every page was already flushed by AddImage.
func (e *RawExporter) Close() error { return nil }
