package export

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/rokuso/mangadl/internal/comicinfo"
	ioutils "github.com/rokuso/mangadl/internal/io"
	"github.com/rokuso/mangadl/internal/model"
)

// FormatCBZ is the registry name of the zip comic archive backend.
const FormatCBZ = "cbz"

func init() {
	Register(FormatCBZ, newArchiveExporter)
}

// ArchiveExporter packages a chapter into a single
// <destination>/<TitleName>/<ChapterName>.cbz archive.
//
// The archive is assembled entirely in memory and written to disk in
// one shot on Close, so an interrupted run never leaves a truncated
// archive behind. Because a written archive cannot be safely appended
// to, resume is all-or-nothing: a destination archive that already
// exists at construction time puts the exporter in skip-all mode and
// the file is never touched again.
type ArchiveExporter struct {
	base
	path      string
	skipAll   bool
	closed    bool
	pageCount int

	buf       bytes.Buffer
	archive   *zip.Writer
	comicInfo bool
	title     model.Title
	chapter   model.Chapter
}

func newArchiveExporter(opts Options) (Exporter, error) {
	b := newBase(opts)
	dir := filepath.Join(b.destination, b.naming.TitleName)
	if err := ioutils.EnsureDir(dir); err != nil {
		return nil, err
	}

	e := &ArchiveExporter{
		base:      b,
		path:      filepath.Join(dir, b.naming.ChapterName+".cbz"),
		comicInfo: opts.ComicInfo,
		title:     opts.Title,
		chapter:   opts.Chapter,
	}
	e.skipAll = ioutils.FileExists(e.path)

	e.archive = zip.NewWriter(&e.buf)
	e.archive.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	return e, nil
}

// Format returns "cbz".
func (e *ArchiveExporter) Format() string { return FormatCBZ }

// SkipImage reports the whole-chapter skip-all flag: individual pages
// inside an existing archive cannot be resumed.
func (e *ArchiveExporter) SkipImage(index model.PageIndex) bool {
	return e.skipAll
}

// AddImage stores the page bytes in the in-memory archive under
// <ChapterName>/<page file name>.
func (e *ArchiveExporter) AddImage(data []byte, index model.PageIndex) error {
	if e.skipAll {
		return nil
	}

	w, err := e.archive.Create(path.Join(e.naming.ChapterName, e.pageName(index)))
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	e.pageCount++
	return nil
}

// Close finalizes the archive and writes the completed buffer to disk.
// In skip-all mode, or on a second call, it does nothing.
func (e *ArchiveExporter) Close() error {
	if e.skipAll || e.closed {
		return nil
	}
	e.closed = true

	if e.comicInfo && e.pageCount > 0 {
		if err := e.writeComicInfo(); err != nil {
			return err
		}
	}

	if err := e.archive.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return ioutils.WriteFile(e.path, e.buf.Bytes())
}

func (e *ArchiveExporter) writeComicInfo() error {
	info := comicinfo.Build(e.title, e.chapter, e.pageCount)
	data, err := info.Marshal()
	if err != nil {
		return err
	}

	w, err := e.archive.Create("ComicInfo.xml")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
