package export

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	ioutils "github.com/rokuso/mangadl/internal/io"
	"github.com/rokuso/mangadl/internal/model"
	"github.com/rokuso/mangadl/internal/version"
)

// FormatPDF is the registry name of the paginated document backend.
const FormatPDF = "pdf"

// documentDPI maps page pixels to document points when sizing PDF pages.
const documentDPI = 100.0

func init() {
	Register(FormatPDF, newDocumentExporter)
}

// DocumentExporter renders a chapter as a single multi-page
// <destination>/<TitleName>/<ChapterName>.pdf document.
//
// Pages are buffered in memory in call order and encoded once on Close.
// Like the archive backend, resume is all-or-nothing: an existing
// destination document puts the exporter in skip-all mode. A chapter
// that buffered zero pages produces no file at all.
type DocumentExporter struct {
	base
	path    string
	skipAll bool
	closed  bool

	pages   []documentPage
	imaging *ioutils.ImageService
}

// documentPage is one buffered page: its encoded bytes plus the
// dimensions and image type the PDF writer needs to embed it.
type documentPage struct {
	data      []byte
	width     int
	height    int
	imageType string
}

func newDocumentExporter(opts Options) (Exporter, error) {
	b := newBase(opts)
	dir := filepath.Join(b.destination, b.naming.TitleName)
	if err := ioutils.EnsureDir(dir); err != nil {
		return nil, err
	}

	e := &DocumentExporter{
		base:    b,
		path:    filepath.Join(dir, b.naming.ChapterName+".pdf"),
		imaging: ioutils.NewImageService(),
	}
	e.skipAll = ioutils.FileExists(e.path)

	return e, nil
}

// Format returns "pdf".
func (e *DocumentExporter) Format() string { return FormatPDF }

// SkipImage reports the whole-chapter skip-all flag: a finished
// document cannot have pages appended to it.
func (e *DocumentExporter) SkipImage(index model.PageIndex) bool {
	return e.skipAll
}

// AddImage buffers one page for the final document. Pages whose source
// encoding the PDF writer cannot embed are transcoded to JPEG first.
func (e *DocumentExporter) AddImage(data []byte, index model.PageIndex) error {
	if e.skipAll {
		return nil
	}

	info, err := e.imaging.Describe(data)
	if err != nil {
		return fmt.Errorf("decoding page %d: %w", index.Start, err)
	}

	imageType := pdfImageType(info.Format)
	if imageType == "" {
		if data, err = e.imaging.ConvertToJPEG(data); err != nil {
			return fmt.Errorf("converting page %d: %w", index.Start, err)
		}
		if info, err = e.imaging.Describe(data); err != nil {
			return fmt.Errorf("decoding page %d: %w", index.Start, err)
		}
		imageType = pdfImageType(info.Format)
	}

	e.pages = append(e.pages, documentPage{
		data:      data,
		width:     info.Width,
		height:    info.Height,
		imageType: imageType,
	})
	return nil
}

// Close encodes all buffered pages, in call order, into the document
// and writes it to disk. With zero buffered pages, or in skip-all mode,
// no file is created.
func (e *DocumentExporter) Close() error {
	if e.skipAll || e.closed {
		return nil
	}
	e.closed = true

	if len(e.pages) == 0 {
		return nil
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           pageSize(e.pages[0]),
	})
	doc.SetTitle(e.naming.ChapterName, true)
	doc.SetCreator(version.Identity(), true)
	doc.SetProducer(version.Identity(), true)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	for i, page := range e.pages {
		size := pageSize(page)
		doc.AddPageFormat("P", size)

		imageName := fmt.Sprintf("page-%d", i)
		options := gofpdf.ImageOptions{ImageType: page.imageType}
		doc.RegisterImageOptionsReader(imageName, options, bytes.NewReader(page.data))
		doc.ImageOptions(imageName, 0, 0, size.Wd, size.Ht, false, options, 0, "")
	}

	if err := doc.OutputFileAndClose(e.path); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// pageSize converts pixel dimensions to document points at documentDPI.
func pageSize(page documentPage) gofpdf.SizeType {
	return gofpdf.SizeType{
		Wd: float64(page.width) * 72.0 / documentDPI,
		Ht: float64(page.height) * 72.0 / documentDPI,
	}
}

// pdfImageType maps a registered Go decoder name to the image type
// label the PDF writer understands; empty means unsupported.
func pdfImageType(format string) string {
	switch format {
	case "jpeg":
		return "JPG"
	case "png":
		return "PNG"
	case "gif":
		return "GIF"
	default:
		return ""
	}
}
