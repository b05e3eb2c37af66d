package export

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rokuso/mangadl/internal/model"
	"github.com/rokuso/mangadl/internal/name"
)

// fixed publication time in the past (2019-11-15)
const testTimestamp = 1573776000

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Destination: t.TempDir(),
		Title:       model.Title{Name: "test title", Language: model.LanguageEnglish},
		Chapter:     model.Chapter{Name: "#1", StartTimestamp: testTimestamp},
	}
}

// chapterName computes the same chapter name the exporter derives, so
// tests can locate destination artifacts.
func chapterName(opts Options) string {
	ctx := name.NewContext(opts.Title, opts.Chapter, opts.NextChapter, opts.AddChapterTitle)
	return ctx.ChapterName
}

func titleName(opts Options) string {
	return name.NewContext(opts.Title, opts.Chapter, opts.NextChapter, opts.AddChapterTitle).TitleName
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.Gray{Y: uint8((x + y) % 256)})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestNew_UnknownFormat(t *testing.T) {
	opts := testOptions(t)
	if _, err := New("tar", opts); err == nil {
		t.Fatal("expected error for unknown format")
	}

	// The failure must happen before any directory is created.
	entries, err := os.ReadDir(opts.Destination)
	if err != nil {
		t.Fatalf("reading destination: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("destination should be untouched, found %d entries", len(entries))
	}
}

func TestFormats(t *testing.T) {
	formats := Formats()
	for _, want := range []string{FormatRaw, FormatCBZ, FormatPDF} {
		if !slices.Contains(formats, want) {
			t.Errorf("Formats() = %v, missing %q", formats, want)
		}
	}
}

func TestRawExporter_Resume(t *testing.T) {
	opts := testOptions(t)
	exp, err := New(FormatRaw, opts)
	if err != nil {
		t.Fatal(err)
	}

	if exp.SkipImage(model.Page(1)) {
		t.Error("fresh page should not be skipped")
	}

	if err := exp.AddImage([]byte("page-one"), model.Page(1)); err != nil {
		t.Fatal(err)
	}

	if !exp.SkipImage(model.Page(1)) {
		t.Error("written page should be skipped")
	}
	if exp.SkipImage(model.Page(2)) {
		t.Error("unwritten page should not be skipped")
	}

	if err := exp.Close(); err != nil {
		t.Fatal(err)
	}

	// A second exporter for the same chapter sees the same state.
	again, err := New(FormatRaw, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.SkipImage(model.Page(1)) {
		t.Error("re-created exporter should skip the written page")
	}
}

func TestRawExporter_Layout(t *testing.T) {
	opts := testOptions(t)
	exp, err := New(FormatRaw, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := exp.AddImage([]byte("data"), model.Page(4)); err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(opts.Destination, titleName(opts), chapterName(opts))
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("chapter directory missing: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("want 1 page file, got %d", len(entries))
	}
	got := entries[0].Name()
	if !strings.Contains(got, " - p004 ") || !strings.HasSuffix(got, ".jpg") {
		t.Errorf("page file name %q does not follow the naming scheme", got)
	}
}

func TestArchiveExporter_WritesArchive(t *testing.T) {
	opts := testOptions(t)
	exp, err := New(FormatCBZ, opts)
	if err != nil {
		t.Fatal(err)
	}

	if err := exp.AddImage([]byte("page-one"), model.Page(1)); err != nil {
		t.Fatal(err)
	}
	if err := exp.AddImage([]byte("spread"), model.Spread(2, 3)); err != nil {
		t.Fatal(err)
	}

	archivePath := filepath.Join(opts.Destination, titleName(opts), chapterName(opts)+".cbz")
	if _, err := os.Stat(archivePath); err == nil {
		t.Fatal("archive should not exist before Close")
	}

	if err := exp.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer r.Close()

	if len(r.File) != 2 {
		t.Fatalf("want 2 entries, got %d", len(r.File))
	}
	for _, f := range r.File {
		if !strings.HasPrefix(f.Name, chapterName(opts)+"/") {
			t.Errorf("entry %q not under the chapter directory", f.Name)
		}
	}
	if !strings.Contains(r.File[1].Name, "p002-003") {
		t.Errorf("spread entry %q should contain p002-003", r.File[1].Name)
	}
}

func TestArchiveExporter_SkipAll(t *testing.T) {
	opts := testOptions(t)

	dir := filepath.Join(opts.Destination, titleName(opts))
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	archivePath := filepath.Join(dir, chapterName(opts)+".cbz")
	if err := os.WriteFile(archivePath, []byte("existing archive"), 0644); err != nil {
		t.Fatal(err)
	}

	exp, err := New(FormatCBZ, opts)
	if err != nil {
		t.Fatal(err)
	}

	if !exp.SkipImage(model.Page(1)) {
		t.Error("existing archive should put the exporter in skip-all mode")
	}
	if err := exp.AddImage([]byte("new data"), model.Page(1)); err != nil {
		t.Errorf("AddImage in skip-all mode should be a no-op, got %v", err)
	}
	if err := exp.Close(); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "existing archive" {
		t.Error("Close in skip-all mode must not rewrite the archive")
	}
}

func TestArchiveExporter_ComicInfo(t *testing.T) {
	opts := testOptions(t)
	opts.ComicInfo = true

	exp, err := New(FormatCBZ, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := exp.AddImage([]byte("page"), model.Page(1)); err != nil {
		t.Fatal(err)
	}
	if err := exp.Close(); err != nil {
		t.Fatal(err)
	}

	archivePath := filepath.Join(opts.Destination, titleName(opts), chapterName(opts)+".cbz")
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	var found bool
	for _, f := range r.File {
		if f.Name == "ComicInfo.xml" {
			found = true
			rc, err := f.Open()
			if err != nil {
				t.Fatal(err)
			}
			data, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), "<Series>Test Title</Series>") {
				t.Errorf("ComicInfo.xml missing series metadata: %s", data)
			}
		}
	}
	if !found {
		t.Error("archive should contain ComicInfo.xml")
	}
}

func TestDocumentExporter_ZeroPages(t *testing.T) {
	opts := testOptions(t)
	exp, err := New(FormatPDF, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := exp.Close(); err != nil {
		t.Fatal(err)
	}

	docPath := filepath.Join(opts.Destination, titleName(opts), chapterName(opts)+".pdf")
	if _, err := os.Stat(docPath); err == nil {
		t.Error("zero-page chapter must not produce a document")
	}
}

func TestDocumentExporter_WritesDocument(t *testing.T) {
	opts := testOptions(t)
	exp, err := New(FormatPDF, opts)
	if err != nil {
		t.Fatal(err)
	}

	if err := exp.AddImage(pngBytes(t, 40, 60), model.Page(1)); err != nil {
		t.Fatal(err)
	}
	if err := exp.AddImage(pngBytes(t, 80, 60), model.Spread(2, 3)); err != nil {
		t.Fatal(err)
	}
	if err := exp.Close(); err != nil {
		t.Fatal(err)
	}
	// Double close must not re-encode or fail.
	if err := exp.Close(); err != nil {
		t.Fatal(err)
	}

	docPath := filepath.Join(opts.Destination, titleName(opts), chapterName(opts)+".pdf")
	content, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("document missing: %v", err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF")) {
		t.Error("output does not look like a PDF document")
	}
}

func TestDocumentExporter_SkipAll(t *testing.T) {
	opts := testOptions(t)

	dir := filepath.Join(opts.Destination, titleName(opts))
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	docPath := filepath.Join(dir, chapterName(opts)+".pdf")
	if err := os.WriteFile(docPath, []byte("existing document"), 0644); err != nil {
		t.Fatal(err)
	}

	exp, err := New(FormatPDF, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !exp.SkipImage(model.Page(1)) {
		t.Error("existing document should put the exporter in skip-all mode")
	}
	if err := exp.AddImage(pngBytes(t, 10, 10), model.Page(1)); err != nil {
		t.Fatal(err)
	}
	if err := exp.Close(); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "existing document" {
		t.Error("Close in skip-all mode must not rewrite the document")
	}
}
