package download

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rokuso/mangadl/internal/config"
	"github.com/rokuso/mangadl/internal/export"
	"github.com/rokuso/mangadl/internal/http"
	ioutils "github.com/rokuso/mangadl/internal/io"
	"github.com/rokuso/mangadl/internal/model"
	"github.com/rokuso/mangadl/internal/name"
	"github.com/rokuso/mangadl/internal/source"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// chapterJob is one chapter queued for export, together with the
// chapter that follows it in the title's listing (extra chapters derive
// their number from it).
type chapterJob struct {
	title   model.Title
	chapter model.Chapter
	next    *model.Chapter
}

// Manager coordinates chapter downloads and exports.
type Manager struct {
	settings     *config.Settings
	httpClient   *http.Client
	parser       *source.Parser
	imageService *ioutils.ImageService

	jobs             []chapterJob
	exportedChapters int32
	downloadedPages  int32
	receivedBytes    int64

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:     settings,
		httpClient:   http.NewClient(),
		parser:       source.NewParser(),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// Initialize fetches title metadata and builds the chapter queue.
//
// input is a whitespace- or comma-separated list of title IDs. The
// configured chapter bounds are applied here; the chapter following
// each queued chapter is remembered even when it falls outside the
// bounds, so extra-chapter numbering stays correct.
func (m *Manager) Initialize(ctx context.Context, input string) error {
	if !slices.Contains(export.Formats(), m.settings.SaveFormat) {
		return fmt.Errorf("unknown export format %q (available: %v)", m.settings.SaveFormat, export.Formats())
	}

	ids := m.parseTitleIDs(input)
	if len(ids) == 0 {
		return fmt.Errorf("no title IDs given")
	}

	for _, id := range ids {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching title info: %s", id), Level: LevelVerbose})

		body, err := m.httpClient.GetString(ctx, m.titleURL(id))
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching title %s: %v", id, err), Level: LevelError})
			continue
		}

		title, chapters, err := m.parser.ParseTitle(body)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error parsing title %s: %v", id, err), Level: LevelError})
			continue
		}

		queued := 0
		for i, chapter := range chapters {
			if !m.inChapterBounds(chapter) {
				continue
			}
			var next *model.Chapter
			if i+1 < len(chapters) {
				next = &chapters[i+1]
			}
			m.jobs = append(m.jobs, chapterJob{title: title, chapter: chapter, next: next})
			queued++
		}

		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Found title: %s (%d of %d chapters queued)", title.Name, queued, len(chapters)),
			Level:   LevelInfo,
		})
	}

	if len(m.jobs) == 0 {
		return fmt.Errorf("no chapters to download")
	}
	return nil
}

// StartDownloads exports all queued chapters.
//
// Chapters run concurrently up to the configured limit; within one
// chapter, pages are fetched and exported strictly in order.
func (m *Manager) StartDownloads(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	limit := m.settings.MaxConcurrentChapters
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, job := range m.jobs {
		job := job
		g.Go(func() error {
			return m.exportChapter(ctx, job)
		})
	}

	return g.Wait()
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (receivedBytes int64, pages, chaptersDone, chaptersTotal int32) {
	return atomic.LoadInt64(&m.receivedBytes),
		atomic.LoadInt32(&m.downloadedPages),
		atomic.LoadInt32(&m.exportedChapters),
		int32(len(m.jobs))
}

// GetChapterNames returns a display name for every queued chapter.
func (m *Manager) GetChapterNames() []string {
	names := make([]string, len(m.jobs))
	for i, job := range m.jobs {
		label := job.chapter.Name
		if job.chapter.SubTitle != "" {
			label += ": " + job.chapter.SubTitle
		}
		names[i] = fmt.Sprintf("%s - %s", job.title.Name, label)
	}
	return names
}

func (m *Manager) parseTitleIDs(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	var ids []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			ids = append(ids, f)
		}
	}
	return ids
}

func (m *Manager) titleURL(titleID string) string {
	return fmt.Sprintf("%s/api/title/%s", strings.TrimRight(m.settings.APIBaseURL, "/"), titleID)
}

func (m *Manager) chapterURL(chapterID string) string {
	return fmt.Sprintf("%s/api/chapter/%s", strings.TrimRight(m.settings.APIBaseURL, "/"), chapterID)
}

// inChapterBounds applies the configured numeric chapter bounds.
// Chapters without a parseable number (extras, oneshots) always pass.
func (m *Manager) inChapterBounds(chapter model.Chapter) bool {
	num, ok := name.ChapterNumber(chapter.Name)
	if !ok {
		return true
	}
	if m.settings.ChapterBegin > 0 && num < m.settings.ChapterBegin {
		return false
	}
	if m.settings.ChapterEnd > 0 && num > m.settings.ChapterEnd {
		return false
	}
	return true
}

func (m *Manager) exportChapter(ctx context.Context, job chapterJob) error {
	body, err := m.httpClient.GetString(ctx, m.chapterURL(job.chapter.ID))
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching chapter %s: %v", job.chapter.Name, err), Level: LevelError})
		return err
	}

	pages, err := m.parser.ParsePages(body)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error parsing chapter %s: %v", job.chapter.Name, err), Level: LevelError})
		return err
	}

	opts := m.settings.ExporterOptions(job.title, job.chapter, job.next)
	if len(pages) > 0 {
		opts.Extension = pages[0].Extension
	}

	exporter, err := export.New(m.settings.SaveFormat, opts)
	if err != nil {
		return err
	}

	skipped := 0
	for _, page := range pages {
		if exporter.SkipImage(page.Index) {
			skipped++
			continue
		}

		data, err := m.downloadPage(ctx, page.URL)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading page %d of %s: %v", page.Index.Start, job.chapter.Name, err), Level: LevelError})
			return err
		}

		if m.settings.ResizePages {
			resized, err := m.imageService.Resize(data, m.settings.PageMaxSize, m.settings.PageMaxSize)
			if err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error resizing page %d of %s: %v", page.Index.Start, job.chapter.Name, err), Level: LevelWarning})
			} else {
				data = resized
			}
		}

		if err := exporter.AddImage(data, page.Index); err != nil {
			return err
		}

		atomic.AddInt32(&m.downloadedPages, 1)
		atomic.AddInt64(&m.receivedBytes, int64(len(data)))
	}

	if err := exporter.Close(); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error finalizing chapter %s: %v", job.chapter.Name, err), Level: LevelError})
		return err
	}

	atomic.AddInt32(&m.exportedChapters, 1)
	switch {
	case skipped == len(pages) && len(pages) > 0:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Already exported, skipping: %s %s", job.title.Name, job.chapter.Name), Level: LevelVerbose})
	default:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Exported %s %s (%d pages, %d skipped)", job.title.Name, job.chapter.Name, len(pages)-skipped, skipped), Level: LevelSuccess})
	}
	return nil
}

// downloadPage fetches one page image with exponential-backoff retries.
func (m *Manager) downloadPage(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	var err error

	retries := m.settings.DownloadMaxRetries
	if retries < 1 {
		retries = 1
	}
	for tries := 0; tries < retries; tries++ {
		data, err = m.httpClient.DownloadBytes(ctx, url)
		if err == nil {
			return data, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		m.waitForRetry(ctx, tries)
	}

	return nil, err
}

func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	cooldown := m.settings.DownloadRetryCooldown * math.Pow(m.settings.DownloadRetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
