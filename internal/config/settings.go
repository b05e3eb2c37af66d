package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rokuso/mangadl/internal/export"
	"github.com/rokuso/mangadl/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Output settings
	Destination     string `json:"destination"`
	SaveFormat      string `json:"save_format"` // raw, cbz, pdf
	AddChapterTitle bool   `json:"add_chapter_title"`
	WriteComicInfo  bool   `json:"write_comic_info"`

	// Source settings
	APIBaseURL string `json:"api_base_url"`

	// Download settings
	MaxConcurrentChapters int     `json:"max_concurrent_chapters"`
	DownloadMaxRetries    int     `json:"download_max_retries"`
	DownloadRetryCooldown float64 `json:"download_retry_cooldown"`
	DownloadRetryExponent float64 `json:"download_retry_exponent"`

	// Chapter selection: numeric bounds on the chapter number,
	// inclusive. Zero means unbounded. Non-numeric chapters (extras,
	// oneshots) are always included.
	ChapterBegin int `json:"chapter_begin"`
	ChapterEnd   int `json:"chapter_end"`

	// Page post-processing
	ResizePages bool `json:"resize_pages"`
	PageMaxSize int  `json:"page_max_size"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		Destination:     filepath.Join(homeDir, "Manga"),
		SaveFormat:      export.FormatRaw,
		AddChapterTitle: false,
		WriteComicInfo:  false,

		APIBaseURL: "https://api.example.com",

		MaxConcurrentChapters: 1,
		DownloadMaxRetries:    7,
		DownloadRetryCooldown: 0.2,
		DownloadRetryExponent: 4.0,

		ResizePages: false,
		PageMaxSize: 2048,
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: defaults are returned so first runs
// work without any configuration.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ExporterOptions assembles the export options for one chapter from
// these settings.
func (s *Settings) ExporterOptions(title model.Title, chapter model.Chapter, next *model.Chapter) export.Options {
	return export.Options{
		Destination:     s.Destination,
		Title:           title,
		Chapter:         chapter,
		NextChapter:     next,
		AddChapterTitle: s.AddChapterTitle,
		ComicInfo:       s.WriteComicInfo,
	}
}
