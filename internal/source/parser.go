package source

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/rokuso/mangadl/internal/model"
	"github.com/rokuso/mangadl/internal/source/dto"
)

// Page is one downloadable page image of a chapter, in reading order.
type Page struct {
	// Index is the page slot this image fills: a single page, or two
	// slots for a merged spread.
	Index model.PageIndex

	// URL is where the encoded image bytes can be fetched.
	URL string

	// Extension is the image file extension without the leading dot,
	// derived from the URL path. Defaults to "jpg".
	Extension string
}

// Parser converts upstream API responses into model types.
//
// The source API serves JSON documents: one per title (metadata plus
// chapter listing) and one per chapter (the ordered page listing).
// Parser only parses; fetching is the download manager's job.
//
// Example usage:
//
//	parser := source.NewParser()
//
//	body, _ := client.GetString(ctx, titleURL)
//	title, chapters, err := parser.ParseTitle(body)
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseTitle extracts a title and its chapter listing from a title API
// response.
//
// Chapters keep the order the source delivered; callers rely on that
// order to find the chapter following an extra chapter.
//
// Returns an error if the JSON is malformed or carries no title name.
func (p *Parser) ParseTitle(body string) (model.Title, []model.Chapter, error) {
	var wire dto.Title
	if err := json.Unmarshal([]byte(body), &wire); err != nil {
		return model.Title{}, nil, fmt.Errorf("parsing title response: %w", err)
	}
	if wire.Name == "" {
		return model.Title{}, nil, fmt.Errorf("title response carries no name")
	}

	title := model.Title{
		ID:       wire.ID,
		Name:     wire.Name,
		Language: model.ParseLanguage(wire.Language),
	}

	chapters := make([]model.Chapter, 0, len(wire.Chapters))
	for _, c := range wire.Chapters {
		chapters = append(chapters, model.Chapter{
			ID:             c.ID,
			Name:           c.Name,
			SubTitle:       c.SubTitle,
			StartTimestamp: c.StartTimestamp,
		})
	}

	return title, chapters, nil
}

// ParsePages extracts the ordered page listing from a chapter API
// response and assigns page indices.
//
// Pages are numbered from zero in delivery order. An image marked as a
// spread occupies two consecutive slots and gets a range index, so the
// numbering of the following pages stays aligned with the physical
// book.
func (p *Parser) ParsePages(body string) ([]Page, error) {
	var wire dto.PageList
	if err := json.Unmarshal([]byte(body), &wire); err != nil {
		return nil, fmt.Errorf("parsing page response: %w", err)
	}

	pages := make([]Page, 0, len(wire.Pages))
	slot := 0
	for _, wp := range wire.Pages {
		index := model.Page(slot)
		if wp.Spread {
			index = model.Spread(slot, slot+1)
		}
		slot += index.Width()

		pages = append(pages, Page{
			Index:     index,
			URL:       wp.URL,
			Extension: urlExtension(wp.URL),
		})
	}

	return pages, nil
}

// urlExtension extracts the image extension from a page URL, ignoring
// any query string. Unrecognizable URLs default to "jpg".
func urlExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "jpg"
	}
	ext := strings.TrimPrefix(path.Ext(u.Path), ".")
	if ext == "" {
		return "jpg"
	}
	return strings.ToLower(ext)
}
