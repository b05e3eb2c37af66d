// Package comicinfo builds ComicInfo.xml metadata documents for comic
// archives.
//
// ComicInfo.xml is the de-facto metadata sidecar understood by comic
// readers and library servers; embedding it lets them show series,
// chapter number and language without parsing file names.
//
//	info := comicinfo.Build(title, chapter, pageCount)
//	data, err := info.Marshal()
package comicinfo

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/rokuso/mangadl/internal/model"
	"github.com/rokuso/mangadl/internal/name"
	"github.com/rokuso/mangadl/internal/version"
)

// ComicInfo is the subset of the ComicInfo.xml schema that chapter
// metadata can fill in.
type ComicInfo struct {
	XMLName     xml.Name `xml:"ComicInfo"`
	Series      string   `xml:"Series,omitempty"`
	Title       string   `xml:"Title,omitempty"`
	Number      string   `xml:"Number,omitempty"`
	Year        int      `xml:"Year,omitempty"`
	LanguageISO string   `xml:"LanguageISO,omitempty"`
	PageCount   int      `xml:"PageCount,omitempty"`
	Notes       string   `xml:"Notes,omitempty"`
}

// Build assembles a ComicInfo document from chapter metadata.
//
// The chapter number is only set when the chapter name parses to a
// number; the publication year is subject to the same future-timestamp
// guard as file names.
func Build(title model.Title, chapter model.Chapter, pageCount int) ComicInfo {
	info := ComicInfo{
		Series:      name.Sanitize(title.Name),
		Title:       name.Sanitize(chapter.SubTitle),
		LanguageISO: title.Language.Code(),
		PageCount:   pageCount,
		Notes:       "Exported by " + version.Identity(),
	}

	if num, ok := name.ChapterNumber(chapter.Name); ok {
		info.Number = strconv.Itoa(num)
	}

	pubYear := time.Unix(chapter.StartTimestamp, 0).Year()
	if pubYear <= time.Now().Year() {
		info.Year = pubYear
	}

	return info
}

// Marshal renders the document as indented XML with the standard header.
func (ci ComicInfo) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(ci, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
