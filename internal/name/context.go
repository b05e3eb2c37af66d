package name

import (
	"fmt"
	"strings"
	"time"

	"github.com/rokuso/mangadl/internal/model"
)

// signatureTag is the fixed trailing tag every chapter suffix carries,
// in the style of scanlation group tags.
const signatureTag = "[mangadl]"

// Context is the immutable naming context for one (title, chapter) pair.
//
// A Context is computed once, when an exporter is constructed, and every
// page file name for that chapter derives deterministically from it plus
// a page index. Nothing in a Context changes after NewContext returns.
type Context struct {
	// TitleName is the sanitized series name, used as the top-level
	// directory name.
	TitleName string

	// Oneshot is true when the chapter is a oneshot.
	Oneshot bool

	// Extra is true when the chapter is an extra ("ex") chapter.
	Extra bool

	// ChapterPrefix is the part of a page name before the page number,
	// e.g. `Attack - On Titan - c042 (2019) (web)`.
	ChapterPrefix string

	// ChapterSuffix is the part of a page name after the page number:
	// optional extra-info tags followed by the signature tag.
	ChapterSuffix string

	// ChapterName is prefix and suffix joined with a space. It names the
	// chapter directory (raw export) or archive/document file.
	ChapterName string
}

// NewContext builds the naming context for a chapter.
//
// nextChapter is the chapter following this one in the title's listing,
// if known. It is only consulted for extra chapters, whose number is
// derived from the next chapter's number minus one with an "x1" suffix.
// When addChapterTitle is set, the sanitized subtitle is appended to the
// suffix as an extra-info tag.
//
// NewContext never fails: garbage chapter names fall back to their
// sanitized form as the chapter-number token.
func NewContext(title model.Title, chapter model.Chapter, nextChapter *model.Chapter, addChapterTitle bool) Context {
	ctx := Context{
		TitleName: Sanitize(title.Name),
		Oneshot:   IsOneshot(chapter.Name, chapter.SubTitle),
		Extra:     IsExtraChapter(chapter.Name),
	}

	var extraInfo []string
	if ctx.Oneshot {
		extraInfo = append(extraInfo, "[Oneshot]")
	}
	if addChapterTitle && chapter.SubTitle != "" {
		extraInfo = append(extraInfo, "["+Sanitize(chapter.SubTitle)+"]")
	}

	var nextName string
	if nextChapter != nil {
		nextName = nextChapter.Name
	}

	ctx.ChapterPrefix = ctx.formatChapterPrefix(
		chapter.Name,
		chapter.StartTimestamp,
		title.Language,
		nextName,
		nextChapter != nil,
	)
	ctx.ChapterSuffix = FormatChapterSuffix(extraInfo)
	ctx.ChapterName = ctx.ChapterPrefix + " " + ctx.ChapterSuffix

	return ctx
}

// formatChapterPrefix builds the space-joined chapter prefix following
// the manga naming scheme: sanitized title, optional language tag,
// a "-" separator, the chapter-number token, the publication year when
// it is plausible, and a trailing "(web)" marker.
func (c Context) formatChapterPrefix(chapterName string, startTimestamp int64, language model.Language, nextChapterName string, hasNext bool) string {
	components := []string{c.TitleName}

	if language != model.LanguageEnglish {
		components = append(components, "["+language.Code()+"]")
	}
	components = append(components, "-")
	components = append(components, c.chapterToken(chapterName, nextChapterName, hasNext))

	// A publication year later than the current year means the source
	// delivered a bogus timestamp; omit the year rather than show it.
	pubYear := time.Unix(startTimestamp, 0).Year()
	if pubYear <= time.Now().Year() {
		components = append(components, fmt.Sprintf("(%d)", pubYear))
	}
	components = append(components, "(web)")

	return strings.Join(components, " ")
}

// chapterToken derives the chapter-number token. The policy, in order:
//
//  1. Oneshots are chapter 0, with no prefix or suffix letter.
//  2. An extra chapter with a known next chapter takes the next
//     chapter's number minus one, with suffix "x1".
//  3. Any other chapter parses its own name.
//  4. If no number was resolved, the sanitized raw name is used
//     verbatim as the token.
//
// Resolved numbers are zero-padded to three digits and carry prefix "c"
// below 1000 and "d" from 1000 up.
func (c Context) chapterToken(chapterName, nextChapterName string, hasNext bool) string {
	var (
		num      int
		resolved bool
		prefix   string
		suffix   string
	)

	switch {
	case c.Oneshot:
		num, resolved = 0, true
	case c.Extra && hasNext:
		if n, ok := ChapterNumber(nextChapterName); ok {
			num, resolved = n-1, true
			suffix = "x1"
			prefix = numberPrefix(num)
		}
	default:
		if n, ok := ChapterNumber(chapterName); ok {
			num, resolved = n, true
			prefix = numberPrefix(num)
		}
	}

	if !resolved {
		return Sanitize(chapterName)
	}
	return fmt.Sprintf("%s%03d%s", prefix, num, suffix)
}

func numberPrefix(num int) string {
	if num < 1000 {
		return "c"
	}
	return "d"
}

// FormatChapterSuffix space-joins the extra-info tags, in order,
// followed by the fixed signature tag. With no extra tags the suffix is
// just the signature tag.
func FormatChapterSuffix(extraInfo []string) string {
	return strings.Join(append(append([]string(nil), extraInfo...), signatureTag), " ")
}

// PageName returns the file name for one page image.
//
// Single pages render as "p<NNN>", merged spreads as "p<NNN>-<NNN>" from
// the spread's bounds, both zero-padded to three digits. Any leading dot
// on ext is stripped before exactly one is re-added.
//
// Example:
//
//	ctx.PageName(model.Page(3), ".jpg")     // "... - p003 ... .jpg"
//	ctx.PageName(model.Spread(3, 5), "png") // "... - p003-005 ... .png"
func (c Context) PageName(index model.PageIndex, ext string) string {
	page := fmt.Sprintf("p%03d", index.Start)
	if index.IsSpread {
		page = fmt.Sprintf("p%03d-%03d", index.Start, index.Stop)
	}

	ext = strings.TrimLeft(ext, ".")

	return fmt.Sprintf("%s - %s %s.%s", c.ChapterPrefix, page, c.ChapterSuffix, ext)
}
