package name

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rokuso/mangadl/internal/model"
)

// pastTimestamp is a fixed publication time well in the past
// (2019-11-15), so the year component is always rendered.
const pastTimestamp = 1573776000

func englishTitle() model.Title {
	return model.Title{Name: "attack: on titan", Language: model.LanguageEnglish}
}

func TestNewContext_RegularChapter(t *testing.T) {
	chapter := model.Chapter{Name: "#5", StartTimestamp: pastTimestamp}
	ctx := NewContext(englishTitle(), chapter, nil, false)

	if ctx.TitleName != "Attack - On Titan" {
		t.Errorf("TitleName = %q, want %q", ctx.TitleName, "Attack - On Titan")
	}
	if ctx.Oneshot || ctx.Extra {
		t.Errorf("chapter flagged oneshot=%v extra=%v, want neither", ctx.Oneshot, ctx.Extra)
	}
	if !strings.Contains(ctx.ChapterPrefix, "c005") {
		t.Errorf("prefix %q should contain %q", ctx.ChapterPrefix, "c005")
	}
	if strings.Contains(ctx.ChapterPrefix, "[eng]") {
		t.Errorf("prefix %q should not carry a language tag for English", ctx.ChapterPrefix)
	}
	if !strings.Contains(ctx.ChapterPrefix, "(2019)") {
		t.Errorf("prefix %q should contain the publication year", ctx.ChapterPrefix)
	}
	if !strings.HasSuffix(ctx.ChapterPrefix, "(web)") {
		t.Errorf("prefix %q should end with (web)", ctx.ChapterPrefix)
	}
	if ctx.ChapterName != ctx.ChapterPrefix+" "+ctx.ChapterSuffix {
		t.Errorf("ChapterName %q is not prefix + space + suffix", ctx.ChapterName)
	}
}

func TestNewContext_LanguageTag(t *testing.T) {
	title := model.Title{Name: "one piece", Language: model.LanguageSpanish}
	chapter := model.Chapter{Name: "#100", StartTimestamp: pastTimestamp}
	ctx := NewContext(title, chapter, nil, false)

	if !strings.Contains(ctx.ChapterPrefix, "[spa]") {
		t.Errorf("prefix %q should contain [spa]", ctx.ChapterPrefix)
	}
}

func TestNewContext_HighChapterNumber(t *testing.T) {
	chapter := model.Chapter{Name: "#1001", StartTimestamp: pastTimestamp}
	ctx := NewContext(englishTitle(), chapter, nil, false)

	if !strings.Contains(ctx.ChapterPrefix, "d1001") {
		t.Errorf("prefix %q should contain d1001 for chapters >= 1000", ctx.ChapterPrefix)
	}
}

func TestNewContext_Oneshot(t *testing.T) {
	chapter := model.Chapter{Name: "One Shot", StartTimestamp: pastTimestamp}
	ctx := NewContext(englishTitle(), chapter, nil, false)

	if !ctx.Oneshot {
		t.Fatal("chapter should be flagged as oneshot")
	}
	if !strings.Contains(ctx.ChapterPrefix, " 000 ") {
		t.Errorf("prefix %q should contain bare token 000", ctx.ChapterPrefix)
	}
	if !strings.Contains(ctx.ChapterSuffix, "[Oneshot]") {
		t.Errorf("suffix %q should contain [Oneshot]", ctx.ChapterSuffix)
	}
}

func TestNewContext_ExtraChapterWithNext(t *testing.T) {
	chapter := model.Chapter{Name: "ex", StartTimestamp: pastTimestamp}
	next := model.Chapter{Name: "#6"}
	ctx := NewContext(englishTitle(), chapter, &next, false)

	if !ctx.Extra {
		t.Fatal("chapter should be flagged as extra")
	}
	if !strings.Contains(ctx.ChapterPrefix, "c005x1") {
		t.Errorf("prefix %q should contain c005x1", ctx.ChapterPrefix)
	}
}

func TestNewContext_ExtraChapterWithoutNext(t *testing.T) {
	chapter := model.Chapter{Name: "ex", StartTimestamp: pastTimestamp}
	ctx := NewContext(englishTitle(), chapter, nil, false)

	// With no next chapter to anchor on, the sanitized raw name is the
	// token, used verbatim.
	if !strings.Contains(ctx.ChapterPrefix, "- Ex ") {
		t.Errorf("prefix %q should fall back to the sanitized chapter name", ctx.ChapterPrefix)
	}
}

func TestNewContext_NonNumericChapter(t *testing.T) {
	chapter := model.Chapter{Name: "omake", StartTimestamp: pastTimestamp}
	ctx := NewContext(englishTitle(), chapter, nil, false)

	if !strings.Contains(ctx.ChapterPrefix, "Omake") {
		t.Errorf("prefix %q should contain the sanitized fallback token", ctx.ChapterPrefix)
	}
}

func TestNewContext_FutureTimestampOmitsYear(t *testing.T) {
	future := time.Now().AddDate(2, 0, 0)
	chapter := model.Chapter{Name: "#5", StartTimestamp: future.Unix()}
	ctx := NewContext(englishTitle(), chapter, nil, false)

	if strings.Contains(ctx.ChapterPrefix, fmt.Sprintf("(%d)", future.Year())) {
		t.Errorf("prefix %q should omit the bogus future year", ctx.ChapterPrefix)
	}
	if !strings.HasSuffix(ctx.ChapterPrefix, "(web)") {
		t.Errorf("prefix %q should still end with (web)", ctx.ChapterPrefix)
	}
}

func TestNewContext_ChapterTitleTag(t *testing.T) {
	chapter := model.Chapter{Name: "#7", SubTitle: "the BEGINNING", StartTimestamp: pastTimestamp}

	with := NewContext(englishTitle(), chapter, nil, true)
	if !strings.Contains(with.ChapterSuffix, "[The Beginning]") {
		t.Errorf("suffix %q should contain the sanitized subtitle tag", with.ChapterSuffix)
	}

	without := NewContext(englishTitle(), chapter, nil, false)
	if strings.Contains(without.ChapterSuffix, "Beginning") {
		t.Errorf("suffix %q should not contain the subtitle tag", without.ChapterSuffix)
	}
}

func TestFormatChapterSuffix(t *testing.T) {
	if got := FormatChapterSuffix(nil); got != signatureTag {
		t.Errorf("FormatChapterSuffix(nil) = %q, want just the signature tag", got)
	}

	got := FormatChapterSuffix([]string{"[Oneshot]", "[Extra]"})
	want := "[Oneshot] [Extra] " + signatureTag
	if got != want {
		t.Errorf("FormatChapterSuffix = %q, want %q", got, want)
	}
}

func TestPageName(t *testing.T) {
	chapter := model.Chapter{Name: "#5", StartTimestamp: pastTimestamp}
	ctx := NewContext(englishTitle(), chapter, nil, false)

	single := ctx.PageName(model.Page(3), ".jpg")
	if !strings.Contains(single, " - p003 ") {
		t.Errorf("page name %q should contain ' - p003 '", single)
	}
	if !strings.HasSuffix(single, ".jpg") {
		t.Errorf("page name %q should end with .jpg", single)
	}
	if strings.Contains(single, "..") {
		t.Errorf("page name %q has a doubled dot", single)
	}

	spread := ctx.PageName(model.Spread(3, 5), "png")
	if !strings.Contains(spread, "p003-005") {
		t.Errorf("spread page name %q should contain p003-005", spread)
	}
	if !strings.HasSuffix(spread, ".png") {
		t.Errorf("spread page name %q should end with .png", spread)
	}
}
