package model

import "testing"

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  Language
	}{
		{"eng", LanguageEnglish},
		{"english", LanguageEnglish},
		{"", LanguageEnglish},
		{"garbage", LanguageEnglish},
		{"spa", LanguageSpanish},
		{"Spanish", LanguageSpanish},
		{"FRA", LanguageFrench},
		{"pt-br", LanguagePortuguese},
		{" rus ", LanguageRussian},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLanguage(tt.input); got != tt.want {
				t.Errorf("ParseLanguage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPageIndex(t *testing.T) {
	single := Page(4)
	if single.IsSpread {
		t.Error("Page(4) should not be a spread")
	}
	if single.Start != 4 || single.Stop != 4 {
		t.Errorf("Page(4) bounds = (%d, %d), want (4, 4)", single.Start, single.Stop)
	}
	if single.Width() != 1 {
		t.Errorf("Page(4).Width() = %d, want 1", single.Width())
	}

	spread := Spread(4, 5)
	if !spread.IsSpread {
		t.Error("Spread(4, 5) should be a spread")
	}
	if spread.Width() != 2 {
		t.Errorf("Spread(4, 5).Width() = %d, want 2", spread.Width())
	}
}
