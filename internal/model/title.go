package model

import "strings"

// Language identifies the translation language of a title.
//
// Languages are represented by their three-letter codes as used in the
// manga naming scheme. English is the unmarked default: names for English
// titles carry no language tag, while every other language is rendered
// as an explicit "[code]" tag.
type Language string

const (
	// LanguageEnglish is the default, unmarked language.
	LanguageEnglish Language = "eng"

	LanguageSpanish    Language = "spa"
	LanguageFrench     Language = "fra"
	LanguageGerman     Language = "deu"
	LanguageIndonesian Language = "ind"
	LanguagePortuguese Language = "por"
	LanguageRussian    Language = "rus"
	LanguageThai       Language = "tha"
	LanguageVietnamese Language = "vie"
)

// Code returns the three-letter language code used in file names.
func (l Language) Code() string {
	return string(l)
}

// ParseLanguage maps a language string from config or an upstream source
// to a Language. Both codes ("spa") and common English names ("spanish")
// are accepted. Unknown values fall back to English, the unmarked default.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spa", "spanish", "es":
		return LanguageSpanish
	case "fra", "french", "fr":
		return LanguageFrench
	case "deu", "ger", "german", "de":
		return LanguageGerman
	case "ind", "indonesian", "id":
		return LanguageIndonesian
	case "por", "portuguese", "pt", "pt-br":
		return LanguagePortuguese
	case "rus", "russian", "ru":
		return LanguageRussian
	case "tha", "thai", "th":
		return LanguageThai
	case "vie", "vietnamese", "vi":
		return LanguageVietnamese
	default:
		return LanguageEnglish
	}
}

// Title represents a manga title (series) as supplied by an upstream
// metadata source.
//
// Title is an immutable input: the exporter layer never modifies it, it
// only derives sanitized names from it.
type Title struct {
	// ID is the upstream identifier of the title.
	ID string

	// Name is the raw series name as delivered by the source. It may
	// contain characters that are unsafe in file names; use the name
	// package to sanitize it.
	Name string

	// Language is the translation language of this title.
	Language Language
}
