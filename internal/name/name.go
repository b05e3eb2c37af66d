package name

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// Characters that are unsafe in file names or confuse filesystem
	// navigation. Full-width brackets show up in Japanese titles.
	blacklistChars = regexp.MustCompile("[~`!@$^*\\\\【】]")

	// Bracketed groups get sentence-case rather than full title-case so
	// acronym-like content inside them is not mangled word by word.
	bracketGroups = regexp.MustCompile(`\((.*?)\)|\[(.*?)\]|\{(.*?)\}`)
)

// Sanitize turns an arbitrary, possibly messy name into a filesystem-safe,
// consistently cased one.
//
// The following transformations are applied, in order:
//   - Blacklisted characters (~ ` ! @ $ ^ * \ and full-width brackets) are removed
//   - ": " becomes " - ", a bare ":" becomes "-"
//   - "/" becomes " of " (avoids path-separator collisions)
//   - Each (...), [...] or {...} group is sentence-cased
//   - Words containing an apostrophe are capitalized only at the first
//     letter ("it's" becomes "It's", not "It'S"); all other words are
//     title-cased
//   - Whitespace runs collapse to single spaces
//
// Sanitize is idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
//
// Example:
//
//	Sanitize("Attack: On Titan") // Returns "Attack - On Titan"
//	Sanitize("it's mine")        // Returns "It's Mine"
func Sanitize(path string) string {
	s := blacklistChars.ReplaceAllString(path, "")
	s = strings.ReplaceAll(s, ": ", " - ")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, "/", " of ")

	tokens := strings.Fields(s)
	for i, token := range tokens {
		token = bracketGroups.ReplaceAllStringFunc(token, capitalize)
		if strings.Contains(token, "'") {
			token = capitalize(token)
		} else {
			token = titleCase(token)
		}
		tokens[i] = token
	}

	return strings.Join(tokens, " ")
}

// ChapterNumber parses a chapter name like "#042" into its number.
//
// Leading '#' characters are stripped before parsing. Non-numeric names
// ("ex", "omake", ...) are expected input, not an error: the second
// return value reports whether a number was found.
func ChapterNumber(name string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimLeft(name, "#"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsOneshot reports whether a chapter is a oneshot, judged by the
// substrings "one" and "shot" (case-insensitive) both appearing in the
// chapter name or both appearing in the subtitle. The two fields are
// checked independently, not concatenated.
func IsOneshot(chapterName, subTitle string) bool {
	for _, s := range []string{chapterName, subTitle} {
		s = strings.ToLower(s)
		if strings.Contains(s, "one") && strings.Contains(s, "shot") {
			return true
		}
	}
	return false
}

// IsExtraChapter reports whether a chapter name denotes an extra
// chapter: stripping leading and trailing '#' must yield exactly "ex".
func IsExtraChapter(chapterName string) bool {
	return strings.Trim(chapterName, "#") == "ex"
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if i == 0 {
			runes[i] = unicode.ToUpper(r)
		} else {
			runes[i] = unicode.ToLower(r)
		}
	}
	return string(runes)
}

// titleCase upper-cases the first letter of every letter run and
// lower-cases the rest, so "don't" becomes "Don'T" and "abc1def"
// becomes "Abc1Def". Callers route apostrophe words through capitalize
// instead to keep contractions readable.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if inWord {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			inWord = true
		} else {
			b.WriteRune(r)
			inWord = false
		}
	}
	return b.String()
}
