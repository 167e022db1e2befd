package category

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s for keyword matching. Turkish casing rules are applied
// first so that "İ" becomes "i" and "I" becomes "ı"; the dotless ı is then
// folded to i and combining marks are stripped, which makes "PARA ÜSTÜ",
// "para üstü" and "PARA USTU" all compare equal.
//
// Casers and transform chains carry internal state, so both are built per call.
func Fold(s string) string {
	s = cases.Lower(language.Turkish).String(s)
	s = strings.ReplaceAll(s, "ı", "i")

	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return folded
}

// tokenSet splits folded text on whitespace into a set.
func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// ContainsWord reports whether kw occurs in text as a whole word or phrase,
// bounded on both sides by the text's ends or by a rune that is neither a
// letter nor a digit.
func ContainsWord(text, kw string) bool {
	if kw == "" {
		return false
	}
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], kw)
		if i < 0 {
			return false
		}
		start := offset + i
		if isBoundaryBefore(text, start) && isBoundaryAfter(text, start+len(kw)) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isBoundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func isBoundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
