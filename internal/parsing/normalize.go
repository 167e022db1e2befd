package parsing

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// glyphFixes repairs characters OCR and PDF extraction commonly produce.
// A dotted i written as i + combining dot above (what naive lowercasing of
// "İ" yields) collapses to a plain i; odd spaces become plain spaces.
var glyphFixes = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\t", " ",
	"\u00a0", " ",
	"\u2007", " ",
	"\u2009", " ",
	"\u202f", " ",
	"i\u0307", "i",
	"\u0131\u0307", "i",
)

// NormalizeLines splits raw text into trimmed, non-empty lines after NFC
// normalization and glyph fixes. Runs of whitespace inside a line collapse to
// a single space.
func NormalizeLines(raw string) []string {
	text := glyphFixes.Replace(norm.NFC.String(raw))
	parts := strings.Split(text, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		line := strings.Join(strings.Fields(p), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
