package parsing

import (
	"regexp"
	"strings"
	"time"
)

// maxDateLines is how far down the receipt dates are looked for. Receipts
// print the transaction date in the header; later dates are usually warranty
// or return deadlines.
const maxDateLines = 10

type datePattern struct {
	re      *regexp.Regexp
	layouts []string
}

var datePatterns = []datePattern{
	{
		re:      regexp.MustCompile(`\b\d{1,2}[./]\d{1,2}[./]\d{4}\b`),
		layouts: []string{"2.1.2006", "2/1/2006"},
	},
	{
		re:      regexp.MustCompile(`\b\d{1,2}[./]\d{1,2}[./]\d{2}\b`),
		layouts: []string{"2.1.06", "2/1/06"},
	},
	{
		re:      regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		layouts: []string{"2006-01-02"},
	},
}

var timePattern = regexp.MustCompile(`\b\d{1,2}:\d{2}(?::\d{2})?\b`)

// ExtractDate returns the first date in the leading lines that parses to a
// real calendar date.
func ExtractDate(lines []string) *time.Time {
	for _, line := range lines[:min(len(lines), maxDateLines)] {
		for _, p := range datePatterns {
			for _, match := range p.re.FindAllString(line, -1) {
				if t, ok := parseDate(match, p.layouts); ok {
					return &t
				}
			}
		}
	}
	return nil
}

func parseDate(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func looksLikeDate(line string) bool {
	for _, p := range datePatterns {
		if p.re.MatchString(line) {
			return true
		}
	}
	return false
}

// maskDates blanks out dates and clock times so their digits are not read as
// amounts. Byte offsets are preserved.
func maskDates(line string) string {
	blank := func(s string) string { return strings.Repeat(" ", len(s)) }
	for _, p := range datePatterns {
		line = p.re.ReplaceAllStringFunc(line, blank)
	}
	return timePattern.ReplaceAllStringFunc(line, blank)
}
