package parsing

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// maxBareIntegerDigits bounds the last-resort integer pattern so phone
// numbers, tax ids and receipt serials are not read as money.
const maxBareIntegerDigits = 6

// amountPatterns are tried in order; a later pattern never claims text an
// earlier one already consumed.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,3}(?:\.\d{3})+(?:,\d{2})?`),
	regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d{2})?`),
	regexp.MustCompile(`\d{1,3}(?: \d{3})+(?:[.,]\d{2})?`),
	regexp.MustCompile(`\d+[.,]\d{2}`),
	regexp.MustCompile(`\d{2,}`),
}

// decimalPatterns are the amountPatterns that only match money-shaped text.
var decimalPatterns = amountPatterns[:4]

// AmountCandidate is a positive monetary value found on a receipt line.
type AmountCandidate struct {
	Raw   string
	Value decimal.Decimal
	Line  int
	Score float64

	start, end int
}

// ExtractAmounts returns every distinct positive amount found in line, in
// pattern order.
func ExtractAmounts(line string) []AmountCandidate {
	var (
		found    []AmountCandidate
		consumed [][2]int
		seen     = map[string]bool{}
	)
	for i, re := range amountPatterns {
		bare := i == len(amountPatterns)-1
		for _, loc := range re.FindAllStringIndex(line, -1) {
			start, end := loc[0], loc[1]
			if overlaps(consumed, start, end) || !standsAlone(line, start, end) {
				continue
			}
			raw := line[start:end]
			if bare && len(raw) > maxBareIntegerDigits {
				continue
			}
			consumed = append(consumed, [2]int{start, end})

			value, ok := NormalizeAmount(raw)
			if !ok {
				continue
			}
			key := value.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			found = append(found, AmountCandidate{Raw: raw, Value: value, start: start, end: end})
		}
	}
	return found
}

// NormalizeAmount converts a raw amount string in either European or
// US/Turkish-English notation to a decimal. It reports false for text that
// does not parse or is not positive.
func NormalizeAmount(raw string) (decimal.Decimal, bool) {
	s := strings.ReplaceAll(raw, " ", "")
	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")

	switch {
	case dot >= 0 && comma >= 0:
		sep, group := ".", ","
		if comma > dot {
			sep, group = ",", "."
		}
		if hasTwoDecimals(s, max(dot, comma)) {
			s = strings.ReplaceAll(s, group, "")
			s = strings.Replace(s, sep, ".", 1)
		} else {
			s = strings.NewReplacer(".", "", ",", "").Replace(s)
		}
	case comma >= 0:
		s = singleSeparator(s, ",", comma)
	case dot >= 0:
		s = singleSeparator(s, ".", dot)
	}

	value, err := decimal.NewFromString(s)
	if err != nil || !value.IsPositive() {
		return decimal.Zero, false
	}
	return value, true
}

// singleSeparator treats sep as the decimal point when it occurs once with
// exactly two digits after it, and as a thousands separator otherwise.
func singleSeparator(s, sep string, last int) string {
	if strings.Count(s, sep) == 1 && hasTwoDecimals(s, last) {
		return strings.Replace(s, sep, ".", 1)
	}
	return strings.ReplaceAll(s, sep, "")
}

func hasTwoDecimals(s string, sep int) bool {
	return len(s)-sep-1 == 2
}

// standsAlone rejects matches that are a fragment of a longer number: the
// neighbouring characters may not be digits or separators touching digits.
func standsAlone(line string, start, end int) bool {
	if start > 0 {
		prev := line[start-1]
		if isDigit(prev) || (isSeparator(prev) && start > 1 && isDigit(line[start-2])) {
			return false
		}
	}
	if end < len(line) {
		next := line[end]
		if isDigit(next) || (isSeparator(next) && end+1 < len(line) && isDigit(line[end+1])) {
			return false
		}
	}
	return true
}

func overlaps(spans [][2]int, start, end int) bool {
	for _, s := range spans {
		if start < s[1] && s[0] < end {
			return true
		}
	}
	return false
}

func looksLikeMoney(line string) bool {
	for _, re := range decimalPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isSeparator(b byte) bool { return b == '.' || b == ',' }
