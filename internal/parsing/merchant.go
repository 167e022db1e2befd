package parsing

import (
	"unicode"
	"unicode/utf8"
)

const (
	maxMerchantLines = 5
	minMerchantLen   = 3
	maxMerchantLen   = 50
)

// ExtractMerchant returns the first header line that reads like a business
// name, or "" when none qualifies. Lines carrying a date or any amount
// candidate, bare integers such as receipt numbers included, are skipped.
func ExtractMerchant(lines []string) string {
	for _, line := range lines[:min(len(lines), maxMerchantLines)] {
		n := utf8.RuneCountInString(line)
		if n < minMerchantLen || n > maxMerchantLen {
			continue
		}
		first, _ := utf8.DecodeRuneInString(line)
		if unicode.IsDigit(first) {
			continue
		}
		if looksLikeDate(line) || len(ExtractAmounts(maskDates(line))) > 0 {
			continue
		}
		return line
	}
	return ""
}
