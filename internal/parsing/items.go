package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const minItemNameLen = 3

// currencyTokens are matched case-insensitively against whole tokens or
// symbol prefixes and suffixes.
var currencyTokens = []string{"tl", "try", "ytl", "usd", "eur", "gbp", "₺", "$", "€", "£"}

const currencySymbols = "₺$€£"

// ExtractItems pairs each line's amounts with the text left over once the
// numbers and currency markers are removed. Lines whose leftover is too
// short to be a name yield nothing.
func ExtractItems(lines []string) []Item {
	items := []Item{}
	for _, line := range lines {
		masked := maskDates(line)
		candidates := ExtractAmounts(masked)
		if len(candidates) == 0 {
			continue
		}
		name := itemName(masked, candidates)
		if utf8.RuneCountInString(name) < minItemNameLen {
			continue
		}
		for _, c := range candidates {
			items = append(items, Item{Name: name, Amount: c.Value})
		}
	}
	return items
}

func itemName(line string, candidates []AmountCandidate) string {
	b := []byte(line)
	for _, c := range candidates {
		for i := c.start; i < c.end; i++ {
			b[i] = ' '
		}
	}

	var kept []string
	for _, tok := range strings.Fields(string(b)) {
		tok = strings.Trim(tok, currencySymbols)
		if tok == "" || isCurrencyCode(strings.Trim(tok, ":.,;")) || looksLikeMoney(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.TrimFunc(strings.Join(kept, " "), func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r)
	})
}

func isCurrencyCode(tok string) bool {
	lower := strings.ToLower(tok)
	for _, c := range currencyTokens {
		if lower == c {
			return true
		}
	}
	return false
}
