package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/zombor/receipt-lens/internal/category"
)

const (
	priorityKeywordScore = 2.0
	currencyScore        = 0.5
	lastTokenScore       = 0.3
	magnitudeDivisor     = 1000.0
)

// minFallbackAmount filters item counts and short codes out of the
// unlabeled fallback.
var minFallbackAmount = decimal.NewFromInt(1)

// exclusionKeywords mark cash tendered, change due and refunds. They are
// stored folded, the form category.Fold produces, and match whole words only
// so that "cashier" or "exchange" lines still count.
var exclusionKeywords = []string{
	"nakit",
	"para ustu",
	"paraustu",
	"iade",
	"iadesi",
	"change",
	"cash",
	"refund",
	"tendered",
}

// priorityKeywords mark the payable total. Stored folded.
var priorityKeywords = []string{
	"toplam",
	"genel toplam",
	"tutar",
	"odenecek",
	"total",
	"grand total",
	"amount due",
	"balance",
	"bakiye",
	"invoice total",
	"fatura toplami",
	"odeme tutari",
	"payment amount",
}

// SelectTotal picks the single amount most likely to be the receipt total.
// When any line carries a priority keyword only those lines compete and the
// highest score wins; otherwise the largest amount of at least one unit is
// taken. It returns nil when nothing qualifies.
func SelectTotal(lines []string) *decimal.Decimal {
	var prioritized, unlabeled []AmountCandidate

	for i, line := range lines {
		folded := category.Fold(line)
		if containsAnyWord(folded, exclusionKeywords) {
			continue
		}
		hits := countKeywords(folded, priorityKeywords)
		masked := maskDates(line)

		for _, c := range ExtractAmounts(masked) {
			c.Line = i
			c.Score = scoreCandidate(masked, c, hits)
			if hits > 0 {
				prioritized = append(prioritized, c)
			} else {
				unlabeled = append(unlabeled, c)
			}
		}
	}

	if best, ok := highestScore(prioritized); ok {
		return &best.Value
	}
	if best, ok := largestValue(unlabeled); ok {
		return &best.Value
	}
	return nil
}

func scoreCandidate(line string, c AmountCandidate, keywordHits int) float64 {
	score := priorityKeywordScore * float64(keywordHits)
	if currencyAdjacent(line, c.start, c.end) {
		score += currencyScore
	}
	score += c.Value.InexactFloat64() / magnitudeDivisor
	if strings.TrimSpace(line[c.end:]) == "" {
		score += lastTokenScore
	}
	return score
}

func highestScore(candidates []AmountCandidate) (AmountCandidate, bool) {
	var (
		best  AmountCandidate
		found bool
	)
	for _, c := range candidates {
		if !found || c.Score > best.Score {
			best, found = c, true
		}
	}
	return best, found
}

func largestValue(candidates []AmountCandidate) (AmountCandidate, bool) {
	var (
		best  AmountCandidate
		found bool
	)
	for _, c := range candidates {
		if c.Value.LessThan(minFallbackAmount) {
			continue
		}
		if !found || c.Value.GreaterThan(best.Value) {
			best, found = c, true
		}
	}
	return best, found
}

// currencyAdjacent reports whether a currency code or symbol sits directly
// before or after the span, ignoring spaces.
func currencyAdjacent(line string, start, end int) bool {
	before := strings.ToLower(strings.TrimRight(line[:start], " "))
	after := strings.ToLower(strings.TrimLeft(line[end:], " "))
	for _, tok := range currencyTokens {
		if strings.HasSuffix(before, tok) && boundaryBefore(before, len(before)-len(tok)) {
			return true
		}
		if strings.HasPrefix(after, tok) && boundaryAfter(after, len(tok)) {
			return true
		}
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsLetter(r)
}

func boundaryAfter(s string, i int) bool {
	if i == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !unicode.IsLetter(r)
}

func containsAnyWord(folded string, keywords []string) bool {
	for _, kw := range keywords {
		if category.ContainsWord(folded, kw) {
			return true
		}
	}
	return false
}

func countKeywords(folded string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			n++
		}
	}
	return n
}
