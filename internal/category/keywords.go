package category

import (
	"math"
	"strings"
)

// keywordSaturation is the number of distinct keyword hits at which keyword
// confidence reaches 1.0.
const keywordSaturation = 3

// rule maps one category to the folded substrings that indicate it.
type rule struct {
	category ID
	keywords []string
}

// keywordTable lists category nouns and common receipt vocabulary, Turkish
// first, English after. Entries are folded once at package init.
var keywordTable = []rule{
	{Food, []string{
		"market", "süpermarket", "gıda", "restoran", "restaurant", "lokanta", "kafe", "cafe",
		"kahve", "coffee", "yemek", "ekmek", "süt", "peynir", "fırın", "pastane", "bakkal",
		"manav", "kasap", "meyve", "sebze", "grocery", "food", "bakery",
	}},
	{Transport, []string{
		"benzin", "akaryakıt", "motorin", "dizel", "otopark", "taksi", "taxi", "otobüs",
		"metro", "ulaşım", "otoyol", "köprü", "istasyon", "fuel", "petrol", "parking", "transit",
	}},
	{Shopping, []string{
		"mağaza", "giyim", "ayakkabı", "elektronik", "alışveriş", "tekstil", "store", "clothing",
		"shoes", "electronics", "shop",
	}},
	{Bills, []string{
		"fatura", "elektrik", "doğalgaz", "su idaresi", "internet", "telefon", "aidat", "kira",
		"abonelik", "electricity", "utility", "water bill", "utilities",
	}},
	{Entertainment, []string{
		"sinema", "cinema", "konser", "concert", "tiyatro", "theatre", "eğlence", "oyun",
		"müze", "bilet", "ticket", "museum", "game",
	}},
	{Health, []string{
		"eczane", "pharmacy", "hastane", "hospital", "klinik", "clinic", "doktor", "doctor",
		"ilaç", "medicine", "diş hekimi", "dental", "sağlık", "muayene",
	}},
	{Education, []string{
		"okul", "school", "kurs", "course", "kitap", "book", "kırtasiye", "stationery",
		"üniversite", "university", "eğitim", "education", "tuition", "dershane",
	}},
	{Salary, []string{
		"maaş", "salary", "bordro", "payroll", "ücret ödemesi", "wage",
	}},
	{Investment, []string{
		"yatırım", "investment", "borsa", "hisse", "stock", "yatırım fonu", "altın", "gold",
		"kripto", "crypto", "döviz", "portföy",
	}},
}

var foldedKeywordTable = foldRules(keywordTable)

func foldRules(rules []rule) []rule {
	out := make([]rule, len(rules))
	for i, r := range rules {
		kws := make([]string, 0, len(r.keywords))
		seen := make(map[string]struct{}, len(r.keywords))
		for _, kw := range r.keywords {
			f := Fold(kw)
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			kws = append(kws, f)
		}
		out[i] = rule{category: r.category, keywords: kws}
	}
	return out
}

// KeywordMatcher scores text against the constant keyword table. It never
// comes back empty: with no hits it answers Default at confidence 0.3.
type KeywordMatcher struct {
	rules []rule
}

// NewKeywordMatcher returns a matcher over the built-in keyword table.
func NewKeywordMatcher() *KeywordMatcher {
	return &KeywordMatcher{rules: foldedKeywordTable}
}

// Match counts distinct keyword hits per category in folded text and returns
// the category with the most hits. Ties go to the category listed first.
func (m *KeywordMatcher) Match(folded string) Result {
	best := Result{Category: Default, Confidence: defaultConfidence, Source: SourceDefault}
	bestCount := 0
	for _, r := range m.rules {
		count := countHits(folded, r.keywords)
		if count > bestCount {
			bestCount = count
			best = Result{
				Category:   r.category,
				Confidence: math.Min(float64(count)/keywordSaturation, 1.0),
				Source:     SourceKeyword,
			}
		}
	}
	return best
}

// Confidence returns the keyword confidence for a specific category, or 0 if
// none of its keywords occur in folded text.
func (m *KeywordMatcher) Confidence(folded string, id ID) float64 {
	for _, r := range m.rules {
		if r.category == id {
			return math.Min(float64(countHits(folded, r.keywords))/keywordSaturation, 1.0)
		}
	}
	return 0
}

func countHits(folded string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			count++
		}
	}
	return count
}
