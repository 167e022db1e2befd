package category

// brandConfidence is attached to a brand hit. Brand identity is the least
// ambiguous signal the receipt carries.
const brandConfidence = 0.9

type brandGroup struct {
	name     string
	category ID
	brands   []string
}

// brandTable is checked in order; the first group with a hit wins.
var brandTable = []brandGroup{
	{"supermarket", Food, []string{
		"migros", "bim", "a101", "şok market", "carrefoursa", "carrefour", "macrocenter",
		"file market", "happy center", "hakmar", "onur market", "metro grossmarket", "tarım kredi",
		"lidl", "aldi", "tesco", "walmart", "costco", "whole foods", "trader joe",
	}},
	{"restaurant", Food, []string{
		"starbucks", "kahve dünyası", "simit sarayı", "mcdonald", "mcdonalds", "burger king", "kfc",
		"domino", "dominos", "pizza hut", "popeyes", "little caesars", "tavuk dünyası", "baydöner",
		"yemeksepeti", "subway", "dunkin",
	}},
	{"fuel", Transport, []string{
		"shell", "opet", "petrol ofisi", "aytemiz", "bp", "total energies", "totalenergies",
		"lukoil", "alpet", "moil", "chevron", "exxon",
	}},
	{"transit", Transport, []string{
		"istanbulkart", "ankarakart", "bitaksi", "uber", "lyft", "marti", "pegasus",
		"türk hava yolları", "thy", "tcdd", "obilet", "ido", "hgs", "ogs",
	}},
	{"utility", Bills, []string{
		"turkcell", "vodafone", "türk telekom", "turknet", "superonline", "enerjisa",
		"ck enerji", "igdaş", "başkentgaz", "iski", "aski", "izsu",
	}},
	{"pharmacy", Health, []string{
		"eczane", "eczanesi", "pharmacy", "cvs", "walgreens",
	}},
	{"entertainment", Entertainment, []string{
		"netflix", "spotify", "disney", "blutv", "exxen", "cinemaximum", "paribu cineverse",
		"biletix", "passo", "steam", "playstation", "xbox",
	}},
	{"retail", Shopping, []string{
		"zara", "lc waikiki", "koton", "defacto", "mavi", "h&m", "boyner", "teknosa",
		"mediamarkt", "vatan bilgisayar", "trendyol", "hepsiburada", "amazon", "ikea",
		"decathlon", "apple store",
	}},
}

var foldedBrandTable = foldBrands(brandTable)

func foldBrands(groups []brandGroup) []brandGroup {
	out := make([]brandGroup, len(groups))
	for i, g := range groups {
		brands := make([]string, len(g.brands))
		for j, b := range g.brands {
			brands[j] = Fold(b)
		}
		out[i] = brandGroup{name: g.name, category: g.category, brands: brands}
	}
	return out
}

// BrandMatcher maps well-known merchant names straight to a category.
type BrandMatcher struct {
	groups []brandGroup
}

// NewBrandMatcher returns a matcher over the built-in brand lists.
func NewBrandMatcher() *BrandMatcher {
	return &BrandMatcher{groups: foldedBrandTable}
}

// Match returns the category of the first brand found in folded text.
// Brands match whole words only, so inflected or possessive spellings
// that matter ("eczanesi", "mcdonalds") are listed as entries of their own.
func (m *BrandMatcher) Match(folded string) (Result, bool) {
	for _, g := range m.groups {
		for _, b := range g.brands {
			if ContainsWord(folded, b) {
				return Result{Category: g.category, Confidence: brandConfidence, Source: SourceBrand}, true
			}
		}
	}
	return Result{}, false
}
