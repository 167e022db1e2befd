package category

// ID identifies a spending category. The classifier only ever produces one of
// the standard IDs below; user-defined categories are opaque IDs owned by the
// caller and only show up in history entries.
type ID string

const (
	Food          ID = "food"
	Transport     ID = "transport"
	Shopping      ID = "shopping"
	Bills         ID = "bills"
	Entertainment ID = "entertainment"
	Health        ID = "health"
	Education     ID = "education"
	Salary        ID = "salary"
	Investment    ID = "investment"
	Other         ID = "other"
)

// Default is returned when no signal matches.
const Default = Shopping

// defaultConfidence is the confidence attached to Default when nothing matched.
const defaultConfidence = 0.3

var standard = []ID{
	Food,
	Transport,
	Shopping,
	Bills,
	Entertainment,
	Health,
	Education,
	Salary,
	Investment,
	Other,
}

// Standard returns the closed set of built-in categories in their canonical order.
func Standard() []ID {
	out := make([]ID, len(standard))
	copy(out, standard)
	return out
}

// IsStandard reports whether id is one of the built-in categories.
func IsStandard(id ID) bool {
	for _, s := range standard {
		if s == id {
			return true
		}
	}
	return false
}

// Source names the signal that produced a Result.
type Source string

const (
	SourceBrand    Source = "brand"
	SourceHistory  Source = "history"
	SourceKeyword  Source = "keyword"
	SourceSemantic Source = "semantic"
	SourceDefault  Source = "default"
)

// Result is a category guess with its confidence in [0, 1].
type Result struct {
	Category   ID      `json:"category"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}
