package category

import "strings"

const (
	// sampleSimilarityThreshold is the minimum Jaccard similarity for a past
	// transaction to count toward its category.
	sampleSimilarityThreshold = 0.7
	// historyScoreThreshold is the minimum accumulated similarity a category
	// needs before the history matcher answers.
	historyScoreThreshold = 0.7
)

// HistoryEntry is one of the caller's past transactions as far as the
// classifier is concerned.
type HistoryEntry struct {
	Title    string
	Note     string
	Category ID
}

// TrainingSample is a folded history entry ready for similarity matching.
type TrainingSample struct {
	Text     string
	Category ID

	tokens map[string]struct{}
}

// BuildSamples derives training samples from history. The result is a fresh
// slice; callers may cache it for the lifetime of a session. Entries with no
// text, or labelled with a custom (non-standard) category, are skipped.
func BuildSamples(history []HistoryEntry) []TrainingSample {
	samples := make([]TrainingSample, 0, len(history))
	for _, h := range history {
		if !IsStandard(h.Category) {
			continue
		}
		text := Fold(strings.TrimSpace(h.Title + " " + h.Note))
		tokens := tokenSet(text)
		if len(tokens) == 0 {
			continue
		}
		samples = append(samples, TrainingSample{Text: text, Category: h.Category, tokens: tokens})
	}
	return samples
}

// HistoryMatcher classifies text by its similarity to the user's own past
// labelling.
type HistoryMatcher struct{}

// NewHistoryMatcher returns a HistoryMatcher.
func NewHistoryMatcher() *HistoryMatcher {
	return &HistoryMatcher{}
}

// Match accumulates Jaccard similarity per category over every sample more
// similar than 0.7 to the folded input, and returns the best category when
// its accumulated score also exceeds 0.7. Ties go to the category reached
// first in sample order.
func (m *HistoryMatcher) Match(folded string, samples []TrainingSample) (Result, bool) {
	input := tokenSet(folded)
	if len(input) == 0 || len(samples) == 0 {
		return Result{}, false
	}

	scores := make(map[ID]float64)
	var order []ID
	for _, s := range samples {
		tokens := s.tokens
		if tokens == nil {
			tokens = tokenSet(s.Text)
		}
		sim := jaccard(input, tokens)
		if sim <= sampleSimilarityThreshold {
			continue
		}
		if _, seen := scores[s.Category]; !seen {
			order = append(order, s.Category)
		}
		scores[s.Category] += sim
	}

	var best ID
	bestScore := 0.0
	for _, id := range order {
		if scores[id] > bestScore {
			best = id
			bestScore = scores[id]
		}
	}
	if bestScore <= historyScoreThreshold {
		return Result{}, false
	}
	confidence := bestScore
	if confidence > 1 {
		confidence = 1
	}
	return Result{Category: best, Confidence: confidence, Source: SourceHistory}, true
}

// jaccard returns |a ∩ b| / |a ∪ b|.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for t := range small {
		if _, ok := large[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
