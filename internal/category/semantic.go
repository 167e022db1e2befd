package category

import (
	"fmt"
	"log/slog"
	"math"
)

// semanticThreshold is the minimum cosine similarity for a semantic answer.
const semanticThreshold = 0.5

// Embedder turns text into a vector. Implementations live in the scanning
// package; the classifier treats a failed call as "no semantic signal".
type Embedder interface {
	Embed(text string) ([]float32, error)
}

// labels describe each standard category in words an embedding model can
// place; they are embedded once when the matcher is built.
var labels = map[ID]string{
	Food:          "food, groceries, supermarket, restaurant, cafe, coffee",
	Transport:     "transport, fuel, gas station, taxi, public transit, parking",
	Shopping:      "shopping, clothing, electronics, retail store",
	Bills:         "bills, utilities, electricity, water, internet, phone",
	Entertainment: "entertainment, cinema, concert, streaming, games, tickets",
	Health:        "health, pharmacy, hospital, doctor, medicine",
	Education:     "education, school, course, books, tuition",
	Salary:        "salary, wages, payroll, income",
	Investment:    "investment, stocks, funds, gold, crypto",
	Other:         "other, miscellaneous",
}

type labelVector struct {
	category ID
	vector   []float32
}

// SemanticMatcher compares an input embedding with precomputed category label
// embeddings. Its label table is written once in NewSemanticMatcher and only
// read afterwards.
type SemanticMatcher struct {
	embedder Embedder
	labels   []labelVector
}

// NewSemanticMatcher embeds every category label up front. It fails if the
// embedder cannot embed a label, in which case the caller should run without
// a semantic matcher.
func NewSemanticMatcher(embedder Embedder) (*SemanticMatcher, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	vectors := make([]labelVector, 0, len(standard))
	for _, id := range standard {
		v, err := embedder.Embed(labels[id])
		if err != nil {
			return nil, fmt.Errorf("embedding label %q: %w", id, err)
		}
		vectors = append(vectors, labelVector{category: id, vector: v})
	}
	return &SemanticMatcher{embedder: embedder, labels: vectors}, nil
}

// Match embeds text and returns the closest category if its cosine
// similarity exceeds 0.5. Ties go to the category listed first.
func (m *SemanticMatcher) Match(text string) (Result, bool) {
	v, err := m.embedder.Embed(text)
	if err != nil {
		slog.Debug("Semantic embedding failed", "error", err)
		return Result{}, false
	}

	var best ID
	bestSim := math.Inf(-1)
	for _, l := range m.labels {
		sim := cosine(v, l.vector)
		if sim > bestSim {
			best = l.category
			bestSim = sim
		}
	}
	if bestSim <= semanticThreshold {
		return Result{}, false
	}
	return Result{Category: best, Confidence: math.Min(bestSim, 1.0), Source: SourceSemantic}, true
}

// cosine returns a·b / (|a||b|), or 0 when either vector is empty, zero, or
// the dimensions differ.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
