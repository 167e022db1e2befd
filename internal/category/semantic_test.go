package category

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

// fakeEmbedder embeds each category label as a one-hot vector and looks
// other inputs up in a table.
type fakeEmbedder struct {
	inputs   map[string][]float32
	labelErr error
	calls    int
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{inputs: make(map[string][]float32)}
}

func oneHot(id ID, weight float32) []float32 {
	v := make([]float32, len(standard))
	for i, s := range standard {
		if s == id {
			v[i] = weight
		}
	}
	return v
}

func (f *fakeEmbedder) Embed(text string) ([]float32, error) {
	f.calls++
	for id, label := range labels {
		if label == text {
			if f.labelErr != nil {
				return nil, f.labelErr
			}
			return oneHot(id, 1), nil
		}
	}
	v, ok := f.inputs[text]
	if !ok {
		return nil, errors.New("unknown input")
	}
	return v, nil
}

var _ = Describe("SemanticMatcher", func() {
	var embedder *fakeEmbedder

	BeforeEach(func() {
		embedder = newFakeEmbedder()
	})

	Describe("NewSemanticMatcher", func() {
		It("embeds every standard label", func() {
			_, err := NewSemanticMatcher(embedder)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(embedder.calls).To(gomega.Equal(len(standard)))
		})

		When("a label cannot be embedded", func() {
			var setupErr error

			BeforeEach(func() {
				setupErr = errors.New("backend down")
				embedder.labelErr = setupErr
			})

			It("returns the error", func() {
				_, err := NewSemanticMatcher(embedder)
				gomega.Expect(err).To(gomega.MatchError(setupErr))
			})
		})

		It("requires an embedder", func() {
			_, err := NewSemanticMatcher(nil)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	Describe("Match", func() {
		var matcher *SemanticMatcher

		BeforeEach(func() {
			var err error
			matcher, err = NewSemanticMatcher(embedder)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		It("returns the closest category above 0.5", func() {
			embedder.inputs["vitamin takviyesi"] = []float32{0, 0, 0, 0, 0, 0.9, 0, 0, 0, 0.1}
			r, ok := matcher.Match("vitamin takviyesi")
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(r.Category).To(gomega.Equal(Health))
			gomega.Expect(r.Source).To(gomega.Equal(SourceSemantic))
			gomega.Expect(r.Confidence).To(gomega.BeNumerically(">", 0.5))
		})

		It("does not answer at or below 0.5", func() {
			embedder.inputs["belirsiz"] = []float32{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
			_, ok := matcher.Match("belirsiz")
			gomega.Expect(ok).To(gomega.BeFalse())
		})

		It("does not answer when embedding fails", func() {
			_, ok := matcher.Match("not in table")
			gomega.Expect(ok).To(gomega.BeFalse())
		})
	})
})

var _ = Describe("cosine", func() {
	It("is 1 for parallel vectors", func() {
		gomega.Expect(cosine([]float32{1, 2}, []float32{2, 4})).To(gomega.BeNumerically("~", 1, 1e-9))
	})

	It("is 0 for orthogonal vectors", func() {
		gomega.Expect(cosine([]float32{1, 0}, []float32{0, 1})).To(gomega.BeZero())
	})

	It("is 0 for mismatched dimensions", func() {
		gomega.Expect(cosine([]float32{1}, []float32{1, 0})).To(gomega.BeZero())
	})

	It("is 0 for a zero vector", func() {
		gomega.Expect(cosine([]float32{0, 0}, []float32{1, 0})).To(gomega.BeZero())
	})
})
