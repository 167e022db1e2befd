package category

import (
	. "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = Describe("BuildSamples", func() {
	It("folds title and note together", func() {
		samples := BuildSamples([]HistoryEntry{{Title: "Starbucks Kahve", Note: "Sabah", Category: Food}})
		gomega.Expect(samples).To(gomega.HaveLen(1))
		gomega.Expect(samples[0].Text).To(gomega.Equal("starbucks kahve sabah"))
		gomega.Expect(samples[0].Category).To(gomega.Equal(Food))
	})

	It("skips custom categories and empty entries", func() {
		samples := BuildSamples([]HistoryEntry{
			{Title: "Kira", Category: ID("custom-42")},
			{Title: "   ", Category: Bills},
			{Title: "Elektrik", Category: Bills},
		})
		gomega.Expect(samples).To(gomega.HaveLen(1))
		gomega.Expect(samples[0].Category).To(gomega.Equal(Bills))
	})
})

var _ = Describe("HistoryMatcher", func() {
	var (
		matcher *HistoryMatcher
		history []HistoryEntry
		text    string
		result  Result
		ok      bool
	)

	BeforeEach(func() {
		matcher = NewHistoryMatcher()
		history = nil
	})

	JustBeforeEach(func() {
		result, ok = matcher.Match(Fold(text), BuildSamples(history))
	})

	When("the input matches past transactions exactly", func() {
		BeforeEach(func() {
			for i := 0; i < 5; i++ {
				history = append(history, HistoryEntry{Title: "Starbucks Kahve", Category: Food})
			}
			text = "starbucks kahve"
		})

		It("returns the learned category", func() {
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(result.Category).To(gomega.Equal(Food))
			gomega.Expect(result.Source).To(gomega.Equal(SourceHistory))
		})

		It("caps confidence at 1.0", func() {
			gomega.Expect(result.Confidence).To(gomega.Equal(1.0))
		})
	})

	When("similarity does not exceed 0.7", func() {
		BeforeEach(func() {
			history = []HistoryEntry{{Title: "Starbucks Kahve", Category: Food}}
			text = "starbucks kahve dünyası"
		})

		It("does not answer", func() {
			gomega.Expect(ok).To(gomega.BeFalse())
		})
	})

	When("one sample is similar enough", func() {
		BeforeEach(func() {
			history = []HistoryEntry{{Title: "spor salonu aylık üyelik", Category: Health}}
			text = "spor salonu aylık üyelik ücreti"
		})

		It("answers with the similarity as confidence", func() {
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(result.Category).To(gomega.Equal(Health))
			gomega.Expect(result.Confidence).To(gomega.BeNumerically("~", 0.8, 1e-9))
		})
	})

	When("categories compete", func() {
		BeforeEach(func() {
			history = []HistoryEntry{
				{Title: "aylık abonelik ödemesi", Category: Entertainment},
				{Title: "aylık abonelik ödemesi", Category: Bills},
				{Title: "aylık abonelik ödemesi", Category: Bills},
			}
			text = "aylık abonelik ödemesi"
		})

		It("returns the category with the highest accumulated score", func() {
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(result.Category).To(gomega.Equal(Bills))
		})
	})

	When("there is no history", func() {
		BeforeEach(func() {
			text = "anything"
		})

		It("does not answer", func() {
			gomega.Expect(ok).To(gomega.BeFalse())
		})
	})
})

var _ = Describe("jaccard", func() {
	It("is intersection over union", func() {
		a := tokenSet("a b c")
		b := tokenSet("b c d")
		gomega.Expect(jaccard(a, b)).To(gomega.BeNumerically("~", 0.5, 1e-9))
	})

	It("is zero for two empty sets", func() {
		gomega.Expect(jaccard(tokenSet(""), tokenSet(""))).To(gomega.BeZero())
	})
})
