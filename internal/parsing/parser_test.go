package parsing

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/receipt-lens/internal/category"
)

var _ = Describe("Parser", func() {
	var (
		parser   *Parser
		text     string
		hint     string
		history  []category.HistoryEntry
		receipt  *ParsedReceipt
		parseErr error
	)

	BeforeEach(func() {
		parser = New()
		hint = ""
		history = nil
	})

	JustBeforeEach(func() {
		receipt, parseErr = parser.Parse(text, hint, history)
	})

	When("given a supermarket receipt", func() {
		BeforeEach(func() {
			text = "MIGROS TİCARET\n01.03.2024\nSÜT 25,00\nEKMEK 10,00\nTOPLAM 35,00 TL"
		})

		It("does not error", func() {
			Expect(parseErr).NotTo(HaveOccurred())
		})

		It("finds the merchant", func() {
			Expect(receipt.MerchantName).To(Equal("MIGROS TİCARET"))
		})

		It("finds the total", func() {
			Expect(receipt.TotalAmount).NotTo(BeNil())
			Expect(receipt.TotalAmount.StringFixed(2)).To(Equal("35.00"))
		})

		It("finds the date", func() {
			Expect(receipt.Date).NotTo(BeNil())
			Expect(*receipt.Date).To(BeTemporally("==", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
		})

		It("suggests food", func() {
			Expect(receipt.SuggestedCategory).To(Equal(category.Food))
			Expect(receipt.CategorySource).To(Equal(category.SourceBrand))
		})

		It("lists the items", func() {
			Expect(receipt.Items).To(HaveLen(3))
			Expect(receipt.Items[0].Name).To(Equal("SÜT"))
			Expect(receipt.Items[1].Name).To(Equal("EKMEK"))
		})

		It("keeps the raw text", func() {
			Expect(receipt.RawText).To(Equal(text))
		})

		It("is not empty", func() {
			Expect(receipt.Empty()).To(BeFalse())
		})
	})

	When("given a fuel receipt with cash and change lines", func() {
		BeforeEach(func() {
			text = "SHELL BENZİN İSTASYONU\nTUTAR: 450.00\nNAKİT: 500.00\nPARA ÜSTÜ: 50.00"
		})

		It("picks the paid amount, not the tendered cash or change", func() {
			Expect(receipt.TotalAmount.StringFixed(2)).To(Equal("450.00"))
		})

		It("suggests transport", func() {
			Expect(receipt.SuggestedCategory).To(Equal(category.Transport))
		})
	})

	When("the text has no numbers", func() {
		BeforeEach(func() {
			text = "HOŞGELDİNİZ\nTEŞEKKÜRLER"
		})

		It("has no total", func() {
			Expect(receipt.TotalAmount).To(BeNil())
		})

		It("falls back to the default category", func() {
			Expect(receipt.SuggestedCategory).To(Equal(category.Shopping))
			Expect(receipt.Confidence).To(Equal(0.3))
		})
	})

	When("the amount uses either notation", func() {
		It("normalizes both to the same total", func() {
			eu, err := parser.Parse("TOPLAM 1.234,56", "", nil)
			Expect(err).NotTo(HaveOccurred())
			us, err := parser.Parse("TOTAL 1,234.56", "", nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(eu.TotalAmount.StringFixed(2)).To(Equal("1234.56"))
			Expect(us.TotalAmount.StringFixed(2)).To(Equal("1234.56"))
		})
	})

	When("the user has labelled similar receipts before", func() {
		BeforeEach(func() {
			text = "starbucks kahve dünyası"
			history = make([]category.HistoryEntry, 5)
			for i := range history {
				history[i] = category.HistoryEntry{Title: "Starbucks Kahve", Category: category.Food}
			}
		})

		It("suggests food", func() {
			Expect(receipt.SuggestedCategory).To(Equal(category.Food))
		})

		It("settles it on the brand, which outranks history", func() {
			Expect(receipt.CategorySource).To(Equal(category.SourceBrand))
		})
	})

	When("an item name starts with a brand name", func() {
		BeforeEach(func() {
			text = "ABC LOKANTA\nSTEAMED DUMPLINGS 45,00\nTOPLAM 45,00"
		})

		It("classifies on the keywords instead", func() {
			Expect(receipt.SuggestedCategory).To(Equal(category.Food))
			Expect(receipt.CategorySource).To(Equal(category.SourceKeyword))
		})
	})

	When("the first header line is a receipt number", func() {
		BeforeEach(func() {
			text = "FIS NO 004217\nMIGROS\nTOPLAM 10,00"
		})

		It("takes the merchant from the next line", func() {
			Expect(receipt.MerchantName).To(Equal("MIGROS"))
		})
	})

	When("only the user's history knows the category", func() {
		BeforeEach(func() {
			text = "okul servisi taksit"
			history = []category.HistoryEntry{
				{Title: "Okul servisi", Note: "taksit", Category: category.Bills},
				{Title: "Okul servisi taksit", Category: category.Bills},
			}
		})

		It("follows the history", func() {
			Expect(receipt.SuggestedCategory).To(Equal(category.Bills))
			Expect(receipt.CategorySource).To(Equal(category.SourceHistory))
		})
	})

	When("no header line names the merchant", func() {
		BeforeEach(func() {
			text = "12,50"
			hint = "Kahve Dünyası"
		})

		It("uses the merchant hint", func() {
			Expect(receipt.MerchantName).To(Equal("Kahve Dünyası"))
		})

		It("classifies using the hint", func() {
			Expect(receipt.SuggestedCategory).To(Equal(category.Food))
		})
	})

	When("the text is blank", func() {
		BeforeEach(func() {
			text = "   \n\t\n"
		})

		It("does not error", func() {
			Expect(parseErr).NotTo(HaveOccurred())
		})

		It("returns an empty receipt with the default category", func() {
			Expect(receipt.Empty()).To(BeTrue())
			Expect(receipt.SuggestedCategory).To(Equal(category.Shopping))
		})
	})

	When("there is no text at all", func() {
		BeforeEach(func() {
			text = ""
		})

		It("returns ErrNoText", func() {
			Expect(parseErr).To(MatchError(ErrNoText))
			Expect(receipt).To(BeNil())
		})
	})

	It("returns identical results for identical input", func() {
		text := "MIGROS TİCARET\n01.03.2024\nSÜT 25,00\nEKMEK 10,00\nTOPLAM 35,00 TL"
		first, err := parser.Parse(text, "", history)
		Expect(err).NotTo(HaveOccurred())
		second, err := parser.Parse(text, "", history)
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
	})
})
