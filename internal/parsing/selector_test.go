package parsing

import (
	"github.com/shopspring/decimal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SelectTotal", func() {
	var (
		lines []string
		total *decimal.Decimal
	)

	JustBeforeEach(func() {
		total = SelectTotal(lines)
	})

	When("a cash tendered line holds the largest amount", func() {
		BeforeEach(func() {
			lines = []string{"NAKİT 500,00", "TOPLAM 125,50"}
		})

		It("ignores the tendered amount", func() {
			Expect(total).NotTo(BeNil())
			Expect(total.StringFixed(2)).To(Equal("125.50"))
		})
	})

	When("change due and cash are printed after the total", func() {
		BeforeEach(func() {
			lines = []string{"TUTAR: 450.00", "NAKİT: 500.00", "PARA ÜSTÜ: 50.00"}
		})

		It("picks the labelled total", func() {
			Expect(total.StringFixed(2)).To(Equal("450.00"))
		})
	})

	When("a word only contains an exclusion keyword", func() {
		BeforeEach(func() {
			lines = []string{"CASHIER 64,00", "EXCHANGE FEE 12,00"}
		})

		It("still considers the line", func() {
			Expect(total).NotTo(BeNil())
			Expect(total.StringFixed(2)).To(Equal("64.00"))
		})
	})

	When("a refund line carries a Turkish suffix", func() {
		BeforeEach(func() {
			lines = []string{"PARA İADESİ 80,00", "SATIŞ 20,00"}
		})

		It("ignores the refund", func() {
			Expect(total.StringFixed(2)).To(Equal("20.00"))
		})
	})

	When("unlabelled lines hold larger amounts than the total", func() {
		BeforeEach(func() {
			lines = []string{"SÜT 900,00", "EKMEK 800,00", "GENEL TOPLAM 120,00"}
		})

		It("picks the keyword line regardless of magnitude", func() {
			Expect(total.StringFixed(2)).To(Equal("120.00"))
		})
	})

	When("a subtotal and a grand total are both labelled", func() {
		BeforeEach(func() {
			lines = []string{"ARA TOPLAM 100,00", "KDV 18,00", "GENEL TOPLAM 118,00"}
		})

		It("prefers the line with more priority keywords", func() {
			Expect(total.StringFixed(2)).To(Equal("118.00"))
		})
	})

	When("a currency symbol sits next to one of two labelled amounts", func() {
		BeforeEach(func() {
			lines = []string{"TOPLAM ₺35,00 40,00"}
		})

		It("prefers the marked amount", func() {
			Expect(total.StringFixed(2)).To(Equal("35.00"))
		})
	})

	When("no line is labelled", func() {
		BeforeEach(func() {
			lines = []string{"ÜRÜN A 12,50", "ÜRÜN B 40,00", "ADET 3"}
		})

		It("falls back to the largest amount", func() {
			Expect(total.StringFixed(2)).To(Equal("40.00"))
		})
	})

	When("a date and a time precede the only amount", func() {
		BeforeEach(func() {
			lines = []string{"01.03.2024 14:35", "SATIŞ 12,00"}
		})

		It("does not read the date as money", func() {
			Expect(total.StringFixed(2)).To(Equal("12.00"))
		})
	})

	When("every unlabelled amount is below one unit", func() {
		BeforeEach(func() {
			lines = []string{"POŞET 0,50"}
		})

		It("finds no total", func() {
			Expect(total).To(BeNil())
		})
	})

	When("there are no numbers at all", func() {
		BeforeEach(func() {
			lines = []string{"HOŞGELDİNİZ", "TEŞEKKÜRLER"}
		})

		It("finds no total", func() {
			Expect(total).To(BeNil())
		})
	})
})
