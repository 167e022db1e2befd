package receipt

import (
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/receipt-lens/internal/category"
)

var _ = Describe("BoltDB", func() {
	var (
		tmpDir string
		dbPath string
		db     *BoltDB
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	newTransaction := func(id string) *Transaction {
		return &Transaction{
			ID:          id,
			Title:       "Migros",
			Note:        "haftalık alışveriş",
			Category:    category.Food,
			Amount:      decimal.RequireFromString("1234.56"),
			Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Attachment:  id + "_receipt.jpg",
			ContentType: "image/jpeg",
			CreatedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		}
	}

	Describe("SaveTransaction", func() {
		var (
			tx  *Transaction
			err error
		)

		BeforeEach(func() {
			tx = newTransaction("test-id")
		})

		JustBeforeEach(func() {
			err = db.SaveTransaction(tx)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should save the transaction to the database", func() {
				saved, getErr := db.GetTransaction("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.ID).To(Equal("test-id"))
			})
		})

		When("the transaction already exists", func() {
			BeforeEach(func() {
				Expect(db.SaveTransaction(newTransaction("test-id"))).To(Succeed())
				tx.Title = "Migros Jet"
			})

			It("replaces it", func() {
				saved, getErr := db.GetTransaction("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.Title).To(Equal("Migros Jet"))
			})
		})
	})

	Describe("GetTransaction", func() {
		var (
			id  string
			tx  *Transaction
			err error
		)

		JustBeforeEach(func() {
			tx, err = db.GetTransaction(id)
		})

		When("the transaction exists", func() {
			BeforeEach(func() {
				id = "test-id"
				Expect(db.SaveTransaction(newTransaction(id))).To(Succeed())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("round-trips the amount exactly", func() {
				Expect(tx.Amount.StringFixed(2)).To(Equal("1234.56"))
			})

			It("round-trips the other fields", func() {
				Expect(tx.Title).To(Equal("Migros"))
				Expect(tx.Note).To(Equal("haftalık alışveriş"))
				Expect(tx.Category).To(Equal(category.Food))
				Expect(tx.Date).To(BeTemporally("==", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
				Expect(tx.Attachment).To(Equal("test-id_receipt.jpg"))
			})
		})

		When("the transaction does not exist", func() {
			BeforeEach(func() {
				id = "missing"
			})

			It("returns ErrNotFound", func() {
				Expect(err).To(MatchError(ErrNotFound))
				Expect(tx).To(BeNil())
			})
		})
	})

	Describe("ListTransactions", func() {
		var (
			txs []*Transaction
			err error
		)

		JustBeforeEach(func() {
			txs, err = db.ListTransactions()
		})

		When("transactions exist", func() {
			BeforeEach(func() {
				Expect(db.SaveTransaction(newTransaction("a"))).To(Succeed())
				Expect(db.SaveTransaction(newTransaction("b"))).To(Succeed())
			})

			It("returns all of them", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(txs).To(HaveLen(2))
			})
		})

		When("no transactions exist", func() {
			It("returns an empty, non-nil slice", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(txs).NotTo(BeNil())
				Expect(txs).To(BeEmpty())
			})
		})
	})

	Describe("DeleteTransaction", func() {
		var (
			id  string
			err error
		)

		JustBeforeEach(func() {
			err = db.DeleteTransaction(id)
		})

		When("the transaction exists", func() {
			BeforeEach(func() {
				id = "test-id"
				Expect(db.SaveTransaction(newTransaction(id))).To(Succeed())
			})

			It("removes it", func() {
				Expect(err).NotTo(HaveOccurred())
				_, getErr := db.GetTransaction(id)
				Expect(getErr).To(MatchError(ErrNotFound))
			})
		})

		When("the transaction does not exist", func() {
			BeforeEach(func() {
				id = "missing"
			})

			It("returns ErrNotFound", func() {
				Expect(err).To(MatchError(ErrNotFound))
			})
		})
	})

	Describe("reopening", func() {
		It("keeps saved transactions", func() {
			Expect(db.SaveTransaction(newTransaction("persisted"))).To(Succeed())
			Expect(db.Close()).To(Succeed())

			var err error
			db, err = NewBoltDB(dbPath)
			Expect(err).NotTo(HaveOccurred())

			tx, err := db.GetTransaction("persisted")
			Expect(err).NotTo(HaveOccurred())
			Expect(tx.Title).To(Equal("Migros"))
		})
	})
})
