package receipt

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zombor/receipt-lens/internal/category"
	"github.com/zombor/receipt-lens/internal/parsing"
)

// Transaction is a saved expense or income record
type Transaction struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Note        string          `json:"note,omitempty"`
	Category    category.ID     `json:"category"` // standard or user-defined
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Attachment  string          `json:"attachment,omitempty"` // storage key of the scanned receipt
	ContentType string          `json:"content_type,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ScanResult is a parsed receipt waiting for the user to confirm it as a
// Transaction. The uploaded file is already stored under Attachment.
type ScanResult struct {
	Attachment  string                 `json:"attachment"`
	ContentType string                 `json:"content_type"`
	Receipt     *parsing.ParsedReceipt `json:"receipt"`
}

// historyEntries converts saved transactions into classifier history
func historyEntries(txs []*Transaction) []category.HistoryEntry {
	entries := make([]category.HistoryEntry, 0, len(txs))
	for _, tx := range txs {
		entries = append(entries, category.HistoryEntry{
			Title:    tx.Title,
			Note:     tx.Note,
			Category: tx.Category,
		})
	}
	return entries
}
