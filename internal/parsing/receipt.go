package parsing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zombor/receipt-lens/internal/category"
)

// ParsedReceipt is the structured guess extracted from receipt text. Absent
// fields mean "not detected": an empty MerchantName, a nil TotalAmount or a
// nil Date. SuggestedCategory is always set.
type ParsedReceipt struct {
	MerchantName      string           `json:"merchant_name,omitempty"`
	TotalAmount       *decimal.Decimal `json:"total_amount,omitempty"`
	Date              *time.Time       `json:"date,omitempty"`
	SuggestedCategory category.ID      `json:"suggested_category"`
	Confidence        float64          `json:"confidence"`
	CategorySource    category.Source  `json:"category_source"`
	Items             []Item           `json:"items"`
	RawText           string           `json:"raw_text"`
}

// Item is a best-effort line item, for display only.
type Item struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Empty reports whether nothing but the defaulted category was recovered,
// which usually means recognition failed and the user should enter the
// expense by hand.
func (r *ParsedReceipt) Empty() bool {
	return r.MerchantName == "" && r.TotalAmount == nil && r.Date == nil && len(r.Items) == 0
}
