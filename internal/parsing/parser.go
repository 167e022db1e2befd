package parsing

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/zombor/receipt-lens/internal/category"
)

// ErrNoText is returned when Parse is called with no text at all. Text that
// is present but yields nothing is not an error.
var ErrNoText = errors.New("no receipt text to parse")

// Parser turns recognized receipt text into a ParsedReceipt. It keeps no
// per-call state and is safe for concurrent use.
type Parser struct {
	classifier *category.Classifier
}

// Option configures a Parser.
type Option func(*Parser)

// WithClassifier replaces the default classifier, typically to enable the
// semantic fallback.
func WithClassifier(c *category.Classifier) Option {
	return func(p *Parser) {
		p.classifier = c
	}
}

// New returns a Parser using the built-in keyword and brand tables.
func New(opts ...Option) *Parser {
	p := &Parser{classifier: category.NewClassifier()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse extracts a receipt from rawText. merchantHint may be empty; history
// is the caller's prior transactions and is used to learn their labelling.
func (p *Parser) Parse(rawText, merchantHint string, history []category.HistoryEntry) (*ParsedReceipt, error) {
	return p.ParseWithSamples(rawText, merchantHint, category.BuildSamples(history))
}

// ParseWithSamples is Parse for callers that built training samples once and
// reuse them across receipts.
func (p *Parser) ParseWithSamples(rawText, merchantHint string, samples []category.TrainingSample) (*ParsedReceipt, error) {
	if rawText == "" {
		return nil, ErrNoText
	}

	lines := NormalizeLines(rawText)
	receipt := &ParsedReceipt{
		MerchantName: ExtractMerchant(lines),
		TotalAmount:  SelectTotal(lines),
		Date:         ExtractDate(lines),
		Items:        ExtractItems(lines),
		RawText:      rawText,
	}
	if receipt.MerchantName == "" {
		receipt.MerchantName = strings.TrimSpace(merchantHint)
	}

	result := p.classifier.Classify(classificationText(merchantHint, lines), samples)
	receipt.SuggestedCategory = result.Category
	receipt.Confidence = result.Confidence
	receipt.CategorySource = result.Source

	slog.Debug("parsed receipt",
		"merchant", receipt.MerchantName,
		"has_total", receipt.TotalAmount != nil,
		"has_date", receipt.Date != nil,
		"items", len(receipt.Items),
		"category", receipt.SuggestedCategory,
		"confidence", receipt.Confidence,
		"source", receipt.CategorySource,
	)

	return receipt, nil
}

func classificationText(merchantHint string, lines []string) string {
	body := strings.Join(lines, "\n")
	if hint := strings.TrimSpace(merchantHint); hint != "" {
		return hint + "\n" + body
	}
	return body
}
