package parsing

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/zombor/receipt-lens/internal/category"
)

// Input is one receipt of a batch.
type Input struct {
	Text         string `json:"text"`
	MerchantHint string `json:"merchant_hint,omitempty"`
}

// BatchResult is the outcome for the Input at the same index.
type BatchResult struct {
	Receipt *ParsedReceipt
	Err     error
}

// ParseBatch parses inputs on up to workers goroutines. Results line up with
// inputs by index; a failure on one receipt does not stop the others.
// workers < 1 means one per CPU.
func (p *Parser) ParseBatch(inputs []Input, history []category.HistoryEntry, workers int) []BatchResult {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	samples := category.BuildSamples(history)
	results := make([]BatchResult, len(inputs))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, in := range inputs {
		g.Go(func() error {
			receipt, err := p.ParseWithSamples(in.Text, in.MerchantHint, samples)
			results[i] = BatchResult{Receipt: receipt, Err: err}
			return nil
		})
	}
	// Parse failures are reported per result, so no worker returns an error.
	g.Wait()

	return results
}
