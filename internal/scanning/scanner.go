package scanning

import "errors"

var (
	// ErrNoTextFound means the document was readable but held no text.
	ErrNoTextFound = errors.New("no text found")
	// ErrInvalidInput means the document could not be decoded at all.
	ErrInvalidInput = errors.New("invalid input")
)

// Scanner defines the interface for turning a receipt image or PDF into text
type Scanner interface {
	// ScanText recognizes the text of a receipt image or PDF
	ScanText(data []byte, contentType string) (string, error)
	// Close closes the scanner and releases resources
	Close() error
}
