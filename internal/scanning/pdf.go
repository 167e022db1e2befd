package scanning

import (
	"log/slog"
	"unicode"
)

// minPDFTextRunes is how much embedded text a PDF needs before its text
// layer is trusted over OCR. Scanned PDFs often carry a few stray glyphs.
const minPDFTextRunes = 16

// PDFTextFirst reads the embedded text layer of PDFs and only falls back to
// OCR for scans. Images always go to the fallback.
type PDFTextFirst struct {
	ocr Scanner
}

// NewPDFTextFirst wraps ocr, which handles images and scanned PDFs
func NewPDFTextFirst(ocr Scanner) *PDFTextFirst {
	return &PDFTextFirst{ocr: ocr}
}

// ScanText returns the PDF text layer when it has enough content, and the
// OCR transcription otherwise.
func (p *PDFTextFirst) ScanText(data []byte, contentType string) (string, error) {
	if normalizeMimeType(contentType) != pdfMimeType {
		return p.ocr.ScanText(data, contentType)
	}

	text, err := pdfText(data)
	if err != nil {
		return "", err
	}
	if countLetters(text) >= minPDFTextRunes {
		slog.Debug("using embedded PDF text", "chars", len(text))
		return text, nil
	}

	slog.Debug("PDF has no usable text layer, falling back to OCR")
	return p.ocr.ScanText(data, contentType)
}

// Close closes the wrapped scanner
func (p *PDFTextFirst) Close() error {
	return p.ocr.Close()
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
