package scanning

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

const pdfMimeType = "application/pdf"

// transcribePrompt is the shared prompt used by all vision providers
const transcribePrompt = `You are reading a photographed or scanned receipt or invoice. Transcribe every piece of printed text exactly as it appears, top to bottom, one printed line per output line.

Important:
- Keep numbers, separators and currency symbols exactly as printed (for example "1.234,56 TL" stays "1.234,56 TL")
- Keep Turkish and other non-ASCII letters as printed
- Do not summarize, translate, correct or reorder anything
- Do not add any commentary before or after the text
- Do not use markdown code blocks
- If there is no readable text, return nothing`

// pdfToImage renders the first page of a PDF as PNG
func pdfToImage(pdfData []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("%w: opening PDF: %v", ErrInvalidInput, err)
	}
	defer doc.Close()

	// Most receipts are single page
	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// pdfText returns the embedded text layer of every page, pages separated by
// a blank line. Scanned PDFs usually have no text layer and return "".
func pdfText(pdfData []byte) (string, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return "", fmt.Errorf("%w: opening PDF: %v", ErrInvalidInput, err)
	}
	defer doc.Close()

	var pages []string
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", i+1, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

// imageToPNG converts any image format to PNG
func imageToPNG(imageData []byte, mimeType string) ([]byte, error) {
	var img image.Image
	var err error

	// Go's standard image package doesn't support HEIC (common on iPhones)
	if isHEICFormat(imageData) || isHEICMimeType(mimeType) {
		img, err = heic.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("%w: decoding HEIC/HEIF image: %v", ErrInvalidInput, err)
		}
	} else {
		img, _, err = image.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("%w: unsupported image format (supported: JPEG, PNG, GIF, HEIC, HEIF, PDF): %v", ErrInvalidInput, err)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// isHEICFormat checks for an ftyp box at offset 4 with a HEIC-family brand
func isHEICFormat(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "heif", "mif1", "msf1":
		return true
	}
	return false
}

// isHEICMimeType checks if the MIME type indicates HEIC/HEIF format
func isHEICMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}

// normalizeMimeType lowercases the type, drops parameters and defaults to JPEG
func normalizeMimeType(contentType string) string {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return mimeType
}

// prepareImageData converts PDFs and non-PNG images to PNG. Every vision
// provider receives PNG.
func prepareImageData(data []byte, contentType string) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidInput)
	}

	mimeType := normalizeMimeType(contentType)
	switch {
	case mimeType == pdfMimeType:
		pngData, err := pdfToImage(data)
		if err != nil {
			return nil, fmt.Errorf("converting PDF to image: %w", err)
		}
		return pngData, nil
	case mimeType != "image/png" || isHEICFormat(data):
		pngData, err := imageToPNG(data, mimeType)
		if err != nil {
			return nil, fmt.Errorf("converting image to PNG: %w", err)
		}
		return pngData, nil
	}
	return data, nil
}
