package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zombor/receipt-lens/internal/category"
	"github.com/zombor/receipt-lens/internal/parsing"
	"github.com/zombor/receipt-lens/internal/scanning"
)

const (
	maxUploadSize = int64(50 << 20) // high-resolution phone photos
	maxBatchSize  = 200
)

// corsError writes a plain text error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeError writes a JSON error body
func writeError(w http.ResponseWriter, code int, message string) {
	setCORSHeaders(w)
	writeJSON(w, code, map[string]string{"error": message})
}

// contentTypeFor guesses a MIME type from the upload's extension
func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	}
	return "application/octet-stream"
}

// handleScanReceipt accepts a receipt image or PDF and returns the parsed draft
func (s *Server) handleScanReceipt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File is too large. Maximum size is 50MB. Please compress or resize your image.")
			return
		}
		writeError(w, http.StatusBadRequest, "Error parsing form")
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		writeError(w, http.StatusBadRequest, "No file was selected. Please choose a file to upload.")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeError(w, http.StatusInternalServerError, "Error reading file. Please try again.")
		return
	}

	contentType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFor(header.Filename)
	}

	result, err := s.service.ScanReceipt(header.Filename, data, contentType, r.FormValue("merchant"))
	if err != nil {
		slog.Error("Error scanning receipt", "filename", header.Filename, "error", err)
		switch {
		case errors.Is(err, scanning.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, scanning.ErrNoTextFound):
			writeError(w, http.StatusUnprocessableEntity, "No text was found on the receipt. Please enter the expense manually.")
		default:
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type parseRequest struct {
	Text         string `json:"text"`
	MerchantHint string `json:"merchant_hint"`
}

// handleParseReceipt parses receipt text recognized by the client
func (s *Server) handleParseReceipt(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	parsed, err := s.service.ParseText(req.Text, req.MerchantHint)
	if err != nil {
		if errors.Is(err, parsing.ErrNoText) {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		slog.Error("Error parsing receipt", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, parsed)
}

type batchRequest struct {
	Receipts []parsing.Input `json:"receipts"`
}

type batchItem struct {
	Receipt *parsing.ParsedReceipt `json:"receipt,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// handleParseBatch parses many receipt texts in one call
func (s *Server) handleParseBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Receipts) == 0 {
		writeError(w, http.StatusBadRequest, "at least one receipt is required")
		return
	}
	if len(req.Receipts) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d receipts per batch", maxBatchSize))
		return
	}

	results, err := s.service.ParseBatch(req.Receipts)
	if err != nil {
		slog.Error("Error parsing batch", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	items := make([]batchItem, len(results))
	for i, res := range results {
		items[i].Receipt = res.Receipt
		if res.Err != nil {
			items[i].Error = res.Err.Error()
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

type transactionRequest struct {
	Title       string          `json:"title"`
	Note        string          `json:"note"`
	Category    category.ID     `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Attachment  string          `json:"attachment"`
	ContentType string          `json:"content_type"`
}

// parseRequestDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates
func parseRequestDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD or RFC 3339", ErrInvalidTransaction)
	}
	return t, nil
}

func (req *transactionRequest) transaction() (*Transaction, error) {
	date, err := parseRequestDate(req.Date)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		Title:       req.Title,
		Note:        req.Note,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        date,
		Attachment:  req.Attachment,
		ContentType: req.ContentType,
	}, nil
}

// decodeTransaction reads a transactionRequest body, writing the error
// response itself on failure
func decodeTransaction(w http.ResponseWriter, r *http.Request) (*Transaction, bool) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	tx, err := req.transaction()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return tx, true
}

// writeServiceError maps service errors to status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidTransaction):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Transaction not found")
	default:
		slog.Error("Error handling transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// handleCreateTransaction saves a confirmed transaction
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	tx, ok := decodeTransaction(w, r)
	if !ok {
		return
	}

	if err := s.service.CreateTransaction(tx); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

// handleUpdateTransaction edits an existing transaction
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	update, ok := decodeTransaction(w, r)
	if !ok {
		return
	}

	tx, err := s.service.UpdateTransaction(r.PathValue("id"), update)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

// handleListTransactions returns all transactions, newest first
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.service.ListTransactions()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Ensure we always return an array, not nil
	if txs == nil {
		txs = []*Transaction{}
	}

	writeJSON(w, http.StatusOK, txs)
}

// handleGetTransaction returns a single transaction
func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.service.GetTransaction(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

// handleGetTransactionFile returns the receipt file for a transaction
func (s *Server) handleGetTransactionFile(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.service.GetTransactionFile(r.PathValue("id"))
	if err != nil {
		corsError(w, "File not found", http.StatusNotFound)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleDeleteTransaction deletes a transaction
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteTransaction(r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListCategories returns the built-in categories the classifier suggests
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, category.Standard())
}

// handleHealth reports liveness without authentication
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
