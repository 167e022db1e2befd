package receipt

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zombor/receipt-lens/internal/category"
	"github.com/zombor/receipt-lens/internal/parsing"
	"github.com/zombor/receipt-lens/internal/scanning"
)

// ErrInvalidTransaction is returned when a transaction fails validation
var ErrInvalidTransaction = errors.New("invalid transaction")

// IDGenerator generates unique IDs for transactions and attachments
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// uuidGenerator generates random UUIDs
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles receipt scanning, parsing and transaction bookkeeping
type Service struct {
	db           DB
	scanner      scanning.Scanner
	storage      Storage
	parser       *parsing.Parser
	idGenerator  IDGenerator
	timeSource   TimeSource
	batchWorkers int
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, scanner scanning.Scanner, storage Storage, parser *parsing.Parser) *Service {
	return NewServiceWithDeps(db, scanner, storage, parser, &uuidGenerator{}, &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, scanner scanning.Scanner, storage Storage, parser *parsing.Parser, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		scanner:     scanner,
		storage:     storage,
		parser:      parser,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// SetBatchWorkers bounds how many receipts ParseBatch parses at once. Zero
// or less means one per CPU.
func (s *Service) SetBatchWorkers(n int) {
	s.batchWorkers = n
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	repeatedSpaces      = regexp.MustCompile(`\s+`)
)

// sanitizeFilename cleans up a filename by removing special characters and truncating length
func sanitizeFilename(filename string) string {
	ext := strings.ToLower(unsafeFilenameChars.ReplaceAllString(filepath.Ext(filename), ""))
	if ext != "" {
		ext = "." + ext
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	base = unsafeFilenameChars.ReplaceAllString(base, "")
	base = strings.TrimSpace(repeatedSpaces.ReplaceAllString(base, " "))

	// Phones generate very long names
	const maxLen = 50
	if len(base) > maxLen {
		base = strings.TrimSpace(base[:maxLen])
	}
	if base == "" {
		base = "receipt"
	}

	return base + ext
}

// history loads the user's saved transactions as classifier history
func (s *Service) history() ([]category.HistoryEntry, error) {
	txs, err := s.db.ListTransactions()
	if err != nil {
		return nil, fmt.Errorf("loading transaction history: %w", err)
	}
	return historyEntries(txs), nil
}

// ScanReceipt stores an uploaded receipt, recognizes its text and parses it.
// Nothing is saved to the database; the caller confirms the result with
// CreateTransaction.
func (s *Service) ScanReceipt(filename string, data []byte, contentType, merchantHint string) (*ScanResult, error) {
	history, err := s.history()
	if err != nil {
		return nil, err
	}

	key, err := s.storage.Save(fmt.Sprintf("%s_%s", s.idGenerator.Generate(), sanitizeFilename(filename)), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	text, err := s.scanner.ScanText(data, contentType)
	if err != nil {
		slog.Error("Failed to scan receipt",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		s.discard(key)
		return nil, fmt.Errorf("scanning receipt: %w", err)
	}

	parsed, err := s.parser.Parse(text, merchantHint, history)
	if err != nil {
		s.discard(key)
		return nil, fmt.Errorf("parsing receipt: %w", err)
	}

	slog.Info("Scanned receipt",
		"attachment", key,
		"category", parsed.SuggestedCategory,
		"confidence", parsed.Confidence,
		"has_total", parsed.TotalAmount != nil,
	)

	return &ScanResult{
		Attachment:  key,
		ContentType: contentType,
		Receipt:     parsed,
	}, nil
}

func (s *Service) discard(key string) {
	if err := s.storage.Delete(key); err != nil {
		slog.Warn("Failed to delete file", "attachment", key, "error", err)
	}
}

// ParseText parses receipt text the caller already recognized
func (s *Service) ParseText(text, merchantHint string) (*parsing.ParsedReceipt, error) {
	history, err := s.history()
	if err != nil {
		return nil, err
	}
	return s.parser.Parse(text, merchantHint, history)
}

// ParseBatch parses several receipts concurrently against the same history.
// Per-receipt failures are reported in the results.
func (s *Service) ParseBatch(inputs []parsing.Input) ([]parsing.BatchResult, error) {
	history, err := s.history()
	if err != nil {
		return nil, err
	}
	return s.parser.ParseBatch(inputs, history, s.batchWorkers), nil
}

func validateTransaction(tx *Transaction) error {
	tx.Title = strings.TrimSpace(tx.Title)
	tx.Note = strings.TrimSpace(tx.Note)
	switch {
	case tx.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidTransaction)
	case tx.Category == "":
		return fmt.Errorf("%w: category is required", ErrInvalidTransaction)
	case tx.Amount.IsNegative():
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidTransaction)
	}
	return nil
}

// CreateTransaction validates and saves a new transaction. ID, timestamps
// and a missing date are filled in.
func (s *Service) CreateTransaction(tx *Transaction) error {
	if err := validateTransaction(tx); err != nil {
		return err
	}

	now := s.timeSource.Now()
	if tx.ID == "" {
		tx.ID = s.idGenerator.Generate()
	}
	if tx.Date.IsZero() {
		tx.Date = now
	}
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if err := s.db.SaveTransaction(tx); err != nil {
		return fmt.Errorf("saving transaction to database: %w", err)
	}
	return nil
}

// UpdateTransaction replaces the editable fields of an existing transaction
func (s *Service) UpdateTransaction(id string, update *Transaction) (*Transaction, error) {
	if err := validateTransaction(update); err != nil {
		return nil, err
	}

	tx, err := s.db.GetTransaction(id)
	if err != nil {
		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	tx.Title = update.Title
	tx.Note = update.Note
	tx.Category = update.Category
	tx.Amount = update.Amount
	if !update.Date.IsZero() {
		tx.Date = update.Date
	}
	tx.UpdatedAt = s.timeSource.Now()

	if err := s.db.SaveTransaction(tx); err != nil {
		return nil, fmt.Errorf("saving transaction to database: %w", err)
	}
	return tx, nil
}

// GetTransaction retrieves a transaction by ID
func (s *Service) GetTransaction(id string) (*Transaction, error) {
	tx, err := s.db.GetTransaction(id)
	if err != nil {
		return nil, fmt.Errorf("getting transaction: %w", err)
	}
	return tx, nil
}

// ListTransactions returns all transactions, newest first
func (s *Service) ListTransactions() ([]*Transaction, error) {
	txs, err := s.db.ListTransactions()
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	slices.SortStableFunc(txs, func(a, b *Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return txs, nil
}

// DeleteTransaction removes a transaction and its attachment
func (s *Service) DeleteTransaction(id string) error {
	tx, err := s.db.GetTransaction(id)
	if err != nil {
		return fmt.Errorf("getting transaction for deletion: %w", err)
	}

	if tx.Attachment != "" {
		// Log error but continue with database deletion
		s.discard(tx.Attachment)
	}

	if err := s.db.DeleteTransaction(id); err != nil {
		return fmt.Errorf("deleting transaction from database: %w", err)
	}
	return nil
}

// GetTransactionFile retrieves the receipt file a transaction was scanned from
func (s *Service) GetTransactionFile(id string) ([]byte, string, error) {
	tx, err := s.db.GetTransaction(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting transaction: %w", err)
	}
	if tx.Attachment == "" {
		return nil, "", fmt.Errorf("%w: transaction %s has no attachment", ErrNotFound, id)
	}

	data, err := s.storage.Get(tx.Attachment)
	if err != nil {
		return nil, "", fmt.Errorf("getting transaction file: %w", err)
	}

	return data, tx.ContentType, nil
}
