package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/receipt-lens/internal/category"
	"github.com/zombor/receipt-lens/internal/parsing"
	"github.com/zombor/receipt-lens/internal/receipt"
	"github.com/zombor/receipt-lens/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

// embedder is a category.Embedder that holds a client to close
type embedder interface {
	category.Embedder
	Close() error
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("receipt-lens")
	var (
		port           = fs.IntLong("port", 8080, "HTTP server port")
		dbPath         = fs.StringLong("db", "receipt-lens.db", "Database file path")
		storagePath    = fs.StringLong("storage", "./attachments", "Directory for uploaded receipt files")
		scannerType    = fs.StringLong("scanner", "gemini", "Text recognition backend: 'gemini' or 'ollama'")
		geminiKey      = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel    = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini vision model name")
		ollamaURL      = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel    = fs.StringLong("ollama-model", "qwen2.5vl", "Ollama vision model name (e.g., qwen2.5vl, llava, minicpm-v)")
		embedderType   = fs.StringLong("embedder", "none", "Semantic category fallback: 'none', 'gemini', 'ollama' or 'openai'")
		embedModel     = fs.StringLong("embed-model", "", "Embedding model name (backend default if empty)")
		openaiKey      = fs.StringLong("openai-key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
		openaiURL      = fs.StringLong("openai-url", "", "OpenAI compatible API base URL (optional)")
		workers        = fs.IntLong("workers", 0, "Receipts parsed at once in batch requests (0 = one per CPU)")
		authUser       = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass       = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		logLevel       = fs.StringLong("log-level", "info", "Log level: debug, info, warn or error")
		_              = fs.StringLong("config", "", "Config file with one 'flag value' per line (optional)")
		showVersion    = fs.BoolLong("version", "Show version information")
		shutdownPeriod = 10 * time.Second
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_LENS"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid log level %q\n", *logLevel)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Initialize database
	slog.Info("Initializing database...")
	db, err := receipt.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	apiKey := *geminiKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	// Initialize scanner based on type
	var ocr scanning.Scanner
	switch *scannerType {
	case "gemini":
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini scanner...", "model", *geminiModel)
		ocr, err = scanning.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama scanner...", "url", *ollamaURL, "model", *ollamaModel)
		ocr, err = scanning.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid scanner type", "type", *scannerType, "valid", "gemini or ollama")
		os.Exit(1)
	}
	scanner := scanning.NewPDFTextFirst(ocr)
	defer scanner.Close()

	// Initialize the optional semantic fallback
	var emb embedder
	switch *embedderType {
	case "none", "":
	case "gemini":
		slog.Info("Initializing Gemini embedder...", "model", *embedModel)
		emb, err = scanning.NewGeminiEmbedder(apiKey, *embedModel)
	case "ollama":
		slog.Info("Initializing Ollama embedder...", "url", *ollamaURL, "model", *embedModel)
		emb = scanning.NewOllamaEmbedder(*ollamaURL, *embedModel)
	case "openai":
		key := *openaiKey
		if key == "" {
			key = os.Getenv("OPENAI_API_KEY")
		}
		slog.Info("Initializing OpenAI embedder...", "url", *openaiURL, "model", *embedModel)
		emb, err = scanning.NewOpenAIEmbedder(key, *openaiURL, *embedModel)
	default:
		slog.Error("Invalid embedder type", "type", *embedderType, "valid", "none, gemini, ollama or openai")
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Failed to initialize embedder", "error", err)
		os.Exit(1)
	}

	var classifierOpts []category.Option
	if emb != nil {
		defer emb.Close()
		semantic, err := category.NewSemanticMatcher(emb)
		if err != nil {
			// The engine works without it; keyword and history matching remain
			slog.Warn("Semantic category fallback disabled", "error", err)
		} else {
			classifierOpts = append(classifierOpts, category.WithSemanticMatcher(semantic))
		}
	}
	parser := parsing.New(parsing.WithClassifier(category.NewClassifier(classifierOpts...)))

	// Initialize storage
	slog.Info("Initializing storage...")
	store, err := receipt.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// Initialize service
	receiptService := receipt.NewService(db, scanner, store, parser)
	receiptService.SetBatchWorkers(*workers)

	// Initialize server
	basicAuth := receipt.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := receipt.NewServer(receiptService, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(addr)
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server error", "error", err)
		}
		return
	}

	slog.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
}
