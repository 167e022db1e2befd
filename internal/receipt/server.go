package receipt

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Server handles HTTP requests for receipts and transactions
type Server struct {
	service   *Service
	basicAuth BasicAuth
	mux       *http.ServeMux
	http      *http.Server
}

// BasicAuth holds basic authentication credentials
type BasicAuth struct {
	Username string
	Password string
}

// NewServer creates a new Server with default mux
func NewServer(service *Service, basicAuth BasicAuth) *Server {
	return NewServerWithMux(service, basicAuth, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(service *Service, basicAuth BasicAuth, mux *http.ServeMux) *Server {
	s := &Server{
		service:   service,
		basicAuth: basicAuth,
		mux:       mux,
	}
	s.registerRoutes()
	s.http = &http.Server{
		Handler:           s.corsMiddleware(s.mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// authenticate checks basic auth credentials
func (s *Server) authenticate(r *http.Request) bool {
	if s.basicAuth.Username == "" && s.basicAuth.Password == "" {
		return true // No auth required if not configured
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Basic ") {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
	if err != nil {
		return false
	}

	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.basicAuth.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(s.basicAuth.Password)) == 1
	return userOK && passOK
}

// corsMiddleware adds CORS headers to responses and answers preflight requests
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireAuth middleware
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticate(r) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Receipt Lens"`)
			corsError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// registerRoutes registers all API routes on the server's mux
// Routes must be registered from most specific to least specific to avoid conflicts
func (s *Server) registerRoutes() {
	// Receipt recognition and parsing
	s.mux.HandleFunc("POST /api/receipts/scan", s.requireAuth(s.handleScanReceipt))
	s.mux.HandleFunc("POST /api/receipts/parse", s.requireAuth(s.handleParseReceipt))
	s.mux.HandleFunc("POST /api/receipts/batch", s.requireAuth(s.handleParseBatch))

	// Transactions
	s.mux.HandleFunc("GET /api/transactions/{id}/file", s.requireAuth(s.handleGetTransactionFile))
	s.mux.HandleFunc("GET /api/transactions/{id}", s.requireAuth(s.handleGetTransaction))
	s.mux.HandleFunc("PUT /api/transactions/{id}", s.requireAuth(s.handleUpdateTransaction))
	s.mux.HandleFunc("DELETE /api/transactions/{id}", s.requireAuth(s.handleDeleteTransaction))
	s.mux.HandleFunc("GET /api/transactions", s.requireAuth(s.handleListTransactions))
	s.mux.HandleFunc("POST /api/transactions", s.requireAuth(s.handleCreateTransaction))

	s.mux.HandleFunc("GET /api/categories", s.requireAuth(s.handleListCategories))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// Start starts the HTTP server and blocks until it stops. It returns nil
// after a graceful Shutdown.
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	s.http.Addr = addr
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.http.Handler.ServeHTTP(w, r)
}
