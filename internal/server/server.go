package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/aleister1102/grammarwhiz/internal/config"
	"github.com/aleister1102/grammarwhiz/internal/correction"
	"github.com/aleister1102/grammarwhiz/internal/differ"
	"github.com/aleister1102/grammarwhiz/internal/history"
	"github.com/aleister1102/grammarwhiz/internal/importer"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Dependencies are the collaborators behind the API. Extractor and History
// are optional; their routes answer 503 when unset.
type Dependencies struct {
	Corrector correction.Service
	Extractor importer.Importer
	Differ    *differ.ContentDiffer
	History   *history.Store
}

// Server exposes proofreading, extraction, diffing and history over HTTP.
type Server struct {
	httpServer *http.Server
	deps       Dependencies
	cfg        config.ServerConfig
	logger     zerolog.Logger
}

// New creates a server; call Start to listen.
func New(cfg config.ServerConfig, deps Dependencies, logger zerolog.Logger) *Server {
	s := &Server{
		deps:   deps,
		cfg:    cfg,
		logger: logger.With().Str("component", "Server").Logger(),
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      h2c.NewHandler(s.Handler(), &http2.Server{}),
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}
	return s
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/proofread", s.handleProofread)
	mux.HandleFunc("POST /api/extract-newspaper", s.handleExtractNewspaper)
	mux.HandleFunc("POST /api/diff", s.handleDiff)
	mux.HandleFunc("GET /api/history", s.handleListHistory)
	mux.HandleFunc("GET /api/history/{id}", s.handleGetHistory)
	mux.HandleFunc("DELETE /api/history", s.handleClearHistory)
	return s.logRequests(mux)
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("Starting API server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Msg("Request handled")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
