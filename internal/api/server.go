package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dgallion1/presales/internal/chunker"
	"github.com/dgallion1/presales/internal/config"
	"github.com/dgallion1/presales/internal/session"
	"github.com/dgallion1/presales/internal/summarize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Generator is the piece of the summarization pipeline the API needs:
// chunk-driven summary generation that never fails. Implemented by
// summarize.Generator.
type Generator interface {
	GenerateFromChunks(ctx context.Context, chunks []chunker.Chunk, fastMode bool) string
}

// Server is the HTTP API for the pre-sales assistant.
type Server struct {
	router    chi.Router
	store     *session.Store
	generator Generator
	stats     *summarize.Stats
	model     string
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(store *session.Store, gen Generator, stats *summarize.Stats, model string, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:     store,
		generator: gen,
		stats:     stats,
		model:     model,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.AssistantAPIKey, s.log))

		r.Post("/api/documents", s.handleUpload)
		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)

		r.Post("/api/documents/{docID}/summary", s.handleSummary)
		r.Get("/api/documents/{docID}/summary.txt", s.handleDownloadSummary)
		r.Post("/api/documents/{docID}/ask", s.handleAsk)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
