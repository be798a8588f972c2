package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/presales/internal/answer"
	"github.com/dgallion1/presales/internal/chunker"
	"github.com/dgallion1/presales/internal/extract"
	"github.com/dgallion1/presales/internal/session"
	"github.com/dgallion1/presales/internal/textclean"
	"github.com/go-chi/chi/v5"
)

const previewChars = 2000

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	// Extraction failures degrade to empty text and surface as the
	// too-short warning, never as a hard error.
	rawText, err := extract.Text(bytes.NewReader(data), filename, s.cfg.PDFFallbackPdftotext)
	if err != nil {
		s.log.Warn("extraction failed", "filename", filename, "error", err)
		rawText = ""
	}
	if !extract.IsSupportedExtension(filename) {
		s.log.Info("unsupported file type uploaded", "filename", filename)
	}

	cleaned := textclean.Clean(rawText)
	chunks := chunker.Split(cleaned, s.cfg.ChunkMaxWords)

	doc := session.NewDocument(session.ContentID(data), filename, r.FormValue("title"), cleaned, chunks)
	s.store.Put(doc)

	resp := map[string]any{
		"doc_id":   doc.ID,
		"filename": doc.Filename,
		"title":    doc.Title,
		"words":    chunker.CountWords(cleaned),
		"chunks":   len(chunks),
		"preview":  preview(cleaned),
	}
	if len(cleaned) < s.cfg.MinDocumentChars {
		resp["warning"] = "the document appears too short or empty to summarize"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": s.store.List()})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	doc.Touch()

	snap := doc.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":      snap.ID,
		"filename":    snap.Filename,
		"title":       snap.Title,
		"words":       snap.Words,
		"chunks":      snap.Chunks,
		"has_summary": snap.HasSummary,
		"created_at":  snap.CreatedAt,
		"preview":     preview(doc.Text),
	})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.store.Delete(docID) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	var req struct {
		FastMode bool `json:"fast_mode"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	summary := s.generator.GenerateFromChunks(r.Context(), doc.Chunks, req.FastMode)
	doc.SetSummary(summary)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":    doc.ID,
		"fast_mode": req.FastMode,
		"summary":   summary,
	})
}

func (s *Server) handleDownloadSummary(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	summary, ok := doc.Summary()
	if !ok {
		jsonError(w, "no summary generated yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="document_summary.txt"`)
	io.WriteString(w, summary)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}
	doc.Touch()

	text, idx := answer.Find(req.Question, doc.Chunks)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":      doc.ID,
		"question":    req.Question,
		"answer":      text,
		"chunk_index": idx,
	})
}

func preview(text string) string {
	if len(text) > previewChars {
		return text[:previewChars] + "..."
	}
	return text
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
