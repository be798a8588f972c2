// Package session holds uploaded documents in memory for the life of a
// session. Nothing here persists across process restarts by design.
package session

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/presales/internal/chunker"
)

// Document is one uploaded document, with its cleaned text and the chunk
// sequence shared by summarization and retrieval.
type Document struct {
	mu sync.Mutex

	ID       string
	Filename string
	Title    string
	Text     string // cleaned extracted text
	Chunks   []chunker.Chunk

	summary    string
	hasSummary bool

	CreatedAt time.Time
	updatedAt time.Time
}

// NewDocument builds a document session record.
func NewDocument(id, filename, title, text string, chunks []chunker.Chunk) *Document {
	now := time.Now()
	return &Document{
		ID:        id,
		Filename:  filename,
		Title:     title,
		Text:      text,
		Chunks:    chunks,
		CreatedAt: now,
		updatedAt: now,
	}
}

// SetSummary caches the most recent summary for download.
func (d *Document) SetSummary(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.summary = s
	d.hasSummary = true
	d.updatedAt = time.Now()
}

// Summary returns the cached summary, if one has been generated.
func (d *Document) Summary() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.summary, d.hasSummary
}

// Touch refreshes the document's TTL clock.
func (d *Document) Touch() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.updatedAt = time.Now()
}

func (d *Document) lastUpdated() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updatedAt
}

// Snapshot is a read-only, JSON-safe copy of document metadata.
type Snapshot struct {
	ID         string    `json:"doc_id"`
	Filename   string    `json:"filename"`
	Title      string    `json:"title,omitempty"`
	Words      int       `json:"words"`
	Chunks     int       `json:"chunks"`
	HasSummary bool      `json:"has_summary"`
	CreatedAt  time.Time `json:"created_at"`
}

// Snapshot returns a JSON-safe copy of the document's metadata.
func (d *Document) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{
		ID:         d.ID,
		Filename:   d.Filename,
		Title:      d.Title,
		Words:      chunker.CountWords(d.Text),
		Chunks:     len(d.Chunks),
		HasSummary: d.hasSummary,
		CreatedAt:  d.CreatedAt,
	}
}

// Store is a thread-safe in-memory document registry with TTL eviction.
type Store struct {
	mu   sync.Mutex
	docs map[string]*Document
	ttl  time.Duration
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		docs: make(map[string]*Document),
		ttl:  ttl,
	}
}

func (s *Store) Put(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
}

func (s *Store) Get(id string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[id]
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	return true
}

// List returns snapshots of all live documents, newest first.
func (s *Store) List() []Snapshot {
	s.mu.Lock()
	docs := make([]*Document, 0, len(s.docs))
	for _, d := range s.docs {
		docs = append(docs, d)
	}
	s.mu.Unlock()

	snaps := make([]Snapshot, 0, len(docs))
	for _, d := range docs {
		snaps = append(snaps, d.Snapshot())
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].CreatedAt.After(snaps[j].CreatedAt) })
	return snaps
}

// Cleanup removes documents idle past the TTL.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, doc := range s.docs {
		if now.Sub(doc.lastUpdated()) > s.ttl {
			delete(s.docs, id)
		}
	}
}

// Sweep runs Cleanup on a ticker until ctx is cancelled.
func (s *Store) Sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}

// ContentID derives a stable document ID from the uploaded bytes, so
// re-uploading the same file lands on the same session.
func ContentID(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:8])
}
