package summarize

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/presales/internal/chunker"
)

// EmptyDocument is the terminal result for text that yields no chunks.
const EmptyDocument = "The document is empty or could not be processed."

// Options bound the two summarization passes.
type Options struct {
	MaxChunkWords   int // chunker word budget
	FastModeChunks  int // chunk cap when fast mode is on
	ChunkMinWords   int // per-chunk summary lower bound
	ChunkMaxWords   int // per-chunk summary upper bound
	RefineMinWords  int // refinement pass lower bound
	RefineMaxWords  int // refinement pass upper bound
	RefineThreshold int // combined word count that triggers refinement
}

// DefaultOptions returns the standard pipeline bounds.
func DefaultOptions() Options {
	return Options{
		MaxChunkWords:   chunker.DefaultMaxWords,
		FastModeChunks:  4,
		ChunkMinWords:   100,
		ChunkMaxWords:   200,
		RefineMinWords:  150,
		RefineMaxWords:  250,
		RefineThreshold: 300,
	}
}

// Generator drives the summarization capability over document chunks:
// one bounded call per retained chunk, then at most one refinement call
// over the concatenated result. It never propagates a capability failure
// to the caller.
type Generator struct {
	opts Options
	log  *slog.Logger

	// The capability handle is expensive to set up, so it is created once
	// on first use and shared for the process lifetime.
	newSummarizer func() Summarizer
	once          sync.Once
	summarizer    Summarizer
}

func NewGenerator(opts Options, newSummarizer func() Summarizer, log *slog.Logger) *Generator {
	if opts.MaxChunkWords <= 0 {
		opts.MaxChunkWords = chunker.DefaultMaxWords
	}
	if opts.FastModeChunks <= 0 {
		opts.FastModeChunks = 4
	}
	if opts.RefineThreshold <= 0 {
		opts.RefineThreshold = 300
	}
	return &Generator{
		opts:          opts,
		log:           log,
		newSummarizer: newSummarizer,
	}
}

func (g *Generator) capability() Summarizer {
	g.once.Do(func() {
		g.summarizer = g.newSummarizer()
	})
	return g.summarizer
}

// Generate summarizes text end to end: chunk, summarize each chunk, join,
// and refine when the joined result is still long.
func (g *Generator) Generate(ctx context.Context, text string, fastMode bool) string {
	return g.GenerateFromChunks(ctx, chunker.Split(text, g.opts.MaxChunkWords), fastMode)
}

// GenerateFromChunks runs the pipeline over an existing chunk sequence.
// Per-chunk failures contribute an empty string; a refinement failure
// falls back to the unrefined combined summary. The result is EmptyDocument
// when there is nothing to summarize, otherwise the best summary available.
func (g *Generator) GenerateFromChunks(ctx context.Context, chunks []chunker.Chunk, fastMode bool) string {
	if len(chunks) == 0 {
		return EmptyDocument
	}

	// Fast mode trades completeness for latency: later chunks are dropped.
	if fastMode && len(chunks) > g.opts.FastModeChunks {
		chunks = chunks[:g.opts.FastModeChunks]
	}

	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		part, err := g.summarizeWithRetry(ctx, c.Text, g.opts.ChunkMinWords, g.opts.ChunkMaxWords)
		if err != nil {
			g.log.Warn("chunk summarization failed", "chunk", c.Index, "error", err)
			continue
		}
		if part != "" {
			parts = append(parts, part)
		}
	}

	combined := strings.TrimSpace(strings.Join(parts, " "))
	if chunker.CountWords(combined) < g.opts.RefineThreshold {
		return combined
	}

	refined, err := g.summarizeWithRetry(ctx, combined, g.opts.RefineMinWords, g.opts.RefineMaxWords)
	if err != nil {
		g.log.Warn("refinement pass failed, keeping combined summary", "error", err)
		return combined
	}
	return refined
}

// summarizeWithRetry retries transient capability failures with backoff
// before giving up on a single call.
func (g *Generator) summarizeWithRetry(ctx context.Context, text string, minWords, maxWords int) (string, error) {
	s := g.capability()

	var out string
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		out, err = s.Summarize(ctx, text, minWords, maxWords)
		if err == nil || !IsRetryable(err) {
			break
		}
		g.log.Warn("retryable summarization error", "attempt", attempt, "error", err)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return out, err
}
