package summarize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dgallion1/presales/internal/chunker"
)

// fakeSummarizer records calls and answers from a script.
type fakeSummarizer struct {
	calls   []call
	respond func(n int, text string, minWords, maxWords int) (string, error)
}

type call struct {
	text     string
	minWords int
	maxWords int
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string, minWords, maxWords int) (string, error) {
	n := len(f.calls)
	f.calls = append(f.calls, call{text: text, minWords: minWords, maxWords: maxWords})
	return f.respond(n, text, minWords, maxWords)
}

func testGenerator(opts Options, fake *fakeSummarizer) *Generator {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGenerator(opts, func() Summarizer { return fake }, log)
}

func nChunks(n, wordsEach int) []chunker.Chunk {
	chunks := make([]chunker.Chunk, n)
	for i := range chunks {
		word := fmt.Sprintf("w%d", i)
		chunks[i] = chunker.Chunk{
			Text:  strings.TrimSpace(strings.Repeat(word+" ", wordsEach)),
			Index: i,
			Words: wordsEach,
		}
	}
	return chunks
}

func TestGenerate_EmptyDocumentSentinel(t *testing.T) {
	fake := &fakeSummarizer{respond: func(int, string, int, int) (string, error) {
		t.Fatal("capability must not be called for empty input")
		return "", nil
	}}
	g := testGenerator(DefaultOptions(), fake)

	if got := g.Generate(context.Background(), "", false); got != EmptyDocument {
		t.Errorf("expected sentinel, got %q", got)
	}
	if got := g.Generate(context.Background(), "  \n\n  ", true); got != EmptyDocument {
		t.Errorf("expected sentinel for whitespace input, got %q", got)
	}
}

func TestGenerate_ShortCombinedSkipsRefinement(t *testing.T) {
	fake := &fakeSummarizer{respond: func(n int, _ string, _, _ int) (string, error) {
		return fmt.Sprintf("summary%d", n), nil
	}}
	g := testGenerator(DefaultOptions(), fake)

	got := g.GenerateFromChunks(context.Background(), nChunks(3, 200), false)
	want := "summary0 summary1 summary2"
	if got != want {
		t.Errorf("expected combined string verbatim, got %q", got)
	}
	if len(fake.calls) != 3 {
		t.Errorf("expected exactly 3 capability calls, got %d", len(fake.calls))
	}
	for i, c := range fake.calls {
		if c.minWords != 100 || c.maxWords != 200 {
			t.Errorf("call %d: expected bounds 100-200, got %d-%d", i, c.minWords, c.maxWords)
		}
	}
}

func TestGenerate_FastModeTruncatesToFirstFour(t *testing.T) {
	fake := &fakeSummarizer{respond: func(n int, _ string, _, _ int) (string, error) {
		return fmt.Sprintf("s%d", n), nil
	}}
	g := testGenerator(DefaultOptions(), fake)

	chunks := nChunks(9, 200)
	got := g.GenerateFromChunks(context.Background(), chunks, true)

	if len(fake.calls) != 4 {
		t.Fatalf("fast mode must summarize exactly 4 chunks, got %d calls", len(fake.calls))
	}
	for i, c := range fake.calls {
		if c.text != chunks[i].Text {
			t.Errorf("call %d: expected chunk %d text, got %q", i, i, c.text)
		}
	}
	if got != "s0 s1 s2 s3" {
		t.Errorf("expected summaries of first 4 chunks only, got %q", got)
	}
}

func TestGenerate_FastModeAtOrBelowCapSummarizesAll(t *testing.T) {
	fake := &fakeSummarizer{respond: func(n int, _ string, _, _ int) (string, error) {
		return fmt.Sprintf("s%d", n), nil
	}}
	g := testGenerator(DefaultOptions(), fake)

	g.GenerateFromChunks(context.Background(), nChunks(4, 200), true)
	if len(fake.calls) != 4 {
		t.Errorf("expected all 4 chunks summarized, got %d calls", len(fake.calls))
	}
}

func TestGenerate_LongCombinedTriggersRefinement(t *testing.T) {
	longPart := strings.TrimSpace(strings.Repeat("word ", 150)) // 2 x 150 >= 300
	fake := &fakeSummarizer{respond: func(n int, text string, minWords, maxWords int) (string, error) {
		if n < 2 {
			return longPart, nil
		}
		return "refined summary", nil
	}}
	g := testGenerator(DefaultOptions(), fake)

	got := g.GenerateFromChunks(context.Background(), nChunks(2, 200), false)
	if got != "refined summary" {
		t.Errorf("expected refined output, got %q", got)
	}
	if len(fake.calls) != 3 {
		t.Fatalf("expected 2 chunk calls + 1 refinement call, got %d", len(fake.calls))
	}

	refine := fake.calls[2]
	if refine.minWords != 150 || refine.maxWords != 250 {
		t.Errorf("refinement bounds: expected 150-250, got %d-%d", refine.minWords, refine.maxWords)
	}
	if refine.text != longPart+" "+longPart {
		t.Errorf("refinement input must be the combined string, got %q", refine.text)
	}
}

func TestGenerate_RefinementFailureFallsBack(t *testing.T) {
	longPart := strings.TrimSpace(strings.Repeat("word ", 160))
	fake := &fakeSummarizer{respond: func(n int, _ string, _, _ int) (string, error) {
		if n < 2 {
			return longPart, nil
		}
		return "", fmt.Errorf("model error: input too long")
	}}
	g := testGenerator(DefaultOptions(), fake)

	got := g.GenerateFromChunks(context.Background(), nChunks(2, 200), false)
	want := longPart + " " + longPart
	if got != want {
		t.Errorf("expected fallback to combined summary, got %q", got)
	}
}

func TestGenerate_ChunkFailureIsNonFatal(t *testing.T) {
	fake := &fakeSummarizer{respond: func(n int, _ string, _, _ int) (string, error) {
		if n == 1 {
			return "", fmt.Errorf("timeout")
		}
		return fmt.Sprintf("s%d", n), nil
	}}
	g := testGenerator(DefaultOptions(), fake)

	got := g.GenerateFromChunks(context.Background(), nChunks(3, 200), false)
	if got != "s0 s2" {
		t.Errorf("expected failed chunk to contribute nothing, got %q", got)
	}
	if len(fake.calls) != 3 {
		t.Errorf("expected pipeline to continue past the failure, got %d calls", len(fake.calls))
	}
}

func TestGenerate_AllChunksFailingYieldsEmptyString(t *testing.T) {
	fake := &fakeSummarizer{respond: func(int, string, int, int) (string, error) {
		return "", fmt.Errorf("model down")
	}}
	g := testGenerator(DefaultOptions(), fake)

	if got := g.GenerateFromChunks(context.Background(), nChunks(2, 200), false); got != "" {
		t.Errorf("expected empty combined summary, got %q", got)
	}
}

func TestGenerate_RetryableErrorIsRetried(t *testing.T) {
	attempts := 0
	fake := &fakeSummarizer{respond: func(int, string, int, int) (string, error) {
		attempts++
		if attempts == 1 {
			return "", &RetryableError{StatusCode: 503, Message: "overloaded"}
		}
		return "recovered", nil
	}}
	g := testGenerator(DefaultOptions(), fake)

	got := g.GenerateFromChunks(context.Background(), nChunks(1, 200), false)
	if got != "recovered" {
		t.Errorf("expected retry to recover, got %q", got)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestGenerate_CapabilityInitializedOnce(t *testing.T) {
	inits := 0
	fake := &fakeSummarizer{respond: func(int, string, int, int) (string, error) {
		return "ok", nil
	}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := NewGenerator(DefaultOptions(), func() Summarizer {
		inits++
		return fake
	}, log)

	for i := 0; i < 3; i++ {
		g.GenerateFromChunks(context.Background(), nChunks(1, 200), false)
	}
	if inits != 1 {
		t.Errorf("expected a single capability initialization, got %d", inits)
	}
}
