package extract

import (
	"strings"
	"testing"
)

func TestTextExtractor_ParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextExtractor{}
	got, err := p.Extract(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTextExtractor_EmptyInput(t *testing.T) {
	p := &TextExtractor{}
	got, err := p.Extract(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestTextExtractor_MultipleBlankLines(t *testing.T) {
	// Runs of blank lines collapse to a single paragraph break.
	input := "Para one.\n\n\n\nPara two."
	p := &TextExtractor{}
	got, err := p.Extract(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Para one.\n\nPara two." {
		t.Errorf("expected collapsed blank lines, got %q", got)
	}
}

func TestTextExtractor_WhitespaceOnlyLinesAreBlank(t *testing.T) {
	input := "Para one.\n   \nPara two."
	p := &TextExtractor{}
	got, err := p.Extract(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Para one.\n\nPara two." {
		t.Errorf("expected paragraph split on whitespace line, got %q", got)
	}
}

func TestText_UnrecognizedExtensionYieldsEmptyText(t *testing.T) {
	got, err := Text(strings.NewReader("binary junk"), "slides.pptx", false)
	if err != nil {
		t.Fatalf("unexpected error for unsupported type: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty text for unsupported type, got %q", got)
	}
}

func TestText_DispatchesByExtension(t *testing.T) {
	got, err := Text(strings.NewReader("Plain contents."), "a.TXT", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Plain contents." {
		t.Errorf("expected text extractor output, got %q", got)
	}
}

func TestIsSupportedExtension(t *testing.T) {
	for _, name := range []string{"a.pdf", "b.docx", "c.xlsx", "d.csv", "e.txt", "f.md", "g.html"} {
		if !IsSupportedExtension(name) {
			t.Errorf("expected %q to be supported", name)
		}
	}
	for _, name := range []string{"a.pptx", "b.exe", "c"} {
		if IsSupportedExtension(name) {
			t.Errorf("expected %q to be unsupported", name)
		}
	}
}
