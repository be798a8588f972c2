// Package extract converts uploaded document bytes into plain text.
// Every extractor emits paragraphs separated by blank lines so all formats
// feed the chunker the same way.
package extract

import (
	"io"
	"path/filepath"
	"strings"
)

// Extractor pulls the raw text out of one document format.
type Extractor interface {
	Extract(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this service can read.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".xlsx":     true,
	".csv":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Text extracts the raw text of a document. Unrecognized extensions yield
// empty text, not an error; the caller surfaces that as a too-short
// document.
func Text(r io.Reader, filename string, pdfFallback bool) (string, error) {
	var e Extractor
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		e = &PDFExtractor{FallbackPdftotext: pdfFallback}
	case ".docx":
		e = &DOCXExtractor{}
	case ".xlsx":
		e = &XLSXExtractor{}
	case ".csv":
		e = &CSVExtractor{}
	case ".txt":
		e = &TextExtractor{}
	case ".md", ".markdown":
		e = &MarkdownExtractor{}
	case ".html", ".htm":
		e = &HTMLExtractor{}
	default:
		return "", nil
	}
	return e.Extract(r, filename)
}
