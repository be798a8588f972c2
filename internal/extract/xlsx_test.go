package extract

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tealeg/xlsx/v2"
)

func buildWorkbook(t *testing.T, sheets map[string][][]string, order []string) *bytes.Reader {
	t.Helper()
	f := xlsx.NewFile()
	for _, name := range order {
		sheet, err := f.AddSheet(name)
		if err != nil {
			t.Fatalf("add sheet: %v", err)
		}
		for _, rowCells := range sheets[name] {
			row := sheet.AddRow()
			for _, v := range rowCells {
				row.AddCell().Value = v
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestXLSXExtractor_RendersSheetsInOrder(t *testing.T) {
	r := buildWorkbook(t, map[string][][]string{
		"Pipeline": {
			{"Deal", "Stage"},
			{"Acme", "Proposal"},
		},
		"Team": {
			{"Name", "Role"},
			{"Dana", "Lead"},
		},
	}, []string{"Pipeline", "Team"})

	p := &XLSXExtractor{}
	got, err := p.Extract(r, "book.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blocks := strings.Split(got, "\n\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 sheet blocks separated by a blank line, got %d: %q", len(blocks), got)
	}
	if !strings.HasPrefix(blocks[0], "Sheet: Pipeline\n") {
		t.Errorf("expected first block from Pipeline sheet, got %q", blocks[0])
	}
	if !strings.Contains(blocks[0], "Deal: Acme, Stage: Proposal") {
		t.Errorf("expected header-labelled row, got %q", blocks[0])
	}
	if !strings.HasPrefix(blocks[1], "Sheet: Team\n") {
		t.Errorf("expected second block from Team sheet, got %q", blocks[1])
	}
	if !strings.Contains(blocks[1], "Name: Dana, Role: Lead") {
		t.Errorf("expected team row, got %q", blocks[1])
	}
}

func TestXLSXExtractor_SkipsEmptyRowsAndSheets(t *testing.T) {
	r := buildWorkbook(t, map[string][][]string{
		"Data": {
			{"Col"},
			{""},
			{"value"},
		},
		"Blank": {},
	}, []string{"Data", "Blank"})

	p := &XLSXExtractor{}
	got, err := p.Extract(r, "book.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "Blank") {
		t.Errorf("expected empty sheet omitted, got %q", got)
	}
	want := "Sheet: Data\nHeaders: Col\nCol: value"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestXLSXExtractor_InvalidDataErrors(t *testing.T) {
	p := &XLSXExtractor{}
	if _, err := p.Extract(strings.NewReader("not a zip archive"), "bad.xlsx"); err == nil {
		t.Error("expected error for invalid workbook bytes")
	}
}
