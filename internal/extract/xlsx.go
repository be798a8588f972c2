package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx/v2"
)

// XLSXExtractor handles spreadsheet workbooks. Each sheet is rendered as
// header-labelled rows; sheets are concatenated in workbook order,
// separated by a blank line.
type XLSXExtractor struct{}

func (p *XLSXExtractor) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read xlsx: %w", err)
	}

	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}

	var sheets []string
	for _, sheet := range f.Sheets {
		if text := renderSheet(sheet); text != "" {
			sheets = append(sheets, text)
		}
	}
	return strings.Join(sheets, "\n\n"), nil
}

func renderSheet(sheet *xlsx.Sheet) string {
	if len(sheet.Rows) == 0 {
		return ""
	}

	headers := rowToStrings(sheet.Rows[0])

	var text strings.Builder
	text.WriteString("Sheet: " + sheet.Name + "\n")
	text.WriteString("Headers: " + strings.Join(headers, ", "))

	for _, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if allEmpty(cells) {
			continue
		}
		text.WriteString("\n")
		for j, cell := range cells {
			if j > 0 {
				text.WriteString(", ")
			}
			if j < len(headers) && headers[j] != "" {
				text.WriteString(headers[j] + ": " + cell)
			} else {
				text.WriteString(cell)
			}
		}
	}
	return text.String()
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = strings.TrimSpace(cell.String())
	}
	return cells
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
