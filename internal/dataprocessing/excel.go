package dataprocessing

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"venturescope/pkg/contracts/domain"
)

// ParseWorkbook reads an uploaded .xlsx workbook and feeds its first sheet
// through the same header/record mapping as the text path. Short rows are
// padded — spreadsheet tools drop trailing empty cells — while rows longer
// than the header fall under the same drop policy as the text parser.
func ParseWorkbook(r io.Reader) (ParseResult, error) {
	var result ParseResult

	f, err := excelize.OpenReader(r)
	if err != nil {
		return result, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return result, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return result, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var header []string
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if header == nil {
			header = make([]string, 0, len(row))
			for _, cell := range row {
				header = append(header, cleanField(cell))
			}
			continue
		}
		if len(row) > len(header) {
			result.RowsDropped++
			continue
		}
		rec := domain.NewRawRecord(len(header))
		for i, col := range header {
			value := ""
			if i < len(row) {
				value = cleanField(row[i])
			}
			rec.Set(col, value)
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
