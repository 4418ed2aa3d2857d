package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles CSV files. Every data row becomes one paragraph of
// "header: value" cells separated by " | ", so rows with two or more pipes
// are restructured down to the cells that mention the search term.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	headers := records[0]
	rows := make([]string, 0, len(records)-1)
	for _, row := range records[1:] {
		cells := make([]string, 0, len(row))
		for j, cell := range row {
			cell = strings.ReplaceAll(strings.TrimSpace(cell), "\n", " ")
			if cell == "" {
				continue
			}
			if j < len(headers) && headers[j] != "" {
				cell = headers[j] + ": " + cell
			}
			cells = append(cells, cell)
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return joinBlocks(rows), nil
}
