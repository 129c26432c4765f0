package enquiry

import (
	"fmt"
	"strings"

	"leanfunnel/internal/errors"
)

// SheetFromGrid turns a row-major grid into records keyed by the header row.
// Headers are trimmed; cell text is kept as is. Short rows are padded with "" and
// cells past the last header are dropped. Blank rows are kept, deciding which rows
// count is the engine's job. With duplicate header names the rightmost column wins.
func SheetFromGrid(name string, grid [][]string) (*Sheet, error) {
	if len(grid) == 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("worksheet %q has no header row", name))
	}

	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = strings.TrimSpace(h)
	}

	sheet := &Sheet{Name: name, Headers: headers}
	for _, row := range grid[1:] {
		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		sheet.Records = append(sheet.Records, rec)
	}
	return sheet, nil
}

// DuplicateHeaders lists header names that occur more than once
func DuplicateHeaders(headers []string) []string {
	seen := make(map[string]int, len(headers))
	var dups []string
	for _, h := range headers {
		seen[h]++
		if seen[h] == 2 {
			dups = append(dups, h)
		}
	}
	return dups
}
