package gsheets

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValueRange is the body of a spreadsheets.values.get response
type ValueRange struct {
	Range          string  `json:"range"`
	MajorDimension string  `json:"majorDimension"`
	Values         [][]any `json:"values"`
}

// Grid returns the values as text. Formatted values arrive as strings already;
// numbers and booleans are rendered the way the sheet would show them unformatted.
func (v *ValueRange) Grid() [][]string {
	grid := make([][]string, len(v.Values))
	for i, row := range v.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cellText(cell)
		}
		grid[i] = cells
	}
	return grid
}

func cellText(cell any) string {
	switch c := cell.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strings.ToUpper(strconv.FormatBool(c))
	default:
		return fmt.Sprintf("%v", c)
	}
}

// WorksheetRange returns the A1 range covering a whole worksheet
func WorksheetRange(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// GetValues fetches a range of a spreadsheet, row-major, as formatted text
func (c *Client) GetValues(ctx context.Context, spreadsheetID, a1Range string) (*ValueRange, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	path := "/spreadsheets/" + url.PathEscape(spreadsheetID) + "/values/" + url.PathEscape(a1Range)
	query := url.Values{}
	query.Set("majorDimension", "ROWS")
	query.Set("valueRenderOption", "FORMATTED_VALUE")

	var vr ValueRange
	if err := c.get(ctx, path, query, &vr); err != nil {
		return nil, fmt.Errorf("get values %s: %w", a1Range, err)
	}
	return &vr, nil
}
