package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"leanfunnel/app"
	"leanfunnel/domain/enquiry"
	"leanfunnel/internal/display"

	"github.com/jedib0t/go-pretty/v6/table"
)

func renderMetrics(w io.Writer, dashboard *app.Dashboard, format string) error {
	result := dashboard.Result

	switch format {
	case "json":
		return renderJSON(w, map[string]any{
			"source":             dashboard.Source,
			"metrics":            result.Metrics,
			"final_value_column": result.FinalValueColumn,
			"coercion":           result.Coercion,
			"summaries":          dashboard.Summaries,
		})
	case "md", "markdown":
		_, err := fmt.Fprint(w, display.SummaryMarkdown(result.Metrics, result.FinalValueColumn))
		if err != nil {
			return err
		}
		return renderCards(w, display.Cards(result.Metrics), true)
	case "table", "":
		return renderCards(w, display.Cards(result.Metrics), false)
	default:
		return fmt.Errorf("unknown format %q (use table, json or markdown)", format)
	}
}

func renderCards(w io.Writer, groups []display.Group, markdown bool) error {
	for _, group := range groups {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.SetTitle(group.Title)
		t.AppendHeader(table.Row{"Metric", "Value"})
		for _, card := range group.Cards {
			t.AppendRow(table.Row{card.Label, card.Value})
		}

		if markdown {
			fmt.Fprintf(w, "\n### %s\n\n", group.Title)
			t.SetTitle("")
			t.RenderMarkdown()
		} else {
			t.Render()
		}
	}
	return nil
}

func renderRows(w io.Writer, tbl *enquiry.Table, limit int, format string) error {
	rows := tbl.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	switch format {
	case "json":
		out := make([]map[string]any, len(rows))
		for i, row := range rows {
			cells := make(map[string]any, len(row))
			for col, v := range row {
				if v.IsNumeric() {
					cells[col] = v.Number
				} else {
					cells[col] = v.Text
				}
			}
			out[i] = cells
		}
		return renderJSON(w, out)
	case "table", "", "md", "markdown":
	default:
		return fmt.Errorf("unknown format %q (use table, json or markdown)", format)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(tbl.Columns))
	for i, col := range tbl.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(tbl.Columns))
		for i, col := range tbl.Columns {
			if v, ok := row[col]; ok {
				r[i] = v.String()
			}
		}
		t.AppendRow(r)
	}

	if format == "md" || format == "markdown" {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	if len(rows) < tbl.Len() {
		fmt.Fprintf(w, "(%d of %d rows)\n", len(rows), tbl.Len())
	}
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeSheetCSV writes headers then records, the layout the file reader expects
func writeSheetCSV(w io.Writer, sheet *enquiry.Sheet) error {
	cw := csv.NewWriter(w)
	columns := sheet.Columns()
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, rec := range sheet.Records {
		line := make([]string, len(columns))
		for i, col := range columns {
			line[i] = rec[col]
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
