package ui

import (
	"html/template"
	"net/http"
	"time"

	"leanfunnel/app"
	"leanfunnel/domain/enquiry"
	"leanfunnel/internal/display"
	"leanfunnel/internal/errors"
	"leanfunnel/internal/funnel"
	"leanfunnel/ports"

	"github.com/gin-gonic/gin"
)

// dashboardView is the data behind dashboard.html
type dashboardView struct {
	Title     string
	Source    string
	Worksheet string
	Warning   string
	Error     string
	Groups    []display.Group
	Summary   template.HTML
	Summaries []funnel.ValueSummary
	Columns   []string
	Rows      [][]string
	History   []ports.Snapshot
	LoadedAt  time.Time
	RuntimeMs int64
}

// tableJSON is the cleaned table as served by /api/table
type tableJSON struct {
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}

func (s *Server) handleIndex(c *gin.Context) {
	view := dashboardView{Title: s.title, Source: s.service.SourceName()}

	dashboard, err := s.service.Load(c.Request.Context())
	switch {
	case errors.IsEmptyDataset(err):
		view.Warning = "No valid enquiry data found"
		s.renderTemplate(c, http.StatusOK, "dashboard.html", view)
		return
	case err != nil:
		s.logger.Error("dashboard load failed: %v", err)
		view.Error = err.Error()
		s.renderTemplate(c, http.StatusBadGateway, "dashboard.html", view)
		return
	}

	result := dashboard.Result
	view.Worksheet = dashboard.Worksheet
	view.Groups = display.Cards(result.Metrics)
	view.Summary = display.SummaryHTML(result.Metrics, result.FinalValueColumn)
	view.Summaries = dashboard.Summaries
	view.Columns = result.Table.Columns
	view.Rows = tableRows(result.Table)
	view.History = dashboard.History
	view.LoadedAt = dashboard.LoadedAt
	view.RuntimeMs = dashboard.RuntimeMs

	s.renderTemplate(c, http.StatusOK, "dashboard.html", view)
}

func (s *Server) handleMetrics(c *gin.Context) {
	dashboard, ok := s.load(c)
	if !ok {
		return
	}

	result := dashboard.Result
	c.JSON(http.StatusOK, gin.H{
		"source":             dashboard.Source,
		"worksheet":          dashboard.Worksheet,
		"metrics":            result.Metrics,
		"final_value_column": result.FinalValueColumn,
		"coercion":           result.Coercion,
		"summaries":          dashboard.Summaries,
		"loaded_at":          dashboard.LoadedAt,
	})
}

func (s *Server) handleTable(c *gin.Context) {
	dashboard, ok := s.load(c)
	if !ok {
		return
	}

	table := dashboard.Result.Table
	out := tableJSON{Columns: table.Columns, Rows: make([]map[string]interface{}, len(table.Rows))}
	for i, row := range table.Rows {
		cells := make(map[string]interface{}, len(row))
		for col, v := range row {
			if v.IsNumeric() {
				cells[col] = v.Number
			} else {
				cells[col] = v.Text
			}
		}
		out.Rows[i] = cells
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleHistory(c *gin.Context) {
	history, err := s.service.History(c.Request.Context())
	if err != nil {
		s.logger.Error("history failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": history})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "source": s.service.SourceName()})
}

// load runs the service and writes the error response itself when it fails
func (s *Server) load(c *gin.Context) (*app.Dashboard, bool) {
	dashboard, err := s.service.Load(c.Request.Context())
	if err == nil {
		return dashboard, true
	}
	if errors.IsEmptyDataset(err) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errors.ErrEmptyDataset.Message, "code": errors.CodeEmptyDataset})
		return nil, false
	}
	s.logger.Error("load failed: %v", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
	return nil, false
}

// tableRows renders every cell as text in column order
func tableRows(table *enquiry.Table) [][]string {
	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		cells := make([]string, len(table.Columns))
		for j, col := range table.Columns {
			if v, ok := row[col]; ok {
				cells[j] = v.String()
			}
		}
		rows[i] = cells
	}
	return rows
}
