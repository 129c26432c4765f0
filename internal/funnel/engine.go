package funnel

import (
	"strings"

	"leanfunnel/adapters/coercer"
	"leanfunnel/domain/enquiry"
	"leanfunnel/internal/errors"

	"gonum.org/v1/gonum/floats"
)

// Config names the worksheet columns and status labels the engine looks at
type Config struct {
	WeekColumn          string   `json:"week_column"`
	SampleStatusColumn  string   `json:"sample_status_column"`
	ApprovedStatus      string   `json:"approved_status"`
	OrderStatusColumn   string   `json:"order_status_column"`
	ConfirmedStatus     string   `json:"confirmed_status"`
	ExpectedValueColumn string   `json:"expected_value_column"`
	FinalValueKeywords  []string `json:"final_value_keywords"` // all must appear, case-insensitive
}

// DefaultConfig returns the column names used by the System_Logic worksheet
func DefaultConfig() Config {
	return Config{
		WeekColumn:          "Week",
		SampleStatusColumn:  "Sample_Status",
		ApprovedStatus:      "Approved",
		OrderStatusColumn:   "Order_Status",
		ConfirmedStatus:     "Confirmed",
		ExpectedValueColumn: "Expected_Value",
		FinalValueKeywords:  []string{"final", "value"},
	}
}

// CoercionReport counts, for one monetary column, the cells that did not parse
// and were taken as 0
type CoercionReport struct {
	Column     string `json:"column"`
	Cells      int    `json:"cells"`
	Unparsable int    `json:"unparsable"`
}

// Result is the output of one Compute call
type Result struct {
	Table            *enquiry.Table   `json:"table"`
	Metrics          enquiry.Metrics  `json:"metrics"`
	FinalValueColumn string           `json:"final_value_column,omitempty"`
	Coercion         []CoercionReport `json:"coercion,omitempty"`
}

// Engine computes funnel metrics
type Engine struct {
	config  Config
	coercer *coercer.CurrencyCoercer
}

// NewEngine creates an engine; a nil coercer means the default rupee coercer
func NewEngine(config Config, c *coercer.CurrencyCoercer) *Engine {
	if c == nil {
		c = coercer.NewCurrencyCoercer(coercer.DefaultCurrencyConfig())
	}
	return &Engine{config: config, coercer: c}
}

var defaultEngine = NewEngine(DefaultConfig(), nil)

// Compute runs the default engine
func Compute(sheet *enquiry.Sheet) (*Result, error) {
	return defaultEngine.Compute(sheet)
}

// Compute filters, cleans and aggregates the sheet.
// It returns errors.ErrEmptyDataset when no row survives filtering.
func (e *Engine) Compute(sheet *enquiry.Sheet) (*Result, error) {
	if sheet == nil {
		return nil, errors.ErrEmptyDataset
	}

	columns := sheet.Columns()
	records := e.FilterRows(columns, sheet.Records)
	if len(records) == 0 {
		return nil, errors.ErrEmptyDataset
	}

	table := &enquiry.Table{
		Columns: columns,
		Rows:    make([]enquiry.Row, len(records)),
	}
	for i, rec := range records {
		row := make(enquiry.Row, len(rec))
		for k, v := range rec {
			row[k] = enquiry.NewTextValue(v)
		}
		table.Rows[i] = row
	}

	result := &Result{Table: table}

	var expected []float64
	if table.HasColumn(e.config.ExpectedValueColumn) {
		var report CoercionReport
		expected, report = e.normalizeColumn(table, records, e.config.ExpectedValueColumn)
		result.Coercion = append(result.Coercion, report)
	}

	var final []float64
	if col := DetectFinalValueColumn(columns, e.config.FinalValueKeywords); col != "" {
		var report CoercionReport
		final, report = e.normalizeColumn(table, records, col)
		result.FinalValueColumn = col
		result.Coercion = append(result.Coercion, report)
	}

	m := enquiry.Metrics{
		TotalEnquiries:  table.Len(),
		SampleApproved:  countEqual(records, e.config.SampleStatusColumn, e.config.ApprovedStatus),
		OrdersConfirmed: countEqual(records, e.config.OrderStatusColumn, e.config.ConfirmedStatus),
	}
	m.LeadToSample = Percent(float64(m.SampleApproved), float64(m.TotalEnquiries))
	m.SampleToOrder = Percent(float64(m.OrdersConfirmed), float64(m.SampleApproved))
	m.OverallConversion = Percent(float64(m.OrdersConfirmed), float64(m.TotalEnquiries))

	if len(expected) > 0 {
		m.TotalExpectedValue = floats.Sum(expected)
	}
	if len(final) > 0 {
		m.FinalOrderValue = floats.Sum(final)
	}
	m.ValueConversion = Percent(m.FinalOrderValue, m.TotalExpectedValue)

	result.Metrics = m
	return result, nil
}

// FilterRows drops rows whose Week cell is blank after trimming.
// When the Week column is not among columns every row is kept. A row that has no
// Week key at all is kept as well: a missing cell is not a blank one.
// Filtering an already filtered slice returns it unchanged.
func (e *Engine) FilterRows(columns []string, records []enquiry.Record) []enquiry.Record {
	if !containsString(columns, e.config.WeekColumn) {
		return records
	}

	kept := make([]enquiry.Record, 0, len(records))
	for _, rec := range records {
		week, ok := rec[e.config.WeekColumn]
		if ok && strings.TrimSpace(week) == "" {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// normalizeColumn coerces one monetary column in place. Every row ends up with a
// numeric cell, rows lacking the column get 0.
func (e *Engine) normalizeColumn(table *enquiry.Table, records []enquiry.Record, column string) ([]float64, CoercionReport) {
	values := make([]float64, len(records))
	report := CoercionReport{Column: column, Cells: len(records)}

	for i, rec := range records {
		v, ok := e.coercer.TryNormalize(rec[column])
		if !ok {
			report.Unparsable++
		}
		values[i] = v
		table.Rows[i][column] = enquiry.NewNumericValue(v)
	}
	return values, report
}

// DetectFinalValueColumn returns the first column whose lower-cased name contains
// every keyword, or "" when none does. Later matches are ignored.
func DetectFinalValueColumn(columns []string, keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	for _, col := range columns {
		lower := strings.ToLower(col)
		matched := true
		for _, kw := range keywords {
			if !strings.Contains(lower, strings.ToLower(kw)) {
				matched = false
				break
			}
		}
		if matched {
			return col
		}
	}
	return ""
}

// Percent returns num/den*100, or 0 when den is 0
func Percent(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}

func countEqual(records []enquiry.Record, column, want string) int {
	n := 0
	for _, rec := range records {
		if v, ok := rec[column]; ok && v == want {
			n++
		}
	}
	return n
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
