package funnel

import (
	"leanfunnel/domain/enquiry"

	"github.com/montanaflynn/stats"
)

// ValueSummary describes the distribution of one numeric column
type ValueSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`

	// Outliers counts values beyond 1.5 IQR from the quartiles
	Outliers int `json:"outliers"`
}

// Summarize computes mean, median, range and spread over the numeric cells of column.
// Cells that are not numeric are skipped; a column with no numeric cell yields a
// summary with Count 0 and zero statistics.
func Summarize(table *enquiry.Table, column string) ValueSummary {
	summary := ValueSummary{Column: column}
	if table == nil || column == "" {
		return summary
	}

	var data stats.Float64Data
	for _, row := range table.Rows {
		if v, ok := row[column]; ok && v.IsNumeric() {
			data = append(data, v.Number)
		}
	}
	if len(data) == 0 {
		return summary
	}

	summary.Count = len(data)
	// stats only errors on empty input, which is ruled out above
	summary.Mean, _ = data.Mean()
	summary.Median, _ = data.Median()
	summary.Min, _ = data.Min()
	summary.Max, _ = data.Max()
	summary.StdDev, _ = data.StandardDeviation()
	summary.Q1, _ = data.Percentile(25)
	summary.Q3, _ = data.Percentile(75)
	summary.Outliers = countOutliers(data, summary.Q1, summary.Q3)
	return summary
}

// SummarizeValues summarizes the expected-value column and the detected
// final-value column of a result
func (r *Result) SummarizeValues(config Config) []ValueSummary {
	var out []ValueSummary
	if r.Table.HasColumn(config.ExpectedValueColumn) {
		out = append(out, Summarize(r.Table, config.ExpectedValueColumn))
	}
	if r.FinalValueColumn != "" && r.FinalValueColumn != config.ExpectedValueColumn {
		out = append(out, Summarize(r.Table, r.FinalValueColumn))
	}
	return out
}

func countOutliers(data []float64, q1, q3 float64) int {
	iqr := q3 - q1
	lower, upper := q1-1.5*iqr, q3+1.5*iqr

	n := 0
	for _, v := range data {
		if v < lower || v > upper {
			n++
		}
	}
	return n
}
