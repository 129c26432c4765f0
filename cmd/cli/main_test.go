package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"leanfunnel/domain/enquiry"
	"leanfunnel/internal/testkit"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const enquiriesCSV = `Week,Sample_Status,Order_Status,Expected_Value,Final Order Value
1,Approved,Confirmed,"₹1,000",₹800
1,Approved,Pending,"₹2,000",
2,Pending,,abc,
 ,Approved,Confirmed,"₹9,999","₹9,999"
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "System_Logic.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestMetricsCmd_Table(t *testing.T) {
	path := writeCSV(t, enquiriesCSV)

	out, _, err := run(t, newMetricsCmd(), "--file", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Conversion Funnel")
	assert.Contains(t, out, "Total Enquiries")
	assert.Contains(t, out, "66.67%")
	assert.Contains(t, out, "₹ 3,000")
	assert.Contains(t, out, "26.67%")
}

func TestMetricsCmd_JSON(t *testing.T) {
	path := writeCSV(t, enquiriesCSV)

	out, _, err := run(t, newMetricsCmd(), "--file", path, "--format", "json")
	require.NoError(t, err)

	var body struct {
		Metrics          enquiry.Metrics `json:"metrics"`
		FinalValueColumn string          `json:"final_value_column"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, 3, body.Metrics.TotalEnquiries)
	assert.Equal(t, 2, body.Metrics.SampleApproved)
	assert.Equal(t, 1, body.Metrics.OrdersConfirmed)
	assert.Equal(t, 3000.0, body.Metrics.TotalExpectedValue)
	assert.Equal(t, 800.0, body.Metrics.FinalOrderValue)
	assert.Equal(t, "Final Order Value", body.FinalValueColumn)
}

func TestMetricsCmd_Markdown(t *testing.T) {
	path := writeCSV(t, enquiriesCSV)

	out, _, err := run(t, newMetricsCmd(), "--file", path, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "### Value Conversion")
	assert.Contains(t, out, "| Total Expected Value |")
}

func TestMetricsCmd_UnknownFormat(t *testing.T) {
	path := writeCSV(t, enquiriesCSV)

	_, _, err := run(t, newMetricsCmd(), "--file", path, "--format", "yaml")
	assert.Error(t, err)
}

func TestMetricsCmd_EmptyDatasetWarns(t *testing.T) {
	path := writeCSV(t, "Week,Sample_Status\n,Approved\n  ,Approved\n")

	out, errOut, err := run(t, newMetricsCmd(), "--file", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No valid enquiry data found")
}

func TestMetricsCmd_MissingFile(t *testing.T) {
	_, _, err := run(t, newMetricsCmd(), "--file", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestRowsCmd(t *testing.T) {
	path := writeCSV(t, enquiriesCSV)

	out, _, err := run(t, newRowsCmd(), "--file", path, "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Sample_Status")
	assert.Contains(t, out, "1000")
	assert.Contains(t, out, "(2 of 3 rows)")
	assert.NotContains(t, out, "9999")

	out, _, err = run(t, newRowsCmd(), "--file", path, "--format", "json")
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, 0.0, rows[2]["Expected_Value"])
}

func TestGenerateCmd_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.csv")

	_, errOut, err := run(t, newGenerateCmd(), "--out", path, "--rows", "50", "--seed", "9")
	require.NoError(t, err)
	assert.Contains(t, errOut, "wrote 50 rows")

	config := testkit.DefaultEnquiryConfig()
	config.Rows = 50
	config.Seed = 9
	truth := testkit.NewEnquiryGenerator(config).Generate().Truth

	out, _, err := run(t, newMetricsCmd(), "--file", path, "--format", "json")
	require.NoError(t, err)
	var body struct {
		Metrics enquiry.Metrics `json:"metrics"`
	}
	require.NoError(t, json.NewDecoder(strings.NewReader(out)).Decode(&body))
	assert.Equal(t, truth.TotalEnquiries, body.Metrics.TotalEnquiries)
	assert.Equal(t, truth.OrdersConfirmed, body.Metrics.OrdersConfirmed)
	assert.InDelta(t, truth.TotalExpectedValue, body.Metrics.TotalExpectedValue, 1e-6)
}
