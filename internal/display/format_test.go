package display

import (
	"strings"
	"testing"

	"leanfunnel/domain/enquiry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00%"},
		{100, "100.00%"},
		{66.6666, "66.67%"},
		{12.344, "12.34%"},
		{250, "250.00%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.in))
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹ 0"},
		{1000, "₹ 1,000"},
		{125000.4, "₹ 125,000"},
		{1234567, "₹ 1,234,567"},
		{999, "₹ 999"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in))
	}
}

func TestCount(t *testing.T) {
	assert.Equal(t, "7", Count(7))
	assert.Equal(t, "12,345", Count(12345))
}

func TestCards(t *testing.T) {
	m := enquiry.Metrics{
		TotalEnquiries:     4,
		SampleApproved:     2,
		OrdersConfirmed:    1,
		OverallConversion:  25,
		LeadToSample:       50,
		SampleToOrder:      50,
		TotalExpectedValue: 2000,
		FinalOrderValue:    500,
		ValueConversion:    25,
	}

	groups := Cards(m)
	require.Len(t, groups, 2)
	assert.Equal(t, "Conversion Funnel", groups[0].Title)
	assert.Equal(t, "Value Conversion", groups[1].Title)

	seen := map[string]string{}
	for _, g := range groups {
		for _, c := range g.Cards {
			seen[c.Key] = c.Value
		}
	}
	assert.Len(t, seen, len(enquiry.MetricKeys))
	for _, key := range enquiry.MetricKeys {
		assert.Contains(t, seen, key)
	}
	assert.Equal(t, "25.00%", seen[enquiry.KeyOverallConversion])
	assert.Equal(t, "₹ 2,000", seen[enquiry.KeyTotalExpectedValue])
	assert.Equal(t, "4", seen[enquiry.KeyTotalEnquiries])
}

func TestSummaryHTML(t *testing.T) {
	m := enquiry.Metrics{TotalEnquiries: 10, SampleApproved: 5, OrdersConfirmed: 2, TotalExpectedValue: 1000, FinalOrderValue: 250, ValueConversion: 25}

	out := string(SummaryHTML(m, "Final Order Value"))
	assert.True(t, strings.HasPrefix(out, "<p>"))
	assert.Contains(t, out, "<strong>10</strong>")
	assert.Contains(t, out, "<code>Final Order Value</code>")
	assert.Contains(t, out, "25.00%")

	md := SummaryMarkdown(m, "")
	assert.Contains(t, md, "No final value column")
}
