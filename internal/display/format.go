// Package display formats funnel metrics for people: percentages with two
// decimals, rupee amounts grouped by thousands, and the metric card layout used
// by both the web dashboard and the CLI.
package display

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"leanfunnel/domain/enquiry"
)

// CurrencySymbol prefixes every monetary figure
const CurrencySymbol = "₹"

var printer = message.NewPrinter(language.English)

// Percent formats a percentage value, e.g. 66.666 -> "66.67%"
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// Currency formats an amount as "₹ 125,000": thousands grouped in threes, no decimals
func Currency(v float64) string {
	if v == 0 {
		v = 0 // no "-0"
	}
	return CurrencySymbol + " " + printer.Sprintf("%.0f", v)
}

// Count formats an integer count with thousands grouping
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Card is one labelled figure on the dashboard
type Card struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Group is a titled row of cards
type Group struct {
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// Cards lays the metrics out as the funnel group and the value group
func Cards(m enquiry.Metrics) []Group {
	return []Group{
		{
			Title: "Conversion Funnel",
			Cards: []Card{
				{Key: enquiry.KeyTotalEnquiries, Label: "Total Enquiries", Value: Count(m.TotalEnquiries)},
				{Key: enquiry.KeySampleApproved, Label: "Sample Approved", Value: Count(m.SampleApproved)},
				{Key: enquiry.KeyOrdersConfirmed, Label: "Orders Confirmed", Value: Count(m.OrdersConfirmed)},
				{Key: enquiry.KeyOverallConversion, Label: "Overall Conversion %", Value: Percent(m.OverallConversion)},
				{Key: enquiry.KeyLeadToSample, Label: "Lead → Sample Conversion %", Value: Percent(m.LeadToSample)},
				{Key: enquiry.KeySampleToOrder, Label: "Sample → Order Conversion %", Value: Percent(m.SampleToOrder)},
			},
		},
		{
			Title: "Value Conversion",
			Cards: []Card{
				{Key: enquiry.KeyTotalExpectedValue, Label: "Total Expected Value", Value: Currency(m.TotalExpectedValue)},
				{Key: enquiry.KeyFinalOrderValue, Label: "Final Order Value", Value: Currency(m.FinalOrderValue)},
				{Key: enquiry.KeyValueConversion, Label: "Value Conversion %", Value: Percent(m.ValueConversion)},
			},
		},
	}
}
