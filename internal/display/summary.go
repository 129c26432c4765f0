package display

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"leanfunnel/domain/enquiry"
)

// SummaryMarkdown writes a short narrative of the funnel
func SummaryMarkdown(m enquiry.Metrics, finalValueColumn string) string {
	var b bytes.Buffer

	fmt.Fprintf(&b, "**%s** enquiries reached the funnel; **%s** had their sample approved (%s) and **%s** confirmed an order (%s of approved samples).\n\n",
		Count(m.TotalEnquiries), Count(m.SampleApproved), Percent(m.LeadToSample),
		Count(m.OrdersConfirmed), Percent(m.SampleToOrder))

	fmt.Fprintf(&b, "Overall conversion is **%s**.\n\n", Percent(m.OverallConversion))

	if finalValueColumn == "" {
		fmt.Fprintf(&b, "Expected value totals **%s**. No final value column was found in the worksheet.\n",
			Currency(m.TotalExpectedValue))
	} else {
		fmt.Fprintf(&b, "Of **%s** expected, **%s** was realised (`%s`), a value conversion of **%s**.\n",
			Currency(m.TotalExpectedValue), Currency(m.FinalOrderValue), finalValueColumn, Percent(m.ValueConversion))
	}
	return b.String()
}

// SummaryHTML renders SummaryMarkdown to HTML for the dashboard
func SummaryHTML(m enquiry.Metrics, finalValueColumn string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	out := markdown.ToHTML([]byte(SummaryMarkdown(m, finalValueColumn)), p, r)
	return template.HTML(out)
}
