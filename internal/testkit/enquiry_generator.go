package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"leanfunnel/domain/enquiry"
)

// Column names written by the generator, matching the System_Logic worksheet
const (
	ColumnWeek          = "Week"
	ColumnEnquiryID     = "Enquiry_ID"
	ColumnCustomer      = "Customer"
	ColumnSampleStatus  = "Sample_Status"
	ColumnOrderStatus   = "Order_Status"
	ColumnExpectedValue = "Expected_Value"
	ColumnFinalValue    = "Final Order Value"
)

// EnquiryGeneratorConfig configures the enquiry sheet generator
type EnquiryGeneratorConfig struct {
	Rows              int     `json:"rows"`
	Weeks             int     `json:"weeks"`
	BlankWeekRate     float64 `json:"blank_week_rate"`    // rows with a blank Week cell
	SampleApproval    float64 `json:"sample_approval"`    // share of kept rows approved
	OrderConfirmation float64 `json:"order_confirmation"` // share of approved rows confirmed
	MeanExpectedValue float64 `json:"mean_expected_value"`
	UnparsableRate    float64 `json:"unparsable_rate"` // money cells written as "TBD"
	Seed              int64   `json:"seed"`
}

// DefaultEnquiryConfig returns a small, realistic funnel
func DefaultEnquiryConfig() EnquiryGeneratorConfig {
	return EnquiryGeneratorConfig{
		Rows:              200,
		Weeks:             12,
		BlankWeekRate:     0.1,
		SampleApproval:    0.45,
		OrderConfirmation: 0.5,
		MeanExpectedValue: 50000,
		UnparsableRate:    0.05,
		Seed:              42,
	}
}

// GeneratedSheet is a sheet plus the figures the engine should derive from it
type GeneratedSheet struct {
	Sheet *enquiry.Sheet
	Truth enquiry.Metrics
}

// EnquiryGenerator produces deterministic enquiry sheets for tests and demos
type EnquiryGenerator struct {
	config EnquiryGeneratorConfig
	rng    *rand.Rand
}

// NewEnquiryGenerator creates a generator; the same seed yields the same sheet
func NewEnquiryGenerator(config EnquiryGeneratorConfig) *EnquiryGenerator {
	return &EnquiryGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var sampleOutcomes = []string{"Pending", "Rejected", "Sent"}
var orderOutcomes = []string{"Pending", "Lost", "Negotiating"}

// Generate builds a sheet and its expected metrics
func (g *EnquiryGenerator) Generate() GeneratedSheet {
	sheet := &enquiry.Sheet{
		Name: "System_Logic",
		Headers: []string{
			ColumnWeek, ColumnEnquiryID, ColumnCustomer, ColumnSampleStatus,
			ColumnOrderStatus, ColumnExpectedValue, ColumnFinalValue,
		},
	}

	var truth enquiry.Metrics
	weeks := g.config.Weeks
	if weeks < 1 {
		weeks = 1
	}

	for i := 0; i < g.config.Rows; i++ {
		rec := enquiry.Record{
			ColumnEnquiryID: fmt.Sprintf("ENQ-%05d", i+1),
			ColumnCustomer:  fmt.Sprintf("customer_%04d", g.rng.Intn(g.config.Rows+1)),
		}

		blank := g.rng.Float64() < g.config.BlankWeekRate
		if blank {
			rec[ColumnWeek] = strings.Repeat(" ", g.rng.Intn(3))
		} else {
			rec[ColumnWeek] = strconv.Itoa(1 + g.rng.Intn(weeks))
		}

		approved := g.rng.Float64() < g.config.SampleApproval
		confirmed := approved && g.rng.Float64() < g.config.OrderConfirmation
		if approved {
			rec[ColumnSampleStatus] = "Approved"
		} else {
			rec[ColumnSampleStatus] = sampleOutcomes[g.rng.Intn(len(sampleOutcomes))]
		}
		if confirmed {
			rec[ColumnOrderStatus] = "Confirmed"
		} else {
			rec[ColumnOrderStatus] = orderOutcomes[g.rng.Intn(len(orderOutcomes))]
		}

		expected := g.amount(g.config.MeanExpectedValue)
		var final float64
		if confirmed {
			final = g.amount(expected * (0.7 + 0.5*g.rng.Float64()))
		}
		expectedText, expectedValue := g.moneyCell(expected)
		finalText, finalValue := g.moneyCell(final)
		rec[ColumnExpectedValue] = expectedText
		rec[ColumnFinalValue] = finalText

		sheet.Records = append(sheet.Records, rec)
		if blank {
			continue
		}

		truth.TotalEnquiries++
		if approved {
			truth.SampleApproved++
		}
		if confirmed {
			truth.OrdersConfirmed++
		}
		truth.TotalExpectedValue += expectedValue
		truth.FinalOrderValue += finalValue
	}

	truth.LeadToSample = percent(float64(truth.SampleApproved), float64(truth.TotalEnquiries))
	truth.SampleToOrder = percent(float64(truth.OrdersConfirmed), float64(truth.SampleApproved))
	truth.OverallConversion = percent(float64(truth.OrdersConfirmed), float64(truth.TotalEnquiries))
	truth.ValueConversion = percent(truth.FinalOrderValue, truth.TotalExpectedValue)

	return GeneratedSheet{Sheet: sheet, Truth: truth}
}

// amount draws a whole-rupee value from a log-normal around mean
func (g *EnquiryGenerator) amount(mean float64) float64 {
	if mean <= 0 {
		return 0
	}
	v := mean * math.Exp(g.rng.NormFloat64()*0.4-0.08)
	return math.Round(v)
}

// moneyCell renders v the way the sheet shows it, sometimes as unparsable text
func (g *EnquiryGenerator) moneyCell(v float64) (string, float64) {
	if g.rng.Float64() < g.config.UnparsableRate {
		return "TBD", 0
	}
	if v == 0 && g.rng.Intn(2) == 0 {
		return "", 0
	}
	return "₹" + groupThousands(int64(v)), v
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func percent(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}
