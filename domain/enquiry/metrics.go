package enquiry

// Metric keys, fixed for every consumer of the metrics mapping
const (
	KeyTotalEnquiries     = "total_enquiries"
	KeySampleApproved     = "sample_approved"
	KeyOrdersConfirmed    = "orders_confirmed"
	KeyOverallConversion  = "overall_conversion"
	KeyLeadToSample       = "lead_to_sample"
	KeySampleToOrder      = "sample_to_order"
	KeyTotalExpectedValue = "total_expected_value"
	KeyFinalOrderValue    = "final_order_value"
	KeyValueConversion    = "value_conversion"
)

// MetricKeys lists the metric keys in display order
var MetricKeys = []string{
	KeyTotalEnquiries,
	KeySampleApproved,
	KeyOrdersConfirmed,
	KeyOverallConversion,
	KeyLeadToSample,
	KeySampleToOrder,
	KeyTotalExpectedValue,
	KeyFinalOrderValue,
	KeyValueConversion,
}

// Metrics are the funnel figures derived from a cleaned table.
// Percentages are in percent units (100 means 100%).
type Metrics struct {
	TotalEnquiries     int     `json:"total_enquiries" db:"total_enquiries"`
	SampleApproved     int     `json:"sample_approved" db:"sample_approved"`
	OrdersConfirmed    int     `json:"orders_confirmed" db:"orders_confirmed"`
	OverallConversion  float64 `json:"overall_conversion" db:"overall_conversion"`
	LeadToSample       float64 `json:"lead_to_sample" db:"lead_to_sample"`
	SampleToOrder      float64 `json:"sample_to_order" db:"sample_to_order"`
	TotalExpectedValue float64 `json:"total_expected_value" db:"total_expected_value"`
	FinalOrderValue    float64 `json:"final_order_value" db:"final_order_value"`
	ValueConversion    float64 `json:"value_conversion" db:"value_conversion"`
}

// AsMap returns the metrics keyed by their fixed names
func (m Metrics) AsMap() map[string]float64 {
	return map[string]float64{
		KeyTotalEnquiries:     float64(m.TotalEnquiries),
		KeySampleApproved:     float64(m.SampleApproved),
		KeyOrdersConfirmed:    float64(m.OrdersConfirmed),
		KeyOverallConversion:  m.OverallConversion,
		KeyLeadToSample:       m.LeadToSample,
		KeySampleToOrder:      m.SampleToOrder,
		KeyTotalExpectedValue: m.TotalExpectedValue,
		KeyFinalOrderValue:    m.FinalOrderValue,
		KeyValueConversion:    m.ValueConversion,
	}
}
