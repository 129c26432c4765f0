package coercer

import (
	"math"
	"strconv"
	"strings"
)

// CurrencyConfig lists what gets stripped from a cell before it is parsed
type CurrencyConfig struct {
	Symbols    []string `json:"symbols"`    // currency markers, removed wherever they occur
	Separators []string `json:"separators"` // thousands separators, removed wherever they occur
}

// DefaultCurrencyConfig strips the rupee sign and comma grouping
func DefaultCurrencyConfig() CurrencyConfig {
	return CurrencyConfig{
		Symbols:    []string{"₹"},
		Separators: []string{","},
	}
}

// CurrencyCoercer turns currency-formatted cell text into a decimal number.
//
// Coercion never fails: text that does not parse (empty cells, words, a lone
// symbol, NaN or infinities) is treated as 0. Spreadsheet monetary columns are
// hand-edited and a number is always preferred over an error.
type CurrencyCoercer struct {
	replacer *strings.Replacer
}

// NewCurrencyCoercer creates a coercer with the given config
func NewCurrencyCoercer(config CurrencyConfig) *CurrencyCoercer {
	pairs := make([]string, 0, 2*(len(config.Symbols)+len(config.Separators)))
	for _, s := range config.Symbols {
		if s != "" {
			pairs = append(pairs, s, "")
		}
	}
	for _, s := range config.Separators {
		if s != "" {
			pairs = append(pairs, s, "")
		}
	}
	return &CurrencyCoercer{replacer: strings.NewReplacer(pairs...)}
}

// Normalize returns the numeric value of raw, or 0 when it does not parse
func (c *CurrencyCoercer) Normalize(raw string) float64 {
	v, _ := c.TryNormalize(raw)
	return v
}

// TryNormalize is Normalize that also reports whether raw parsed cleanly.
// A false result always comes with a 0 value.
func (c *CurrencyCoercer) TryNormalize(raw string) (float64, bool) {
	clean := strings.TrimSpace(c.replacer.Replace(raw))
	if clean == "" || !isDecimalText(clean) {
		return 0, false
	}

	val, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	return val, true
}

// isDecimalText rejects the Go-specific forms ParseFloat accepts but a
// spreadsheet user never means: hex floats and underscore digit grouping.
func isDecimalText(s string) bool {
	body := strings.TrimLeft(s, "+-")
	if len(body) >= 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		return false
	}
	return !strings.Contains(s, "_")
}
