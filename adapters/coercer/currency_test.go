package coercer

import (
	"strconv"
	"testing"
)

func TestCurrencyCoercer_Normalize(t *testing.T) {
	c := NewCurrencyCoercer(DefaultCurrencyConfig())

	tests := []struct {
		name     string
		raw      string
		expected float64
		ok       bool
	}{
		{name: "rupee with grouping", raw: "₹1,000", expected: 1000, ok: true},
		{name: "indian grouping", raw: "₹ 1,25,000.50", expected: 125000.5, ok: true},
		{name: "surrounding spaces", raw: "  42  ", expected: 42, ok: true},
		{name: "plain decimal", raw: "1234.75", expected: 1234.75, ok: true},
		{name: "scientific notation", raw: "1e3", expected: 1000, ok: true},
		{name: "negative passes through", raw: "-250", expected: -250, ok: true},
		{name: "symbol in the middle", raw: "1₹0,0", expected: 100, ok: true},
		{name: "empty string", raw: "", expected: 0, ok: false},
		{name: "whitespace only", raw: "   ", expected: 0, ok: false},
		{name: "word", raw: "abc", expected: 0, ok: false},
		{name: "symbols only", raw: "₹,", expected: 0, ok: false},
		{name: "nan text", raw: "nan", expected: 0, ok: false},
		{name: "infinity text", raw: "Inf", expected: 0, ok: false},
		{name: "hex float", raw: "0x1p3", expected: 0, ok: false},
		{name: "underscore grouping", raw: "1_000", expected: 0, ok: false},
		{name: "dollar is not stripped", raw: "$100", expected: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.TryNormalize(tt.raw)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("TryNormalize(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.expected, tt.ok)
			}
			if n := c.Normalize(tt.raw); n != tt.expected {
				t.Errorf("Normalize(%q) = %v, want %v", tt.raw, n, tt.expected)
			}
		})
	}
}

func TestCurrencyCoercer_CleanTextRoundTrip(t *testing.T) {
	c := NewCurrencyCoercer(DefaultCurrencyConfig())

	for _, raw := range []string{"0", "1", "15000", "99.99", "0.001", "123456789"} {
		got := c.Normalize(raw)
		again := c.Normalize(strconv.FormatFloat(got, 'f', -1, 64))
		if got != again {
			t.Errorf("round trip of %q: %v then %v", raw, got, again)
		}
	}
}

func TestCurrencyCoercer_CustomConfig(t *testing.T) {
	c := NewCurrencyCoercer(CurrencyConfig{
		Symbols:    []string{"$", "USD"},
		Separators: []string{",", " "},
	})

	if got := c.Normalize("USD 1 234,000"); got != 1234000 {
		t.Errorf("Normalize = %v, want 1234000", got)
	}
	if got := c.Normalize("₹10"); got != 0 {
		t.Errorf("rupee sign should not be stripped by a dollar config, got %v", got)
	}
}
