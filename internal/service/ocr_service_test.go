package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCleanNumericValue(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
		ok    bool
	}{
		{name: "plain float", input: 42.5, want: 42.5, ok: true},
		{name: "int", input: 7, want: 7, ok: true},
		{name: "dollar string", input: "$1,234.56", want: 1234.56, ok: true},
		{name: "euro suffix", input: "99.90 EUR", want: 99.90, ok: true},
		{name: "negative", input: "-15.00", want: -15, ok: true},
		{name: "empty string", input: "", ok: false},
		{name: "symbols only", input: "$,", ok: false},
		{name: "nil", input: nil, ok: false},
		{name: "bool", input: true, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanNumericValue(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain code", input: "USD", want: "USD"},
		{name: "parenthesized symbol", input: "US Dollar ($)", want: "$"},
		{name: "parenthesized code", input: "Euro (EUR)", want: "EUR"},
		{name: "overlong truncated", input: "UnitedStatesDollar", want: "UnitedStat"},
		{name: "whitespace trimmed", input: "  GBP ", want: "GBP"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCurrency(tt.input))
		})
	}
}

func TestMergeExtractionsLLMWins(t *testing.T) {
	fields := map[string]interface{}{
		"Vendor/Store":                    "Cafe Luna",
		"Amount":                          "$23.40",
		"Currency":                        "US Dollar ($)",
		"Date":                            "2026-03-14",
		"Category":                        "Food",
		"Description":                     "Team lunch",
		"Payment Method":                  "Credit Card",
		"Tax Amount":                      "1.87",
		"Document ID or Reference Number": "R-8841",
	}

	data := MergeExtractions(fields, "CAFE LUNA\nTOTAL 23.40")

	assert.Equal(t, "Cafe Luna", data.VendorName)
	assert.InDelta(t, 23.40, data.Amount, 1e-9)
	assert.Equal(t, "$", data.Currency)
	assert.Equal(t, "2026-03-14", data.Date)
	assert.Equal(t, "Food", data.Category)
	assert.Equal(t, "Team lunch", data.Description)
	assert.Equal(t, "Credit Card", data.PaymentMethod)
	assert.InDelta(t, 1.87, data.TaxAmount, 1e-9)
	assert.Equal(t, "R-8841", data.DocumentID)
}

func TestMergeExtractionsBackfillsFromLocalText(t *testing.T) {
	localText := "ACME HARDWARE\nInvoice No: INV-2231\nTotal 54.00"

	data := MergeExtractions(map[string]interface{}{}, localText)

	assert.Equal(t, "ACME HARDWARE", data.VendorName)
	assert.Equal(t, "ACME HARDWARE", data.Description)
	assert.Equal(t, "INV-2231", data.DocumentID)
	assert.Zero(t, data.Amount)
}

func TestMergeExtractionsEmptyInputs(t *testing.T) {
	data := MergeExtractions(map[string]interface{}{}, "")

	// every contract field present, zero-valued
	assert.Empty(t, data.VendorName)
	assert.Zero(t, data.Amount)
	assert.Empty(t, data.Currency)
	assert.Empty(t, data.Date)
	assert.Empty(t, data.Category)
	assert.Empty(t, data.Description)
	assert.Zero(t, data.TaxAmount)
}

func TestTruncateRunesMultibyte(t *testing.T) {
	assert.Equal(t, "short", truncateRunes("short", 10))
	assert.Equal(t, "ééééé", truncateRunes("ééééééé", 5))

	// splitting on a byte boundary must never yield invalid UTF-8
	long := strings.Repeat("a", 99) + "é"
	got := truncateRunes(long, 100)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 100, utf8.RuneCountInString(got))
}

func TestNormalizeCurrencyMultibyte(t *testing.T) {
	got := NormalizeCurrency("руб. российский рубль")
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 10)
}

func TestFirstLineMultibyte(t *testing.T) {
	got := firstLine(strings.Repeat("a", 99) + "é and more\nsecond line")
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 100, utf8.RuneCountInString(got))
}
