package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"24.995", "$25.00"},
		{"24.994", "$24.99"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"-42.1", "-$42.10"},
		{"-0.001", "$0.00"},
		{"100000000000000000", "$100,000,000,000,000,000.00"},
		{"123456789012345678901234.567", "$123,456,789,012,345,678,901,234.57"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	formatted := FormatCurrency(decimal.RequireFromString("1234.5"))
	require.Equal(t, "$1,234.50", formatted)

	parsed, err := ParseCurrency(formatted)
	require.NoError(t, err)
	assert.Equal(t, "1234.50", parsed.StringFixed(2))
	assert.Equal(t, int64(123450), Cents(parsed))
}

func TestParseCurrency(t *testing.T) {
	d, err := ParseCurrency(" -$1,000.005 ")
	require.NoError(t, err)
	assert.Equal(t, "-1000.01", d.StringFixed(2))

	_, err = ParseCurrency("$")
	assert.Error(t, err)

	_, err = ParseCurrency("twelve")
	assert.Error(t, err)
}

func TestParseCurrency_RejectsNonPlainAmounts(t *testing.T) {
	for _, in := range []string{
		"--5",
		"-$-5",
		"+5",
		"1e2",
		"1e30000000",
		"1E-3",
		"0x10",
		"1234567890123",
		"1.1234567",
		".5",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseCurrency(in)
			assert.Error(t, err)
		})
	}
}
