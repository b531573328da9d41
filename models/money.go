package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is the only currency the viewer displays.
const CurrencySymbol = "$"

// plainAmount is what ParseCurrency accepts once the sign, symbol and
// separators are stripped: no exponents, at most twelve whole digits.
var plainAmount = regexp.MustCompile(`^\d{1,12}(\.\d{1,6})?$`)

// RoundCents rounds an amount to two decimal places, half away from zero.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Cents returns the amount as a whole number of cents after rounding.
// Amounts beyond the int64 range of cents are not representable.
func Cents(amount decimal.Decimal) int64 {
	return RoundCents(amount).Shift(2).IntPart()
}

// FormatCurrency renders an amount as US dollars, e.g. "$1,234.50".
// The amount is always rounded to cents first so that a displayed value
// can never disagree with a computed one.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := RoundCents(amount)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	return sign + CurrencySymbol + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	if len(digits) <= head {
		return digits
	}
	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseCurrency is the inverse of FormatCurrency. It accepts an optional
// leading minus, a dollar symbol and thousands separators around a plain
// decimal amount.
func ParseCurrency(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned, negative := strings.CutPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, CurrencySymbol)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("parsing currency %q: empty amount", s)
	}
	if !plainAmount.MatchString(cleaned) {
		return decimal.Zero, fmt.Errorf("parsing currency %q: not a plain amount", s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing currency %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return RoundCents(d), nil
}
