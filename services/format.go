package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundMoney rounds an amount half away from zero to 2 decimal places.
func RoundMoney(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// FormatAmount formats an amount with thousands separators and exactly
// 2 decimal places, e.g. 1234567.891 → "1,234,567.89".
func FormatAmount(amount float64) string {
	d := RoundMoney(amount)
	negative := d.IsNegative()
	if negative {
		d = d.Neg()
	}

	raw := d.StringFixed(2)
	parts := strings.SplitN(raw, ".", 2)
	result := applyThousandsGrouping(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatMoney prefixes a formatted amount with its currency code.
func FormatMoney(currency string, amount float64) string {
	if currency == "" {
		return FormatAmount(amount)
	}
	return currency + " " + FormatAmount(amount)
}

// applyThousandsGrouping inserts a comma between every group of 3 digits,
// counting from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatQty returns a string representation of the quantity value.
// Whole numbers are formatted without decimals; fractional values keep up
// to 3 decimal places.
func formatQty(qty float64) string {
	return decimal.NewFromFloat(qty).Round(3).String()
}
