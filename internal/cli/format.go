package cli

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders d as dollars with thousands separators, e.g. "$1,234.50"
// or "-$12.00".
func FormatMoney(d decimal.Decimal) string {
	return formatCurrency("$", d)
}

// FormatMXN renders d as Mexican pesos, e.g. "MX$2,196.00".
func FormatMXN(d decimal.Decimal) string {
	return formatCurrency("MX$", d)
}

// FormatPercent renders d with one decimal, e.g. "42.5%".
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// FormatSigned renders d as money with an explicit sign, e.g. "+$10.00".
func FormatSigned(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatMoney(d)
	}
	return FormatMoney(d)
}

func formatCurrency(symbol string, d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + symbol + b.String() + "." + frac
}
