// Package format renders monetary amounts, percentages and ratios for display.
// All output uses US dollars and US digit grouping.
package format

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is rendered in place of NaN or infinite values.
const NotAvailable = "n/a"

var printer = message.NewPrinter(language.AmericanEnglish)

// unit is a compact-display magnitude.
type unit struct {
	scale    float64
	suffix   string
	decimals int32
}

// units is ordered from largest to smallest.
var units = []unit{
	{1e9, "B", 1},
	{1e6, "M", 1},
	{1e3, "K", 0},
}

// Currency renders amount in whole dollars with thousands separators,
// e.g. "$1,234,567" or "-$1,235".
func Currency(amount float64) string {
	if !finite(amount) {
		return NotAvailable
	}
	d := decimal.NewFromFloat(amount).Round(0)
	return sign(d) + "$" + grouped(d.Abs())
}

// Number renders amount in compact form ("$150K", "$1.5M", "$2.3B").
// Amounts under a thousand fall back to Currency.
func Number(amount float64) string {
	if !finite(amount) {
		return NotAvailable
	}
	abs := math.Abs(amount)
	for i, u := range units {
		if abs < u.scale {
			continue
		}
		scaled := decimal.NewFromFloat(abs / u.scale).Round(u.decimals)
		// 999,999 rounds to "1000K"; promote to the next unit instead.
		if i > 0 && scaled.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
			up := units[i-1]
			scaled = decimal.NewFromFloat(abs / up.scale).Round(up.decimals)
			u = up
		}
		prefix := ""
		if amount < 0 {
			prefix = "-"
		}
		return prefix + "$" + scaled.StringFixed(u.decimals) + u.suffix
	}
	return Currency(amount)
}

// Percentage renders value with a fixed number of decimals and a "%" suffix.
// Negative decimals are treated as zero.
func Percentage(value float64, decimals int) string {
	if !finite(value) {
		return NotAvailable
	}
	if decimals < 0 {
		decimals = 0
	}
	return decimal.NewFromFloat(value).StringFixed(int32(decimals)) + "%"
}

// Ratio renders r as "3.00:1".
func Ratio(r float64) string {
	if !finite(r) {
		return NotAvailable
	}
	return decimal.NewFromFloat(r).StringFixed(2) + ":1"
}

// Months renders a runway length as "10.0 mo", or "unbounded" when the
// business is cash-flow positive.
func Months(months float64, unbounded bool) string {
	if unbounded {
		return "unbounded"
	}
	if !finite(months) {
		return NotAvailable
	}
	return decimal.NewFromFloat(months).StringFixed(1) + " mo"
}

func grouped(d decimal.Decimal) string {
	if d.LessThan(decimal.New(1, 18)) {
		return printer.Sprintf("%d", d.IntPart())
	}
	f, _ := d.Float64()
	return printer.Sprintf("%.0f", f)
}

func sign(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-"
	}
	return ""
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
