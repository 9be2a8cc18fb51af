// Package format renders backend quantities for display: money,
// percentages, distances, and request latencies.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Money formats a dollar amount with cents and thousands separators.
func Money(v float64) string {
	d := decimal.NewFromFloat(v)
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := "$" + group(intPart) + "." + frac
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

// Percent formats a 0..1 ratio as a percentage with one decimal.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// Distance formats kilometers with one decimal.
func Distance(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}

// Quantity formats a unit count, dropping a fractional part of zero.
func Quantity(v float64) string {
	d := decimal.NewFromFloat(v).Round(1)
	if d.IsInteger() {
		return group(d.StringFixed(0))
	}
	s := d.StringFixed(1)
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")
	out := group(intPart) + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// Count formats an integer with thousands separators.
func Count(n int) string {
	return Quantity(float64(n))
}

// Latency formats a request duration: milliseconds under a second,
// seconds with one decimal above.
func Latency(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Coord formats a latitude/longitude pair.
func Coord(lat, lon float64) string {
	return fmt.Sprintf("%.2f, %.2f", lat, lon)
}

// group inserts thousands separators into a digit string.
func group(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")
	if len(digits) <= 3 {
		if neg {
			return "-" + digits
		}
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
