package services

import (
	"fmt"
	"math"
	"strings"
)

// FormatUSD formats an amount as US dollars with thousands separators and
// exactly 2 decimal places (e.g. $12,345.60).
func FormatUSD(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := "$" + groupThousands(parts[0]) + "." + parts[1]
	if negative && raw != "0.00" {
		result = "-" + result
	}
	return result
}

// groupThousands inserts a comma every 3 digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatMiles renders a distance with 2 decimals.
func FormatMiles(miles float64) string {
	return fmt.Sprintf("%.2f mi", miles)
}

// formatQty returns whole numbers without decimals, fractions with 2.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
