// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatMoney formats an amount with a currency symbol and comma grouping.
// e.g., (1234567.5, "₹") -> "₹1,234,567.50", (-12, "$") -> "-$12.00"
func FormatMoney(amount float64, symbol string) string {
	amount = roundCents(amount)
	if amount < 0 {
		return "-" + FormatMoney(-amount, symbol)
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return symbol + s
	}
	return symbol + humanize.Comma(n) + "." + frac
}

// roundCents rounds to two decimals. Amounts that round to zero lose
// their sign.
func roundCents(v float64) float64 {
	return math.Round(v*100)/100 + 0
}

// FormatCompact abbreviates large amounts.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M"
func FormatCompact(amount float64, symbol string) string {
	abs := math.Abs(amount)
	sign := ""
	if amount < 0 {
		sign = "-"
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%s%s%.1fB", sign, symbol, abs/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%s%s%.1fM", sign, symbol, abs/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s%s%.1fK", sign, symbol, abs/1_000)
	default:
		return sign + symbol + strconv.FormatFloat(abs, 'f', 0, 64)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a percentage value (0-100 scale).
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatRatio formats a 0-1 float as a percentage string.
func FormatRatio(f float64) string {
	return FormatPercent(f * 100)
}

// FormatSigned formats an amount with an explicit sign.
func FormatSigned(amount float64, symbol string) string {
	if roundCents(amount) >= 0 {
		return "+" + FormatMoney(amount, symbol)
	}
	return FormatMoney(amount, symbol)
}

// FormatDue describes a YYYY-MM-DD due date relative to now,
// e.g. "today", "tomorrow", "3 days from now", "2 days ago".
// Unparseable dates are returned as given.
func FormatDue(date string, now time.Time) string {
	due, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return date
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch days := int(math.Round(due.Sub(today).Hours() / 24)); days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	case -1:
		return "yesterday"
	}
	return humanize.RelTime(due, today, "ago", "from now")
}
