package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/finboard/internal/cli"
)

const dateLayout = "2006-01-02"

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid amount %q: must be a positive number", s)
	}
	return v, nil
}

// parseDate accepts YYYY-MM-DD, "today" and "yesterday". Empty means today.
func parseDate(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return now.Format(dateLayout), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(dateLayout), nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return s, nil
}

// monthRange returns the first and last dates of the month containing t,
// or of the month named by "YYYY-MM".
func monthRange(month string, now time.Time) (start, end string, err error) {
	t := now
	if month != "" {
		t, err = time.Parse("2006-01", month)
		if err != nil {
			return "", "", fmt.Errorf("invalid month %q: want YYYY-MM", month)
		}
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return first.Format(dateLayout), last.Format(dateLayout), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printTable(a *app, t cli.Table) {
	fmt.Fprintln(a.out)
	fmt.Fprint(a.out, cli.RenderTable(t))
}

func printEmpty(a *app, msg string) {
	fmt.Fprintln(a.out, "  "+cli.RenderMuted(msg))
}

func printTitle(a *app, title string) {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, cli.RenderTitle(title))
}
