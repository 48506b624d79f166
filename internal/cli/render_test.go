package cli

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Expenses",
		Headers: []string{"Category", "Amount"},
		Rows: [][]string{
			{"Rent", "₹20,000.00"},
			{"---"},
			{"Total", "₹20,000.00"},
		},
	})

	for _, want := range []string{"Expenses", "Category", "Amount", "Rent", "Total", "╭", "╯", "┼"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderTable output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 8 {
		t.Errorf("RenderTable line count = %d, want 8:\n%s", got, out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if out := RenderTable(Table{}); out != "" {
		t.Errorf("RenderTable(empty) = %q, want empty", out)
	}
}

func TestRenderProgressBar(t *testing.T) {
	out := RenderProgressBar(0.5, 10)
	if !strings.Contains(out, strings.Repeat("█", 5)+strings.Repeat("░", 5)) {
		t.Errorf("RenderProgressBar(0.5) = %q", out)
	}
	if !strings.Contains(out, "50.0%") {
		t.Errorf("RenderProgressBar(0.5) missing percent: %q", out)
	}
	if out := RenderProgressBar(2, 4); !strings.Contains(out, "████") || !strings.Contains(out, "100.0%") {
		t.Errorf("RenderProgressBar(2) = %q, want a full bar", out)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 1, 2}); got != "▁▄█" {
		t.Errorf("RenderSparkline = %q, want ▁▄█", got)
	}
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("RenderSparkline(nil) = %q", got)
	}
}
