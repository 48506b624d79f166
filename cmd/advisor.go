package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finboard/internal/cli"
)

var advisorCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Personalised financial advice and recommendations",
	RunE:  run(runAdvisor),
}

func init() {
	rootCmd.AddCommand(advisorCmd)
}

func runAdvisor(ctx context.Context, a *app, _ []string) error {
	advice, err := a.client.Advice(ctx)
	if err != nil {
		return err
	}
	recs, err := a.client.Recommendations(ctx)
	if err != nil {
		return err
	}

	printTitle(a, "Advisor")
	if advice.Summary != "" {
		fmt.Fprintf(a.out, "\n  %s\n", advice.Summary)
	}
	for _, tip := range advice.Tips {
		fmt.Fprintf(a.out, "   • %s\n", tip)
	}

	if len(recs) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{orDash(strings.ToUpper(r.Priority)), r.Title, r.Description})
	}
	printTable(a, cli.Table{
		Title:   "Recommendations",
		Headers: []string{"Priority", "Title", "Detail"},
		Rows:    rows,
	})
	return nil
}
