package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finboard/internal/api"
	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/insights"
	"github.com/theirongolddev/finboard/internal/statement"
)

var (
	flagPlatform string
	flagPeriod   string
)

var investmentsCmd = &cobra.Command{
	Use:     "investments",
	Aliases: []string{"inv"},
	Short:   "Investment portfolio",
}

var invListCmd = &cobra.Command{
	Use:   "list",
	Short: "List holdings",
	RunE:  run(runInvList),
}

var invSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Portfolio value, returns and allocation",
	RunE:  run(runInvSummary),
}

var invRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh market prices",
	RunE:  run(runInvRefresh),
}

var invUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Import holdings from a broker statement",
	Args:  cobra.ExactArgs(1),
	RunE:  run(runInvUpload),
}

func init() {
	invSummaryCmd.Flags().StringVar(&flagPeriod, "period", "1M", "Performance period (1M, 3M, 6M, 1Y, ALL)")
	invUploadCmd.Flags().StringVar(&flagPlatform, "platform", "", "Broker platform (ZERODHA, GROWW, ...)")
	_ = invUploadCmd.MarkFlagRequired("platform")

	investmentsCmd.AddCommand(invListCmd, invSummaryCmd, invRefreshCmd, invUploadCmd)
	rootCmd.AddCommand(investmentsCmd)
}

func holdingsTable(a *app, title string, invs []api.Investment) cli.Table {
	rows := make([][]string, 0, len(invs))
	for _, inv := range invs {
		cost := inv.Quantity * inv.PurchasePrice
		value := insights.HoldingValue(inv)
		rows = append(rows, []string{
			inv.Name,
			orDash(inv.Type),
			cli.FormatNumber(int64(inv.Quantity)),
			a.money(cost),
			a.money(value),
			cli.FormatSigned(value-cost, a.cfg.Currency.Symbol),
		})
	}
	return cli.Table{
		Title:   title,
		Headers: []string{"Name", "Type", "Qty", "Invested", "Value", "P/L"},
		Rows:    rows,
	}
}

func runInvList(ctx context.Context, a *app, _ []string) error {
	invs, err := a.client.ListInvestments(ctx)
	if err != nil {
		return err
	}
	if len(invs) == 0 {
		printEmpty(a, "No investments yet.")
		return nil
	}
	printTable(a, holdingsTable(a, "Holdings", invs))
	return nil
}

func runInvSummary(ctx context.Context, a *app, _ []string) error {
	s, err := a.client.PortfolioSummary(ctx)
	if err != nil {
		return err
	}
	dist, err := a.client.PortfolioDistribution(ctx)
	if err != nil {
		return err
	}
	perf, err := a.client.PortfolioPerformance(ctx, strings.ToUpper(flagPeriod))
	if err != nil {
		return err
	}

	printTitle(a, "Portfolio")
	printTable(a, cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Invested", a.money(s.TotalInvested)},
			{"Current value", a.money(s.CurrentValue)},
			{"Returns", cli.FormatSigned(s.TotalReturns, a.cfg.Currency.Symbol)},
			{"Returns %", cli.FormatPercent(s.ReturnsPercentage)},
			{"Holdings", fmt.Sprintf("%d", s.HoldingsCount)},
		},
	})

	if len(dist) > 0 {
		rows := make([][]string, 0, len(dist))
		for _, d := range dist {
			rows = append(rows, []string{d.Type, a.money(d.Value), cli.FormatPercent(d.Percentage)})
		}
		printTable(a, cli.Table{Title: "Allocation", Headers: []string{"Type", "Value", "Share"}, Rows: rows})
	}

	if len(perf) > 0 {
		values := make([]float64, len(perf))
		low, high := perf[0].Value, perf[0].Value
		for i, p := range perf {
			values[i] = p.Value
			low, high = min(low, p.Value), max(high, p.Value)
		}
		sym := a.cfg.Currency.Symbol
		fmt.Fprintf(a.out, "\n  %s  %s  %s\n", strings.ToUpper(flagPeriod), cli.RenderSparkline(values),
			cli.RenderMuted(cli.FormatCompact(low, sym)+" - "+cli.FormatCompact(high, sym)))
		fmt.Fprintf(a.out, "  Returns %s\n", cli.RenderAmount(s.TotalReturns, sym))
	}
	return nil
}

func runInvRefresh(ctx context.Context, a *app, _ []string) error {
	invs, err := a.client.RefreshPrices(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "  Refreshed prices for %d holdings\n", len(invs))
	if len(invs) > 0 {
		printTable(a, holdingsTable(a, "Holdings", invs))
	}
	return nil
}

func runInvUpload(ctx context.Context, a *app, args []string) error {
	up, closer, f, err := statement.Open(args[0])
	if err != nil {
		return err
	}
	defer closer.Close()

	fmt.Fprintf(a.out, "  Uploading %s (%s)...\n", f.Name, cli.FormatNumber(f.Size)+" bytes")
	res, err := a.client.UploadInvestmentStatement(ctx, up, strings.ToUpper(flagPlatform))
	if err != nil {
		return err
	}
	printImportResult(a, res)
	return nil
}

func printImportResult(a *app, res api.ImportResult) {
	fmt.Fprintf(a.out, "  Imported %d, skipped %d\n", res.Imported, res.Skipped)
	for _, e := range res.Errors {
		fmt.Fprintln(a.out, "  "+cli.RenderWarning(e))
	}
}
