package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finboard/internal/api"
	"github.com/theirongolddev/finboard/internal/cli"
)

var (
	flagUdhaariStatus string
	flagUdhaariDue    string
	flagUdhaariDesc   string
)

var udhaariCmd = &cobra.Command{
	Use:   "udhaari",
	Short: "Informal loans lent to or borrowed from people",
}

var udhaariListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries",
	RunE:  run(runUdhaariList),
}

var udhaariAddCmd = &cobra.Command{
	Use:   "add <lent|borrowed> <person> <amount>",
	Short: "Record money lent or borrowed",
	Args:  cobra.ExactArgs(3),
	RunE:  run(runUdhaariAdd),
}

var udhaariSettleCmd = &cobra.Command{
	Use:   "settle <id>",
	Short: "Mark an entry settled",
	Args:  cobra.ExactArgs(1),
	RunE:  run(runUdhaariSettle),
}

var udhaariSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals lent, borrowed and net",
	RunE:  run(runUdhaariSummary),
}

func init() {
	udhaariListCmd.Flags().StringVar(&flagUdhaariStatus, "status", "", "Filter by status: pending or settled")
	udhaariAddCmd.Flags().StringVar(&flagUdhaariDue, "due", "", "Due date (YYYY-MM-DD)")
	udhaariAddCmd.Flags().StringVar(&flagUdhaariDesc, "desc", "", "Description")

	udhaariCmd.AddCommand(udhaariListCmd, udhaariAddCmd, udhaariSettleCmd, udhaariSummaryCmd)
	rootCmd.AddCommand(udhaariCmd)
}

func runUdhaariList(ctx context.Context, a *app, _ []string) error {
	status := strings.ToUpper(strings.TrimSpace(flagUdhaariStatus))
	if status != "" && status != api.Pending && status != api.Settled {
		return fmt.Errorf("invalid status %q: want pending or settled", flagUdhaariStatus)
	}
	entries, err := a.client.ListUdhaari(ctx, status)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printEmpty(a, "No entries.")
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		due := "-"
		if e.DueDate != "" {
			due = cli.FormatDue(e.DueDate, now)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.ID),
			e.PersonName,
			strings.ToLower(e.Type),
			a.money(e.Amount),
			due,
			strings.ToLower(orDash(e.Status)),
		})
	}
	printTable(a, cli.Table{
		Title:   "Udhaari",
		Headers: []string{"ID", "Person", "Type", "Amount", "Due", "Status"},
		Rows:    rows,
	})
	return nil
}

func runUdhaariAdd(ctx context.Context, a *app, args []string) error {
	typ := strings.ToUpper(args[0])
	if typ != api.Lent && typ != api.Borrowed {
		return fmt.Errorf("invalid type %q: want lent or borrowed", args[0])
	}
	amount, err := parseAmount(args[2])
	if err != nil {
		return err
	}
	if flagUdhaariDue != "" {
		if _, err := parseDate(flagUdhaariDue, time.Now()); err != nil {
			return err
		}
	}
	e, err := a.client.CreateUdhaari(ctx, api.UdhaariEntry{
		PersonName:  args[1],
		Amount:      amount,
		Type:        typ,
		Description: flagUdhaariDesc,
		Date:        time.Now().Format(dateLayout),
		DueDate:     flagUdhaariDue,
		Status:      api.Pending,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "  Recorded #%d: %s %s %s\n", e.ID, strings.ToLower(typ), a.money(e.Amount), e.PersonName)
	return nil
}

func runUdhaariSettle(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	e, err := a.client.SettleUdhaari(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "  Settled #%d with %s\n", id, orDash(e.PersonName))
	return nil
}

func runUdhaariSummary(ctx context.Context, a *app, _ []string) error {
	s, err := a.client.UdhaariSummary(ctx)
	if err != nil {
		return err
	}
	printTable(a, cli.Table{
		Title:   "Udhaari summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Lent", a.money(s.TotalLent)},
			{"Borrowed", a.money(s.TotalBorrowed)},
			{"---"},
			{"Pending entries", fmt.Sprintf("%d", s.PendingCount)},
		},
	})
	if s.NetBalance == 0 {
		printEmpty(a, "All square.")
		return nil
	}
	fmt.Fprintf(a.out, "  Net %s\n", cli.RenderAmount(s.NetBalance, a.cfg.Currency.Symbol))
	return nil
}
