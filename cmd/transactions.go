package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finboard/internal/api"
	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/insights"
)

var (
	flagTxType     string
	flagTxCategory string
	flagTxFrom     string
	flagTxTo       string
	flagTxMonth    string
	flagTxPage     int
	flagTxSize     int

	flagTxDate    string
	flagTxDesc    string
	flagTxPayment string
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "Income and expense transactions",
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	RunE:  run(runTxList),
}

var txAddCmd = &cobra.Command{
	Use:   "add <income|expense> <amount> <category>",
	Short: "Record a transaction",
	Args:  cobra.ExactArgs(3),
	RunE:  run(runTxAdd),
}

var txDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  run(runTxDelete),
}

var txSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Income, expense and savings for a month",
	RunE:  run(runTxSummary),
}

var txBreakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Expenses by category for a month",
	RunE:  run(runTxBreakdown),
}

func init() {
	txListCmd.Flags().StringVar(&flagTxType, "type", "", "Filter by type: income or expense")
	txListCmd.Flags().StringVar(&flagTxCategory, "category", "", "Filter by category")
	txListCmd.Flags().StringVar(&flagTxFrom, "from", "", "Start date (YYYY-MM-DD)")
	txListCmd.Flags().StringVar(&flagTxTo, "to", "", "End date (YYYY-MM-DD)")
	txListCmd.Flags().IntVar(&flagTxPage, "page", 0, "Page number")
	txListCmd.Flags().IntVar(&flagTxSize, "size", 0, "Page size")

	txAddCmd.Flags().StringVar(&flagTxDate, "date", "", "Transaction date (YYYY-MM-DD, today, yesterday)")
	txAddCmd.Flags().StringVar(&flagTxDesc, "desc", "", "Description")
	txAddCmd.Flags().StringVar(&flagTxPayment, "payment", "", "Payment method (UPI, CARD, CASH, ...)")

	for _, c := range []*cobra.Command{txSummaryCmd, txBreakdownCmd} {
		c.Flags().StringVar(&flagTxMonth, "month", "", "Month (YYYY-MM), default current")
	}

	transactionsCmd.AddCommand(txListCmd, txAddCmd, txDeleteCmd, txSummaryCmd, txBreakdownCmd)
	rootCmd.AddCommand(transactionsCmd)
}

func parseTxType(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case api.Income:
		return api.Income, nil
	case api.Expense:
		return api.Expense, nil
	}
	return "", fmt.Errorf("invalid type %q: want income or expense", s)
}

func runTxList(ctx context.Context, a *app, _ []string) error {
	typ, err := parseTxType(flagTxType)
	if err != nil {
		return err
	}
	txs, err := a.client.ListTransactions(ctx, api.TransactionFilter{
		Type:      typ,
		Category:  flagTxCategory,
		StartDate: flagTxFrom,
		EndDate:   flagTxTo,
		Page:      flagTxPage,
		Size:      flagTxSize,
	})
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		printEmpty(a, "No transactions found.")
		return nil
	}

	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		amount := a.money(t.Amount)
		if t.Type == api.Expense {
			amount = a.money(-t.Amount)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.ID),
			t.Date,
			orDash(t.Category),
			orDash(t.Description),
			amount,
		})
	}
	printTable(a, cli.Table{
		Title:   "Transactions",
		Headers: []string{"ID", "Date", "Category", "Description", "Amount"},
		Rows:    rows,
	})
	return nil
}

func runTxAdd(ctx context.Context, a *app, args []string) error {
	typ, err := parseTxType(args[0])
	if err != nil || typ == "" {
		return fmt.Errorf("invalid type %q: want income or expense", args[0])
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	date, err := parseDate(flagTxDate, time.Now())
	if err != nil {
		return err
	}

	t, err := a.client.CreateTransaction(ctx, api.Transaction{
		Type:          typ,
		Amount:        amount,
		Category:      args[2],
		Description:   flagTxDesc,
		Date:          date,
		PaymentMethod: flagTxPayment,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "  Added #%d: %s %s (%s) on %s\n", t.ID, strings.ToLower(typ), a.money(amount), args[2], date)
	return nil
}

func runTxDelete(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.client.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "  Deleted transaction #%d\n", id)
	return nil
}

func runTxSummary(ctx context.Context, a *app, _ []string) error {
	start, end, err := monthRange(flagTxMonth, time.Now())
	if err != nil {
		return err
	}
	s, err := a.client.TransactionSummary(ctx, api.DateRange{StartDate: start, EndDate: end})
	if err != nil {
		return err
	}

	printTitle(a, fmt.Sprintf("Summary %s to %s", start, end))
	printTable(a, cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Income", a.money(s.TotalIncome)},
			{"Expense", a.money(s.TotalExpense)},
			{"---"},
			{"Net savings", cli.FormatSigned(s.NetSavings, a.cfg.Currency.Symbol)},
			{"Savings rate", cli.FormatPercent(s.SavingsRate)},
		},
	})
	return nil
}

func runTxBreakdown(ctx context.Context, a *app, _ []string) error {
	start, end, err := monthRange(flagTxMonth, time.Now())
	if err != nil {
		return err
	}
	txs, err := a.client.ListTransactions(ctx, api.TransactionFilter{
		Type:      api.Expense,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return err
	}

	shares := insights.CategoryBreakdown(txs)
	if len(shares) == 0 {
		printEmpty(a, "No expenses in this period.")
		return nil
	}

	rows := make([][]string, 0, len(shares))
	for _, s := range shares {
		rows = append(rows, []string{
			s.Category,
			fmt.Sprintf("%d", s.Count),
			a.money(s.Amount),
			cli.FormatPercent(s.Percent),
		})
	}
	printTable(a, cli.Table{
		Title:   fmt.Sprintf("Expenses by category, %s to %s", start, end),
		Headers: []string{"Category", "Count", "Amount", "Share"},
		Rows:    rows,
	})

	fmt.Fprintln(a.out)
	top := shares[0].Amount
	for _, s := range shares {
		fmt.Fprintln(a.out, cli.RenderHorizontalBar(fmt.Sprintf("%-14s", s.Category), s.Amount, top, 30))
	}
	return nil
}
