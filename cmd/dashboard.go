package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/finboard/internal/api"
	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/insights"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "One-screen overview of the month",
	RunE:  run(runDashboard),
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

type dashboard struct {
	summary   api.TransactionSummary
	txs       []api.Transaction
	budget    api.BudgetAnalysis
	portfolio api.PortfolioSummary
	goals     []api.Goal
	upcoming  []api.Subscription
	udhaari   api.UdhaariSummary
}

// fetchDashboard issues every read concurrently. The first failure cancels
// the rest.
func fetchDashboard(ctx context.Context, c *api.Client, now time.Time, days int) (dashboard, error) {
	start, end, err := monthRange("", now)
	if err != nil {
		return dashboard{}, err
	}
	month := now.Format("2006-01")
	rng := api.DateRange{StartDate: start, EndDate: end}

	var d dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.summary, err = c.TransactionSummary(ctx, rng)
		return err
	})
	g.Go(func() (err error) {
		d.txs, err = c.ListTransactions(ctx, api.TransactionFilter{Type: api.Expense, StartDate: start, EndDate: end})
		return err
	})
	g.Go(func() (err error) {
		d.budget, err = c.BudgetAnalysis(api.WithoutNotices(ctx), month)
		if api.IsKind(err, api.KindNotFound) {
			return nil
		}
		return err
	})
	g.Go(func() (err error) {
		d.portfolio, err = c.PortfolioSummary(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.goals, err = c.ListGoals(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.upcoming, err = c.UpcomingSubscriptions(ctx, days)
		return err
	})
	g.Go(func() (err error) {
		d.udhaari, err = c.UdhaariSummary(ctx)
		return err
	})
	return d, g.Wait()
}

func runDashboard(ctx context.Context, a *app, _ []string) error {
	now := time.Now()
	d, err := fetchDashboard(ctx, a.client, now, a.cfg.Reminders.DaysAhead)
	if err != nil {
		return err
	}
	sym := a.cfg.Currency.Symbol

	printTitle(a, "finboard "+now.Format("January 2006"))
	printTable(a, cli.Table{
		Headers: []string{"This month", "Value"},
		Rows: [][]string{
			{"Income", a.money(d.summary.TotalIncome)},
			{"Expense", a.money(d.summary.TotalExpense)},
			{"Net savings", cli.FormatSigned(d.summary.NetSavings, sym)},
			{"Savings rate", cli.FormatPercent(d.summary.SavingsRate)},
			{"---"},
			{"Portfolio", a.money(d.portfolio.CurrentValue)},
			{"Returns", cli.FormatSigned(d.portfolio.TotalReturns, sym)},
			{"---"},
			{"Net udhaari", cli.FormatSigned(d.udhaari.NetBalance, sym)},
		},
	})

	if shares := insights.CategoryBreakdown(d.txs); len(shares) > 0 {
		if len(shares) > 5 {
			shares = shares[:5]
		}
		rows := make([][]string, 0, len(shares))
		for _, s := range shares {
			rows = append(rows, []string{s.Category, a.money(s.Amount), cli.FormatPercent(s.Percent)})
		}
		printTable(a, cli.Table{Title: "Top spending", Headers: []string{"Category", "Amount", "Share"}, Rows: rows})
	}

	if d.budget != (api.BudgetAnalysis{}) {
		if d.budget.Month == "" {
			d.budget.Month = now.Format("2006-01")
		}
		printBudgetReport(a, insights.CompareBudget(d.budget))
	}

	if len(d.goals) > 0 {
		rows := make([][]string, 0, len(d.goals))
		for _, g := range d.goals {
			rows = append(rows, []string{g.Name, cli.RenderProgressBar(insights.GoalProgress(g), 16)})
		}
		printTable(a, cli.Table{Title: "Goals", Headers: []string{"Goal", "Progress"}, Rows: rows})
	}

	if len(d.upcoming) > 0 {
		printTable(a, subscriptionsTable(a, fmt.Sprintf("Due in the next %d days", a.cfg.Reminders.DaysAhead), d.upcoming))
	}
	return nil
}
