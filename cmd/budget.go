package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finboard/internal/api"
	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/insights"
)

var (
	flagNeeds   float64
	flagWants   float64
	flagSavings float64
	flagMonth   string
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Monthly needs/wants/savings budget",
}

var budgetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current budget",
	RunE:  run(runBudgetShow),
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <monthly-income>",
	Short: "Create or replace the budget",
	Long:  "With an income, creates the budget for the current month using the given split (default 50/30/20).\nWithout one, only the buckets passed as flags change; the rest keep their stored values.",
	Args:  cobra.MaximumNArgs(1),
}

var budgetAnalysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Compare spending with the budget",
	RunE:  run(runBudgetAnalysis),
}

func init() {
	// Assigned here to break the initialization cycle: runBudgetSet reads budgetSetCmd's flags.
	budgetSetCmd.RunE = run(runBudgetSet)
	budgetSetCmd.Flags().Float64Var(&flagNeeds, "needs", 50, "Needs percentage")
	budgetSetCmd.Flags().Float64Var(&flagWants, "wants", 30, "Wants percentage")
	budgetSetCmd.Flags().Float64Var(&flagSavings, "savings", 20, "Savings percentage")
	budgetAnalysisCmd.Flags().StringVar(&flagMonth, "month", "", "Month (YYYY-MM), default current")

	budgetCmd.AddCommand(budgetShowCmd, budgetSetCmd, budgetAnalysisCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetShow(ctx context.Context, a *app, _ []string) error {
	b, err := a.client.GetBudget(ctx)
	if err != nil {
		return err
	}
	p := api.BudgetPercentages{
		NeedsPercentage:   b.NeedsPercentage,
		WantsPercentage:   b.WantsPercentage,
		SavingsPercentage: b.SavingsPercentage,
	}
	needs, wants, savings := insights.SplitIncome(b.MonthlyIncome, p)

	printTitle(a, "Budget "+orDash(b.Month))
	printTable(a, cli.Table{
		Headers: []string{"Bucket", "Share", "Amount"},
		Rows: [][]string{
			{"Needs", cli.FormatPercent(b.NeedsPercentage), a.money(needs)},
			{"Wants", cli.FormatPercent(b.WantsPercentage), a.money(wants)},
			{"Savings", cli.FormatPercent(b.SavingsPercentage), a.money(savings)},
			{"---"},
			{"Income", "", a.money(b.MonthlyIncome)},
		},
	})
	return nil
}

func runBudgetSet(ctx context.Context, a *app, args []string) error {
	changed := budgetSetCmd.Flags().Changed

	// No income: only the split changes, starting from the stored one.
	if len(args) == 0 {
		if !changed("needs") && !changed("wants") && !changed("savings") {
			return errors.New("nothing to update: pass an income or at least one of --needs, --wants, --savings")
		}
		cur, err := a.client.GetBudget(ctx)
		if err != nil {
			return err
		}
		p := overlaySplit(api.BudgetPercentages{
			NeedsPercentage:   cur.NeedsPercentage,
			WantsPercentage:   cur.WantsPercentage,
			SavingsPercentage: cur.SavingsPercentage,
		}, changed)
		if err := checkSplit(p); err != nil {
			return err
		}
		b, err := a.client.UpdateBudgetPercentages(ctx, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "  Split updated to %.0f/%.0f/%.0f\n", b.NeedsPercentage, b.WantsPercentage, b.SavingsPercentage)
		return nil
	}

	p := api.BudgetPercentages{NeedsPercentage: flagNeeds, WantsPercentage: flagWants, SavingsPercentage: flagSavings}
	if err := checkSplit(p); err != nil {
		return err
	}

	income, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	b, err := a.client.CreateBudget(ctx, api.Budget{
		MonthlyIncome:     income,
		NeedsPercentage:   p.NeedsPercentage,
		WantsPercentage:   p.WantsPercentage,
		SavingsPercentage: p.SavingsPercentage,
		Month:             time.Now().Format("2006-01"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "  Budget saved: %s a month, %.0f/%.0f/%.0f\n",
		a.money(b.MonthlyIncome), b.NeedsPercentage, b.WantsPercentage, b.SavingsPercentage)
	return nil
}

func runBudgetAnalysis(ctx context.Context, a *app, _ []string) error {
	month := flagMonth
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	analysis, err := a.client.BudgetAnalysis(ctx, month)
	if err != nil {
		return err
	}
	if analysis.Month == "" {
		analysis.Month = month
	}
	printBudgetReport(a, insights.CompareBudget(analysis))
	return nil
}

func printBudgetReport(a *app, r insights.BudgetReport) {
	rows := make([][]string, 0, len(r.Buckets)+2)
	for _, b := range r.Buckets {
		status := "ok"
		if b.OverBudget {
			status = "OVER"
		}
		rows = append(rows, []string{
			b.Name,
			a.money(b.Allocated),
			a.money(b.Spent),
			cli.FormatSigned(b.Remaining, a.cfg.Currency.Symbol),
			cli.FormatPercent(b.UsedPercent),
			status,
		})
	}
	rows = append(rows, []string{"---"}, []string{"Total", a.money(r.Allocated), a.money(r.Spent), "", "", ""})

	printTable(a, cli.Table{
		Title:   "Budget vs. actual, " + r.Month,
		Headers: []string{"Bucket", "Allocated", "Spent", "Remaining", "Used", "Status"},
		Rows:    rows,
	})
	if r.OverBudget {
		fmt.Fprintln(a.out, "  "+cli.RenderWarning("You are over budget this month."))
	}
}

// overlaySplit replaces the buckets whose flags were given on the command line.
func overlaySplit(p api.BudgetPercentages, changed func(name string) bool) api.BudgetPercentages {
	if changed("needs") {
		p.NeedsPercentage = flagNeeds
	}
	if changed("wants") {
		p.WantsPercentage = flagWants
	}
	if changed("savings") {
		p.SavingsPercentage = flagSavings
	}
	return p
}

func checkSplit(p api.BudgetPercentages) error {
	if !insights.ValidSplit(p) {
		return fmt.Errorf("needs, wants and savings must be non-negative and add up to 100 (got %.1f)",
			p.NeedsPercentage+p.WantsPercentage+p.SavingsPercentage)
	}
	return nil
}
