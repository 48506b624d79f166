package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finboard/internal/api"
	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/insights"
)

var (
	flagGoalDeadline string
	flagGoalCategory string
	flagGoalSaved    float64
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Savings goals",
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals with progress",
	RunE:  run(runGoalsList),
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <name> <target-amount>",
	Short: "Create a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  run(runGoalsAdd),
}

var goalsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  run(runGoalsDelete),
}

func init() {
	goalsAddCmd.Flags().StringVar(&flagGoalDeadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	goalsAddCmd.Flags().StringVar(&flagGoalCategory, "category", "", "Category")
	goalsAddCmd.Flags().Float64Var(&flagGoalSaved, "saved", 0, "Amount already saved")

	goalsCmd.AddCommand(goalsListCmd, goalsAddCmd, goalsDeleteCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsList(ctx context.Context, a *app, _ []string) error {
	goals, err := a.client.ListGoals(ctx)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		printEmpty(a, "No goals yet. Add one with `finboard goals add`.")
		return nil
	}

	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			fmt.Sprintf("%d", g.ID),
			g.Name,
			a.money(g.CurrentAmount),
			a.money(g.TargetAmount),
			cli.RenderProgressBar(insights.GoalProgress(g), 16),
			orDash(g.Deadline),
		})
	}
	printTable(a, cli.Table{
		Title:   "Goals",
		Headers: []string{"ID", "Goal", "Saved", "Target", "Progress", "Deadline"},
		Rows:    rows,
	})
	return nil
}

func runGoalsAdd(ctx context.Context, a *app, args []string) error {
	target, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	if flagGoalDeadline != "" {
		if _, err := parseDate(flagGoalDeadline, time.Now()); err != nil {
			return err
		}
	}
	g, err := a.client.CreateGoal(ctx, api.Goal{
		Name:          args[0],
		TargetAmount:  target,
		CurrentAmount: flagGoalSaved,
		Deadline:      flagGoalDeadline,
		Category:      flagGoalCategory,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "  Created goal #%d: %s, target %s\n", g.ID, g.Name, a.money(g.TargetAmount))
	return nil
}

func runGoalsDelete(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.client.DeleteGoal(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "  Deleted goal #%d\n", id)
	return nil
}
