package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finboard/internal/api"
	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/reminder"
)

var (
	flagDays     int
	flagCycle    string
	flagNextDate string
	flagSubCat   string
)

var subscriptionsCmd = &cobra.Command{
	Use:     "subscriptions",
	Aliases: []string{"subs"},
	Short:   "Recurring payments",
}

var subsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscriptions",
	RunE:  run(runSubsList),
}

var subsAddCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Track a subscription",
	Args:  cobra.ExactArgs(2),
	RunE:  run(runSubsAdd),
}

var subsUpcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Payments due soon",
	RunE:  run(runSubsUpcoming),
}

var subsPayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Mark a subscription paid for this cycle",
	Args:  cobra.ExactArgs(1),
	RunE:  run(runSubsPay),
}

var subsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll for upcoming payments and remind until interrupted",
	RunE:  run(runSubsWatch),
}

func init() {
	subsUpcomingCmd.Flags().IntVar(&flagDays, "days", 0, "Look-ahead in days (default from config)")
	subsWatchCmd.Flags().IntVar(&flagDays, "days", 0, "Look-ahead in days (default from config)")
	subsAddCmd.Flags().StringVar(&flagCycle, "cycle", "MONTHLY", "Billing cycle (WEEKLY, MONTHLY, QUARTERLY, YEARLY)")
	subsAddCmd.Flags().StringVar(&flagNextDate, "next", "", "Next billing date (YYYY-MM-DD)")
	subsAddCmd.Flags().StringVar(&flagSubCat, "category", "", "Category")

	subscriptionsCmd.AddCommand(subsListCmd, subsAddCmd, subsUpcomingCmd, subsPayCmd, subsWatchCmd)
	rootCmd.AddCommand(subscriptionsCmd)
}

func (a *app) daysAhead() int {
	if flagDays > 0 {
		return flagDays
	}
	return a.cfg.Reminders.DaysAhead
}

func subscriptionsTable(a *app, title string, subs []api.Subscription) cli.Table {
	now := time.Now()
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		status := "active"
		if !s.Active {
			status = "paused"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.ID),
			s.Name,
			a.money(s.Amount),
			strings.ToLower(orDash(s.BillingCycle)),
			s.NextBillingDate,
			cli.FormatDue(s.NextBillingDate, now),
			status,
		})
	}
	return cli.Table{
		Title:   title,
		Headers: []string{"ID", "Name", "Amount", "Cycle", "Next", "Due", "Status"},
		Rows:    rows,
	}
}

func runSubsList(ctx context.Context, a *app, _ []string) error {
	subs, err := a.client.ListSubscriptions(ctx)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		printEmpty(a, "No subscriptions tracked.")
		return nil
	}
	var monthly float64
	for _, s := range subs {
		if s.Active {
			monthly += monthlyCost(s)
		}
	}
	printTable(a, subscriptionsTable(a, "Subscriptions", subs))
	fmt.Fprintf(a.out, "  About %s a month across active subscriptions\n", a.money(monthly))
	return nil
}

// monthlyCost normalises a subscription amount to a monthly figure.
func monthlyCost(s api.Subscription) float64 {
	switch strings.ToUpper(s.BillingCycle) {
	case "WEEKLY":
		return s.Amount * 52 / 12
	case "QUARTERLY":
		return s.Amount / 3
	case "YEARLY", "ANNUAL", "ANNUALLY":
		return s.Amount / 12
	}
	return s.Amount
}

func runSubsAdd(ctx context.Context, a *app, args []string) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	next, err := parseDate(flagNextDate, time.Now())
	if err != nil {
		return err
	}
	s, err := a.client.CreateSubscription(ctx, api.Subscription{
		Name:            args[0],
		Amount:          amount,
		BillingCycle:    strings.ToUpper(flagCycle),
		NextBillingDate: next,
		Category:        flagSubCat,
		Active:          true,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "  Tracking #%d: %s %s, next on %s\n", s.ID, s.Name, a.money(s.Amount), s.NextBillingDate)
	return nil
}

func runSubsUpcoming(ctx context.Context, a *app, _ []string) error {
	days := a.daysAhead()
	subs, err := a.client.UpcomingSubscriptions(ctx, days)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		fmt.Fprintf(a.out, "  Nothing due in the next %d days.\n", days)
		return nil
	}
	var total float64
	for _, s := range subs {
		total += s.Amount
	}
	printTable(a, subscriptionsTable(a, fmt.Sprintf("Due in the next %d days", days), subs))
	fmt.Fprintf(a.out, "  Total due: %s\n", a.money(total))
	return nil
}

func runSubsPay(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := a.client.MarkSubscriptionPaid(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "  Marked %s paid. Next payment %s\n", orDash(s.Name), orDash(s.NextBillingDate))
	return nil
}

func runSubsWatch(ctx context.Context, a *app, _ []string) error {
	p := reminder.New(reminder.Config{
		DaysAhead: a.daysAhead(),
		Interval:  a.cfg.Reminders.Interval(),
	}, a.client.UpcomingSubscriptions, a.notes, a.log)

	fmt.Fprintf(a.out, "  Watching payments due in the next %d days every %s (Ctrl+C to stop)\n",
		a.daysAhead(), a.cfg.Reminders.Interval())
	if err := p.Run(ctx); err != nil {
		return err
	}

	st := p.Status()
	fmt.Fprintf(a.out, "\n  Polled %d times, %d reminders raised\n", st.PollCount, st.Notified)
	return nil
}
