package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/jarvis/internal/cli"
	"github.com/Veraticus/jarvis/internal/health"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Track weight, goals and weekly plans",
	}
	cmd.AddCommand(healthWeightCmd(), healthGoalCmd(), healthPlanCmd(), healthWeekCmd())
	return cmd
}

func withTracker(cmd *cobra.Command, fn func(ctx context.Context, t *health.Tracker) error) error {
	return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
		tracker, err := health.Open(ctx, store)
		if err != nil {
			return err
		}
		return fn(ctx, tracker)
	})
}

func formatKg(d decimal.Decimal) string {
	return d.StringFixed(1) + " kg"
}

func healthWeightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weight",
		Short: "Log and review weigh-ins",
	}

	add := &cobra.Command{
		Use:   "add <kg>",
		Short: "Log a weigh-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kg, err := parseAmount("weight", args[0])
			if err != nil {
				return err
			}
			rawDate, _ := cmd.Flags().GetString("date")
			date, err := parseDate(rawDate)
			if err != nil {
				return err
			}
			return withTracker(cmd, func(ctx context.Context, t *health.Tracker) error {
				entry, err := t.AddWeight(ctx, date, kg)
				if err != nil {
					return fmt.Errorf("failed to log weight: %w", err)
				}
				printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Logged %s on %s (%s)", formatKg(entry.Kilograms), formatDate(entry.Date), entry.ID)))
				return nil
			})
		},
	}
	add.Flags().String("date", "", "Date of the weigh-in (default: today)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List weigh-ins, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withTracker(cmd, func(_ context.Context, t *health.Tracker) error {
				entries := t.Entries()
				if len(entries) == 0 {
					printLine(cmd, cli.InfoStyle.Render("No weigh-ins yet. Use 'jarvis health weight add'."))
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{formatDate(e.Date), formatKg(e.Kilograms), e.ID})
				}
				printLine(cmd, cli.RenderTable([]string{"Date", "Weight", "ID"}, rows, 1))
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a weigh-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd, func(ctx context.Context, t *health.Tracker) error {
				if err := t.DeleteWeight(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to delete weigh-in: %w", err)
				}
				printLine(cmd, cli.FormatSuccess("Deleted "+args[0]))
				return nil
			})
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}

func healthGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal [kg]",
		Short: "Show or set the weight goal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd, func(ctx context.Context, t *health.Tracker) error {
				if len(args) == 0 {
					goal := t.Goal()
					if !goal.IsSet() {
						printLine(cmd, cli.InfoStyle.Render("No goal set. Use 'jarvis health goal <kg> --by YYYY-MM-DD'."))
						return nil
					}
					printLine(cmd, goalLine(goal))
					return nil
				}

				kg, err := parseAmount("goal", args[0])
				if err != nil {
					return err
				}
				goal := health.WeightGoal{TargetKilograms: kg}
				if by := optionalString(cmd, "by"); by != nil {
					if goal.TargetDate, err = parseDate(*by); err != nil {
						return err
					}
				}
				if err := t.SetGoal(ctx, goal); err != nil {
					return fmt.Errorf("failed to set goal: %w", err)
				}
				printLine(cmd, cli.FormatSuccess(goalLine(goal)))
				return nil
			})
		},
	}
	cmd.Flags().String("by", "", "Target date")
	return cmd
}

func goalLine(goal health.WeightGoal) string {
	line := "Goal: " + formatKg(goal.TargetKilograms)
	if !goal.TargetDate.IsZero() {
		line += " by " + formatDate(goal.TargetDate)
	}
	return line
}

func parseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: weekday %q", errInvalidArgument, s)
}

func healthPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <diet|workout> [weekday] [items...]",
		Short: "Show or edit the weekly diet or workout plan",
		Long: `With only a plan name, show the whole week. With a weekday and items, replace
that day's items. With a weekday and --clear, empty the day.`,
		Example: `  jarvis health plan workout
  jarvis health plan workout mon "Squats 5x5" "Bench 5x5"
  jarvis health plan diet sun --clear`,
		Args: cobra.MinimumNArgs(1),
		RunE: runHealthPlan,
	}
	cmd.Flags().Bool("clear", false, "Clear the given weekday")
	return cmd
}

func runHealthPlan(cmd *cobra.Command, args []string) error {
	kind := health.PlanKind(strings.ToLower(args[0]))
	clearDay, _ := cmd.Flags().GetBool("clear")

	return withTracker(cmd, func(ctx context.Context, t *health.Tracker) error {
		if len(args) > 1 {
			day, err := parseWeekday(args[1])
			if err != nil {
				return err
			}
			items := args[2:]
			if len(items) == 0 && !clearDay {
				return fmt.Errorf("%w: give items for %s or use --clear", errInvalidArgument, day)
			}
			if clearDay {
				items = nil
			}
			if err := t.SetDay(ctx, kind, day, items); err != nil {
				return fmt.Errorf("failed to update plan: %w", err)
			}
		}

		plan, err := t.Plan(kind)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, 7)
		for d := time.Sunday; d <= time.Saturday; d++ {
			rows = append(rows, []string{d.String(), strings.Join(plan[d], ", ")})
		}
		printLine(cmd, cli.FormatTitle(cli.HeartIcon+" "+titleCase(string(kind))+" plan"))
		printLine(cmd, cli.RenderTable([]string{"Day", "Items"}, rows))
		return nil
	})
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func healthWeekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Summarize the weigh-ins of a week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rawDate, _ := cmd.Flags().GetString("date")
			day, err := parseDate(rawDate)
			if err != nil {
				return err
			}
			return withTracker(cmd, func(_ context.Context, t *health.Tracker) error {
				o := health.WeeklyOverview(t.Entries(), t.Goal(), day)
				printLine(cmd, cli.FormatTitle("Week of "+o.WeekStart.Format("Jan 2, 2006")))
				if !o.HasData() {
					printLine(cmd, cli.InfoStyle.Render("No weigh-ins this week."))
					return nil
				}

				rows := [][]string{
					{"Latest", formatKg(o.Latest.Kilograms)},
					{"Average", formatKg(o.Average)},
					{"Min", formatKg(o.Min)},
					{"Max", formatKg(o.Max)},
				}
				if o.Change != nil {
					rows = append(rows, []string{"Change vs last week", signedKg(*o.Change)})
				}
				if o.Remaining != nil {
					rows = append(rows, []string{"To goal", formatKg(*o.Remaining)})
				}
				printLine(cmd, cli.RenderTable([]string{"", "Weight"}, rows, 1))
				return nil
			})
		},
	}
	cmd.Flags().String("date", "", "Any day in the week (default: today)")
	return cmd
}

func signedKg(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + formatKg(d)
	}
	return formatKg(d)
}
