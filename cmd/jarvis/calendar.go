package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/jarvis/internal/aggregate"
	"github.com/Veraticus/jarvis/internal/cli"
	"github.com/Veraticus/jarvis/internal/ledger"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/spf13/cobra"
)

// Calendar views.
const (
	viewWeek       = "week"
	viewMonth      = "month"
	viewThreeMonth = "3month"
	viewYear       = "year"
)

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show daily spending and income",
		Long: `Show spending and income per day for the week, month, three months or
year containing --date. Only days with activity are listed.`,
		RunE: runCalendar,
	}
	cmd.Flags().String("view", viewMonth, "week, month, 3month or year")
	cmd.Flags().String("date", "", "Any day in the period (default: today)")
	return cmd
}

func runCalendar(cmd *cobra.Command, _ []string) error {
	view, _ := cmd.Flags().GetString("view")
	rawDate, _ := cmd.Flags().GetString("date")

	day, err := parseDate(rawDate)
	if err != nil {
		return err
	}

	return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
		txStore, err := ledger.Open(ctx, store)
		if err != nil {
			return err
		}

		cal, title, err := buildCalendar(txStore, view, day)
		if err != nil {
			return err
		}

		printLine(cmd, cli.FormatTitle(title))
		days := cal.Days()
		if len(days) == 0 {
			printLine(cmd, cli.InfoStyle.Render("No activity in this period."))
			return nil
		}

		rows := make([][]string, 0, len(days))
		for _, d := range days {
			rows = append(rows, []string{
				d.Time().Format("Mon Jan 02 2006"),
				cli.FormatMoney(cal.Spending[d]),
				cli.FormatMoney(cal.Income[d]),
			})
		}
		printLine(cmd, cli.RenderTable([]string{"Day", "Spending", "Income"}, rows, 1, 2))
		printf(cmd, "Total spending %s   Total income %s\n",
			cli.Spending(cli.FormatMoney(cal.TotalSpending())),
			cli.Income(cli.FormatMoney(cal.TotalIncome())))
		return nil
	})
}

func buildCalendar(txStore *ledger.Store, view string, day time.Time) (aggregate.Calendar, string, error) {
	txs := txStore.List()
	switch view {
	case viewWeek:
		start := aggregate.WeekStart(day)
		return aggregate.WeeklyCalendar(txs, day), "Week of " + start.Format("Jan 2, 2006"), nil
	case viewMonth, "":
		return aggregate.MonthlyCalendar(txs, day.Year(), day.Month()), day.Format("January 2006"), nil
	case viewThreeMonth:
		first := time.Date(day.Year(), day.Month()-2, 1, 0, 0, 0, 0, time.Local)
		title := first.Format("January 2006") + " - " + day.Format("January 2006")
		return aggregate.ThreeMonthCalendar(txs, day.Year(), day.Month()), title, nil
	case viewYear:
		return aggregate.YearlyCalendar(txs, day.Year()), strconv.Itoa(day.Year()), nil
	default:
		return aggregate.Calendar{}, "", fmt.Errorf("%w: view %q (use week, month, 3month or year)", errInvalidArgument, view)
	}
}

func dayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day [date]",
		Short: "List the transactions of one day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			}
			day, err := parseDate(raw)
			if err != nil {
				return err
			}

			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				txStore, err := ledger.Open(ctx, store)
				if err != nil {
					return err
				}

				printLine(cmd, cli.FormatTitle(day.Format("Monday, January 2, 2006")))
				txs := aggregate.DayTransactions(txStore.List(), day)
				if len(txs) == 0 {
					printLine(cmd, cli.InfoStyle.Render("No transactions on this day."))
					return nil
				}
				printLine(cmd, transactionTable(txs))
				return nil
			})
		},
	}
}

func breakdownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Show spending by category",
		Long: `Show spending grouped by category, largest first. Imported bank labels are
shown as they appeared in the export; each label gets its own color and icon.`,
		RunE: runBreakdown,
	}
	cmd.Flags().String("month", "", "Month (YYYY-MM, default: current)")
	cmd.Flags().String("from", "", "Start day (overrides --month)")
	cmd.Flags().String("to", "", "End day (default: today)")
	return cmd
}

func runBreakdown(cmd *cobra.Command, _ []string) error {
	rawMonth, _ := cmd.Flags().GetString("month")
	rawFrom, _ := cmd.Flags().GetString("from")
	rawTo, _ := cmd.Flags().GetString("to")

	var from, to time.Time
	if rawFrom != "" {
		var err error
		if from, err = parseDate(rawFrom); err != nil {
			return err
		}
		if to, err = parseDate(rawTo); err != nil {
			return err
		}
	} else {
		year, month, err := parseMonth(rawMonth)
		if err != nil {
			return err
		}
		from, to = aggregate.MonthRange(year, month)
	}

	return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
		txStore, err := ledger.Open(ctx, store)
		if err != nil {
			return err
		}

		printLine(cmd, cli.FormatTitle(fmt.Sprintf("Spending %s to %s", formatDate(from), formatDate(to))))
		rows := aggregate.Breakdown(txStore.List(), from, to)
		if len(rows) == 0 {
			printLine(cmd, cli.InfoStyle.Render("No spending in this period."))
			return nil
		}
		printLine(cmd, breakdownTable(rows))
		return nil
	})
}

func breakdownTable(rows []aggregate.BreakdownRow) string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{
			cli.Swatch(row.Style.Color, row.Style.Icon, row.Name),
			cli.FormatMoney(row.Amount),
			cli.FormatPercent(row.Percent),
			strconv.Itoa(row.Count),
		})
	}
	return cli.RenderTable([]string{"Category", "Amount", "Share", "Count"}, out, 1, 2, 3)
}
