package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/jarvis/internal/cli"
	"github.com/Veraticus/jarvis/internal/flight"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/spf13/cobra"
)

func flightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flight",
		Short: "Track flight-training costs in USD and MXN",
		Long: fmt.Sprintf(`Track flight-training costs. CFI and plane rental are billed per hour;
extras and income are flat amounts. MXN totals use a fixed rate of %s.`, flight.ExchangeRate),
	}
	cmd.AddCommand(flightAddCmd(), flightUpdateCmd(), flightListCmd(), flightDeleteCmd(), flightSummaryCmd())
	return cmd
}

func flightAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <kind>",
		Short: "Add a record (cfi, plane-rental, extras, income)",
		Example: `  jarvis flight add cfi --rate 80 --hours 1.5 --description "Pattern work"
  jarvis flight add extras --total 250 --description "Headset"`,
		Args: cobra.ExactArgs(1),
		RunE: runFlightAdd,
	}
	cmd.Flags().String("date", "", "Date (default: today)")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("rate", "0", "Hourly rate in USD (cfi, plane-rental)")
	cmd.Flags().String("hours", "0", "Hours (cfi, plane-rental)")
	cmd.Flags().String("total", "0", "Total in USD (extras, income)")
	return cmd
}

func runFlightAdd(cmd *cobra.Command, args []string) error {
	kind := flight.Kind(strings.ToLower(args[0]))
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", flight.ErrInvalidKind, args[0])
	}

	rawDate, _ := cmd.Flags().GetString("date")
	description, _ := cmd.Flags().GetString("description")
	date, err := parseDate(rawDate)
	if err != nil {
		return err
	}

	var record flight.Record
	if kind.Hourly() {
		rawRate, _ := cmd.Flags().GetString("rate")
		rawHours, _ := cmd.Flags().GetString("hours")
		rate, err := parseAmount("rate", rawRate)
		if err != nil {
			return err
		}
		hours, err := parseAmount("hours", rawHours)
		if err != nil {
			return err
		}
		record = flight.NewHourly(kind, date, description, rate, hours)
	} else {
		rawTotal, _ := cmd.Flags().GetString("total")
		total, err := parseAmount("total", rawTotal)
		if err != nil {
			return err
		}
		record = flight.NewFlat(kind, date, description, total)
	}

	return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
		book, err := flight.Open(ctx, store)
		if err != nil {
			return err
		}
		added, err := book.Add(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to add flight record: %w", err)
		}
		printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Added %s: %s / %s (%s)",
			added.Kind, cli.FormatMoney(added.TotalUSD), cli.FormatMXN(added.TotalMXN), added.ID)))
		return nil
	})
}

func flightUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a record; totals are recomputed",
		Args:  cobra.ExactArgs(1),
		RunE:  runFlightUpdate,
	}
	cmd.Flags().String("date", "", "New date")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("rate", "", "New hourly rate")
	cmd.Flags().String("hours", "", "New hours")
	cmd.Flags().String("total", "", "New flat total in USD")
	return cmd
}

func runFlightUpdate(cmd *cobra.Command, args []string) error {
	var (
		patch flight.Patch
		err   error
	)
	if patch.Date, err = optionalDate(cmd, "date"); err != nil {
		return err
	}
	if patch.RatePerHour, err = optionalAmount(cmd, "rate"); err != nil {
		return err
	}
	if patch.Hours, err = optionalAmount(cmd, "hours"); err != nil {
		return err
	}
	if patch.TotalUSD, err = optionalAmount(cmd, "total"); err != nil {
		return err
	}
	patch.Description = optionalString(cmd, "description")

	return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
		book, err := flight.Open(ctx, store)
		if err != nil {
			return err
		}
		updated, err := book.Update(ctx, args[0], patch)
		if err != nil {
			return fmt.Errorf("failed to update flight record: %w", err)
		}
		printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Updated %s: %s / %s",
			updated.Kind, cli.FormatMoney(updated.TotalUSD), cli.FormatMXN(updated.TotalMXN))))
		return nil
	})
}

func flightListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List records, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				book, err := flight.Open(ctx, store)
				if err != nil {
					return err
				}
				records := book.List()
				if len(records) == 0 {
					printLine(cmd, cli.InfoStyle.Render("No flight records yet. Use 'jarvis flight add' to create one."))
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, r := range records {
					detail := ""
					if r.Kind.Hourly() {
						detail = fmt.Sprintf("%s h × %s", r.Hours, cli.FormatMoney(r.RatePerHour))
					}
					rows = append(rows, []string{
						formatDate(r.Date), string(r.Kind), r.Description, detail,
						cli.FormatMoney(r.TotalUSD), cli.FormatMXN(r.TotalMXN), r.ID,
					})
				}
				printLine(cmd, cli.RenderTable([]string{"Date", "Kind", "Description", "Detail", "USD", "MXN", "ID"}, rows, 4, 5))
				return nil
			})
		},
	}
}

func flightDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				book, err := flight.Open(ctx, store)
				if err != nil {
					return err
				}
				if err := book.Delete(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to delete flight record: %w", err)
				}
				printLine(cmd, cli.FormatSuccess("Deleted "+args[0]))
				return nil
			})
		},
	}
}

func flightSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals per kind and the outstanding balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				book, err := flight.Open(ctx, store)
				if err != nil {
					return err
				}
				s := flight.Summarize(book.List())

				rows := make([][]string, 0, len(flight.Kinds)+1)
				for _, kind := range flight.Kinds {
					a := s.ByKind(kind)
					rows = append(rows, []string{string(kind), cli.FormatMoney(a.USD), cli.FormatMXN(a.MXN)})
				}
				rows = append(rows, []string{
					cli.BoldStyle.Render("balance"),
					cli.BoldStyle.Render(cli.FormatMoney(s.Balance.USD)),
					cli.BoldStyle.Render(cli.FormatMXN(s.Balance.MXN)),
				})

				printLine(cmd, cli.FormatTitle(cli.PlaneIcon+" Flight training"))
				printLine(cmd, cli.RenderTable([]string{"Kind", "USD", "MXN"}, rows, 1, 2))
				printf(cmd, "Flight hours: %s\n", s.FlightHours.String())
				return nil
			})
		},
	}
}
