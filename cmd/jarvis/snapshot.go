package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/jarvis/internal/cli"
	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/networth"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/spf13/cobra"
)

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record and review account snapshots",
	}
	cmd.AddCommand(snapshotRecordCmd(), snapshotHistoryCmd())
	return cmd
}

func snapshotRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record",
		Short: "Record today's account totals (once per day)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				totals, err := currentTotals(ctx, store)
				if err != nil {
					return err
				}
				snapshots, err := networth.OpenSnapshots(ctx, store)
				if err != nil {
					return err
				}

				snap, wrote, err := snapshots.Record(ctx, now(), totals)
				if err != nil {
					return fmt.Errorf("failed to record snapshot: %w", err)
				}
				if !wrote {
					printLine(cmd, cli.FormatInfo("A snapshot was already recorded today."))
					return nil
				}
				printLine(cmd, cli.FormatSuccess("Recorded snapshot: net worth "+cli.FormatMoney(snap.NetWorth())))
				return nil
			})
		},
	}
}

func snapshotHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show snapshots over a window",
		Long: `Show the latest snapshot per bucket: daily for week and month, weekly for
3month, monthly for year.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, _ := cmd.Flags().GetString("granularity")
			g, err := networth.ParseGranularity(raw)
			if err != nil {
				return err
			}

			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				snapshots, err := networth.OpenSnapshots(ctx, store)
				if err != nil {
					return err
				}
				history, err := networth.History(snapshots.List(), g, now())
				if err != nil {
					return err
				}
				if len(history) == 0 {
					printLine(cmd, cli.InfoStyle.Render("No snapshots in this window. Use 'jarvis snapshot record'."))
					return nil
				}
				printLine(cmd, snapshotTable(history))
				return nil
			})
		},
	}
	cmd.Flags().String("granularity", string(networth.GranularityMonth), "week, month, 3month or year")
	return cmd
}

func snapshotTable(snaps []model.AccountSnapshot) string {
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			formatDate(s.TakenAt),
			cli.FormatMoney(s.Savings),
			cli.FormatMoney(s.Investments),
			cli.FormatMoney(s.Retirement),
			cli.FormatMoney(s.Debt),
			cli.FormatMoney(s.FlightTraining),
			cli.FormatMoney(s.NetWorth()),
		})
	}
	return cli.RenderTable(
		[]string{"Date", "Savings", "Investments", "Retirement", "Debt", "Flight", "Net worth"},
		rows, 1, 2, 3, 4, 5, 6)
}
