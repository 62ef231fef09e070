package main

import (
	"context"

	"github.com/Veraticus/jarvis/internal/ledger"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/Veraticus/jarvis/internal/tui"
	"github.com/Veraticus/jarvis/internal/tui/themes"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive month dashboard",
		Long: `Browse the spending calendar, category breakdown, transaction list
and net-worth chart month by month.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			themeName, _ := cmd.Flags().GetString("theme")
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				txStore, err := ledger.Open(ctx, store)
				if err != nil {
					return err
				}
				totals, err := currentTotals(ctx, store)
				if err != nil {
					return err
				}
				return tui.Run(ctx,
					tui.WithSource(txStore),
					tui.WithNetWorth(totals.NetWorth),
					tui.WithTheme(themes.GetTheme(themeName)),
					tui.WithClock(now),
				)
			})
		},
	}
	cmd.Flags().String("theme", "default", "Color theme (default, catppuccin-mocha)")
	return cmd
}
