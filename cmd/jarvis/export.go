package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/jarvis/internal/aggregate"
	"github.com/Veraticus/jarvis/internal/cli"
	"github.com/Veraticus/jarvis/internal/config"
	"github.com/Veraticus/jarvis/internal/importer"
	"github.com/Veraticus/jarvis/internal/ledger"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/Veraticus/jarvis/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions and monthly reports",
	}
	cmd.AddCommand(exportCSVCmd(), exportSheetsCmd(), exportAuthCmd())
	return cmd
}

func exportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "csv [file]",
		Short: "Write all transactions as CSV in the import format",
		Long: `Write every transaction in the same CSV layout that "jarvis import"
reads, so the file can be re-imported. Without a file, CSV goes to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				txStore, err := ledger.Open(ctx, store)
				if err != nil {
					return err
				}

				var w io.Writer = cmd.OutOrStdout()
				if len(args) == 1 {
					f, err := os.Create(args[0])
					if err != nil {
						return fmt.Errorf("failed to create %s: %w", args[0], err)
					}
					defer func() {
						if closeErr := f.Close(); closeErr != nil {
							slog.Error("failed to close export file", "error", closeErr)
						}
					}()
					w = f
				}

				txs := txStore.List()
				if err := importer.Export(w, txs); err != nil {
					return err
				}
				if len(args) == 1 {
					printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", len(txs), args[0])))
				}
				return nil
			})
		},
	}
}

func exportSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Write a monthly report to Google Sheets",
		Long: `Build the monthly report (summary, category breakdown and
transactions) and write it to the configured spreadsheet.

Authenticate first with "jarvis export auth" or configure a service account
with sheets.service_account_path.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			monthFlag, _ := cmd.Flags().GetString("month")
			year, month, err := parseMonth(monthFlag)
			if err != nil {
				return err
			}

			cfg, err := config.LoadSheetsConfig()
			if err != nil {
				return err
			}

			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				txStore, err := ledger.Open(ctx, store)
				if err != nil {
					return err
				}
				report := aggregate.BuildReport(txStore.List(), year, month)

				writer, err := sheets.NewWriter(ctx, *cfg, slog.Default())
				if err != nil {
					return err
				}
				if err := writer.Write(ctx, &report); err != nil {
					return err
				}
				printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Wrote %s report to %s", report.Title(), cfg.SpreadsheetName)))
				return nil
			})
		},
	}
	cmd.Flags().String("month", "", "Month to export (YYYY-MM, default current)")
	return cmd
}

func exportAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Google Sheets access",
		Long: `Run the OAuth2 browser flow using sheets.client_id and
sheets.client_secret, and save the token to sheets.token_file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			cfg, err := config.LoadSheetsAuthConfig()
			if err != nil {
				return err
			}

			_, err = sheets.Authenticate(cmd.Context(), *cfg, addr, func(url string) {
				printLine(cmd, cli.FormatInfo("Open this URL in your browser to authorize Jarvis:"))
				printLine(cmd, url)
			})
			if err != nil {
				return err
			}
			printLine(cmd, cli.FormatSuccess("Google Sheets authorized"))
			return nil
		},
	}
	cmd.Flags().String("addr", sheets.DefaultCallbackAddr, "Local address for the OAuth callback")
	return cmd
}
