package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/jarvis/internal/cli"
	"github.com/Veraticus/jarvis/internal/importer"
	"github.com/Veraticus/jarvis/internal/ledger"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import transactions from a CSV export",
		Long: `Import transactions from a CSV file with the columns
Date, Description, Statement description, Type, Category, Amount, Account, Tags, Notes.

Rows that cannot be parsed are reported and skipped; every other row is saved.
Bank category labels are mapped to Jarvis categories and the original label is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("account", "", "Account for rows without one")
	cmd.Flags().Bool("skip-duplicates", false, "Skip rows identical to stored transactions")
	cmd.Flags().Bool("no-progress", false, "Hide the progress bar")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	account, _ := cmd.Flags().GetString("account")
	skip, _ := cmd.Flags().GetBool("skip-duplicates")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("Failed to close import file", "error", closeErr)
		}
	}()

	opts := importer.Options{Account: account, SkipDuplicates: skip}
	if !noProgress {
		opts.OnProgress = cli.NewProgress(cmd.ErrOrStderr(), "Importing transactions...")
	}

	return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
		txStore, err := ledger.Open(ctx, store)
		if err != nil {
			return err
		}

		result, err := importer.New(txStore).Import(ctx, file, opts)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		printImportResult(cmd, result)
		return nil
	})
}

func printImportResult(cmd *cobra.Command, result importer.Result) {
	printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Imported %d transactions", result.Success)))
	if result.Skipped > 0 {
		printLine(cmd, cli.FormatInfo(fmt.Sprintf("Skipped %d duplicates", result.Skipped)))
	}
	if len(result.Errors) > 0 {
		printLine(cmd, cli.FormatWarning(fmt.Sprintf("%d rows rejected:", len(result.Errors))))
		for _, e := range result.Errors {
			printLine(cmd, "  "+cli.Spending(e))
		}
	}
}
