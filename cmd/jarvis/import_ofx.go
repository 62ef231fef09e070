package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/jarvis/internal/cli"
	"github.com/Veraticus/jarvis/internal/importer"
	"github.com/Veraticus/jarvis/internal/ledger"
	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/ofx"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import financial transactions from OFX or QFX (Quicken) files exported from your bank.

Examples:
  # Import single file
  jarvis import-ofx ~/Downloads/checking_jan_2024.qfx

  # Import all QFX files in a directory
  jarvis import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().Bool("skip-duplicates", true, "Skip transactions identical to stored ones")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	skip, _ := cmd.Flags().GetBool("skip-duplicates")

	files, err := expandFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no files found", errInvalidArgument)
	}

	parser := ofx.NewParser()
	var all []model.Transaction
	for _, path := range files {
		txs, err := parseOFXFile(cmd.Context(), parser, path)
		if err != nil {
			return err
		}
		printLine(cmd, cli.FormatInfo(fmt.Sprintf("%s: %d transactions", filepath.Base(path), len(txs))))
		all = append(all, txs...)
	}

	if dryRun {
		printLine(cmd, cli.FormatWarning("Dry run mode - not saving to database"))
		for _, tx := range all {
			printf(cmd, "  %s  %-30s %s\n", formatDate(tx.Date), tx.Description, cli.FormatMoney(tx.Amount))
		}
		return nil
	}

	return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
		txStore, err := ledger.Open(ctx, store)
		if err != nil {
			return err
		}
		result, err := importer.New(txStore).ImportTransactions(ctx, all, importer.Options{SkipDuplicates: skip})
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		printImportResult(cmd, result)
		return nil
	})
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

func parseOFXFile(ctx context.Context, parser *ofx.Parser, path string) ([]model.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("Failed to close OFX file", "path", path, "error", closeErr)
		}
	}()

	txs, err := parser.ParseFile(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return txs, nil
}
