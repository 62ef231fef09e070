package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/jarvis/internal/cli"
	"github.com/Veraticus/jarvis/internal/config"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/spf13/cobra"
)

type versioned interface {
	SchemaVersion(ctx context.Context) (int, error)
}

type historian interface {
	History(ctx context.Context, key string, limit int) ([][]byte, error)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Migrations also run automatically whenever a command opens the database.`,
		RunE: runMigrate,
	}
	cmd.Flags().Bool("status", false, "List stored data sets after migrating")
	cmd.Flags().String("history", "", "Show how many previous revisions are kept for a data set")
	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	historyKey, _ := cmd.Flags().GetString("history")
	backend, path := config.Database()

	slog.Info("Starting database migration", "backend", backend, "database", path)

	return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
		if v, ok := store.(versioned); ok {
			version, err := v.SchemaVersion(ctx)
			if err != nil {
				return err
			}
			printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Database is at schema version %d", version)))
		} else {
			printLine(cmd, cli.FormatSuccess("Storage is ready"))
		}

		if status {
			keys, err := store.Keys(ctx)
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				printLine(cmd, cli.FormatInfo("No data stored yet"))
			}
			for _, k := range keys {
				printf(cmd, "  %s\n", k)
			}
		}

		if historyKey != "" {
			h, ok := store.(historian)
			if !ok {
				printLine(cmd, cli.FormatWarning("This backend keeps no revision history"))
				return nil
			}
			revisions, err := h.History(ctx, historyKey, 0)
			if err != nil {
				return err
			}
			printf(cmd, "%s: %d previous revisions\n", historyKey, len(revisions))
			for i, rev := range revisions {
				printf(cmd, "  %d. %d bytes\n", i+1, len(rev))
			}
		}
		return nil
	})
}
