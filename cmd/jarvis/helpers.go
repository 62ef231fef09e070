package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/jarvis/internal/config"
	"github.com/Veraticus/jarvis/internal/importer"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/Veraticus/jarvis/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var errInvalidArgument = errors.New("invalid argument")

// now is the command clock; tests pin it.
var now = time.Now

// initStorage opens the configured backend with its schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	backend, path := config.Database()
	store, err := storage.Open(ctx, backend, path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}

// withStorage runs fn against an open storage and closes it afterwards.
func withStorage(cmd *cobra.Command, fn func(ctx context.Context, store service.Storage) error) error {
	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()
	return fn(ctx, store)
}

func printf(cmd *cobra.Command, format string, args ...any) {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), format, args...); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

func printLine(cmd *cobra.Command, args ...any) {
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), args...); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

// parseDate parses s in any import layout; empty means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return today(), nil
	}
	d, ok := importer.ParseDate(s)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: date %q (use YYYY-MM-DD)", errInvalidArgument, s)
	}
	return d, nil
}

// parseAmount parses a money or quantity value.
func parseAmount(field, s string) (decimal.Decimal, error) {
	d, ok := importer.ParseAmount(s)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s %q", errInvalidArgument, field, s)
	}
	return d, nil
}

// parseMonth parses YYYY-MM; empty means the current month.
func parseMonth(s string) (int, time.Month, error) {
	if s == "" {
		y, m, _ := now().Date()
		return y, m, nil
	}
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month %q (use YYYY-MM)", errInvalidArgument, s)
	}
	return t.Year(), t.Month(), nil
}

func today() time.Time {
	y, m, d := now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func formatDate(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}

// optionalAmount parses flag name only when the user set it.
func optionalAmount(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	raw, _ := cmd.Flags().GetString(name)
	d, err := parseAmount(name, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// optionalString returns flag name only when the user set it.
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// optionalDate parses flag name only when the user set it.
func optionalDate(cmd *cobra.Command, name string) (*time.Time, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	raw, _ := cmd.Flags().GetString(name)
	d, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
