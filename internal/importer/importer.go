package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/jarvis/internal/ledger"
	"github.com/Veraticus/jarvis/internal/model"
	"github.com/shopspring/decimal"
)

// Options tunes an import run.
type Options struct {
	// OnProgress is called after each data row with the rows handled so far.
	OnProgress func(done, total int)
	// Account fills the account of rows that leave it empty.
	Account string
	// SkipDuplicates drops rows whose content hash matches a stored
	// transaction or an earlier row of the same file.
	SkipDuplicates bool
}

// Result reports the outcome of an import.
type Result struct {
	Errors   []string
	Imported []model.Transaction
	Success  int
	Skipped  int
}

// Importer appends parsed CSV rows to a ledger.
type Importer struct {
	ledger *ledger.Store
}

// New creates an importer writing to store.
func New(store *ledger.Store) *Importer {
	return &Importer{ledger: store}
}

// Import parses r and appends every valid row to the ledger with a single save.
// Rejected rows are reported in Result.Errors and never stored.
func (im *Importer) Import(ctx context.Context, r io.Reader, opts Options) (Result, error) {
	rows, rowErrs, err := Parse(r)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, e := range rowErrs {
		result.Errors = append(result.Errors, e.Error())
	}

	txs := make([]model.Transaction, len(rows))
	for i, row := range rows {
		txs[i] = row.Transaction
	}

	if err := im.store(ctx, txs, opts, &result); err != nil {
		return result, err
	}

	slog.Info("Imported transactions",
		"success", result.Success,
		"errors", len(result.Errors),
		"skipped", result.Skipped)
	return result, nil
}

// ImportTransactions appends already-parsed transactions, applying the same
// account defaulting and duplicate handling as Import.
func (im *Importer) ImportTransactions(ctx context.Context, txs []model.Transaction, opts Options) (Result, error) {
	var result Result
	if err := im.store(ctx, txs, opts, &result); err != nil {
		return result, err
	}
	return result, nil
}

func (im *Importer) store(ctx context.Context, txs []model.Transaction, opts Options, result *Result) error {
	seen := map[string]bool{}
	if opts.SkipDuplicates {
		seen = im.ledger.Hashes()
	}

	total := len(txs)
	accepted := make([]model.Transaction, 0, total)
	for i, tx := range txs {
		if tx.Account == "" {
			tx.Account = opts.Account
		}

		if opts.SkipDuplicates {
			h := tx.Hash()
			if seen[h] {
				result.Skipped++
				report(opts, i+1, total)
				continue
			}
			seen[h] = true
		}

		accepted = append(accepted, tx)
		report(opts, i+1, total)
	}

	added, err := im.ledger.AddMany(ctx, accepted)
	if err != nil {
		return fmt.Errorf("failed to store imported transactions: %w", err)
	}
	result.Imported = added
	result.Success = len(added)
	return nil
}

func report(opts Options, done, total int) {
	if opts.OnProgress != nil {
		opts.OnProgress(done, total)
	}
}

// Export writes transactions in the import format. The preserved original
// category label is written in place of the normalized one.
func Export(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, tx := range txs {
		rawCategory, ok := tx.OriginalCategory()
		if !ok {
			rawCategory = tx.Category.String()
		}
		description := tx.Description
		if description == tx.StatementDescription {
			description = ""
		}
		rec := []string{
			tx.Date.Format("2006-01-02"),
			description,
			tx.StatementDescription,
			string(tx.Type),
			rawCategory,
			exportAmount(tx.Amount),
			tx.Account,
			strings.Join(tx.UserTags(), ";"),
			tx.Notes,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// exportAmount writes at least two decimals and never rounds away precision.
func exportAmount(d decimal.Decimal) string {
	if d.Exponent() < -2 {
		return d.String()
	}
	return d.StringFixed(2)
}
