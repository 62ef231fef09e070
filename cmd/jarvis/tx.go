package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/jarvis/internal/aggregate"
	"github.com/Veraticus/jarvis/internal/category"
	"github.com/Veraticus/jarvis/internal/cli"
	"github.com/Veraticus/jarvis/internal/ledger"
	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/spf13/cobra"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Manage transactions",
	}
	cmd.AddCommand(txAddCmd(), txListCmd(), txUpdateCmd(), txDeleteCmd())
	return cmd
}

// resolveCategory maps user input to a category and the label to preserve.
// Known category names are stored as-is; anything else is normalized and kept
// as the original label.
func resolveCategory(raw string) (model.Category, string) {
	if c, ok := model.ParseCategory(raw); ok {
		return c, ""
	}
	return category.Normalize(raw), strings.TrimSpace(raw)
}

func txAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		Example: `  jarvis tx add --amount 4.50 --description "Coffee" --category "Coffee Shops"
  jarvis tx add --type income --amount 3000 --description Salary --date 2024-01-05`,
		RunE: runTxAdd,
	}

	cmd.Flags().String("date", "", "Transaction date (default: today)")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("amount", "", "Amount (transfers may be negative)")
	cmd.Flags().String("type", string(model.TypeExpense), "income, expense or transfer")
	cmd.Flags().String("category", "", "Category or bank category label")
	cmd.Flags().String("account", "", "Account name")
	cmd.Flags().String("notes", "", "Notes")
	cmd.Flags().StringSlice("tags", nil, "Tags (comma-separated)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func runTxAdd(cmd *cobra.Command, _ []string) error {
	rawDate, _ := cmd.Flags().GetString("date")
	rawAmount, _ := cmd.Flags().GetString("amount")
	rawType, _ := cmd.Flags().GetString("type")
	rawCategory, _ := cmd.Flags().GetString("category")
	description, _ := cmd.Flags().GetString("description")
	account, _ := cmd.Flags().GetString("account")
	notes, _ := cmd.Flags().GetString("notes")
	tags, _ := cmd.Flags().GetStringSlice("tags")

	date, err := parseDate(rawDate)
	if err != nil {
		return err
	}
	amount, err := parseAmount("amount", rawAmount)
	if err != nil {
		return err
	}
	txType := model.TransactionType(strings.ToLower(rawType))
	if !txType.IsValid() {
		return fmt.Errorf("%w: type %q", model.ErrInvalidType, rawType)
	}
	if txType != model.TypeTransfer {
		amount = amount.Abs()
	}

	cat, original := resolveCategory(rawCategory)
	tx := model.Transaction{
		Date:        date,
		Type:        txType,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		Category:    cat,
		Account:     account,
		Notes:       notes,
		Tags:        tags,
	}
	tx.SetOriginalCategory(original)

	return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
		txStore, err := ledger.Open(ctx, store)
		if err != nil {
			return err
		}
		added, err := txStore.Add(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to add transaction: %w", err)
		}
		printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Added %s (%s)", added.Description, added.ID)))
		return nil
	})
}

func txListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions of a month, newest first",
		RunE:  runTxList,
	}
	cmd.Flags().String("month", "", "Month to list (YYYY-MM, default: current)")
	cmd.Flags().Bool("all", false, "List every transaction")
	return cmd
}

func runTxList(cmd *cobra.Command, _ []string) error {
	rawMonth, _ := cmd.Flags().GetString("month")
	all, _ := cmd.Flags().GetBool("all")

	year, month, err := parseMonth(rawMonth)
	if err != nil {
		return err
	}

	return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
		txStore, err := ledger.Open(ctx, store)
		if err != nil {
			return err
		}

		txs := txStore.List()
		if !all {
			txs = aggregate.BuildReport(txs, year, month).Transactions
		}
		if len(txs) == 0 {
			printLine(cmd, cli.InfoStyle.Render("No transactions found. Use 'jarvis import' or 'jarvis tx add' to add some."))
			return nil
		}

		printLine(cmd, transactionTable(txs))
		return nil
	})
}

func transactionTable(txs []model.Transaction) string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			formatDate(tx.Date),
			tx.Description,
			string(tx.Type),
			tx.DisplayCategory(),
			cli.FormatMoney(tx.Amount),
			tx.ID,
		})
	}
	return cli.RenderTable([]string{"Date", "Description", "Type", "Category", "Amount", "ID"}, rows, 4)
}

func txUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  runTxUpdate,
	}
	cmd.Flags().String("date", "", "New date")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("amount", "", "New amount")
	cmd.Flags().String("type", "", "New type")
	cmd.Flags().String("category", "", "New category or bank category label")
	cmd.Flags().String("account", "", "New account")
	cmd.Flags().String("notes", "", "New notes")
	return cmd
}

func runTxUpdate(cmd *cobra.Command, args []string) error {
	var (
		patch ledger.Patch
		err   error
	)
	if patch.Date, err = optionalDate(cmd, "date"); err != nil {
		return err
	}
	if patch.Amount, err = optionalAmount(cmd, "amount"); err != nil {
		return err
	}
	patch.Description = optionalString(cmd, "description")
	patch.Account = optionalString(cmd, "account")
	patch.Notes = optionalString(cmd, "notes")
	if raw := optionalString(cmd, "type"); raw != nil {
		t := model.TransactionType(strings.ToLower(*raw))
		patch.Type = &t
	}
	if raw := optionalString(cmd, "category"); raw != nil {
		cat, original := resolveCategory(*raw)
		patch.Category = &cat
		patch.OriginalCategory = &original
	}

	return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
		txStore, err := ledger.Open(ctx, store)
		if err != nil {
			return err
		}
		updated, err := txStore.Update(ctx, args[0], patch)
		if err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		printLine(cmd, cli.FormatSuccess("Updated "+updated.Description))
		return nil
	})
}

func txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				txStore, err := ledger.Open(ctx, store)
				if err != nil {
					return err
				}
				if err := txStore.Delete(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to delete transaction: %w", err)
				}
				printLine(cmd, cli.FormatSuccess("Deleted "+args[0]))
				return nil
			})
		},
	}
}
