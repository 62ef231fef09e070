package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/jarvis/internal/aggregate"
	"github.com/Veraticus/jarvis/internal/cli"
	"github.com/Veraticus/jarvis/internal/ledger"
	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/spf13/cobra"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage monthly budgets",
	}
	cmd.AddCommand(budgetSetCmd(), budgetListCmd(), budgetProgressCmd(), budgetDeleteCmd())
	return cmd
}

// parseBudgetCategory accepts a category name; empty or "all" means every category.
func parseBudgetCategory(raw string) (model.Category, error) {
	if raw == "" || raw == "all" {
		return "", nil
	}
	c, ok := model.ParseCategory(raw)
	if !ok {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidCategory, raw)
	}
	return c, nil
}

func budgetLabel(c model.Category) string {
	if c == "" {
		return "All spending"
	}
	return c.String()
}

func budgetSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <limit> [category]",
		Short:   "Set the monthly limit for a category (or all spending)",
		Example: "  jarvis budget set 500 food\n  jarvis budget set 2500",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := parseAmount("limit", args[0])
			if err != nil {
				return err
			}
			raw := ""
			if len(args) == 2 {
				raw = args[1]
			}
			cat, err := parseBudgetCategory(raw)
			if err != nil {
				return err
			}

			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				budgets, err := ledger.OpenBudgets(ctx, store)
				if err != nil {
					return err
				}
				saved, err := budgets.Set(ctx, model.Budget{Category: cat, Limit: limit, Period: model.PeriodMonthly})
				if err != nil {
					return fmt.Errorf("failed to set budget: %w", err)
				}
				printLine(cmd, cli.FormatSuccess(fmt.Sprintf("%s: %s per month", budgetLabel(saved.Category), cli.FormatMoney(saved.Limit))))
				return nil
			})
		},
	}
}

func budgetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				budgets, err := ledger.OpenBudgets(ctx, store)
				if err != nil {
					return err
				}
				list := budgets.List()
				if len(list) == 0 {
					printLine(cmd, cli.InfoStyle.Render("No budgets yet. Use 'jarvis budget set' to create one."))
					return nil
				}
				rows := make([][]string, 0, len(list))
				for _, b := range list {
					rows = append(rows, []string{budgetLabel(b.Category), string(b.Period), cli.FormatMoney(b.Limit)})
				}
				printLine(cmd, cli.RenderTable([]string{"Category", "Period", "Limit"}, rows, 2))
				return nil
			})
		},
	}
}

func budgetProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Compare this month's spending with each budget",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				budgets, err := ledger.OpenBudgets(ctx, store)
				if err != nil {
					return err
				}
				txStore, err := ledger.Open(ctx, store)
				if err != nil {
					return err
				}

				list := budgets.List()
				if len(list) == 0 {
					printLine(cmd, cli.InfoStyle.Render("No budgets yet. Use 'jarvis budget set' to create one."))
					return nil
				}

				txs := txStore.List()
				rows := make([][]string, 0, len(list))
				for _, b := range list {
					p := aggregate.BudgetProgress(txs, b, now())
					status := cli.Income("on track")
					if p.Over {
						status = cli.Spending("over")
					}
					rows = append(rows, []string{
						budgetLabel(b.Category),
						cli.FormatMoney(p.Spent),
						cli.FormatMoney(b.Limit),
						cli.FormatMoney(p.Remaining),
						cli.FormatPercent(p.Percent),
						status,
					})
				}
				printLine(cmd, cli.RenderTable([]string{"Category", "Spent", "Limit", "Remaining", "Used", "Status"}, rows, 1, 2, 3, 4))
				return nil
			})
		},
	}
}

func budgetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [category]",
		Short: "Delete the budget of a category (or the overall budget)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			}
			cat, err := parseBudgetCategory(raw)
			if err != nil {
				return err
			}
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				budgets, err := ledger.OpenBudgets(ctx, store)
				if err != nil {
					return err
				}
				if err := budgets.Delete(ctx, cat); err != nil {
					return fmt.Errorf("failed to delete budget: %w", err)
				}
				printLine(cmd, cli.FormatSuccess("Deleted budget for "+budgetLabel(cat)))
				return nil
			})
		},
	}
}
