package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Veraticus/jarvis/internal/aggregate"
	"github.com/Veraticus/jarvis/internal/cli"
	"github.com/Veraticus/jarvis/internal/common"
	"github.com/Veraticus/jarvis/internal/config"
	"github.com/Veraticus/jarvis/internal/flight"
	"github.com/Veraticus/jarvis/internal/ledger"
	"github.com/Veraticus/jarvis/internal/networth"
	"github.com/Veraticus/jarvis/internal/quote"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func networthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "networth",
		Aliases: []string{"nw"},
		Short:   "Track accounts, debts and net worth",
	}
	cmd.AddCommand(
		networthAddCmd(),
		networthListCmd(),
		networthDeleteCmd(),
		networthSummaryCmd(),
		networthSeriesCmd(),
		networthRefreshCmd(),
	)
	return cmd
}

// currentTotals rolls up the stored accounts with the flight-training balance.
func currentTotals(ctx context.Context, store service.Storage) (networth.Totals, error) {
	accounts, err := networth.Open(ctx, store)
	if err != nil {
		return networth.Totals{}, err
	}
	book, err := flight.Open(ctx, store)
	if err != nil {
		return networth.Totals{}, err
	}
	training := flight.Summarize(book.List()).Balance.USD
	return networth.ComputeEntries(accounts.List(), training), nil
}

func networthAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <kind> <name>",
		Short: "Add an account (cash, bank, investment, debt, retirement)",
		Example: `  jarvis networth add cash Wallet --amount 120
  jarvis networth add bank Checking --institution "Chase" --amount 2500
  jarvis networth add investment "Index fund" --ticker VTI --shares 10
  jarvis networth add debt "Loan to Sam" --direction owed-to-me --amount 300
  jarvis networth add retirement 401k --amount 40000`,
		Args: cobra.ExactArgs(2),
		RunE: runNetworthAdd,
	}
	cmd.Flags().String("amount", "0", "Amount or balance")
	cmd.Flags().String("institution", "", "Bank name")
	cmd.Flags().String("ticker", "", "Ticker symbol or crypto name")
	cmd.Flags().String("shares", "0", "Number of shares")
	cmd.Flags().String("price", "", "Price per share (looked up when omitted)")
	cmd.Flags().String("direction", string(networth.IOwe), "Debt direction: i-owe or owed-to-me")
	return cmd
}

func runNetworthAdd(cmd *cobra.Command, args []string) error {
	kind := networth.Kind(strings.ToLower(args[0]))
	name := args[1]

	rawAmount, _ := cmd.Flags().GetString("amount")
	amount, err := parseAmount("amount", rawAmount)
	if err != nil {
		return err
	}

	account, err := buildAccount(cmd, kind, name, amount)
	if err != nil {
		return err
	}

	return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
		accounts, err := networth.Open(ctx, store)
		if err != nil {
			return err
		}
		entry, err := accounts.Add(ctx, account)
		if err != nil {
			return fmt.Errorf("failed to add account: %w", err)
		}
		printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Added %s %s worth %s (%s)",
			entry.Account.Kind(), entry.Account.Name(), cli.FormatMoney(entry.Account.Value()), entry.ID)))
		return nil
	})
}

func buildAccount(cmd *cobra.Command, kind networth.Kind, name string, amount decimal.Decimal) (networth.Account, error) {
	switch kind {
	case networth.KindCash:
		return networth.NewCash(name, amount)
	case networth.KindBank:
		institution, _ := cmd.Flags().GetString("institution")
		return networth.NewBankAccount(name, institution, amount)
	case networth.KindRetirement:
		return networth.NewRetirementAccount(name, amount)
	case networth.KindDebt:
		direction, _ := cmd.Flags().GetString("direction")
		return networth.NewDebt(name, networth.Direction(direction), amount)
	case networth.KindInvestment:
		ticker, _ := cmd.Flags().GetString("ticker")
		rawShares, _ := cmd.Flags().GetString("shares")
		shares, err := parseAmount("shares", rawShares)
		if err != nil {
			return nil, err
		}
		price, err := optionalAmount(cmd, "price")
		if err != nil {
			return nil, err
		}
		if price == nil {
			p := lookupPrice(cmd, ticker)
			price = &p
		}
		return networth.NewInvestment(name, ticker, shares, *price)
	default:
		return nil, fmt.Errorf("%w: %q", networth.ErrUnknownKind, kind)
	}
}

// lookupPrice fetches the ticker price, printing a warning and returning zero
// on failure so the account can still be saved.
func lookupPrice(cmd *cobra.Command, ticker string) decimal.Decimal {
	if ticker == "" {
		return decimal.Zero
	}
	price, err := quote.NewClient(config.Quote()).Price(cmd.Context(), quote.Symbol(ticker))
	if err != nil {
		printLine(cmd, cli.FormatWarning(common.UserMessage(err)))
		return decimal.Zero
	}
	return price
}

func networthListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				accounts, err := networth.Open(ctx, store)
				if err != nil {
					return err
				}
				entries := accounts.List()
				if len(entries) == 0 {
					printLine(cmd, cli.InfoStyle.Render("No accounts yet. Use 'jarvis networth add' to create one."))
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{string(e.Account.Kind()), e.Account.Name(), accountDetail(e.Account), cli.FormatMoney(e.Account.Value()), e.ID})
				}
				printLine(cmd, cli.RenderTable([]string{"Kind", "Name", "Detail", "Value", "ID"}, rows, 3))
				return nil
			})
		},
	}
}

func accountDetail(a networth.Account) string {
	switch acct := a.(type) {
	case networth.BankAccount:
		return acct.Institution
	case networth.Investment:
		return fmt.Sprintf("%s × %s %s", acct.Shares.String(), cli.FormatMoney(acct.PricePerShare), acct.Ticker)
	case networth.Debt:
		return string(acct.Direction)
	default:
		return ""
	}
}

func networthDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				accounts, err := networth.Open(ctx, store)
				if err != nil {
					return err
				}
				if err := accounts.Delete(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to delete account: %w", err)
				}
				printLine(cmd, cli.FormatSuccess("Deleted "+args[0]))
				return nil
			})
		},
	}
}

func networthSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show net worth by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				totals, err := currentTotals(ctx, store)
				if err != nil {
					return err
				}
				printLine(cmd, cli.RenderBox("Net Worth", totalsTable(totals)))
				return nil
			})
		},
	}
}

func totalsTable(t networth.Totals) string {
	rows := [][]string{
		{"Savings", cli.FormatMoney(t.Savings)},
		{"Investments", cli.FormatMoney(t.Investments)},
		{"Retirement", cli.FormatMoney(t.Retirement)},
		{"Debts I owe", cli.FormatMoney(t.DebtsIOwe)},
		{"Debts owed to me", cli.FormatMoney(t.DebtsOwedToMe)},
		{"Net debt", cli.FormatMoney(t.NetDebt)},
		{"Flight training", cli.FormatMoney(t.FlightTraining)},
		{"Net worth", cli.BoldStyle.Render(cli.FormatMoney(t.NetWorth))},
	}
	return cli.RenderTable([]string{"Category", "USD"}, rows, 1)
}

func networthSeriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Show net worth over time",
		Long: `Show net worth over time, replaying daily income and expenses backwards from
today's net worth. With --demo an illustrative curve is generated instead; it is
not based on your data.`,
		RunE: runNetworthSeries,
	}
	cmd.Flags().String("range", string(aggregate.Range1M), "1W, 1M, 3M, YTD or ALL")
	cmd.Flags().Bool("demo", false, "Show a synthetic demo curve")
	return cmd
}

func runNetworthSeries(cmd *cobra.Command, _ []string) error {
	rawRange, _ := cmd.Flags().GetString("range")
	demo, _ := cmd.Flags().GetBool("demo")

	r, err := aggregate.ParseRange(rawRange)
	if err != nil {
		return err
	}

	return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
		totals, err := currentTotals(ctx, store)
		if err != nil {
			return err
		}
		txStore, err := ledger.Open(ctx, store)
		if err != nil {
			return err
		}

		var series aggregate.Series
		switch {
		case demo:
			rng := rand.New(rand.NewPCG(uint64(now().UnixNano()), 0))
			series = aggregate.DemoSeries(r, totals.NetWorth, now(), rng)
			printLine(cmd, cli.FormatWarning("Demo data: this curve is illustrative and not based on your transactions."))
		case txStore.Len() == 0:
			printLine(cmd, cli.InfoStyle.Render("No data yet. Import transactions to see your net worth over time, or use --demo."))
			return nil
		default:
			series = aggregate.NetWorthSeries(txStore.List(), r, totals.NetWorth, now())
		}

		rows := make([][]string, 0, len(series.Points))
		for _, p := range series.Points {
			rows = append(rows, []string{p.Label, p.Date.Format(time.DateOnly), cli.FormatMoney(p.Net)})
		}
		printLine(cmd, cli.FormatTitle("Net worth · "+string(series.Range)))
		printLine(cmd, cli.RenderTable([]string{"Point", "Date", "Net worth"}, rows, 2))
		return nil
	})
}

func networthRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-prices",
		Short: "Look up current prices for every investment with a ticker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStorage(cmd, func(ctx context.Context, store service.Storage) error {
				accounts, err := networth.Open(ctx, store)
				if err != nil {
					return err
				}
				investments := accounts.Investments()
				if len(investments) == 0 {
					printLine(cmd, cli.InfoStyle.Render("No investments with a ticker."))
					return nil
				}

				symbols := make([]string, len(investments))
				for i, e := range investments {
					symbols[i] = quote.Symbol(e.Account.(networth.Investment).Ticker)
				}
				results, err := quote.NewClient(config.Quote()).FetchAll(ctx, symbols)
				if err != nil {
					return err
				}

				for i, res := range results {
					entry := investments[i]
					if res.Err != nil {
						printLine(cmd, cli.FormatWarning(fmt.Sprintf("%s: %s", entry.Account.Name(), common.UserMessage(res.Err))))
						continue
					}
					if _, err := accounts.UpdatePrice(ctx, entry.ID, res.Price); err != nil {
						return fmt.Errorf("failed to update %s: %w", entry.Account.Name(), err)
					}
					printLine(cmd, cli.FormatSuccess(fmt.Sprintf("%s: %s", entry.Account.Name(), cli.FormatMoney(res.Price))))
				}
				return nil
			})
		},
	}
}
