package main

import (
	"github.com/Veraticus/jarvis/internal/cli"
	"github.com/Veraticus/jarvis/internal/common"
	"github.com/Veraticus/jarvis/internal/config"
	"github.com/Veraticus/jarvis/internal/quote"
	"github.com/spf13/cobra"
)

func priceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <symbol>",
		Short: "Look up the current price of a stock or coin",
		Long: `Fetch the latest market price for a ticker. Common coin names such
as "bitcoin" or "eth" are mapped to their USD pairs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := quote.Symbol(args[0])
			price, err := quote.NewClient(config.Quote()).Price(cmd.Context(), symbol)
			if err != nil {
				printLine(cmd, cli.FormatWarning(common.UserMessage(err)))
				return nil
			}
			printf(cmd, "%s %s\n", symbol, cli.FormatMoney(price))
			return nil
		},
	}
}
