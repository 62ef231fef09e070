// Package quote looks up current market prices for stock and crypto tickers.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/jarvis/internal/common"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// FetchFailedMessage is shown when no price could be fetched.
const FetchFailedMessage = "Could not fetch price. Please enter manually."

// Defaults.
const (
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	DefaultTimeout = 10 * time.Second
	maxConcurrent  = 4
)

// ErrEmptySymbol is returned for a blank ticker.
var ErrEmptySymbol = errors.New("symbol cannot be empty")

var cryptoSymbols = map[string]string{
	"bitcoin":  "BTC-USD",
	"btc":      "BTC-USD",
	"ethereum": "ETH-USD",
	"eth":      "ETH-USD",
	"solana":   "SOL-USD",
	"sol":      "SOL-USD",
	"cardano":  "ADA-USD",
	"ada":      "ADA-USD",
	"dogecoin": "DOGE-USD",
	"doge":     "DOGE-USD",
	"ripple":   "XRP-USD",
	"xrp":      "XRP-USD",
	"litecoin": "LTC-USD",
	"ltc":      "LTC-USD",
	"polkadot": "DOT-USD",
	"dot":      "DOT-USD",
}

// Symbol maps a ticker or a common coin name to the quote symbol.
func Symbol(name string) string {
	name = strings.TrimSpace(name)
	if s, ok := cryptoSymbols[strings.ToLower(name)]; ok {
		return s
	}
	return strings.ToUpper(name)
}

// Config configures a Client.
type Config struct {
	// BaseURL is the quote host, without a trailing slash.
	BaseURL string
	// ProxyURL is a prefix the escaped request URL is appended to when the
	// direct request fails. Empty disables the fallback.
	ProxyURL string
	Timeout  time.Duration
}

// Client fetches prices over HTTP.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// NewClient creates a client, filling unset fields with defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice *json.Number `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// Price returns the current price of symbol. Failures are reported as a
// common.UserError carrying FetchFailedMessage.
func (c *Client) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol = Symbol(symbol)
	if symbol == "" {
		return decimal.Zero, ErrEmptySymbol
	}

	target := fmt.Sprintf("%s/v8/finance/chart/%s", c.cfg.BaseURL, url.PathEscape(symbol))
	price, err := c.fetch(ctx, target)
	if err == nil {
		return price, nil
	}
	slog.Debug("Direct price lookup failed", "symbol", symbol, "error", err)

	if c.cfg.ProxyURL != "" && ctx.Err() == nil {
		price, proxyErr := c.fetch(ctx, c.cfg.ProxyURL+url.QueryEscape(target))
		if proxyErr == nil {
			return price, nil
		}
		err = errors.Join(err, proxyErr)
	}

	slog.Warn("Price lookup failed", "symbol", symbol, "error", err)
	return decimal.Zero, common.NewUserError(FetchFailedMessage,
		fmt.Errorf("%w: %s: %w", common.ErrPriceUnavailable, symbol, err))
}

func (c *Client) fetch(ctx context.Context, target string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return decimal.Zero, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chart chartResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&chart); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chart.Chart.Result) == 0 || chart.Chart.Result[0].Meta.RegularMarketPrice == nil {
		return decimal.Zero, errors.New("response has no regularMarketPrice")
	}

	price, err := decimal.NewFromString(chart.Chart.Result[0].Meta.RegularMarketPrice.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price: %w", err)
	}
	return price, nil
}

// Result is the outcome of one lookup in FetchAll.
type Result struct {
	Err    error
	Symbol string
	Price  decimal.Decimal
}

// FetchAll looks up every symbol concurrently. Individual failures are kept
// in the matching Result; only context cancellation aborts the batch.
func (c *Client) FetchAll(ctx context.Context, symbols []string) ([]Result, error) {
	results := make([]Result, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, sym := range symbols {
		g.Go(func() error {
			price, err := c.Price(gctx, sym)
			results[i] = Result{Symbol: sym, Price: price, Err: err}
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
