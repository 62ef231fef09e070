package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Veraticus/jarvis/internal/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartHandler(prices map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/")
		price, ok := prices[symbol]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"chart":{"result":[{"meta":{"symbol":%q,"regularMarketPrice":%s}}],"error":null}}`, symbol, price)
	}
}

func TestSymbol(t *testing.T) {
	tests := map[string]string{
		"bitcoin":   "BTC-USD",
		" Ethereum": "ETH-USD",
		"vti":       "VTI",
		"BTC-USD":   "BTC-USD",
	}
	for in, want := range tests {
		assert.Equal(t, want, Symbol(in), in)
	}
}

func TestClient_Price(t *testing.T) {
	srv := httptest.NewServer(chartHandler(map[string]string{"VTI": "251.37", "BTC-USD": "64000.5"}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL + "/"})

	price, err := c.Price(context.Background(), "vti")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("251.37").Equal(price))

	price, err = c.Price(context.Background(), "bitcoin")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("64000.5").Equal(price))

	_, err = c.Price(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptySymbol)
}

func TestClient_PriceFailureIsUserError(t *testing.T) {
	tests := []struct {
		handler http.HandlerFunc
		name    string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "missing price",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"chart":{"result":[{"meta":{}}]}}`)
			},
		},
		{
			name: "empty result",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"chart":{"result":[]}}`)
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `<html>`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewClient(Config{BaseURL: srv.URL}).Price(context.Background(), "VTI")
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrPriceUnavailable)
			assert.Equal(t, FetchFailedMessage, common.UserMessage(err))
		})
	}
}

func TestClient_ProxyFallback(t *testing.T) {
	var directCalls atomic.Int32
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		directCalls.Add(1)
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer direct.Close()

	upstream := chartHandler(map[string]string{"VTI": "250"})
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target, err := url.Parse(r.URL.Query().Get("url"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		r.URL = target
		upstream(w, r)
	}))
	defer proxy.Close()

	c := NewClient(Config{BaseURL: direct.URL, ProxyURL: proxy.URL + "/?url="})
	price, err := c.Price(context.Background(), "VTI")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(250).Equal(price))
	assert.Equal(t, int32(1), directCalls.Load(), "direct call is not retried")
}

func TestClient_FetchAll(t *testing.T) {
	srv := httptest.NewServer(chartHandler(map[string]string{"VTI": "250", "ETH-USD": "3000"}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	results, err := c.FetchAll(context.Background(), []string{"VTI", "nope", "ethereum"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.True(t, decimal.NewFromInt(250).Equal(results[0].Price))
	assert.ErrorIs(t, results[1].Err, common.ErrPriceUnavailable)
	assert.Equal(t, "ethereum", results[2].Symbol)
	assert.True(t, decimal.NewFromInt(3000).Equal(results[2].Price))
}

func TestClient_FetchAllCanceled(t *testing.T) {
	srv := httptest.NewServer(chartHandler(map[string]string{"VTI": "250"}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(Config{BaseURL: srv.URL}).FetchAll(ctx, []string{"VTI"})
	assert.ErrorIs(t, err, context.Canceled)
}
