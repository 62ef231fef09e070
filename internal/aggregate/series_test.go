package aggregate_test

import (
	. "github.com/Veraticus/jarvis/internal/aggregate"

	"math/rand/v2"
	"testing"
	"time"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seriesNow = time.Date(2024, time.March, 15, 14, 0, 0, 0, time.Local)

func TestParseRange(t *testing.T) {
	r, err := ParseRange("ytd")
	require.NoError(t, err)
	assert.Equal(t, RangeYTD, r)

	_, err = ParseRange("2Y")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestStartDate(t *testing.T) {
	txs := []model.Transaction{
		testutil.NewTx(testutil.Date(2022, time.June, 3)).Build(),
		testutil.NewTx(testutil.Date(2023, time.June, 3)).Build(),
	}
	tests := []struct {
		r    Range
		want time.Time
	}{
		{Range1W, testutil.Date(2024, time.March, 9)},
		{Range1M, testutil.Date(2024, time.February, 16)},
		{Range3M, testutil.Date(2023, time.December, 16)},
		{RangeYTD, testutil.Date(2024, time.January, 1)},
		{RangeAll, testutil.Date(2022, time.June, 3)},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			assert.Equal(t, tt.want, StartDate(tt.r, seriesNow, txs))
		})
	}
}

func TestNetWorthSeries_Daily(t *testing.T) {
	txs := []model.Transaction{
		testutil.NewTx(testutil.Date(2024, time.March, 10)).Income("100").Build(),
		testutil.NewTx(testutil.Date(2024, time.March, 12)).Expense("30").Build(),
		testutil.NewTx(testutil.Date(2024, time.March, 1)).Expense("999").Build(),
	}

	s := NetWorthSeries(txs, Range1W, decimal.NewFromInt(1000), seriesNow)
	assert.False(t, s.Demo)
	require.Len(t, s.Points, 7)

	assert.Equal(t, "Sat", s.Points[0].Label)
	assert.True(t, decimal.NewFromInt(1000).Equal(s.Points[0].Net))
	assert.True(t, decimal.NewFromInt(1100).Equal(s.Points[1].Net))
	assert.True(t, decimal.NewFromInt(1070).Equal(s.Points[6].Net))
	assert.Equal(t, testutil.Date(2024, time.March, 15), s.Points[6].Date)
}

func TestNetWorthSeries_MonthEnds(t *testing.T) {
	txs := []model.Transaction{
		testutil.NewTx(testutil.Date(2024, time.January, 20)).Income("500").Build(),
		testutil.NewTx(testutil.Date(2024, time.February, 5)).Expense("200").Build(),
	}

	s := NetWorthSeries(txs, RangeYTD, decimal.NewFromInt(10000), seriesNow)
	require.Len(t, s.Points, 3)
	assert.Equal(t, "Jan 2024", s.Points[0].Label)
	assert.Equal(t, testutil.Date(2024, time.January, 31), s.Points[0].Date)
	assert.True(t, decimal.NewFromInt(10500).Equal(s.Points[0].Net))
	assert.Equal(t, testutil.Date(2024, time.February, 29), s.Points[1].Date)
	assert.True(t, decimal.NewFromInt(10300).Equal(s.Points[1].Net))
	assert.Equal(t, testutil.Date(2024, time.March, 15), s.Points[2].Date)
}

func TestDemoSeries(t *testing.T) {
	current := decimal.NewFromInt(50000)
	rng := rand.New(rand.NewPCG(1, 2))

	for _, r := range Ranges {
		t.Run(string(r), func(t *testing.T) {
			s := DemoSeries(r, current, seriesNow, rng)
			assert.True(t, s.Demo)
			require.NotEmpty(t, s.Points)
			assert.True(t, current.Equal(s.Points[len(s.Points)-1].Net))

			start := current.InexactFloat64() * (1 - DemoOffsets[r])
			first := s.Points[0].Net.InexactFloat64()
			assert.InDelta(t, start, first, start*DemoNoise+0.01)
		})
	}
}
