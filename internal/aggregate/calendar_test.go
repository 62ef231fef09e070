package aggregate_test

import (
	. "github.com/Veraticus/jarvis/internal/aggregate"

	"testing"
	"time"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleTransactions() []model.Transaction {
	jan5 := testutil.Date(2024, time.January, 5)
	return []model.Transaction{
		testutil.NewTx(jan5).ID("coffee").Expense("4.50").Build(),
		testutil.NewTx(jan5).ID("salary").Income("3000").Build(),
		testutil.NewTx(jan5).ID("out").Transfer("-200").Build(),
		testutil.NewTx(jan5).ID("in").Transfer("50").Build(),
		testutil.NewTx(jan5).ID("zero").Transfer("0").Build(),
		testutil.NewTx(testutil.Date(2024, time.January, 31)).ID("rent").Expense("1200").Build(),
		testutil.NewTx(testutil.Date(2023, time.December, 31)).ID("nye").Expense("80").Build(),
		testutil.NewTx(testutil.Date(2023, time.November, 2)).ID("nov").Expense("10").Build(),
		testutil.NewTx(testutil.Date(2023, time.October, 30)).ID("oct").Expense("7").Build(),
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		tx     model.Transaction
		flow   Flow
		amount string
	}{
		{"income", testutil.NewTx(time.Now()).Income("10").Build(), FlowIncome, "10"},
		{"expense", testutil.NewTx(time.Now()).Expense("10").Build(), FlowExpense, "10"},
		{"inbound transfer", testutil.NewTx(time.Now()).Transfer("5").Build(), FlowIncome, "5"},
		{"outbound transfer", testutil.NewTx(time.Now()).Transfer("-5").Build(), FlowExpense, "5"},
		{"zero transfer", testutil.NewTx(time.Now()).Transfer("0").Build(), FlowNone, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, amount := Classify(tt.tx)
			assert.Equal(t, tt.flow, flow)
			assert.True(t, dec(tt.amount).Equal(amount), "got %s", amount)
		})
	}
}

func TestMonthlyCalendar(t *testing.T) {
	c := MonthlyCalendar(sampleTransactions(), 2024, time.January)
	jan5 := DayKey{Year: 2024, Month: time.January, Day: 5}

	assert.True(t, dec("204.50").Equal(c.Spending[jan5]), "got %s", c.Spending[jan5])
	assert.True(t, dec("3050").Equal(c.Income[jan5]), "got %s", c.Income[jan5])
	assert.True(t, dec("1200").Equal(c.Spending[DayKey{2024, time.January, 31}]))

	_, ok := c.Spending[DayKey{2024, time.January, 6}]
	assert.False(t, ok, "empty days are absent")
	_, ok = c.Spending[DayKey{2023, time.December, 31}]
	assert.False(t, ok, "other months are excluded")

	// Month spending equals expenses plus outbound transfers.
	assert.True(t, dec("1404.50").Equal(c.TotalSpending()))
	assert.True(t, dec("3050").Equal(c.TotalIncome()))
}

func TestMonthlyCalendar_EachTransactionInOneBucket(t *testing.T) {
	txs := sampleTransactions()
	c := MonthlyCalendar(txs, 2024, time.January)

	expected := decimal.Zero
	for _, tx := range txs {
		if KeyOf(tx.Date).Year == 2024 && KeyOf(tx.Date).Month == time.January {
			_, amount := Classify(tx)
			expected = expected.Add(amount)
		}
	}
	assert.True(t, expected.Equal(c.TotalSpending().Add(c.TotalIncome())))
}

func TestThreeMonthCalendar(t *testing.T) {
	c := ThreeMonthCalendar(sampleTransactions(), 2024, time.January)

	assert.Contains(t, c.Spending, DayKey{2023, time.December, 31})
	assert.Contains(t, c.Spending, DayKey{2023, time.November, 2})
	assert.NotContains(t, c.Spending, DayKey{2023, time.October, 30})
	assert.True(t, dec("1494.50").Equal(c.TotalSpending()))
}

func TestYearlyCalendar(t *testing.T) {
	c := YearlyCalendar(sampleTransactions(), 2023)
	assert.True(t, dec("97").Equal(c.TotalSpending()))
	assert.Empty(t, c.Income)
	assert.Equal(t, []DayKey{
		{2023, time.October, 30},
		{2023, time.November, 2},
		{2023, time.December, 31},
	}, c.Days())
}

func TestWeeklyCalendar(t *testing.T) {
	// Jan 5 2024 is a Friday; its week runs Sun Dec 31 to Sat Jan 6.
	assert.Equal(t, testutil.Date(2023, time.December, 31), WeekStart(testutil.Date(2024, time.January, 5)))

	c := WeeklyCalendar(sampleTransactions(), testutil.Date(2024, time.January, 3))
	assert.Contains(t, c.Spending, DayKey{2023, time.December, 31})
	assert.Contains(t, c.Spending, DayKey{2024, time.January, 5})
	assert.NotContains(t, c.Spending, DayKey{2024, time.January, 31})
	assert.True(t, dec("284.50").Equal(c.TotalSpending()))
}

func TestDayTransactions(t *testing.T) {
	got := DayTransactions(sampleTransactions(), time.Date(2024, time.January, 5, 18, 0, 0, 0, time.Local))
	require.Len(t, got, 5)

	ids := make([]string, len(got))
	for i, tx := range got {
		ids[i] = tx.ID
	}
	assert.Equal(t, []string{"salary", "in", "out", "coffee", "zero"}, ids)
}

func TestDayTransactions_StableTies(t *testing.T) {
	day := testutil.Date(2024, time.March, 1)
	txs := []model.Transaction{
		testutil.NewTx(day).ID("a").Expense("5").Build(),
		testutil.NewTx(day).ID("b").Expense("5").Build(),
		testutil.NewTx(day).ID("c").Expense("5").Build(),
	}
	got := DayTransactions(txs, day)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestDayKey(t *testing.T) {
	k := KeyOf(time.Date(2024, time.January, 5, 23, 59, 0, 0, time.Local))
	assert.Equal(t, DayKey{2024, time.January, 5}, k)
	assert.Equal(t, "2024-01-05", k.String())
	assert.Equal(t, testutil.Date(2024, time.January, 5), k.Time())
	assert.True(t, k.Before(DayKey{2024, time.February, 1}))
	assert.False(t, k.Before(k))
}
