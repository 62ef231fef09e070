package aggregate_test

import (
	. "github.com/Veraticus/jarvis/internal/aggregate"

	"testing"
	"time"

	"github.com/Veraticus/jarvis/internal/category"
	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthSummary(t *testing.T) {
	s := MonthSummary(sampleTransactions(), 2024, time.January)
	assert.True(t, dec("3050").Equal(s.Income))
	assert.True(t, dec("1404.50").Equal(s.Expenses))
	assert.True(t, dec("1645.50").Equal(s.Net))
	assert.Equal(t, 6, s.Count)
}

func TestBudgetProgress(t *testing.T) {
	now := time.Date(2024, time.January, 20, 9, 0, 0, 0, time.Local)
	txs := []model.Transaction{
		testutil.NewTx(testutil.Date(2024, time.January, 2)).Expense("150").Category(model.CategoryFood).Build(),
		testutil.NewTx(testutil.Date(2024, time.January, 3)).Expense("100").Category(model.CategoryShopping).Build(),
		testutil.NewTx(testutil.Date(2023, time.December, 30)).Expense("999").Category(model.CategoryFood).Build(),
		testutil.NewTx(testutil.Date(2024, time.January, 4)).Transfer("-500").Build(),
	}

	food := BudgetProgress(txs, model.Budget{Category: model.CategoryFood, Limit: decimal.NewFromInt(200)}, now)
	assert.True(t, dec("150").Equal(food.Spent))
	assert.True(t, dec("50").Equal(food.Remaining))
	assert.True(t, dec("75").Equal(food.Percent))
	assert.False(t, food.Over)

	all := BudgetProgress(txs, model.Budget{Limit: decimal.NewFromInt(200)}, now)
	assert.True(t, dec("250").Equal(all.Spent), "transfers are not budgeted spending")
	assert.True(t, dec("-50").Equal(all.Remaining))
	assert.True(t, dec("125").Equal(all.Percent))
	assert.True(t, all.Over)
}

func TestBreakdown(t *testing.T) {
	day := testutil.Date(2024, time.January, 10)
	groceries := testutil.NewTx(day).Expense("80").Category(model.CategoryFood).Build()
	groceries.SetOriginalCategory("Groceries")
	coffee := testutil.NewTx(day).Expense("20").Category(model.CategoryFood).Build()
	coffee.SetOriginalCategory("Coffee")
	txs := []model.Transaction{
		groceries,
		coffee,
		testutil.NewTx(day).Expense("100").Category(model.CategoryBills).Build(),
		testutil.NewTx(day).Income("5000").Build(),
		testutil.NewTx(testutil.Date(2024, time.February, 1)).Expense("1").Build(),
	}

	from, to := MonthRange(2024, time.January)
	rows := Breakdown(txs, from, to)
	require.Len(t, rows, 3)

	assert.Equal(t, "bills", rows[0].Name)
	assert.Equal(t, "Groceries", rows[1].Name)
	assert.Equal(t, "Coffee", rows[2].Name)
	assert.True(t, dec("50").Equal(rows[0].Percent))
	assert.True(t, dec("40").Equal(rows[1].Percent))
	assert.Equal(t, category.Palette[0], rows[1].Style.Color)

	seen := map[string]bool{}
	for _, row := range rows {
		assert.False(t, seen[row.Style.Color])
		seen[row.Style.Color] = true
	}
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2024, time.February)
	assert.Equal(t, testutil.Date(2024, time.February, 1), first)
	assert.Equal(t, testutil.Date(2024, time.February, 29), last)
}

func TestBuildReport(t *testing.T) {
	r := BuildReport(sampleTransactions(), 2024, time.January)

	assert.Equal(t, "January 2024", r.Title())
	assert.Equal(t, testutil.Date(2024, time.January, 1), r.Start)
	assert.Equal(t, testutil.Date(2024, time.January, 31), r.End)
	assert.Equal(t, 6, r.Summary.Count)

	require.Len(t, r.Days, 2)
	assert.Equal(t, DayKey{Year: 2024, Month: time.January, Day: 5}, r.Days[0].Day)
	assert.True(t, dec("204.50").Equal(r.Days[0].Spending))
	assert.True(t, dec("3050").Equal(r.Days[0].Income))
	assert.True(t, r.Days[1].Income.IsZero())

	require.Len(t, r.Transactions, 6)
	assert.Equal(t, "rent", r.Transactions[0].ID, "newest first")
	assert.Equal(t, "coffee", r.Transactions[1].ID, "stable within a day")
}
