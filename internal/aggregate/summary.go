package aggregate

import (
	"sort"
	"time"

	"github.com/Veraticus/jarvis/internal/category"
	"github.com/Veraticus/jarvis/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary totals one month.
type Summary struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
	Count    int
}

// MonthSummary totals the income and expense flow of one month.
func MonthSummary(txs []model.Transaction, year int, month time.Month) Summary {
	c := MonthlyCalendar(txs, year, month)
	s := Summary{
		Income:   c.TotalIncome(),
		Expenses: c.TotalSpending(),
	}
	s.Net = s.Income.Sub(s.Expenses)
	for _, tx := range txs {
		key := KeyOf(tx.Date)
		if key.Year == year && key.Month == month {
			s.Count++
		}
	}
	return s
}

// Progress compares a budget limit with the month's spending.
type Progress struct {
	Budget    model.Budget
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Percent   decimal.Decimal
	Over      bool
}

// BudgetProgress sums expense transactions of the month containing now that
// fall under budget's category (all categories when it has none).
func BudgetProgress(txs []model.Transaction, budget model.Budget, now time.Time) Progress {
	current := KeyOf(now)
	spent := decimal.Zero
	for _, tx := range txs {
		if tx.Type != model.TypeExpense {
			continue
		}
		if budget.Category != "" && tx.Category != budget.Category {
			continue
		}
		key := KeyOf(tx.Date)
		if key.Year == current.Year && key.Month == current.Month {
			spent = spent.Add(tx.Amount.Abs())
		}
	}

	p := Progress{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget.Limit.Sub(spent),
		Over:      spent.GreaterThan(budget.Limit),
	}
	if budget.Limit.IsPositive() {
		p.Percent = spent.Div(budget.Limit).Mul(hundred).Round(1)
	}
	return p
}

// BreakdownRow is one category's share of spending.
type BreakdownRow struct {
	Name    string
	Style   category.Style
	Amount  decimal.Decimal
	Percent decimal.Decimal
	Count   int
}

// Breakdown groups expense flow between from and to (inclusive days) by display
// category, largest first.
func Breakdown(txs []model.Transaction, from, to time.Time) []BreakdownRow {
	start, end := KeyOf(from), KeyOf(to)

	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	grand := decimal.Zero
	for _, tx := range txs {
		key := KeyOf(tx.Date)
		if key.Before(start) || end.Before(key) {
			continue
		}
		flow, amount := Classify(tx)
		if flow != FlowExpense {
			continue
		}
		name := tx.DisplayCategory()
		totals[name] = totals[name].Add(amount)
		counts[name]++
		grand = grand.Add(amount)
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	styles := category.Assign(names)

	rows := make([]BreakdownRow, 0, len(names))
	for _, name := range names {
		style, _ := styles.Lookup(name)
		row := BreakdownRow{
			Name:   name,
			Style:  style,
			Amount: totals[name],
			Count:  counts[name],
		}
		if grand.IsPositive() {
			row.Percent = row.Amount.Div(grand).Mul(hundred).Round(1)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Amount.GreaterThan(rows[j].Amount)
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// MonthRange returns the first and last day of a month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return first, first.AddDate(0, 1, -1)
}
