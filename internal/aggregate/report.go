package aggregate

import (
	"sort"
	"time"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/shopspring/decimal"
)

// DayTotal is one day of a calendar with activity.
type DayTotal struct {
	Spending decimal.Decimal
	Income   decimal.Decimal
	Day      DayKey
}

// Report is everything exported for one month.
type Report struct {
	Start        time.Time
	End          time.Time
	Summary      Summary
	Breakdown    []BreakdownRow
	Days         []DayTotal
	Transactions []model.Transaction
}

// Title names the report period, e.g. "January 2024".
func (r Report) Title() string {
	return r.Start.Format("January 2006")
}

// BuildReport collects the month's summary, category breakdown, active days
// and transactions (newest first).
func BuildReport(txs []model.Transaction, year int, month time.Month) Report {
	start, end := MonthRange(year, month)
	cal := MonthlyCalendar(txs, year, month)

	r := Report{
		Start:     start,
		End:       end,
		Summary:   MonthSummary(txs, year, month),
		Breakdown: Breakdown(txs, start, end),
	}

	for _, day := range cal.Days() {
		total := DayTotal{Day: day, Spending: decimal.Zero, Income: decimal.Zero}
		if v, ok := cal.Spending[day]; ok {
			total.Spending = v
		}
		if v, ok := cal.Income[day]; ok {
			total.Income = v
		}
		r.Days = append(r.Days, total)
	}

	for _, tx := range txs {
		key := KeyOf(tx.Date)
		if key.Year == year && key.Month == month {
			r.Transactions = append(r.Transactions, tx)
		}
	}
	sort.SliceStable(r.Transactions, func(i, j int) bool {
		return r.Transactions[i].Date.After(r.Transactions[j].Date)
	})
	return r
}
