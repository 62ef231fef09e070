package sheets

import (
	"fmt"

	"github.com/Veraticus/jarvis/internal/aggregate"
	"github.com/shopspring/decimal"
)

var transactionHeader = []any{"Date", "Amount", "Type", "Description", "Category", "Account", "Notes"}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// ReportValues lays out a report as sheet rows: title, summary, category
// breakdown, daily calendar and transactions. Amounts are always in column B.
func ReportValues(report *aggregate.Report) [][]any {
	values := make([][]any, 0, 16+len(report.Breakdown)+len(report.Days)+len(report.Transactions))

	values = append(values,
		[]any{"Jarvis Report", report.Title()},
		[]any{},
		[]any{"Summary"},
		[]any{"Income", money(report.Summary.Income)},
		[]any{"Expenses", money(report.Summary.Expenses)},
		[]any{"Net", money(report.Summary.Net)},
		[]any{"Transactions", report.Summary.Count},
		[]any{},
		[]any{"Category Breakdown"},
		[]any{"Category", "Amount", "Count", "Share"},
	)
	for _, row := range report.Breakdown {
		values = append(values, []any{
			row.Name,
			money(row.Amount),
			row.Count,
			fmt.Sprintf("%s%%", row.Percent.StringFixed(1)),
		})
	}

	values = append(values,
		[]any{},
		[]any{"Calendar"},
		[]any{"Day", "Spending", "Income"},
	)
	for _, day := range report.Days {
		values = append(values, []any{day.Day.String(), money(day.Spending), money(day.Income)})
	}

	values = append(values,
		[]any{},
		[]any{"Transactions"},
		transactionHeader,
	)
	for _, tx := range report.Transactions {
		values = append(values, []any{
			tx.Date.Format("2006-01-02"),
			money(tx.Amount),
			string(tx.Type),
			tx.Description,
			tx.DisplayCategory(),
			tx.Account,
			tx.Notes,
		})
	}

	return values
}
