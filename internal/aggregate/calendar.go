// Package aggregate folds transactions into calendar buckets, category
// breakdowns, summaries and net-worth series. Every function is pure.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/shopspring/decimal"
)

// DayKey identifies a calendar day independent of time zone and time of day.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// KeyOf returns the bucket key for the local calendar day of t.
func KeyOf(t time.Time) DayKey {
	y, m, d := t.In(time.Local).Date()
	return DayKey{Year: y, Month: m, Day: d}
}

// Time returns local midnight of the day.
func (k DayKey) Time() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.Local)
}

func (k DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// Before reports whether k is an earlier day than other.
func (k DayKey) Before(other DayKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Month != other.Month {
		return k.Month < other.Month
	}
	return k.Day < other.Day
}

// Flow is the side of the ledger a transaction lands on.
type Flow int

// Flow values.
const (
	FlowNone Flow = iota
	FlowIncome
	FlowExpense
)

// Classify returns the flow of tx and its non-negative contribution.
// Income and inbound transfers are income; expenses and outbound transfers are
// expense; zero transfers contribute nothing.
func Classify(tx model.Transaction) (Flow, decimal.Decimal) {
	switch tx.Type {
	case model.TypeIncome:
		return FlowIncome, tx.Amount.Abs()
	case model.TypeExpense:
		return FlowExpense, tx.Amount.Abs()
	case model.TypeTransfer:
		switch tx.Amount.Sign() {
		case 1:
			return FlowIncome, tx.Amount
		case -1:
			return FlowExpense, tx.Amount.Abs()
		}
	}
	return FlowNone, decimal.Zero
}

// Calendar holds day-bucketed totals. Days without activity are absent.
type Calendar struct {
	Spending map[DayKey]decimal.Decimal
	Income   map[DayKey]decimal.Decimal
}

// NewCalendar returns an empty calendar.
func NewCalendar() Calendar {
	return Calendar{
		Spending: make(map[DayKey]decimal.Decimal),
		Income:   make(map[DayKey]decimal.Decimal),
	}
}

func (c Calendar) add(tx model.Transaction) {
	flow, amount := Classify(tx)
	key := KeyOf(tx.Date)
	switch flow {
	case FlowIncome:
		c.Income[key] = c.Income[key].Add(amount)
	case FlowExpense:
		c.Spending[key] = c.Spending[key].Add(amount)
	}
}

// TotalSpending sums every spending bucket.
func (c Calendar) TotalSpending() decimal.Decimal {
	return sumBuckets(c.Spending)
}

// TotalIncome sums every income bucket.
func (c Calendar) TotalIncome() decimal.Decimal {
	return sumBuckets(c.Income)
}

// Days returns every day with activity in ascending order.
func (c Calendar) Days() []DayKey {
	seen := make(map[DayKey]bool, len(c.Spending)+len(c.Income))
	for k := range c.Spending {
		seen[k] = true
	}
	for k := range c.Income {
		seen[k] = true
	}
	days := make([]DayKey, 0, len(seen))
	for k := range seen {
		days = append(days, k)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func sumBuckets(m map[DayKey]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}

func foldMonth(c Calendar, txs []model.Transaction, year int, month time.Month) {
	for _, tx := range txs {
		key := KeyOf(tx.Date)
		if key.Year == year && key.Month == month {
			c.add(tx)
		}
	}
}

// MonthlyCalendar buckets the transactions of one month.
func MonthlyCalendar(txs []model.Transaction, year int, month time.Month) Calendar {
	c := NewCalendar()
	foldMonth(c, txs, year, month)
	return c
}

// ThreeMonthCalendar buckets the anchor month and the two months before it.
func ThreeMonthCalendar(txs []model.Transaction, year int, month time.Month) Calendar {
	c := NewCalendar()
	anchor := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	for back := 2; back >= 0; back-- {
		m := anchor.AddDate(0, -back, 0)
		foldMonth(c, txs, m.Year(), m.Month())
	}
	return c
}

// YearlyCalendar buckets every month of year.
func YearlyCalendar(txs []model.Transaction, year int) Calendar {
	c := NewCalendar()
	for m := time.January; m <= time.December; m++ {
		foldMonth(c, txs, year, m)
	}
	return c
}

// WeekStart returns local midnight of the Sunday starting the week of day.
func WeekStart(day time.Time) time.Time {
	d := model.NormalizeDate(day)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeeklyCalendar buckets the Sunday-to-Saturday week containing day.
func WeeklyCalendar(txs []model.Transaction, day time.Time) Calendar {
	start := WeekStart(day)
	days := make(map[DayKey]bool, 7)
	for i := range 7 {
		days[KeyOf(start.AddDate(0, 0, i))] = true
	}

	c := NewCalendar()
	for _, tx := range txs {
		if days[KeyOf(tx.Date)] {
			c.add(tx)
		}
	}
	return c
}

// DayTransactions returns the transactions of one day, income first and then
// by descending absolute amount. Ties keep their stored order.
func DayTransactions(txs []model.Transaction, day time.Time) []model.Transaction {
	key := KeyOf(day)
	var out []model.Transaction
	for _, tx := range txs {
		if KeyOf(tx.Date) == key {
			out = append(out, tx)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		fi, ai := Classify(out[i])
		fj, aj := Classify(out[j])
		ii, ij := fi == FlowIncome, fj == FlowIncome
		if ii != ij {
			return ii
		}
		return ai.GreaterThan(aj)
	})
	return out
}
