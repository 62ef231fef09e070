package health

import (
	"sort"
	"time"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/shopspring/decimal"
)

// Overview summarizes the weigh-ins of one Sunday-start week.
type Overview struct {
	WeekStart time.Time
	Latest    *WeightEntry
	// Change is this week's average minus last week's; nil when either week is empty.
	Change *decimal.Decimal
	// Remaining is the latest weight minus the goal; nil without a goal.
	Remaining *decimal.Decimal
	Entries   []WeightEntry
	Average   decimal.Decimal
	Min       decimal.Decimal
	Max       decimal.Decimal
}

// HasData reports whether the week has any weigh-in.
func (o Overview) HasData() bool {
	return len(o.Entries) > 0
}

// WeekStart returns local midnight of the Sunday on or before day.
func WeekStart(day time.Time) time.Time {
	d := model.NormalizeDate(day)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeeklyOverview summarizes the week containing day.
func WeeklyOverview(entries []WeightEntry, goal WeightGoal, day time.Time) Overview {
	start := WeekStart(day)
	o := Overview{
		WeekStart: start,
		Entries:   inWeek(entries, start),
		Average:   decimal.Zero,
		Min:       decimal.Zero,
		Max:       decimal.Zero,
	}
	if !o.HasData() {
		return o
	}

	o.Average, o.Min, o.Max = stats(o.Entries)
	latest := o.Entries[len(o.Entries)-1]
	o.Latest = &latest

	if prev := inWeek(entries, start.AddDate(0, 0, -7)); len(prev) > 0 {
		prevAvg, _, _ := stats(prev)
		change := o.Average.Sub(prevAvg)
		o.Change = &change
	}
	if goal.IsSet() {
		remaining := latest.Kilograms.Sub(goal.TargetKilograms)
		o.Remaining = &remaining
	}
	return o
}

// inWeek returns the entries dated within the week starting at start, oldest first.
func inWeek(entries []WeightEntry, start time.Time) []WeightEntry {
	end := start.AddDate(0, 0, 7)
	var out []WeightEntry
	for _, e := range entries {
		d := model.NormalizeDate(e.Date)
		if !d.Before(start) && d.Before(end) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func stats(entries []WeightEntry) (avg, lo, hi decimal.Decimal) {
	sum := decimal.Zero
	lo, hi = entries[0].Kilograms, entries[0].Kilograms
	for _, e := range entries {
		sum = sum.Add(e.Kilograms)
		lo = decimal.Min(lo, e.Kilograms)
		hi = decimal.Max(hi, e.Kilograms)
	}
	avg = sum.Div(decimal.NewFromInt(int64(len(entries)))).Round(2)
	return avg, lo, hi
}
