package aggregate

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/shopspring/decimal"
)

// Range is a net-worth chart window.
type Range string

// Supported ranges.
const (
	Range1W  Range = "1W"
	Range1M  Range = "1M"
	Range3M  Range = "3M"
	RangeYTD Range = "YTD"
	RangeAll Range = "ALL"
)

// Ranges lists the ranges in display order.
var Ranges = []Range{Range1W, Range1M, Range3M, RangeYTD, RangeAll}

// ErrInvalidRange is returned for unknown range names.
var ErrInvalidRange = errors.New("invalid range")

// ParseRange parses a range name, ignoring case.
func ParseRange(s string) (Range, error) {
	r := Range(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Ranges {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRange, s)
}

// Point is one sample of the series.
type Point struct {
	Date  time.Time
	Label string
	Net   decimal.Decimal
}

// Series is a chartable net-worth curve. Demo series are synthetic and must be
// presented as such.
type Series struct {
	Range  Range
	Points []Point
	Demo   bool
}

// StartDate returns the first day of r relative to now. ALL starts at the
// earliest transaction, or today when there are none.
func StartDate(r Range, now time.Time, txs []model.Transaction) time.Time {
	today := model.NormalizeDate(now)
	switch r {
	case Range1W:
		return today.AddDate(0, 0, -6)
	case Range1M:
		return today.AddDate(0, -1, 1)
	case Range3M:
		return today.AddDate(0, -3, 1)
	case RangeYTD:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.Local)
	default:
		earliest := today
		for _, tx := range txs {
			d := model.NormalizeDate(tx.Date)
			if d.Before(earliest) {
				earliest = d
			}
		}
		return earliest
	}
}

func daily(r Range) bool {
	return r == Range1W || r == Range1M || r == Range3M
}

func label(r Range, d time.Time) string {
	switch r {
	case Range1W:
		return d.Format("Mon")
	case Range1M, Range3M:
		return d.Format("Jan 2")
	default:
		return d.Format("Jan 2006")
	}
}

// NetWorthSeries replays daily income minus expense from the start of r to
// today, seeded with the current net worth. Daily ranges emit one point per
// day; YTD and ALL emit one point per month end plus today.
func NetWorthSeries(txs []model.Transaction, r Range, current decimal.Decimal, now time.Time) Series {
	start := StartDate(r, now, txs)
	today := model.NormalizeDate(now)

	deltas := make(map[DayKey]decimal.Decimal)
	for _, tx := range txs {
		flow, amount := Classify(tx)
		key := KeyOf(tx.Date)
		switch flow {
		case FlowIncome:
			deltas[key] = deltas[key].Add(amount)
		case FlowExpense:
			deltas[key] = deltas[key].Sub(amount)
		}
	}

	series := Series{Range: r}
	cumulative := current
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		cumulative = cumulative.Add(deltas[KeyOf(d)])
		monthEnd := d.AddDate(0, 0, 1).Day() == 1
		if daily(r) || monthEnd || d.Equal(today) {
			series.Points = append(series.Points, Point{Date: d, Label: label(r, d), Net: cumulative})
		}
	}
	return series
}

// demoOffsets is the assumed distance of the starting point from the current value.
var demoOffsets = map[Range]float64{
	Range1W:  0.15,
	Range1M:  0.20,
	Range3M:  0.25,
	RangeYTD: 0.30,
	RangeAll: 0.40,
}

const demoNoise = 0.02

// DemoSeries synthesizes an illustrative trend ending at current. It is never
// derived from real data and is flagged with Demo.
func DemoSeries(r Range, current decimal.Decimal, now time.Time, rng *rand.Rand) Series {
	today := model.NormalizeDate(now)
	start := StartDate(r, now, nil)
	if r == RangeAll {
		start = today.AddDate(-2, 0, 0)
	}

	var dates []time.Time
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		monthEnd := d.AddDate(0, 0, 1).Day() == 1
		if daily(r) || monthEnd || d.Equal(today) {
			dates = append(dates, d)
		}
	}

	cur := current.InexactFloat64()
	from := cur * (1 - demoOffsets[r])
	series := Series{Range: r, Demo: true, Points: make([]Point, len(dates))}
	for i, d := range dates {
		net := current
		if i < len(dates)-1 {
			frac := float64(i) / float64(len(dates)-1)
			v := from + (cur-from)*frac
			v *= 1 + (rng.Float64()*2-1)*demoNoise
			net = decimal.NewFromFloat(v).Round(2)
		}
		series.Points[i] = Point{Date: d, Label: label(r, d), Net: net}
	}
	return series
}
