package flight

import "github.com/shopspring/decimal"

// Amount is a USD total with its cached MXN counterpart.
type Amount struct {
	USD decimal.Decimal
	MXN decimal.Decimal
}

func (a Amount) add(r Record) Amount {
	return Amount{USD: a.USD.Add(r.TotalUSD), MXN: a.MXN.Add(r.TotalMXN)}
}

// Summary sums records per kind. MXN totals sum the cached MXN fields.
type Summary struct {
	CFI         Amount
	PlaneRental Amount
	Extras      Amount
	Income      Amount
	Balance     Amount
	FlightHours decimal.Decimal
}

// Summarize totals records. Balance is charges minus income in both currencies.
func Summarize(records []Record) Summary {
	zero := Amount{USD: decimal.Zero, MXN: decimal.Zero}
	s := Summary{CFI: zero, PlaneRental: zero, Extras: zero, Income: zero, FlightHours: decimal.Zero}

	for _, r := range records {
		switch r.Kind {
		case KindCFI:
			s.CFI = s.CFI.add(r)
		case KindPlaneRental:
			s.PlaneRental = s.PlaneRental.add(r)
			s.FlightHours = s.FlightHours.Add(r.Hours)
		case KindExtras:
			s.Extras = s.Extras.add(r)
		case KindIncome:
			s.Income = s.Income.add(r)
		}
	}

	s.Balance = Amount{
		USD: s.CFI.USD.Add(s.PlaneRental.USD).Add(s.Extras.USD).Sub(s.Income.USD),
		MXN: s.CFI.MXN.Add(s.PlaneRental.MXN).Add(s.Extras.MXN).Sub(s.Income.MXN),
	}
	return s
}

// ByKind returns the amount for kind.
func (s Summary) ByKind(kind Kind) Amount {
	switch kind {
	case KindCFI:
		return s.CFI
	case KindPlaneRental:
		return s.PlaneRental
	case KindExtras:
		return s.Extras
	case KindIncome:
		return s.Income
	}
	return Amount{USD: decimal.Zero, MXN: decimal.Zero}
}
