package networth

import (
	"time"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/shopspring/decimal"
)

// Totals is the roll-up of all accounts in USD.
type Totals struct {
	Savings        decimal.Decimal
	Investments    decimal.Decimal
	Retirement     decimal.Decimal
	DebtsIOwe      decimal.Decimal
	DebtsOwedToMe  decimal.Decimal
	NetDebt        decimal.Decimal
	FlightTraining decimal.Decimal
	NetWorth       decimal.Decimal
}

// Compute rolls up accounts. flightTraining is the outstanding flight-training
// balance, counted against net worth.
func Compute(accounts []Account, flightTraining decimal.Decimal) Totals {
	t := Totals{
		Savings:        decimal.Zero,
		Investments:    decimal.Zero,
		Retirement:     decimal.Zero,
		DebtsIOwe:      decimal.Zero,
		DebtsOwedToMe:  decimal.Zero,
		FlightTraining: flightTraining,
	}

	for _, a := range accounts {
		switch acct := a.(type) {
		case Cash, BankAccount:
			t.Savings = t.Savings.Add(acct.Value())
		case Investment:
			t.Investments = t.Investments.Add(acct.Value())
		case RetirementAccount:
			t.Retirement = t.Retirement.Add(acct.Value())
		case Debt:
			if acct.Direction == OwedToMe {
				t.DebtsOwedToMe = t.DebtsOwedToMe.Add(acct.Amount)
			} else {
				t.DebtsIOwe = t.DebtsIOwe.Add(acct.Amount)
			}
		}
	}

	t.NetDebt = t.DebtsIOwe.Sub(t.DebtsOwedToMe)
	t.NetWorth = t.Savings.
		Add(t.Investments).
		Add(t.Retirement).
		Sub(t.NetDebt).
		Sub(t.FlightTraining)
	return t
}

// ComputeEntries is Compute over stored entries.
func ComputeEntries(entries []Entry, flightTraining decimal.Decimal) Totals {
	accounts := make([]Account, 0, len(entries))
	for _, e := range entries {
		accounts = append(accounts, e.Account)
	}
	return Compute(accounts, flightTraining)
}

// Snapshot converts the totals into an unsaved snapshot taken at now.
func (t Totals) Snapshot(now time.Time) model.AccountSnapshot {
	return model.AccountSnapshot{
		TakenAt:        now,
		Savings:        t.Savings,
		Investments:    t.Investments,
		Retirement:     t.Retirement,
		Debt:           t.NetDebt,
		FlightTraining: t.FlightTraining,
	}
}
