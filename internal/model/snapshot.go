package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountSnapshot is a point-in-time record of the five account categories in USD.
// Snapshots are only ever appended.
type AccountSnapshot struct {
	TakenAt        time.Time       `json:"takenAt"`
	Savings        decimal.Decimal `json:"savings"`
	Investments    decimal.Decimal `json:"investments"`
	Debt           decimal.Decimal `json:"debt"`
	FlightTraining decimal.Decimal `json:"flightTraining"`
	Retirement     decimal.Decimal `json:"retirement"`
	ID             string          `json:"id"`
}

// NetWorth derives net worth from the snapshot's categories.
func (s AccountSnapshot) NetWorth() decimal.Decimal {
	return s.Savings.
		Add(s.Investments).
		Add(s.Retirement).
		Sub(s.Debt).
		Sub(s.FlightTraining)
}
