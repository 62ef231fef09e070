package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the window a budget limit applies to.
type BudgetPeriod string

// PeriodMonthly is the only period in use.
const PeriodMonthly BudgetPeriod = "monthly"

// ErrInvalidBudget is returned for budgets that cannot be tracked.
var ErrInvalidBudget = errors.New("invalid budget")

// Budget is a spending limit for a period. An empty Category covers all spending.
type Budget struct {
	CreatedAt time.Time       `json:"createdAt"`
	Limit     decimal.Decimal `json:"limit"`
	ID        string          `json:"id"`
	Category  Category        `json:"category,omitempty"`
	Period    BudgetPeriod    `json:"period"`
}

// Validate checks that the budget has a positive limit and a known period.
func (b *Budget) Validate() error {
	if !b.Limit.IsPositive() {
		return errors.Join(ErrInvalidBudget, errors.New("limit must be positive"))
	}
	if b.Period != PeriodMonthly {
		return errors.Join(ErrInvalidBudget, errors.New("unsupported period "+string(b.Period)))
	}
	if b.Category != "" && !b.Category.IsValid() {
		return errors.Join(ErrInvalidBudget, ErrInvalidCategory)
	}
	return nil
}
