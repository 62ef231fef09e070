// Package networth holds the accounts that make up net worth, the roll-up
// totals computed from them and the daily account snapshots.
package networth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind discriminates the account variants.
type Kind string

// Account kinds.
const (
	KindCash       Kind = "cash"
	KindBank       Kind = "bank"
	KindInvestment Kind = "investment"
	KindDebt       Kind = "debt"
	KindRetirement Kind = "retirement"
)

// Direction says who owes a debt.
type Direction string

// Debt directions.
const (
	IOwe     Direction = "i-owe"
	OwedToMe Direction = "owed-to-me"
)

// Validation errors.
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrInvalidDirection = errors.New("invalid debt direction")
	ErrUnknownKind      = errors.New("unknown account kind")
)

// Account is one of Cash, BankAccount, Investment, Debt or RetirementAccount.
type Account interface {
	Kind() Kind
	Name() string
	Value() decimal.Decimal
}

// Cash is money on hand.
type Cash struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// BankAccount is a checking or savings balance.
type BankAccount struct {
	AccountName string          `json:"name"`
	Institution string          `json:"institution,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
}

// Investment is a position valued at shares times price.
type Investment struct {
	AccountName   string          `json:"name"`
	Ticker        string          `json:"ticker,omitempty"`
	Shares        decimal.Decimal `json:"shares"`
	PricePerShare decimal.Decimal `json:"pricePerShare"`
}

// Debt is money owed in either direction.
type Debt struct {
	AccountName string          `json:"name"`
	Direction   Direction       `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
}

// RetirementAccount is a retirement balance.
type RetirementAccount struct {
	AccountName string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
}

func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

func checkAmount(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, field)
	}
	return nil
}

// NewCash validates and builds a Cash account.
func NewCash(label string, amount decimal.Decimal) (Cash, error) {
	label, err := checkName(label)
	if err != nil {
		return Cash{}, err
	}
	if err := checkAmount("amount", amount); err != nil {
		return Cash{}, err
	}
	return Cash{Label: label, Amount: amount}, nil
}

// NewBankAccount validates and builds a BankAccount.
func NewBankAccount(name, institution string, balance decimal.Decimal) (BankAccount, error) {
	name, err := checkName(name)
	if err != nil {
		return BankAccount{}, err
	}
	if err := checkAmount("balance", balance); err != nil {
		return BankAccount{}, err
	}
	return BankAccount{AccountName: name, Institution: strings.TrimSpace(institution), Balance: balance}, nil
}

// NewInvestment validates and builds an Investment.
func NewInvestment(name, ticker string, shares, price decimal.Decimal) (Investment, error) {
	name, err := checkName(name)
	if err != nil {
		return Investment{}, err
	}
	if err := checkAmount("shares", shares); err != nil {
		return Investment{}, err
	}
	if err := checkAmount("price", price); err != nil {
		return Investment{}, err
	}
	return Investment{
		AccountName:   name,
		Ticker:        strings.ToUpper(strings.TrimSpace(ticker)),
		Shares:        shares,
		PricePerShare: price,
	}, nil
}

// NewDebt validates and builds a Debt.
func NewDebt(name string, direction Direction, amount decimal.Decimal) (Debt, error) {
	name, err := checkName(name)
	if err != nil {
		return Debt{}, err
	}
	if direction != IOwe && direction != OwedToMe {
		return Debt{}, fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}
	if err := checkAmount("amount", amount); err != nil {
		return Debt{}, err
	}
	return Debt{AccountName: name, Direction: direction, Amount: amount}, nil
}

// NewRetirementAccount validates and builds a RetirementAccount.
func NewRetirementAccount(name string, balance decimal.Decimal) (RetirementAccount, error) {
	name, err := checkName(name)
	if err != nil {
		return RetirementAccount{}, err
	}
	if err := checkAmount("balance", balance); err != nil {
		return RetirementAccount{}, err
	}
	return RetirementAccount{AccountName: name, Balance: balance}, nil
}

// Kind implements Account.
func (Cash) Kind() Kind { return KindCash }

// Name implements Account.
func (c Cash) Name() string { return c.Label }

// Value implements Account.
func (c Cash) Value() decimal.Decimal { return c.Amount }

// Kind implements Account.
func (BankAccount) Kind() Kind { return KindBank }

// Name implements Account.
func (b BankAccount) Name() string { return b.AccountName }

// Value implements Account.
func (b BankAccount) Value() decimal.Decimal { return b.Balance }

// Kind implements Account.
func (Investment) Kind() Kind { return KindInvestment }

// Name implements Account.
func (i Investment) Name() string { return i.AccountName }

// Value is shares times price.
func (i Investment) Value() decimal.Decimal { return i.Shares.Mul(i.PricePerShare) }

// Kind implements Account.
func (Debt) Kind() Kind { return KindDebt }

// Name implements Account.
func (d Debt) Name() string { return d.AccountName }

// Value implements Account. It is always non-negative; Direction gives the sign.
func (d Debt) Value() decimal.Decimal { return d.Amount }

// Kind implements Account.
func (RetirementAccount) Kind() Kind { return KindRetirement }

// Name implements Account.
func (r RetirementAccount) Name() string { return r.AccountName }

// Value implements Account.
func (r RetirementAccount) Value() decimal.Decimal { return r.Balance }

// Entry is a stored account with its identifier.
type Entry struct {
	Account Account
	ID      string
}

type entryJSON struct {
	ID   string          `json:"id"`
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON writes the entry as {id, kind, data}.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Account == nil {
		return nil, fmt.Errorf("%w: entry %s has no account", ErrUnknownKind, e.ID)
	}
	data, err := json.Marshal(e.Account)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entryJSON{ID: e.ID, Kind: e.Account.Kind(), Data: data})
}

// UnmarshalJSON reads an {id, kind, data} entry.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var (
		acct Account
		err  error
	)
	switch raw.Kind {
	case KindCash:
		acct, err = decode[Cash](raw.Data)
	case KindBank:
		acct, err = decode[BankAccount](raw.Data)
	case KindInvestment:
		acct, err = decode[Investment](raw.Data)
	case KindDebt:
		acct, err = decode[Debt](raw.Data)
	case KindRetirement:
		acct, err = decode[RetirementAccount](raw.Data)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, raw.Kind)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s account: %w", raw.Kind, err)
	}

	e.ID = raw.ID
	e.Account = acct
	return nil
}

func decode[T Account](data json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}
