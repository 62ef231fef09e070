// Package testutil provides shared test helpers for jarvis packages.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/storage"
	"github.com/shopspring/decimal"
)

// SetupTestStorage creates a migrated in-memory SQLite storage that is closed
// when the test finishes.
func SetupTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// InZone runs the rest of the test with time.Local set to loc.
func InZone(t *testing.T, loc *time.Location) {
	t.Helper()
	previous := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = previous })
}

// Date builds a local-midnight date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// Dec parses a decimal literal or fails the test.
func Dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

// TxBuilder builds transactions for tests.
type TxBuilder struct {
	tx model.Transaction
}

// NewTx starts a transaction builder with an expense of zero on the given date.
func NewTx(date time.Time) *TxBuilder {
	return &TxBuilder{tx: model.Transaction{
		Date:        date,
		Type:        model.TypeExpense,
		Category:    model.CategoryOther,
		Description: "test transaction",
		Amount:      decimal.Zero,
	}}
}

// Expense sets the type to expense with the given amount.
func (b *TxBuilder) Expense(amount string) *TxBuilder {
	b.tx.Type = model.TypeExpense
	b.tx.Amount = decimal.RequireFromString(amount)
	return b
}

// Income sets the type to income with the given amount.
func (b *TxBuilder) Income(amount string) *TxBuilder {
	b.tx.Type = model.TypeIncome
	b.tx.Amount = decimal.RequireFromString(amount)
	return b
}

// Transfer sets the type to transfer with a signed amount.
func (b *TxBuilder) Transfer(amount string) *TxBuilder {
	b.tx.Type = model.TypeTransfer
	b.tx.Amount = decimal.RequireFromString(amount)
	return b
}

// Category sets the category.
func (b *TxBuilder) Category(c model.Category) *TxBuilder {
	b.tx.Category = c
	return b
}

// Description sets the description.
func (b *TxBuilder) Description(d string) *TxBuilder {
	b.tx.Description = d
	return b
}

// ID sets the id.
func (b *TxBuilder) ID(id string) *TxBuilder {
	b.tx.ID = id
	return b
}

// Build returns the transaction.
func (b *TxBuilder) Build() model.Transaction {
	return b.tx
}
