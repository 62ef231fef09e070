// Package ledger keeps the ordered list of transactions and budgets and
// persists the whole list after every change.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/Veraticus/jarvis/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger errors.
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNilStorage          = errors.New("storage cannot be nil")
)

// Store is the ordered transaction list backed by a storage blob.
type Store struct {
	storage service.Storage
	now     func() time.Time
	txs     []model.Transaction
	mu      sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads the stored transactions. Unreadable data starts an empty ledger.
func Open(ctx context.Context, store service.Storage, opts ...Option) (*Store, error) {
	if store == nil {
		return nil, ErrNilStorage
	}
	txs, err := storage.LoadOrDefault(ctx, store, storage.KeyTransactions, []model.Transaction{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	s := &Store{storage: store, txs: txs, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	slog.Debug("Loaded ledger", "transactions", len(txs))
	return s, nil
}

// List returns a copy of all transactions in insertion order.
func (s *Store) List() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.txs)
}

// Len returns the number of transactions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txs)
}

// Get returns the transaction with the given id.
func (s *Store) Get(id string) (model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	return clone(s.txs[i]), nil
}

// Add assigns an id and creation time to tx, appends it and saves.
func (s *Store) Add(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	added, err := s.AddMany(ctx, []model.Transaction{tx})
	if err != nil {
		return model.Transaction{}, err
	}
	return added[0], nil
}

// AddMany appends all transactions with a single save. Nothing is appended
// when any transaction is invalid.
func (s *Store) AddMany(ctx context.Context, txs []model.Transaction) ([]model.Transaction, error) {
	if len(txs) == 0 {
		return nil, nil
	}

	prepared := make([]model.Transaction, len(txs))
	for i, tx := range txs {
		p := s.prepare(tx)
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		prepared[i] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Transaction, 0, len(s.txs)+len(prepared))
	next = append(next, s.txs...)
	next = append(next, prepared...)
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.txs = next
	return cloneAll(prepared), nil
}

// Patch lists the fields an update may change. Nil fields are left alone.
type Patch struct {
	Type             *model.TransactionType
	Amount           *decimal.Decimal
	Description      *string
	Category         *model.Category
	OriginalCategory *string
	Date             *time.Time
	Tags             *[]string
	Account          *string
	Notes            *string
}

// Update applies patch to the transaction with the given id and saves.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}

	tx := clone(s.txs[i])
	original, hadOriginal := tx.OriginalCategory()
	if patch.Type != nil {
		tx.Type = *patch.Type
	}
	if patch.Amount != nil {
		tx.Amount = *patch.Amount
	}
	if patch.Description != nil {
		tx.Description = *patch.Description
	}
	if patch.Category != nil && *patch.Category != tx.Category {
		tx.Category = *patch.Category
		// A new category without a new label drops the stale bank label.
		hadOriginal = false
		tx.SetOriginalCategory("")
	}
	if patch.Date != nil {
		tx.Date = model.NormalizeDate(*patch.Date)
	}
	if patch.Tags != nil {
		tx.Tags = append([]string(nil), *patch.Tags...)
		if hadOriginal {
			tx.SetOriginalCategory(original)
		}
	}
	if patch.OriginalCategory != nil {
		tx.SetOriginalCategory(*patch.OriginalCategory)
	}
	if patch.Account != nil {
		tx.Account = *patch.Account
	}
	if patch.Notes != nil {
		tx.Notes = *patch.Notes
	}
	if tx.Type != model.TypeTransfer {
		tx.Amount = tx.Amount.Abs()
	}

	if err := tx.Validate(); err != nil {
		return model.Transaction{}, err
	}

	next := cloneAll(s.txs)
	next[i] = tx
	if err := s.persist(ctx, next); err != nil {
		return model.Transaction{}, err
	}
	s.txs = next
	return clone(tx), nil
}

// Delete removes the transaction with the given id and saves.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}

	next := make([]model.Transaction, 0, len(s.txs)-1)
	next = append(next, s.txs[:i]...)
	next = append(next, s.txs[i+1:]...)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.txs = next
	return nil
}

// Hashes returns the content hashes of all stored transactions.
func (s *Store) Hashes() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hashes := make(map[string]bool, len(s.txs))
	for i := range s.txs {
		hashes[s.txs[i].Hash()] = true
	}
	return hashes
}

func (s *Store) prepare(tx model.Transaction) model.Transaction {
	tx = clone(tx)
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = s.now()
	}
	if tx.Category == "" {
		tx.Category = model.CategoryOther
	}
	tx.Date = model.NormalizeDate(tx.Date)
	if tx.Type != model.TypeTransfer {
		tx.Amount = tx.Amount.Abs()
	}
	return tx
}

func (s *Store) persist(ctx context.Context, txs []model.Transaction) error {
	if err := storage.SaveJSON(ctx, s.storage, storage.KeyTransactions, txs); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.txs {
		if s.txs[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(tx model.Transaction) model.Transaction {
	if tx.Tags != nil {
		tx.Tags = append([]string(nil), tx.Tags...)
	}
	return tx
}

func cloneAll(txs []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	for i := range txs {
		out[i] = clone(txs[i])
	}
	return out
}
