package networth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Veraticus/jarvis/internal/service"
	"github.com/Veraticus/jarvis/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store errors.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrNotInvestment   = errors.New("account is not an investment")
	ErrNilStorage      = errors.New("storage cannot be nil")
)

// Store is the list of net-worth accounts.
type Store struct {
	storage service.Storage
	entries []Entry
	mu      sync.RWMutex
}

// Open loads the stored accounts. Unreadable data starts an empty list.
func Open(ctx context.Context, store service.Storage) (*Store, error) {
	if store == nil {
		return nil, ErrNilStorage
	}
	entries, err := storage.LoadOrDefault(ctx, store, storage.KeyNetWorthAccounts, []Entry{})
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	return &Store{storage: store, entries: entries}, nil
}

// List returns the accounts in insertion order.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry(nil), s.entries...)
}

// Add stores acct under a new id.
func (s *Store) Add(ctx context.Context, acct Account) (Entry, error) {
	if acct == nil {
		return Entry{}, fmt.Errorf("%w: nil account", ErrUnknownKind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{ID: uuid.NewString(), Account: acct}
	next := append(append([]Entry(nil), s.entries...), entry)
	if err := s.persist(ctx, next); err != nil {
		return Entry{}, err
	}
	s.entries = next
	return entry, nil
}

// Replace swaps the account stored under id.
func (s *Store) Replace(ctx context.Context, id string, acct Account) (Entry, error) {
	if acct == nil {
		return Entry{}, fmt.Errorf("%w: nil account", ErrUnknownKind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	next := append([]Entry(nil), s.entries...)
	next[i] = Entry{ID: id, Account: acct}
	if err := s.persist(ctx, next); err != nil {
		return Entry{}, err
	}
	s.entries = next
	return next[i], nil
}

// UpdatePrice sets the per-share price of the investment stored under id.
func (s *Store) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (Entry, error) {
	if price.IsNegative() {
		return Entry{}, fmt.Errorf("%w: price", ErrNegativeAmount)
	}

	s.mu.RLock()
	i := s.indexOf(id)
	var current Entry
	if i >= 0 {
		current = s.entries[i]
	}
	s.mu.RUnlock()

	if i < 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	inv, ok := current.Account.(Investment)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotInvestment, current.Account.Name())
	}
	inv.PricePerShare = price
	return s.Replace(ctx, id, inv)
}

// Delete removes the account stored under id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	next := make([]Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// Investments returns the stored investments that carry a ticker.
func (s *Store) Investments() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for _, e := range s.entries {
		if inv, ok := e.Account.(Investment); ok && inv.Ticker != "" {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) persist(ctx context.Context, entries []Entry) error {
	if err := storage.SaveJSON(ctx, s.storage, storage.KeyNetWorthAccounts, entries); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}
