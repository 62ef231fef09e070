package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/Veraticus/jarvis/internal/storage"
	"github.com/google/uuid"
)

// ErrBudgetNotFound is returned when no budget matches.
var ErrBudgetNotFound = errors.New("budget not found")

// BudgetStore keeps at most one monthly budget per category.
type BudgetStore struct {
	storage service.Storage
	now     func() time.Time
	budgets []model.Budget
	mu      sync.RWMutex
}

// OpenBudgets loads the stored budgets.
func OpenBudgets(ctx context.Context, store service.Storage) (*BudgetStore, error) {
	if store == nil {
		return nil, ErrNilStorage
	}
	budgets, err := storage.LoadOrDefault(ctx, store, storage.KeyBudgets, []model.Budget{})
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	return &BudgetStore{storage: store, budgets: budgets, now: time.Now}, nil
}

// List returns all budgets.
func (b *BudgetStore) List() []model.Budget {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]model.Budget(nil), b.budgets...)
}

// Set creates or replaces the budget for budget.Category.
func (b *BudgetStore) Set(ctx context.Context, budget model.Budget) (model.Budget, error) {
	if budget.Period == "" {
		budget.Period = model.PeriodMonthly
	}
	if err := budget.Validate(); err != nil {
		return model.Budget{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next := append([]model.Budget(nil), b.budgets...)
	replaced := false
	for i := range next {
		if next[i].Category == budget.Category && next[i].Period == budget.Period {
			budget.ID = next[i].ID
			budget.CreatedAt = next[i].CreatedAt
			next[i] = budget
			replaced = true
			break
		}
	}
	if !replaced {
		budget.ID = uuid.NewString()
		budget.CreatedAt = b.now()
		next = append(next, budget)
	}

	if err := storage.SaveJSON(ctx, b.storage, storage.KeyBudgets, next); err != nil {
		return model.Budget{}, fmt.Errorf("failed to save budgets: %w", err)
	}
	b.budgets = next
	return budget, nil
}

// Delete removes the budget for category.
func (b *BudgetStore) Delete(ctx context.Context, category model.Category) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := make([]model.Budget, 0, len(b.budgets))
	for _, budget := range b.budgets {
		if budget.Category != category {
			next = append(next, budget)
		}
	}
	if len(next) == len(b.budgets) {
		return fmt.Errorf("%w: %q", ErrBudgetNotFound, category)
	}

	if err := storage.SaveJSON(ctx, b.storage, storage.KeyBudgets, next); err != nil {
		return fmt.Errorf("failed to save budgets: %w", err)
	}
	b.budgets = next
	return nil
}
