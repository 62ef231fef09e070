// Package health keeps weight entries, a weight goal and weekly diet and
// workout plans.
package health

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/Veraticus/jarvis/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tracker errors.
var (
	ErrEntryNotFound = errors.New("weight entry not found")
	ErrInvalidWeight = errors.New("weight must be positive")
	ErrInvalidPlan   = errors.New("invalid plan")
	ErrNilStorage    = errors.New("storage cannot be nil")
	ErrMissingDate   = errors.New("date is required")
	ErrUnknownPlan   = errors.New("unknown plan")
)

// WeightEntry is one weigh-in.
type WeightEntry struct {
	Date      time.Time       `json:"date"`
	Kilograms decimal.Decimal `json:"kilograms"`
	ID        string          `json:"id"`
}

// WeightGoal is the target weight and the date to reach it by.
type WeightGoal struct {
	TargetDate      time.Time       `json:"targetDate"`
	TargetKilograms decimal.Decimal `json:"targetKilograms"`
}

// IsSet reports whether a goal has been configured.
func (g WeightGoal) IsSet() bool {
	return g.TargetKilograms.IsPositive()
}

// Plan maps each weekday to its ordered items.
type Plan map[time.Weekday][]string

// PlanKind names a plan.
type PlanKind string

// Plans.
const (
	PlanDiet    PlanKind = "diet"
	PlanWorkout PlanKind = "workout"
)

func (k PlanKind) key() (string, error) {
	switch k {
	case PlanDiet:
		return storage.KeyDietSchedule, nil
	case PlanWorkout:
		return storage.KeyWorkoutSchedule, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlan, k)
}

// Tracker owns the health data.
type Tracker struct {
	storage service.Storage
	plans   map[PlanKind]Plan
	goal    WeightGoal
	entries []WeightEntry
	mu      sync.RWMutex
}

// Open loads the stored health data. Unreadable blobs fall back to empty values.
func Open(ctx context.Context, store service.Storage) (*Tracker, error) {
	if store == nil {
		return nil, ErrNilStorage
	}

	entries, err := storage.LoadOrDefault(ctx, store, storage.KeyWeightEntries, []WeightEntry{})
	if err != nil {
		return nil, fmt.Errorf("failed to load weight entries: %w", err)
	}
	goal, err := storage.LoadOrDefault(ctx, store, storage.KeyWeightGoal, WeightGoal{})
	if err != nil {
		return nil, fmt.Errorf("failed to load weight goal: %w", err)
	}

	t := &Tracker{storage: store, entries: entries, goal: goal, plans: map[PlanKind]Plan{}}
	for _, kind := range []PlanKind{PlanDiet, PlanWorkout} {
		key, _ := kind.key()
		plan, err := storage.LoadOrDefault(ctx, store, key, Plan{})
		if err != nil {
			return nil, fmt.Errorf("failed to load %s plan: %w", kind, err)
		}
		t.plans[kind] = plan
	}
	return t, nil
}

// Entries returns the weigh-ins sorted by date, oldest first.
func (t *Tracker) Entries() []WeightEntry {
	t.mu.RLock()
	out := append([]WeightEntry(nil), t.entries...)
	t.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// AddWeight records a weigh-in for date.
func (t *Tracker) AddWeight(ctx context.Context, date time.Time, kg decimal.Decimal) (WeightEntry, error) {
	if date.IsZero() {
		return WeightEntry{}, ErrMissingDate
	}
	if !kg.IsPositive() {
		return WeightEntry{}, fmt.Errorf("%w: %s", ErrInvalidWeight, kg)
	}

	entry := WeightEntry{ID: uuid.NewString(), Date: model.NormalizeDate(date), Kilograms: kg}

	t.mu.Lock()
	defer t.mu.Unlock()
	next := append(append([]WeightEntry(nil), t.entries...), entry)
	if err := storage.SaveJSON(ctx, t.storage, storage.KeyWeightEntries, next); err != nil {
		return WeightEntry{}, fmt.Errorf("failed to save weight entries: %w", err)
	}
	t.entries = next
	return entry, nil
}

// DeleteWeight removes the weigh-in with the given id.
func (t *Tracker) DeleteWeight(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := make([]WeightEntry, 0, len(t.entries))
	for _, e := range t.entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if len(next) == len(t.entries) {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if err := storage.SaveJSON(ctx, t.storage, storage.KeyWeightEntries, next); err != nil {
		return fmt.Errorf("failed to save weight entries: %w", err)
	}
	t.entries = next
	return nil
}

// Goal returns the current weight goal.
func (t *Tracker) Goal() WeightGoal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.goal
}

// SetGoal replaces the weight goal.
func (t *Tracker) SetGoal(ctx context.Context, goal WeightGoal) error {
	if !goal.TargetKilograms.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidWeight, goal.TargetKilograms)
	}
	if !goal.TargetDate.IsZero() {
		goal.TargetDate = model.NormalizeDate(goal.TargetDate)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := storage.SaveJSON(ctx, t.storage, storage.KeyWeightGoal, goal); err != nil {
		return fmt.Errorf("failed to save weight goal: %w", err)
	}
	t.goal = goal
	return nil
}

// Plan returns a copy of the named plan.
func (t *Tracker) Plan(kind PlanKind) (Plan, error) {
	if _, err := kind.key(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return clonePlan(t.plans[kind]), nil
}

// SetDay replaces the items of one weekday. Empty items clear the day.
func (t *Tracker) SetDay(ctx context.Context, kind PlanKind, day time.Weekday, items []string) error {
	key, err := kind.key()
	if err != nil {
		return err
	}
	if day < time.Sunday || day > time.Saturday {
		return fmt.Errorf("%w: weekday %d", ErrInvalidPlan, day)
	}

	var cleaned []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	next := clonePlan(t.plans[kind])
	if len(cleaned) == 0 {
		delete(next, day)
	} else {
		next[day] = cleaned
	}
	if err := storage.SaveJSON(ctx, t.storage, key, next); err != nil {
		return fmt.Errorf("failed to save %s plan: %w", kind, err)
	}
	t.plans[kind] = next
	return nil
}

func clonePlan(p Plan) Plan {
	out := make(Plan, len(p))
	for day, items := range p {
		out[day] = append([]string(nil), items...)
	}
	return out
}
