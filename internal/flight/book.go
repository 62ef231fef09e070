// Package flight tracks flight-training costs in USD with a cached MXN total.
package flight

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

// ExchangeRate converts USD to MXN.
var ExchangeRate = decimal.RequireFromString("18.3")

// Kind is the type of a flight-training record.
type Kind string

// Record kinds. CFI and plane rental are billed per hour; extras and income
// carry a flat total.
const (
	KindCFI         Kind = "cfi"
	KindPlaneRental Kind = "plane-rental"
	KindExtras      Kind = "extras"
	KindIncome      Kind = "income"
)

// Kinds lists every record kind in display order.
var Kinds = []Kind{KindCFI, KindPlaneRental, KindExtras, KindIncome}

// Hourly reports whether the kind is billed as rate times hours.
func (k Kind) Hourly() bool {
	return k == KindCFI || k == KindPlaneRental
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Book errors.
var (
	ErrRecordNotFound = errors.New("flight record not found")
	ErrInvalidKind    = errors.New("invalid flight record kind")
	ErrInvalidRecord  = errors.New("invalid flight record")
	ErrNilStorage     = errors.New("storage cannot be nil")
)

// Record is one flight-training charge or payment.
type Record struct {
	Date        time.Time       `json:"date"`
	RatePerHour decimal.Decimal `json:"ratePerHour"`
	Hours       decimal.Decimal `json:"hours"`
	TotalUSD    decimal.Decimal `json:"totalUsd"`
	TotalMXN    decimal.Decimal `json:"totalMxn"`
	ID          string          `json:"id"`
	Kind        Kind            `json:"kind"`
	Description string          `json:"description"`
}

// recompute derives TotalUSD for hourly kinds and TotalMXN for every kind.
func (r *Record) recompute() {
	if r.Kind.Hourly() {
		r.TotalUSD = r.RatePerHour.Mul(r.Hours)
	} else {
		r.RatePerHour = decimal.Zero
		r.Hours = decimal.Zero
	}
	r.TotalMXN = r.TotalUSD.Mul(ExchangeRate)
}

func (r *Record) validate() error {
	var errs []error
	if !r.Kind.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidKind, r.Kind))
	}
	if r.Date.IsZero() {
		errs = append(errs, fmt.Errorf("%w: date is required", ErrInvalidRecord))
	}
	if strings.TrimSpace(r.Description) == "" {
		errs = append(errs, fmt.Errorf("%w: description is required", ErrInvalidRecord))
	}
	if r.RatePerHour.IsNegative() || r.Hours.IsNegative() || r.TotalUSD.IsNegative() {
		errs = append(errs, fmt.Errorf("%w: amounts cannot be negative", ErrInvalidRecord))
	}
	return errors.Join(errs...)
}

// NewHourly builds a CFI or plane-rental record.
func NewHourly(kind Kind, date time.Time, description string, rate, hours decimal.Decimal) Record {
	return Record{Kind: kind, Date: date, Description: description, RatePerHour: rate, Hours: hours}
}

// NewFlat builds an extras or income record.
func NewFlat(kind Kind, date time.Time, description string, total decimal.Decimal) Record {
	return Record{Kind: kind, Date: date, Description: description, TotalUSD: total}
}

// Book is the list of flight-training records.
type Book struct {
	storage service.Storage
	records []Record
	mu      sync.RWMutex
}

// Open loads the stored records.
func Open(ctx context.Context, store service.Storage) (*Book, error) {
	if store == nil {
		return nil, ErrNilStorage
	}
	records, err := storage.LoadOrDefault(ctx, store, storage.KeyFlightTransactions, []Record{})
	if err != nil {
		return nil, fmt.Errorf("failed to load flight records: %w", err)
	}
	return &Book{storage: store, records: records}, nil
}

// List returns records sorted by date, newest first.
func (b *Book) List() []Record {
	b.mu.RLock()
	out := append([]Record(nil), b.records...)
	b.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// Add validates r, derives its totals and stores it under a new id.
func (b *Book) Add(ctx context.Context, r Record) (Record, error) {
	r.ID = uuid.NewString()
	r.Date = model.NormalizeDate(r.Date)
	r.Description = strings.TrimSpace(r.Description)
	r.recompute()
	if err := r.validate(); err != nil {
		return Record{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next := append(append([]Record(nil), b.records...), r)
	if err := b.persist(ctx, next); err != nil {
		return Record{}, err
	}
	b.records = next
	return r, nil
}

// Patch lists the fields an update may change. Nil fields are left alone.
type Patch struct {
	Date        *time.Time
	Description *string
	RatePerHour *decimal.Decimal
	Hours       *decimal.Decimal
	TotalUSD    *decimal.Decimal
}

// Update applies patch to the record with the given id and recomputes its totals.
func (b *Book) Update(ctx context.Context, id string, patch Patch) (Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}

	r := b.records[i]
	if patch.Date != nil {
		r.Date = model.NormalizeDate(*patch.Date)
	}
	if patch.Description != nil {
		r.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.RatePerHour != nil {
		r.RatePerHour = *patch.RatePerHour
	}
	if patch.Hours != nil {
		r.Hours = *patch.Hours
	}
	if patch.TotalUSD != nil && !r.Kind.Hourly() {
		r.TotalUSD = *patch.TotalUSD
	}
	r.recompute()
	if err := r.validate(); err != nil {
		return Record{}, err
	}

	next := append([]Record(nil), b.records...)
	next[i] = r
	if err := b.persist(ctx, next); err != nil {
		return Record{}, err
	}
	b.records = next
	return r, nil
}

// Delete removes the record with the given id.
func (b *Book) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	next := make([]Record, 0, len(b.records)-1)
	next = append(next, b.records[:i]...)
	next = append(next, b.records[i+1:]...)
	if err := b.persist(ctx, next); err != nil {
		return err
	}
	b.records = next
	return nil
}

func (b *Book) persist(ctx context.Context, records []Record) error {
	if err := storage.SaveJSON(ctx, b.storage, storage.KeyFlightTransactions, records); err != nil {
		return fmt.Errorf("failed to save flight records: %w", err)
	}
	return nil
}

func (b *Book) indexOf(id string) int {
	for i := range b.records {
		if b.records[i].ID == id {
			return i
		}
	}
	return -1
}
