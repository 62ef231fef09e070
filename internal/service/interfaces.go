// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/jarvis/internal/aggregate"
	"github.com/shopspring/decimal"
)

// Storage defines the contract for our persistence layer.
// Every data domain is stored as one serialized blob under a fixed key.
type Storage interface {
	// Blob operations
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// PriceLookup fetches a market price for a ticker or crypto name.
type PriceLookup interface {
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// ReportWriter exports a monthly report to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, report *aggregate.Report) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DateRange represents a time period with start and end dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, both ends inclusive.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
