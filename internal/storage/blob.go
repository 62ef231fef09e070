package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/jarvis/internal/common"
	"github.com/Veraticus/jarvis/internal/service"
)

// Persistence keys, one per data domain.
const (
	KeyTransactions       = "transactions"
	KeyBudgets            = "budgets"
	KeyNetWorthAccounts   = "netWorthAccounts"
	KeyFlightTransactions = "flightTransactions"
	KeyAccountSnapshots   = "accountSnapshots"
	KeyWeightEntries      = "weightEntries"
	KeyWeightGoal         = "weightGoal"
	KeyDietSchedule       = "dietSchedule"
	KeyWorkoutSchedule    = "workoutSchedule"
)

// BlobVersion is the envelope version written by this build.
const BlobVersion = 1

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Version int             `json:"version"`
}

// SaveJSON serializes v inside a versioned envelope and stores it under key.
func SaveJSON(ctx context.Context, s service.Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	blob, err := json.Marshal(envelope{Version: BlobVersion, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode %s envelope: %w", key, err)
	}
	return s.Save(ctx, key, blob)
}

// LoadJSON decodes the blob stored under key into v.
// It returns common.ErrNotFound when nothing is stored and
// common.ErrDatabaseCorrupted when the blob cannot be decoded.
func LoadJSON(ctx context.Context, s service.Storage, key string, v any) error {
	blob, err := s.Load(ctx, key)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrDatabaseCorrupted, key, err)
	}
	if env.Version != BlobVersion {
		return fmt.Errorf("%w: %s has version %d", ErrUnsupportedVersion, key, env.Version)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: %s has no data", common.ErrDatabaseCorrupted, key)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrDatabaseCorrupted, key, err)
	}
	return nil
}

// LoadOrDefault loads the value under key, returning def when nothing is stored
// or the stored blob is unreadable. Unreadable blobs are logged, not returned.
// A blob written with another envelope version is returned as
// ErrUnsupportedVersion so the caller never saves over it.
func LoadOrDefault[T any](ctx context.Context, s service.Storage, key string, def T) (T, error) {
	var v T
	err := LoadJSON(ctx, s, key, &v)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, common.ErrNotFound):
		return def, nil
	case errors.Is(err, common.ErrDatabaseCorrupted):
		slog.Warn("Discarding unreadable stored data", "key", key, "error", err)
		return def, nil
	default:
		return def, err
	}
}
