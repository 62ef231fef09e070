package networth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/service"
	"github.com/Veraticus/jarvis/internal/storage"
	"github.com/google/uuid"
)

// Granularity selects the window and bucket size of a snapshot history.
type Granularity string

// History windows.
const (
	GranularityWeek       Granularity = "week"
	GranularityMonth      Granularity = "month"
	GranularityThreeMonth Granularity = "3month"
	GranularityYear       Granularity = "year"
)

// ErrInvalidGranularity is returned for an unknown history window.
var ErrInvalidGranularity = errors.New("invalid granularity")

// ParseGranularity validates a window name.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case GranularityWeek, GranularityMonth, GranularityThreeMonth, GranularityYear:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGranularity, s)
}

// SnapshotStore keeps the append-only snapshot list.
type SnapshotStore struct {
	storage service.Storage
	snaps   []model.AccountSnapshot
	mu      sync.RWMutex
}

// OpenSnapshots loads the stored snapshots.
func OpenSnapshots(ctx context.Context, store service.Storage) (*SnapshotStore, error) {
	if store == nil {
		return nil, ErrNilStorage
	}
	snaps, err := storage.LoadOrDefault(ctx, store, storage.KeyAccountSnapshots, []model.AccountSnapshot{})
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}
	return &SnapshotStore{storage: store, snaps: snaps}, nil
}

// List returns all snapshots in recording order.
func (s *SnapshotStore) List() []model.AccountSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.AccountSnapshot(nil), s.snaps...)
}

// Record appends a snapshot of totals unless one was already taken on the
// calendar day of now. It reports whether a snapshot was written.
func (s *SnapshotStore) Record(ctx context.Context, now time.Time, totals Totals) (model.AccountSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.snaps {
		if sameDay(existing.TakenAt, now) {
			return existing, false, nil
		}
	}

	snap := totals.Snapshot(now)
	snap.ID = uuid.NewString()
	next := append(append([]model.AccountSnapshot(nil), s.snaps...), snap)
	if err := storage.SaveJSON(ctx, s.storage, storage.KeyAccountSnapshots, next); err != nil {
		return model.AccountSnapshot{}, false, fmt.Errorf("failed to save snapshots: %w", err)
	}
	s.snaps = next
	return snap, true, nil
}

// History returns the latest snapshot per bucket inside the window ending at
// now, oldest first. Week and month windows bucket by day, 3month by
// Sunday-start week and year by month.
func History(snaps []model.AccountSnapshot, g Granularity, now time.Time) ([]model.AccountSnapshot, error) {
	var (
		start  time.Time
		bucket func(time.Time) time.Time
	)
	today := model.NormalizeDate(now)
	switch g {
	case GranularityWeek:
		start, bucket = today.AddDate(0, 0, -6), model.NormalizeDate
	case GranularityMonth:
		start, bucket = today.AddDate(0, -1, 1), model.NormalizeDate
	case GranularityThreeMonth:
		start, bucket = today.AddDate(0, -3, 1), weekOf
	case GranularityYear:
		start, bucket = today.AddDate(-1, 0, 1), monthOf
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
	}
	end := today.AddDate(0, 0, 1)

	latest := map[time.Time]model.AccountSnapshot{}
	for _, snap := range snaps {
		if snap.TakenAt.Before(start) || !snap.TakenAt.Before(end) {
			continue
		}
		key := bucket(snap.TakenAt)
		if cur, ok := latest[key]; !ok || !snap.TakenAt.Before(cur.TakenAt) {
			latest[key] = snap
		}
	}

	out := make([]model.AccountSnapshot, 0, len(latest))
	for _, snap := range latest {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TakenAt.Before(out[j].TakenAt) })
	return out, nil
}

func sameDay(a, b time.Time) bool {
	return model.NormalizeDate(a).Equal(model.NormalizeDate(b))
}

func weekOf(t time.Time) time.Time {
	d := model.NormalizeDate(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func monthOf(t time.Time) time.Time {
	y, m, _ := t.In(time.Local).Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.Local)
}
