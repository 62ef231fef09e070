package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/jarvis/internal/service"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open creates the configured backend and brings its schema up to date.
func Open(ctx context.Context, backend, path string) (service.Storage, error) {
	var (
		store service.Storage
		err   error
	)

	switch backend {
	case BackendSQLite, "":
		store, err = NewSQLiteStorage(path)
	case BackendMemory:
		store = NewMemoryStorage()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate storage: %w", err)
	}
	return store, nil
}
