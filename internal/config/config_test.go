package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/jarvis/internal/common"
	"github.com/Veraticus/jarvis/internal/quote"
	"github.com/Veraticus/jarvis/internal/storage"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	SetDefaults(viper.GetViper())
	t.Cleanup(viper.Reset)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("JARVIS_TEST_DIR", "/srv/data")

	tests := map[string]string{
		"":                           "",
		"~":                          home,
		"~/jarvis.db":                filepath.Join(home, "jarvis.db"),
		"$JARVIS_TEST_DIR/jarvis.db": "/srv/data/jarvis.db",
		"/abs/path.db":               "/abs/path.db",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExpandPath(in), in)
	}
}

func TestDefaults(t *testing.T) {
	resetViper(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	backend, path := Database()
	assert.Equal(t, storage.BackendSQLite, backend)
	assert.Equal(t, filepath.Join(home, ".local/share/jarvis/jarvis.db"), path)

	q := Quote()
	assert.Equal(t, quote.DefaultBaseURL, q.BaseURL)
	assert.Empty(t, q.ProxyURL)
	assert.Equal(t, 10*time.Second, q.Timeout)
}

func TestDatabase_MemoryPathIsKept(t *testing.T) {
	resetViper(t)
	viper.Set(KeyDatabasePath, storage.MemoryPath)
	viper.Set(KeyDatabaseBackend, storage.BackendMemory)

	backend, path := Database()
	assert.Equal(t, storage.BackendMemory, backend)
	assert.Equal(t, storage.MemoryPath, path)
}

func TestLoadSheetsConfig(t *testing.T) {
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SPREADSHEET_ID",
		"GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(key, "")
	}

	t.Run("missing credentials", func(t *testing.T) {
		resetViper(t)
		_, err := LoadSheetsConfig()
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})

	t.Run("viper wins over environment", func(t *testing.T) {
		resetViper(t)
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-client")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "Env Sheet")
		viper.Set("sheets.client_id", "viper-client")
		viper.Set("sheets.client_secret", "secret")
		viper.Set("sheets.refresh_token", "refresh")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "viper-client", cfg.ClientID)
		assert.Equal(t, "Env Sheet", cfg.SpreadsheetName)
	})

	t.Run("service account from environment", func(t *testing.T) {
		resetViper(t)
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/keys/sa.json")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
	})

	t.Run("auth config does not validate", func(t *testing.T) {
		resetViper(t)
		cfg, err := LoadSheetsAuthConfig()
		require.NoError(t, err)
		assert.NotEmpty(t, cfg.TokenFile)
	})
}
