package config

import (
	"github.com/Veraticus/jarvis/internal/quote"
	"github.com/Veraticus/jarvis/internal/storage"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyLogLevel        = "logging.level"
	KeyLogFormat       = "logging.format"
	KeyDatabasePath    = "database.path"
	KeyDatabaseBackend = "database.backend"
	KeyQuoteBaseURL    = "quote.base_url"
	KeyQuoteProxyURL   = "quote.proxy_url"
	KeyQuoteTimeout    = "quote.timeout"
	KeySheetsTokenFile = "sheets.token_file"
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyDatabasePath, "~/.local/share/jarvis/jarvis.db")
	v.SetDefault(KeyDatabaseBackend, storage.BackendSQLite)
	v.SetDefault(KeyQuoteBaseURL, quote.DefaultBaseURL)
	v.SetDefault(KeyQuoteProxyURL, "")
	v.SetDefault(KeyQuoteTimeout, quote.DefaultTimeout)
	v.SetDefault(KeySheetsTokenFile, "~/.config/jarvis/sheets-token.json")
}

// Database returns the configured storage backend and expanded database path.
func Database() (backend, path string) {
	path = viper.GetString(KeyDatabasePath)
	if path != storage.MemoryPath {
		path = ExpandPath(path)
	}
	return viper.GetString(KeyDatabaseBackend), path
}

// Quote returns the price lookup client settings.
func Quote() quote.Config {
	return quote.Config{
		BaseURL:  viper.GetString(KeyQuoteBaseURL),
		ProxyURL: viper.GetString(KeyQuoteProxyURL),
		Timeout:  viper.GetDuration(KeyQuoteTimeout),
	}
}
