package tui

import (
	"time"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/tui/themes"
	"github.com/shopspring/decimal"
)

// Source supplies the transactions shown on the dashboard.
type Source interface {
	List() []model.Transaction
}

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Source   Source
	Now      func() time.Time
	NetWorth decimal.Decimal
	Width    int
	Height   int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Now:      time.Now,
		NetWorth: decimal.Zero,
		Width:    80,
		Height:   24,
		ShowHelp: true,
	}
}

// WithSource sets the transaction source.
func WithSource(source Source) Option {
	return func(c *Config) {
		c.Source = source
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithNetWorth seeds the net-worth chart with the current total.
func WithNetWorth(current decimal.Decimal) Option {
	return func(c *Config) {
		c.NetWorth = current
	}
}

// WithHelp toggles the key help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
