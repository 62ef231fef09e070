// Package tui implements the interactive month dashboard.
package tui

import (
	"time"

	"github.com/Veraticus/jarvis/internal/aggregate"
	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// View represents the current view mode.
type View int

// Views in tab order.
const (
	ViewCalendar View = iota
	ViewBreakdown
	ViewTransactions
	ViewNetWorth
	viewCount
)

func (v View) String() string {
	switch v {
	case ViewCalendar:
		return "Calendar"
	case ViewBreakdown:
		return "Breakdown"
	case ViewTransactions:
		return "Transactions"
	case ViewNetWorth:
		return "Net Worth"
	default:
		return "Unknown"
	}
}

// Model holds the dashboard state.
type Model struct {
	month        time.Time
	theme        themes.Theme
	lastError    error
	source       Source
	now          func() time.Time
	netWorth     decimal.Decimal
	report       aggregate.Report
	transactions []model.Transaction
	keymap       KeyMap
	help         help.Model
	cursor       int
	rangeIndex   int
	width        int
	height       int
	view         View
	showHelp     bool
	quitting     bool
	ready        bool
}

// New creates a dashboard model opened on the current month.
func New(opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	h := help.New()
	h.Width = cfg.Width

	m := Model{
		theme:      cfg.Theme,
		source:     cfg.Source,
		now:        cfg.Now,
		netWorth:   cfg.NetWorth,
		keymap:     DefaultKeyMap(),
		help:       h,
		width:      cfg.Width,
		height:     cfg.Height,
		showHelp:   cfg.ShowHelp,
		view:       ViewCalendar,
		rangeIndex: 1,
	}
	m.month = firstOfMonth(m.now())
	m.rebuild()
	return m
}

// Init loads the transactions.
func (m Model) Init() tea.Cmd {
	return m.loadTransactions()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case transactionsLoadedMsg:
		m.ready = true
		m.lastError = msg.err
		if msg.err == nil {
			m.transactions = msg.transactions
			m.rebuild()
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.Refresh):
		return m, m.loadTransactions()

	case key.Matches(msg, m.keymap.PrevMonth):
		m.month = m.month.AddDate(0, -1, 0)
		m.rebuild()

	case key.Matches(msg, m.keymap.NextMonth):
		m.month = m.month.AddDate(0, 1, 0)
		m.rebuild()

	case key.Matches(msg, m.keymap.Today):
		m.month = firstOfMonth(m.now())
		m.rebuild()

	case key.Matches(msg, m.keymap.NextView):
		m.view = (m.view + 1) % viewCount

	case key.Matches(msg, m.keymap.PrevView):
		m.view = (m.view + viewCount - 1) % viewCount

	case key.Matches(msg, m.keymap.CycleRange):
		m.rangeIndex = (m.rangeIndex + 1) % len(aggregate.Ranges)

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.report.Transactions)-1 {
			m.cursor++
		}
	}
	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}
	return m.renderDashboard()
}

// Month returns the first day of the displayed month.
func (m Model) Month() time.Time {
	return m.month
}

// CurrentView returns the active view.
func (m Model) CurrentView() View {
	return m.view
}

// Range returns the net-worth chart range.
func (m Model) Range() aggregate.Range {
	return aggregate.Ranges[m.rangeIndex]
}

// Cursor returns the selected transaction row.
func (m Model) Cursor() int {
	return m.cursor
}

func (m *Model) rebuild() {
	m.report = aggregate.BuildReport(m.transactions, m.month.Year(), m.month.Month())
	m.cursor = 0
}

func firstOfMonth(t time.Time) time.Time {
	y, mo, _ := t.In(time.Local).Date()
	return time.Date(y, mo, 1, 0, 0, 0, 0, time.Local)
}
