package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

var errNoSource = errors.New("transaction source not configured")

// loadTransactions reads the current ledger snapshot.
func (m Model) loadTransactions() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		if source == nil {
			return transactionsLoadedMsg{err: errNoSource}
		}
		return transactionsLoadedMsg{transactions: source.List()}
	}
}
