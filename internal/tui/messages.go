package tui

import "github.com/Veraticus/jarvis/internal/model"

type transactionsLoadedMsg struct {
	err          error
	transactions []model.Transaction
}
