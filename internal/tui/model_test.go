package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/jarvis/internal/aggregate"
	"github.com/Veraticus/jarvis/internal/model"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dashboardNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local)

type staticSource []model.Transaction

func (s staticSource) List() []model.Transaction { return s }

func sampleLedger() staticSource {
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 12, 0, 0, 0, time.Local) }
	return staticSource{
		{ID: "1", Date: day(time.March, 2), Description: "Grocery run", Type: model.TypeExpense, Category: model.CategoryFood, Amount: decimal.NewFromInt(120)},
		{ID: "2", Date: day(time.March, 10), Description: "Salary", Type: model.TypeIncome, Category: model.CategoryOther, Amount: decimal.NewFromInt(3000)},
		{ID: "3", Date: day(time.March, 12), Description: "Bus pass", Type: model.TypeExpense, Category: model.CategoryTransportation, Amount: decimal.NewFromInt(40)},
		{ID: "4", Date: day(time.February, 20), Description: "Cinema", Type: model.TypeExpense, Category: model.CategoryEntertainment, Amount: decimal.NewFromInt(25)},
	}
}

func newLoadedModel(t *testing.T, source Source) Model {
	t.Helper()
	m := New(
		WithSource(source),
		WithClock(func() time.Time { return dashboardNow }),
		WithSize(120, 40),
		WithNetWorth(decimal.NewFromInt(10000)),
	)

	msg := m.Init()()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNew_OpensCurrentMonth(t *testing.T) {
	m := New(WithClock(func() time.Time { return dashboardNow }))
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local), m.Month())
	assert.Equal(t, ViewCalendar, m.CurrentView())
	assert.Equal(t, aggregate.Range1M, m.Range())
	assert.Contains(t, m.View(), "Loading Jarvis")
}

func TestInit_WithoutSourceReportsError(t *testing.T) {
	m := New(WithClock(func() time.Time { return dashboardNow }))
	updated, _ := m.Update(m.Init()())
	m = updated.(Model)

	assert.Contains(t, m.View(), errNoSource.Error())
}

func TestUpdate_MonthNavigation(t *testing.T) {
	m := newLoadedModel(t, sampleLedger())
	assert.Contains(t, m.View(), "March 2024")

	m = press(t, m, runeKey('h'))
	assert.Equal(t, time.February, m.Month().Month())
	assert.Contains(t, m.View(), "February 2024")
	assert.Contains(t, m.View(), "1 transactions")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, time.April, m.Month().Month())

	m = press(t, m, runeKey('t'))
	assert.Equal(t, time.March, m.Month().Month())
}

func TestUpdate_ViewCycling(t *testing.T) {
	m := newLoadedModel(t, sampleLedger())

	tests := []struct {
		key  tea.KeyMsg
		want View
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, ViewBreakdown},
		{tea.KeyMsg{Type: tea.KeyTab}, ViewTransactions},
		{tea.KeyMsg{Type: tea.KeyTab}, ViewNetWorth},
		{tea.KeyMsg{Type: tea.KeyTab}, ViewCalendar},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, ViewNetWorth},
	}
	for _, tt := range tests {
		m = press(t, m, tt.key)
		assert.Equal(t, tt.want, m.CurrentView())
	}
}

func TestView_Panels(t *testing.T) {
	m := newLoadedModel(t, sampleLedger())

	calendar := m.View()
	assert.Contains(t, calendar, "Sun")
	assert.Contains(t, calendar, "-$120")
	assert.Contains(t, calendar, "+$3.0k")
	assert.Contains(t, calendar, "Income $3,000.00")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	breakdown := m.View()
	assert.Contains(t, breakdown, "$120.00")
	assert.Contains(t, breakdown, "75.0%")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	list := m.View()
	assert.Less(t, strings.Index(list, "Bus pass"), strings.Index(list, "Grocery run"))
	assert.NotContains(t, list, "Cinema")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	chart := m.View()
	assert.Contains(t, chart, "1M")
	assert.Contains(t, chart, "$10,000.00")
}

func TestUpdate_CursorStaysInBounds(t *testing.T) {
	m := newLoadedModel(t, sampleLedger())
	m = press(t, m, runeKey('k'))
	assert.Equal(t, 0, m.Cursor())

	m = press(t, m, runeKey('j'), runeKey('j'), runeKey('j'), runeKey('j'))
	assert.Equal(t, 2, m.Cursor())

	m = press(t, m, runeKey('h'))
	assert.Equal(t, 0, m.Cursor(), "changing month resets the cursor")
}

func TestUpdate_RangeCycles(t *testing.T) {
	m := newLoadedModel(t, sampleLedger())
	for range aggregate.Ranges {
		m = press(t, m, runeKey('r'))
	}
	assert.Equal(t, aggregate.Range1M, m.Range())

	m = press(t, m, runeKey('r'))
	assert.Equal(t, aggregate.Range3M, m.Range())
}

func TestView_NetWorthWithoutData(t *testing.T) {
	m := newLoadedModel(t, staticSource{})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Contains(t, m.View(), "No data yet")
}

func TestUpdate_Quit(t *testing.T) {
	m := newLoadedModel(t, sampleLedger())
	updated, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, updated.(Model).View())
}

func TestSparkline(t *testing.T) {
	points := []aggregate.Point{
		{Net: decimal.NewFromInt(0)},
		{Net: decimal.NewFromInt(50)},
		{Net: decimal.NewFromInt(100)},
	}
	assert.Equal(t, "▁▅█", sparkline(points, 10))
	assert.Equal(t, "▁█", sparkline(points, 2))
	assert.Equal(t, "█", sparkline(points, 1))

	flat := []aggregate.Point{{Net: decimal.NewFromInt(5)}, {Net: decimal.NewFromInt(5)}}
	assert.Equal(t, "▁▁", sparkline(flat, 10))
}

func TestTruncateAndCompactMoney(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "long desc…", truncate("long description", 10))
	assert.Equal(t, "$950", compactMoney(decimal.NewFromInt(950)))
	assert.Equal(t, "$1.5k", compactMoney(decimal.NewFromInt(1500)))
}
