package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/jarvis/internal/aggregate"
	"github.com/Veraticus/jarvis/internal/cli"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	calendarCellWidth = 11
	breakdownBarWidth = 24
	descriptionWidth  = 28
	chromeHeight      = 9
)

var (
	sparkBlocks = []rune("▁▂▃▄▅▆▇█")
	thousand    = decimal.NewFromInt(1000)
)

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Loading Jarvis..."),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Reading your ledger"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderDashboard() string {
	var body string
	switch m.view {
	case ViewCalendar:
		body = m.renderCalendar()
	case ViewBreakdown:
		body = m.renderBreakdown()
	case ViewTransactions:
		body = m.renderTransactions()
	case ViewNetWorth:
		body = m.renderNetWorth()
	}

	sections := []string{m.renderHeader(), m.theme.RoundedBox.Render(body)}
	if m.lastError != nil {
		sections = append(sections, m.theme.StatusError.Render("Error: "+m.lastError.Error()))
	}
	if m.showHelp {
		sections = append(sections, m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(cli.JarvisIcon + " Jarvis · " + m.report.Title())

	s := m.report.Summary
	summary := strings.Join([]string{
		"Income " + m.theme.Income.Render(cli.FormatMoney(s.Income)),
		"Expenses " + m.theme.Spending.Render(cli.FormatMoney(s.Expenses)),
		"Net " + m.signedStyle(s.Net).Render(cli.FormatMoney(s.Net)),
		m.theme.Subtitle.Render(fmt.Sprintf("%d transactions", s.Count)),
	}, "   ")

	tabs := make([]string, 0, viewCount)
	for v := View(0); v < viewCount; v++ {
		label := " " + v.String() + " "
		if v == m.view {
			tabs = append(tabs, m.theme.Selected.Render(label))
		} else {
			tabs = append(tabs, m.theme.Subtitle.Render(label))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, strings.Join(tabs, " "))
}

func (m Model) renderCalendar() string {
	first, last := aggregate.MonthRange(m.month.Year(), m.month.Month())
	totals := make(map[int]aggregate.DayTotal, len(m.report.Days))
	for _, d := range m.report.Days {
		totals[d.Day.Day] = d
	}
	today := aggregate.KeyOf(m.now())

	cell := lipgloss.NewStyle().Width(calendarCellWidth)

	header := make([]string, 7)
	for i := range header {
		header[i] = cell.Render(m.theme.Bold.Render(time.Weekday(i).String()[:3]))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	week := make([]string, 0, 7)
	for i := 0; i < int(first.Weekday()); i++ {
		week = append(week, cell.Render(""))
	}
	for day := 1; day <= last.Day(); day++ {
		number := strconv.Itoa(day)
		if today.Year == m.month.Year() && today.Month == m.month.Month() && today.Day == day {
			number = m.theme.Selected.Render(number)
		}
		lines := []string{number}
		if t, ok := totals[day]; ok {
			if t.Spending.IsPositive() {
				lines = append(lines, m.theme.Spending.Render("-"+compactMoney(t.Spending)))
			}
			if t.Income.IsPositive() {
				lines = append(lines, m.theme.Income.Render("+"+compactMoney(t.Income)))
			}
		}
		week = append(week, cell.Render(strings.Join(lines, "\n")))

		if len(week) == 7 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, week...))
			week = week[:0]
		}
	}
	if len(week) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, week...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderBreakdown() string {
	if len(m.report.Breakdown) == 0 {
		return m.theme.Subtitle.Render("No spending this month.")
	}

	name := lipgloss.NewStyle().Width(20)
	amount := lipgloss.NewStyle().Width(14).Align(lipgloss.Right)
	lines := make([]string, 0, len(m.report.Breakdown))
	for _, row := range m.report.Breakdown {
		color := lipgloss.Color(row.Style.Color)
		filled := int(row.Percent.Mul(decimal.NewFromInt(breakdownBarWidth)).Div(decimal.NewFromInt(100)).IntPart())
		if filled == 0 && row.Amount.IsPositive() {
			filled = 1
		}
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
			m.theme.ProgressEmpty.Render(strings.Repeat("░", breakdownBarWidth-filled))

		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			name.Render(cli.Swatch(row.Style.Color, row.Style.Icon, row.Name)),
			bar,
			amount.Render(cli.FormatMoney(row.Amount)),
			"  "+m.theme.Subtitle.Render(cli.FormatPercent(row.Percent)),
		))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTransactions() string {
	txs := m.report.Transactions
	if len(txs) == 0 {
		return m.theme.Subtitle.Render("No transactions this month.")
	}

	visible := m.height - chromeHeight
	if visible < 3 {
		visible = 3
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(txs))

	desc := lipgloss.NewStyle().Width(descriptionWidth)
	cat := lipgloss.NewStyle().Width(16)
	amount := lipgloss.NewStyle().Width(14).Align(lipgloss.Right)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		tx := txs[i]
		flow, value := aggregate.Classify(tx)
		money := m.theme.Normal.Render(cli.FormatMoney(value))
		switch flow {
		case aggregate.FlowIncome:
			money = m.theme.Income.Render("+" + cli.FormatMoney(value))
		case aggregate.FlowExpense:
			money = m.theme.Spending.Render("-" + cli.FormatMoney(value))
		}

		line := lipgloss.JoinHorizontal(lipgloss.Top,
			tx.Date.In(time.Local).Format("Jan 02")+"  ",
			desc.Render(truncate(tx.Description, descriptionWidth-1)),
			cat.Render(tx.DisplayCategory()),
			amount.Render(money),
		)
		if i == m.cursor {
			line = m.theme.Highlighted.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderNetWorth() string {
	ranges := make([]string, len(aggregate.Ranges))
	for i, r := range aggregate.Ranges {
		label := " " + string(r) + " "
		if i == m.rangeIndex {
			ranges[i] = m.theme.Selected.Render(label)
		} else {
			ranges[i] = m.theme.Subtitle.Render(label)
		}
	}
	selector := strings.Join(ranges, " ")

	if len(m.transactions) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, selector, "",
			m.theme.Subtitle.Render("No data yet. Import transactions to chart your net worth."))
	}

	series := aggregate.NetWorthSeries(m.transactions, m.Range(), m.netWorth, m.now())
	points := series.Points
	first, last := points[0], points[len(points)-1]
	change := last.Net.Sub(first.Net)

	summary := fmt.Sprintf("%s %s  →  %s %s   %s",
		first.Label, cli.FormatMoney(first.Net),
		last.Label, cli.FormatMoney(last.Net),
		m.signedStyle(change).Render(cli.FormatSigned(change)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		selector,
		"",
		lipgloss.NewStyle().Foreground(m.theme.Primary).Render(sparkline(points, m.width-6)),
		"",
		summary,
	)
}

func (m Model) signedStyle(d decimal.Decimal) lipgloss.Style {
	if d.IsNegative() {
		return m.theme.Spending
	}
	return m.theme.Income
}

// sparkline draws one block per point, sampling evenly when points exceed width.
func sparkline(points []aggregate.Point, width int) string {
	if len(points) == 0 {
		return ""
	}
	if width < 1 {
		width = 1
	}

	values := make([]decimal.Decimal, 0, min(len(points), width))
	if len(points) <= width {
		for _, p := range points {
			values = append(values, p.Net)
		}
	} else if width == 1 {
		values = append(values, points[len(points)-1].Net)
	} else {
		for i := 0; i < width; i++ {
			values = append(values, points[i*(len(points)-1)/(width-1)].Net)
		}
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = decimal.Min(lo, v)
		hi = decimal.Max(hi, v)
	}
	span := hi.Sub(lo)
	top := decimal.NewFromInt(int64(len(sparkBlocks) - 1))

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if span.IsPositive() {
			idx = int(v.Sub(lo).Mul(top).Div(span).Round(0).IntPart())
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

func compactMoney(d decimal.Decimal) string {
	if d.GreaterThanOrEqual(thousand) {
		return "$" + d.Div(thousand).StringFixed(1) + "k"
	}
	return "$" + d.StringFixed(0)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
