package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/bjodds/internal/estimator"
	"github.com/lox/bjodds/internal/session"
	"github.com/lox/bjodds/internal/strategy"
)

const appTitle = "Blackjack Probability Analyzer"

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body, helpLine string
	if m.state.View() == session.Home {
		body = m.renderHome()
		helpLine = m.help.View(homeKeys(m.keys))
	} else {
		body = m.renderCalculator()
		helpLine = m.help.View(calculatorKeys(m.keys))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		body,
		"",
		helpLine,
		FooterStyle.Render("Based on standard blackjack odds"),
	)
}

func (m *Model) renderHeader() string {
	title := TitleStyle.Render(appTitle)
	if m.state.View() == session.Calculator {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, "   ", InfoStyle.Render("[esc] Back to Home"))
	}
	return HeaderStyle.Render(title)
}

func (m *Model) renderHome() string {
	var b strings.Builder
	b.WriteString(HeadingStyle.Render("Welcome to the " + appTitle))
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render("Enter your cards and the dealer's upcard to get real-time probabilities for the best move."))
	b.WriteString("\n\n")
	b.WriteString(FocusedButtonStyle.Render("Start Analyzing"))
	return b.String()
}

func (m *Model) renderCalculator() string {
	sections := []string{
		HeadingStyle.Render("Enter Card Information"),
		m.renderSelectors(),
	}
	if m.lastErr != "" {
		sections = append(sections, ErrorStyle.Render(m.lastErr))
	}
	if res, ok := m.state.Result(); ok {
		sections = append(sections, m.renderResult(res))
	}
	sections = append(sections,
		HeadingStyle.Render("Basic Strategy Reference"),
		RenderStrategyTable(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderSelectors() string {
	selector := func(slot session.Slot) string {
		text := m.state.Card(slot).String()
		if text == "" {
			text = "Select"
		}
		style := SelectorStyle
		if m.focus == int(slot) {
			style = FocusedSelectorStyle
		}
		return style.Render(text)
	}

	yours := lipgloss.JoinVertical(lipgloss.Left,
		LabelStyle.Render("Your Cards"),
		lipgloss.JoinHorizontal(lipgloss.Top, selector(session.PlayerFirst), " ", selector(session.PlayerSecond)),
	)
	dealer := lipgloss.JoinVertical(lipgloss.Left,
		LabelStyle.Render("Dealer Upcard"),
		selector(session.Dealer),
	)

	button := ButtonStyle
	switch {
	case !m.state.CanCompute():
		button = DisabledButtonStyle
	case m.focus == focusButton:
		button = FocusedButtonStyle
	}
	calc := lipgloss.JoinVertical(lipgloss.Left, "", "", button.Render("Calculate"))

	return lipgloss.JoinHorizontal(lipgloss.Top, yours, "    ", dealer, "    ", calc)
}

func (m *Model) renderResult(res estimator.Result) string {
	stand := lipgloss.JoinVertical(lipgloss.Left,
		"Stand Probability",
		StandStyle.Render(fmt.Sprintf("%d%%", res.StandProbability)),
		InfoStyle.Render("Chance of winning if you stand"),
	)
	hit := lipgloss.JoinVertical(lipgloss.Left,
		"Hit Probability",
		HitStyle.Render(fmt.Sprintf("%d%%", res.HitProbability)),
		InfoStyle.Render("Chance of winning if you hit"),
	)

	rec := estimator.Recommend(res)
	recStyle := StandStyle
	if rec.Action == estimator.Hit {
		recStyle = HitStyle
	}

	panel := PanelStyle
	if m.state.Pulsing() {
		panel = PulsePanelStyle
	}

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		HeadingStyle.Render(fmt.Sprintf("Results for Hand Total: %d", res.PlayerTotal)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, PanelStyle.Render(stand), " ", PanelStyle.Render(hit)),
		"",
		HeadingStyle.Render("Recommendation:"),
		recStyle.Render(rec.String()),
	))
}

// RenderStrategyTable renders the basic strategy chart
func RenderStrategyTable() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dimGray)).
		Headers(strategy.Headers...).
		Rows(strategy.Cells()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Bold(true)
			case col == 1:
				return style.Foreground(green)
			case col == 2:
				return style.Foreground(blue)
			}
			return style
		})
	return t.String()
}
