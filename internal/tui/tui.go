package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/bjodds/internal/card"
	"github.com/lox/bjodds/internal/estimator"
	"github.com/lox/bjodds/internal/session"
)

// focusButton is the focus index of the Calculate button, after the three
// selectors.
const focusButton = 3

// Options configures the TUI model
type Options struct {
	Pulse     time.Duration
	StartView session.View
	Clock     quartz.Clock
}

// Model is the Bubble Tea model for the analyzer form
type Model struct {
	state  *session.State
	logger *log.Logger

	keys keyMap
	help help.Model

	focus     int
	lastErr   string
	pulseDone chan struct{}
	quitting  bool

	width  int
	height int
}

// pulseEndMsg tells the model a result highlight has cleared
type pulseEndMsg struct{}

// NewModel creates the TUI model and its session state
func NewModel(logger *log.Logger, opts Options) *Model {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}

	m := &Model{
		logger:    logger.WithPrefix("tui"),
		keys:      newKeyMap(),
		help:      help.New(),
		pulseDone: make(chan struct{}, 1),
	}
	m.state = session.New(
		session.WithClock(opts.Clock),
		session.WithPulse(opts.Pulse),
		session.WithLogger(logger),
		session.WithPulseEnd(m.notifyPulseEnd),
	)
	m.state.SetView(opts.StartView)
	m.syncKeys()
	return m
}

// State exposes the session behind the form
func (m *Model) State() *session.State {
	return m.state
}

// Focus returns the focused control: 0-2 for selectors, 3 for the button
func (m *Model) Focus() int {
	return m.focus
}

func (m *Model) notifyPulseEnd() {
	select {
	case m.pulseDone <- struct{}{}:
	default:
		// a redraw is already pending
	}
}

// listenForPulseEnd waits for the session to clear a highlight
func (m *Model) listenForPulseEnd() tea.Cmd {
	return func() tea.Msg {
		<-m.pulseDone
		return pulseEndMsg{}
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return m.listenForPulseEnd()
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pulseEndMsg:
		return m, m.listenForPulseEnd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		if m.state.View() == session.Home {
			return m.updateHome(msg)
		}
		return m.updateCalculator(msg)
	}

	return m, nil
}

func (m *Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.QuitHome):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		m.state.SetView(session.Calculator)
		m.focus = 0
	}
	return m, nil
}

func (m *Model) updateCalculator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	defer m.syncKeys()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.state.SetView(session.Home)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % (focusButton + 1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + focusButton) % (focusButton + 1)
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		// The button is disabled until every selector has a card.
		if key.Matches(msg, m.keys.Calculate) {
			m.calculate()
		}
		return m, nil
	}

	if m.focus == focusButton {
		return m, nil
	}
	slot := session.Slots[m.focus]

	switch {
	case key.Matches(msg, m.keys.Cycle):
		m.selectCard(slot, m.state.Card(slot).Next())
	case key.Matches(msg, m.keys.CycleBack):
		m.selectCard(slot, m.state.Card(slot).Prev())
	case key.Matches(msg, m.keys.Clear):
		m.selectCard(slot, card.None)
	case msg.Type == tea.KeyRunes:
		text := strings.TrimSpace(string(msg.Runes))
		if text == "" {
			return m, nil
		}
		if text == "0" {
			text = card.Ten.String()
		}
		sym, err := card.Parse(text)
		if err != nil {
			m.lastErr = err.Error()
			return m, nil
		}
		m.selectCard(slot, sym)
		if m.focus < focusButton {
			m.focus++
		}
	}

	return m, nil
}

func (m *Model) selectCard(slot session.Slot, sym card.Symbol) {
	if err := m.state.Select(slot, sym); err != nil {
		m.lastErr = err.Error()
		return
	}
	m.lastErr = ""
}

func (m *Model) calculate() {
	res, err := m.state.Compute()
	if err != nil {
		if !errors.Is(err, estimator.ErrIncompleteHand) {
			m.logger.Error("Estimate failed", "error", err)
		}
		m.lastErr = err.Error()
		return
	}
	m.lastErr = ""
	m.logger.Info("Calculated",
		"total", res.PlayerTotal,
		"dealer", res.DealerUpcard,
		"recommendation", estimator.Recommend(res).Action)
}

// syncKeys enables the calculate binding only when the hand is complete
func (m *Model) syncKeys() {
	m.keys.Calculate.SetEnabled(m.state.CanCompute())
}

// Run starts the program and blocks until the user quits or ctx is done
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	defer m.state.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
