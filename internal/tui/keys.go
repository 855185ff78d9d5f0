package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start     key.Binding
	Back      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Cycle     key.Binding
	CycleBack key.Binding
	Clear     key.Binding
	Calculate key.Binding
	Quit      key.Binding
	QuitHome  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start analyzing"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to home"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("←/→", "change card"),
		),
		CycleBack: key.NewBinding(
			key.WithKeys("left"),
		),
		Clear: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("del", "clear"),
		),
		Calculate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "calculate"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		QuitHome: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// homeKeys and calculatorKeys adapt keyMap to help.KeyMap per view.
type homeKeys keyMap

func (k homeKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.QuitHome}
}

func (k homeKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type calculatorKeys keyMap

func (k calculatorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Cycle, k.Clear, k.Calculate, k.Back, k.Quit}
}

func (k calculatorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
