// Package tui is the terminal front end: a bubbletea model that renders the
// widget's state and forwards tab selection back to it.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lei/jobtabs/internal/widget"
)

// KeyMap defines the keybindings
type KeyMap struct {
	Prev key.Binding
	Next key.Binding
	Jump key.Binding
	Quit key.Binding
}

var keys = KeyMap{
	Prev: key.NewBinding(key.WithKeys("left", "h", "up", "k"), key.WithHelp("←/h", "previous")),
	Next: key.NewBinding(key.WithKeys("right", "l", "down", "j", "tab"), key.WithHelp("→/l", "next")),
	Jump: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type stateMsg widget.State

type unmountedMsg struct{}

// Selector is the write capability the model needs from the widget
type Selector interface {
	Select(index int) error
	Unmount()
}

// Model renders widget states as they arrive on a subscription
type Model struct {
	selector Selector
	states   <-chan widget.State
	state    widget.State
	width    int
	height   int
	err      error
}

// NewModel creates a model fed by states, a widget subscription
func NewModel(selector Selector, states <-chan widget.State) Model {
	return Model{
		selector: selector,
		states:   states,
		state:    widget.State{Phase: widget.PhaseLoading},
	}
}

// State returns the last state the model rendered
func (m Model) State() widget.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return m.waitForState()
}

func (m Model) waitForState() tea.Cmd {
	states := m.states
	return func() tea.Msg {
		s, ok := <-states
		if !ok {
			return unmountedMsg{}
		}
		return stateMsg(s)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = widget.State(msg)
		return m, m.waitForState()

	case unmountedMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.selector.Unmount()
			return m, tea.Quit
		case m.state.Loading():
			return m, nil
		case key.Matches(msg, keys.Prev):
			m.step(-1)
		case key.Matches(msg, keys.Next):
			m.step(1)
		case key.Matches(msg, keys.Jump):
			index := int(msg.Runes[0] - '1')
			if index < len(m.state.Jobs) {
				m.selectIndex(index)
			}
		}
	}
	return m, nil
}

// step moves the selection by delta, wrapping around. An empty list or an
// out of range selection restarts from the first tab.
func (m *Model) step(delta int) {
	n := len(m.state.Jobs)
	if n == 0 {
		return
	}
	current := m.state.Selected
	if current < 0 || current >= n {
		m.selectIndex(0)
		return
	}
	m.selectIndex(((current+delta)%n + n) % n)
}

func (m *Model) selectIndex(index int) {
	m.err = m.selector.Select(index)
}

func (m Model) View() string {
	return View(m.state, m.width, m.err)
}
