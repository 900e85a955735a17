package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/lei/jobtabs/internal/models"
	"github.com/lei/jobtabs/internal/widget"
)

type fakeSelector struct {
	selected  []int
	unmounted bool
	err       error
}

func (f *fakeSelector) Select(index int) error {
	f.selected = append(f.selected, index)
	return f.err
}

func (f *fakeSelector) Unmount() {
	f.unmounted = true
}

var jobs = []models.Job{
	{Title: "Full Stack Web Developer", Company: "TOMMY", Dates: "December 2015 - Present", Duties: []string{"Ship things"}},
	{Title: "Front-End Engineer", Company: "BIGDROP"},
	{Title: "Engineering Intern", Company: "CUKER"},
}

func ready(selected int) stateMsg {
	return stateMsg(widget.State{Phase: widget.PhaseReady, Jobs: jobs, Selected: selected})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_InitWaitsForState(t *testing.T) {
	states := make(chan widget.State, 1)
	m := NewModel(&fakeSelector{}, states)

	states <- widget.State{Phase: widget.PhaseReady, Jobs: jobs}
	msg := m.Init()()
	require.Equal(t, ready(0), msg)

	close(states)
	require.Equal(t, unmountedMsg{}, m.Init()())
}

func TestModel_LoadingView(t *testing.T) {
	m := NewModel(&fakeSelector{}, nil)

	require.True(t, m.State().Loading())
	require.Contains(t, m.View(), "Loading...")
	require.NotContains(t, m.View(), "TOMMY")
}

func TestModel_ReadyView(t *testing.T) {
	m := update(t, NewModel(&fakeSelector{}, nil), ready(0))

	view := m.View()
	require.NotContains(t, view, "Loading...")
	for _, job := range jobs {
		require.Contains(t, view, job.Company)
	}
	require.Contains(t, view, "Full Stack Web Developer")
}

func TestModel_EmptyAndOutOfRange(t *testing.T) {
	empty := stateMsg(widget.State{Phase: widget.PhaseReady, Jobs: []models.Job{}})
	m := update(t, NewModel(&fakeSelector{}, nil), empty)
	require.Contains(t, m.View(), "(no jobs)")
	require.Contains(t, m.View(), "No job selected.")

	m = update(t, m, ready(12))
	require.Contains(t, m.View(), "No job selected.")
}

func TestModel_Keys(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		key      tea.KeyMsg
		want     []int
	}{
		{"right", 0, tea.KeyMsg{Type: tea.KeyRight}, []int{1}},
		{"l wraps", 2, runes("l"), []int{0}},
		{"left wraps", 0, tea.KeyMsg{Type: tea.KeyLeft}, []int{2}},
		{"h", 2, runes("h"), []int{1}},
		{"jump", 0, runes("3"), []int{2}},
		{"jump past end ignored", 0, runes("9"), nil},
		{"out of range restarts", 7, runes("l"), []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := &fakeSelector{}
			m := update(t, NewModel(sel, nil), ready(tt.selected))
			update(t, m, tt.key)
			require.Equal(t, tt.want, sel.selected)
		})
	}
}

func TestModel_KeysIgnoredWhileLoading(t *testing.T) {
	sel := &fakeSelector{}
	m := NewModel(sel, nil)

	update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	update(t, m, runes("1"))
	require.Empty(t, sel.selected)
}

func TestModel_EmptyListIgnoresNavigation(t *testing.T) {
	sel := &fakeSelector{}
	empty := stateMsg(widget.State{Phase: widget.PhaseReady, Jobs: []models.Job{}})
	m := update(t, NewModel(sel, nil), empty)

	update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	update(t, m, runes("1"))
	require.Empty(t, sel.selected)
}

func TestModel_Quit(t *testing.T) {
	sel := &fakeSelector{}
	m := NewModel(sel, nil)

	_, cmd := m.Update(runes("q"))
	require.True(t, sel.unmounted)
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestModel_SelectErrorShown(t *testing.T) {
	sel := &fakeSelector{err: errors.New("widget unmounted")}
	m := update(t, NewModel(sel, nil), ready(0))
	m = update(t, m, runes("2"))

	require.True(t, strings.Contains(m.View(), "widget unmounted"))
}

func TestModel_SelectErrorClearedOnSuccess(t *testing.T) {
	sel := &fakeSelector{err: errors.New("widget unmounted")}
	m := update(t, NewModel(sel, nil), ready(0))
	m = update(t, m, runes("2"))
	require.Contains(t, m.View(), "widget unmounted")

	sel.err = nil
	m = update(t, m, runes("3"))
	require.NotContains(t, m.View(), "widget unmounted")
}

func TestView_Idempotent(t *testing.T) {
	s := widget.State{Phase: widget.PhaseReady, Jobs: jobs, Selected: 1}
	require.Equal(t, View(s, 80, nil), View(s, 80, nil))
}
