package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lei/jobtabs/internal/render"
	"github.com/lei/jobtabs/internal/widget"
)

var (
	highlight = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}
	subtle    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	buttonStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(subtle)
	activeButtonStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(highlight).
				BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderForeground(highlight)
	panelStyle   = lipgloss.NewStyle().Padding(0, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	companyStyle = lipgloss.NewStyle().Foreground(highlight).Padding(0, 1).
			Border(lipgloss.RoundedBorder()).BorderForeground(highlight)
	datesStyle = lipgloss.NewStyle().Foreground(subtle)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle  = lipgloss.NewStyle().Foreground(subtle).MarginTop(1)
)

const helpLine = "←/→ switch tab • 1-9 jump • q quit"

// View renders a state for the terminal. Like the other renderers it is a
// pure function of its inputs.
func View(s widget.State, width int, err error) string {
	if s.Loading() {
		return panelStyle.Render("Loading...")
	}

	buttons := renderButtons(render.Buttons(s))
	detail := renderDetail(render.JobDetail(s), width-lipgloss.Width(buttons))

	body := lipgloss.JoinHorizontal(lipgloss.Top, buttons, detail)
	sections := []string{body}
	if err != nil {
		sections = append(sections, errorStyle.Render(err.Error()))
	}
	sections = append(sections, helpStyle.Render(helpLine))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderButtons(buttons []render.Button) string {
	if len(buttons) == 0 {
		return buttonStyle.Render("(no jobs)")
	}
	rows := make([]string, 0, len(buttons))
	for _, b := range buttons {
		if b.Active {
			rows = append(rows, activeButtonStyle.Render(b.Label))
		} else {
			rows = append(rows, buttonStyle.Render(" "+b.Label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderDetail(d render.Detail, width int) string {
	style := panelStyle
	if width > 20 {
		style = style.Width(width)
	}
	if d.Empty {
		return style.Render(datesStyle.Render("No job selected."))
	}

	lines := []string{
		titleStyle.Render(d.Title),
		companyStyle.Render(d.Company),
		datesStyle.Render(d.Dates),
	}
	for _, duty := range d.Duties {
		lines = append(lines, "» "+duty)
	}
	return style.Render(strings.Join(lines, "\n"))
}
