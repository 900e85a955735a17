// Package render turns a widget.State into output. Every function here is
// pure: the same state always produces the same bytes.
package render

import (
	"strconv"

	"github.com/lei/jobtabs/internal/models"
	"github.com/lei/jobtabs/internal/widget"
)

// Button is one selectable control in the button list
type Button struct {
	Index  int
	Label  string
	Active bool
}

// Detail is the content of the detail panel. Empty is set when there is
// no job at the selected index.
type Detail struct {
	Empty   bool
	Title   string
	Company string
	Dates   string
	Duties  []string
}

// Buttons builds the button list, one control per job in server order
func Buttons(s widget.State) []Button {
	buttons := make([]Button, 0, len(s.Jobs))
	for i, job := range s.Jobs {
		buttons = append(buttons, Button{
			Index:  i,
			Label:  buttonLabel(job, i),
			Active: i == s.Selected,
		})
	}
	return buttons
}

// JobDetail builds the detail panel for the selected job
func JobDetail(s widget.State) Detail {
	job, ok := s.Current()
	if !ok {
		return Detail{Empty: true}
	}
	return Detail{
		Title:   job.Title,
		Company: job.Company,
		Dates:   job.Dates,
		Duties:  job.Duties,
	}
}

func buttonLabel(job models.Job, index int) string {
	switch {
	case job.Company != "":
		return job.Company
	case job.Title != "":
		return job.Title
	default:
		return "Job " + strconv.Itoa(index+1)
	}
}
