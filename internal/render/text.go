package render

import (
	"strings"

	"github.com/lei/jobtabs/internal/widget"
)

// LoadingText is the plain-text loading indicator
const LoadingText = "Loading...\n"

// Text renders s as plain text. Active tabs are bracketed.
func Text(s widget.State) string {
	if s.Loading() {
		return LoadingText
	}

	var b strings.Builder
	buttons := Buttons(s)
	if len(buttons) == 0 {
		b.WriteString("(no jobs)\n")
	}
	for i, btn := range buttons {
		if i > 0 {
			b.WriteString(" ")
		}
		if btn.Active {
			b.WriteString("[" + btn.Label + "]")
		} else {
			b.WriteString(" " + btn.Label + " ")
		}
	}
	if len(buttons) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("\n")

	detail := JobDetail(s)
	if detail.Empty {
		b.WriteString("No job selected.\n")
		return b.String()
	}

	b.WriteString(detail.Title + "\n")
	b.WriteString(detail.Company + "\n")
	b.WriteString(detail.Dates + "\n")
	for _, duty := range detail.Duties {
		b.WriteString("  > " + duty + "\n")
	}
	return b.String()
}
