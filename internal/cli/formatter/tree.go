package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DayState is how a path day is shown in a day tree.
type DayState int

const (
	DayLocked DayState = iota
	DayNext
	DayDone
)

// DayItem is one row of a path's day tree.
type DayItem struct {
	Day    int
	Title  string
	State  DayState
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
)

// RenderDayTree renders a path's days under the path title with
// box-drawing connectors. Done days get a green ✔, the next day an amber ▶,
// and details are right-aligned.
func RenderDayTree(title string, items []DayItem) string {
	var b strings.Builder
	b.WriteString(Bold(title) + "\n")
	if len(items) == 0 {
		return b.String()
	}

	contents := make([]string, len(items))
	width := 0
	for i, item := range items {
		prefix := treeBranch
		if i == len(items)-1 {
			prefix = treeCorner
		}
		label := fmt.Sprintf("Day %d  %s", item.Day, item.Title)
		switch item.State {
		case DayDone:
			label = StyleGreen.Render("✔ ") + Dim(label)
		case DayNext:
			label = StyleYellowBold.Render("▶ " + label)
		default:
			label = "  " + label
		}
		contents[i] = Dim(prefix) + label
		width = max(width, lipgloss.Width(contents[i]))
	}

	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			pad := width - lipgloss.Width(contents[i])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render("[ "+item.Detail+" ]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
