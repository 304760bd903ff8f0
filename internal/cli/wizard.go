package cli

import (
	"fmt"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// encoreHuhTheme returns a huh theme using the formatter palette.
func encoreHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// dayOptions lists a path's days for a picker. Days after the next
// unplayed one are marked but still selectable.
func dayOptions(path *domain.GuidedPath, st pathStatus) []huh.Option[int] {
	next := st.NextDay()
	opts := make([]huh.Option[int], 0, len(path.Days))
	for _, d := range path.Days {
		label := fmt.Sprintf("Day %d · %s", d.Day, d.Title)
		switch {
		case st.Known && d.Day <= st.Count:
			label += "  ✔"
		case d.Day == next:
			label += "  ← next"
		}
		opts = append(opts, huh.NewOption(label, d.Day))
	}
	return opts
}

// wizardSelectDay builds a form picking one day of path into result.
func wizardSelectDay(path *domain.GuidedPath, st pathStatus, result *int) *huh.Form {
	if len(path.Days) == 0 {
		return nil
	}
	*result = st.NextDay()
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(path.Title).
				Description("Pick a day to play").
				Options(dayOptions(path, st)...).
				Value(result),
		),
	).WithTheme(encoreHuhTheme()).WithShowHelp(false)
}

// moodOptions lists the mood tags with a leading "no mood" entry.
func moodOptions() []huh.Option[domain.Mood] {
	opts := []huh.Option[domain.Mood]{huh.NewOption("(skip)", domain.MoodNone)}
	for _, m := range domain.AllMoods {
		opts = append(opts, huh.NewOption(string(m), m))
	}
	return opts
}
