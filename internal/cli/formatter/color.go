package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Warm palette, tuned for dark terminals.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// MoodStyle returns the color used for a journal mood tag.
func MoodStyle(m domain.Mood) lipgloss.Style {
	switch m {
	case domain.MoodHopeful, domain.MoodDetermined:
		return StyleGreen
	case domain.MoodCalm:
		return StyleBlue
	case domain.MoodAnxious:
		return StyleYellow
	case domain.MoodTired:
		return StylePurple
	default:
		return StyleDim
	}
}

// MoodBadge renders a mood as "● calm", or a dim dash when unset.
func MoodBadge(m domain.Mood) string {
	if m == domain.MoodNone {
		return StyleDim.Render("—")
	}
	return MoodStyle(m).Render("● " + string(m))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Success renders a green check followed by msg.
func Success(msg string) string {
	return StyleGreen.Render("✔") + " " + msg
}

// Failure renders a red cross followed by msg.
func Failure(msg string) string {
	return StyleRed.Render("✖") + " " + msg
}
