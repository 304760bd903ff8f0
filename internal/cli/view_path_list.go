package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pathsLoadedMsg struct {
	statuses map[string]pathStatus
}

// pathListView lists every installed path grouped by category, with the
// selected path's day tree beneath the list.
type pathListView struct {
	state    *SharedState
	paths    []*domain.GuidedPath
	statuses map[string]pathStatus
	cursor   int
	loading  bool

	// Filtering
	filtering bool
	filter    string
}

func newPathListView(state *SharedState) *pathListView {
	return &pathListView{
		state:   state,
		paths:   state.App.Catalog.Paths(),
		loading: true,
	}
}

func (v *pathListView) ID() ViewID    { return ViewPathList }
func (v *pathListView) Title() string { return "Paths" }

func (v *pathListView) capturingInput() bool { return v.filtering }

func (v *pathListView) ShortHelp() []key.Binding {
	if v.filtering {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play next day")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "pick day")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	}
}

func (v *pathListView) Init() tea.Cmd {
	return v.loadStatuses()
}

func (v *pathListView) loadStatuses() tea.Cmd {
	state := v.state
	return func() tea.Msg {
		return pathsLoadedMsg{statuses: state.pathStatuses(context.Background())}
	}
}

func (v *pathListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pathsLoadedMsg:
		v.loading = false
		v.statuses = msg.statuses
		return v, nil

	case refreshViewMsg:
		return v, v.loadStatuses()

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *pathListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visiblePaths()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "enter", "right", "l":
		if v.cursor < len(visible) {
			p := visible[v.cursor]
			return v, playDay(v.state, p, v.statuses[p.Key()].NextDay())
		}
	case "d":
		if v.cursor < len(visible) {
			return v, v.pickDay(visible[v.cursor])
		}
	case "/":
		v.filtering = true
		v.filter = ""
	}
	return v, nil
}

func (v *pathListView) pickDay(p *domain.GuidedPath) tea.Cmd {
	state := v.state
	day := new(int)
	form := wizardSelectDay(p, v.statuses[p.Key()], day)
	return startWizardCmd(state, "Pick day", form, func() tea.Cmd {
		return playDay(state, p, *day)
	})
}

func (v *pathListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
		return v, nil
	case tea.KeyEnter:
		v.filtering = false
		return v, nil
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			r := []rune(v.filter)
			v.filter = string(r[:len(r)-1])
			v.cursor = 0
		}
	default:
		if msg.Type == tea.KeyRunes {
			v.filter += string(msg.Runes)
			v.cursor = 0
		}
	}
	return v, nil
}

func (v *pathListView) visiblePaths() []*domain.GuidedPath {
	if v.filter == "" {
		return v.paths
	}
	lf := strings.ToLower(v.filter)
	var filtered []*domain.GuidedPath
	for _, p := range v.paths {
		if strings.Contains(strings.ToLower(p.Title), lf) ||
			strings.Contains(strings.ToLower(p.Ref()), lf) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (v *pathListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading paths...")
	}

	visible := v.visiblePaths()

	var b strings.Builder
	b.WriteString("\n")

	if v.filtering || v.filter != "" {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter)
		if v.filtering {
			b.WriteString("█")
		}
		b.WriteString("\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No paths found.") + "\n")
		return b.String()
	}

	category := ""
	for i, p := range visible {
		if p.CategoryID != category {
			category = p.CategoryID
			title := category
			if cat, ok := v.state.App.Catalog.Category(category); ok {
				title = cat.Title
			}
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("  " + formatter.StyleHeader.Render(strings.ToUpper(title)) + "\n")
		}

		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		st := v.statuses[p.Key()]
		b.WriteString(fmt.Sprintf("  %s%s %s\n",
			cursor,
			nameStyle.Render(padRight(p.Title, 24)),
			formatter.RenderDayProgress(st.Count, p.TotalDays, st.Known),
		))
	}

	if v.cursor < len(visible) {
		b.WriteString("\n" + indent(v.renderDetail(visible[v.cursor]), "  "))
	}
	return b.String()
}

func (v *pathListView) renderDetail(p *domain.GuidedPath) string {
	st := v.statuses[p.Key()]
	next := st.NextDay()

	items := make([]formatter.DayItem, 0, len(p.Days))
	for _, d := range p.Days {
		item := formatter.DayItem{Day: d.Day, Title: d.Title}
		switch {
		case st.Known && d.Day <= st.Count:
			item.State = formatter.DayDone
		case d.Day == next && !st.Complete():
			item.State = formatter.DayNext
			item.Detail = "next"
		}
		items = append(items, item)
	}

	var b strings.Builder
	if p.Summary != "" {
		b.WriteString(formatter.Dim(p.Summary) + "\n\n")
	}
	b.WriteString(formatter.RenderDayTree(p.Title, items))
	if !st.Known {
		b.WriteString(formatter.StyleYellow.Render("Progress could not be loaded.") + "\n")
	}
	return b.String()
}

// padRight pads a string to a minimum display width, truncating if needed.
func padRight(s string, width int) string {
	s = formatter.Truncate(s, width)
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}
