package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// recentJournalEntries is how many entries the dashboard previews.
const recentJournalEntries = 3

// ── data types ───────────────────────────────────────────────────────────────

// dashboardData holds the loaded data for the dashboard view.
type dashboardData struct {
	paths    []*domain.GuidedPath
	statuses map[string]pathStatus
	last     *service.LastPlayed
	lastPath *domain.GuidedPath
	journal  []*domain.JournalEntry
}

// ── messages ─────────────────────────────────────────────────────────────────

type dashboardLoadedMsg struct {
	data dashboardData
	err  error
}

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardView is the home screen of the TUI.
// It shows a split-pane layout: left pane (selectable path list with
// progress) and right pane (continue card and recent journal entries).
type dashboardView struct {
	state   *SharedState
	data    *dashboardData
	loading bool
	err     error
	notice  string

	cursor int
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Home" }

func (v *dashboardView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
	}
	if v.data != nil && v.data.lastPath != nil {
		bindings = append(bindings, key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "continue")))
	}
	return append(bindings,
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paths")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new entry")),
		key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "journal")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	)
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *dashboardView) loadData() tea.Cmd {
	state := v.state
	app := state.App
	return func() tea.Msg {
		ctx := context.Background()

		data := dashboardData{
			paths:    app.Catalog.Paths(),
			statuses: state.pathStatuses(ctx),
		}

		last, ok, err := app.History.LastPlayed(ctx)
		if err != nil {
			app.logger().WarnContext(ctx, "loading last played failed", "error", err)
		}
		if ok {
			// A path removed from the content directory is silently dropped.
			if p, err := app.Catalog.Path(last.Ref); err == nil {
				data.last, data.lastPath = last, p
			}
		}

		entries, err := app.Journal.List(ctx, domain.JournalFilter{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if n := len(entries); n > recentJournalEntries {
			entries = entries[n-recentJournalEntries:]
		}
		data.journal = entries

		return dashboardLoadedMsg{data: data}
	}
}

func (v *dashboardView) showJournal() tea.Cmd {
	state := v.state
	return func() tea.Msg {
		entries, err := state.App.Journal.List(context.Background(), domain.JournalFilter{})
		if err != nil {
			return cmdOutputMsg{output: formatter.Failure(err.Error())}
		}
		return cmdOutputMsg{output: formatter.FormatJournal(entries, state.now())}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.data = &msg.data
		if v.cursor >= len(v.data.paths) {
			v.cursor = max(0, len(v.data.paths)-1)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case journalSavedMsg:
		v.notice = journalNotice(msg)
		return v, v.loadData()

	case tea.KeyMsg:
		v.notice = ""
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *dashboardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var paths []*domain.GuidedPath
	if v.data != nil {
		paths = v.data.paths
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down":
		if v.cursor < len(paths)-1 {
			v.cursor++
		}
	case "j":
		return v, v.showJournal()
	case "enter", "right":
		if v.cursor < len(paths) {
			p := paths[v.cursor]
			return v, playDay(v.state, p, v.data.statuses[p.Key()].NextDay())
		}
	case "c":
		if v.data != nil && v.data.lastPath != nil {
			return v, v.continueLast()
		}
	case "p":
		return v, pushView(newPathListView(v.state))
	case "n":
		return v, pushView(newJournalFormView(v.state, domain.JournalContext{}, ""))
	case "r":
		v.loading = true
		v.err = nil
		return v, v.loadData()
	}
	return v, nil
}

// continueLast resumes the last played path at its next day, or replays
// the last played day when that day has not been completed yet.
func (v *dashboardView) continueLast() tea.Cmd {
	p := v.data.lastPath
	st := v.data.statuses[p.Key()]
	day := st.NextDay()
	if !st.Known || v.data.last.Day > st.Count {
		day = v.data.last.Day
	}
	return playDay(v.state, p, day)
}

// ── view rendering ───────────────────────────────────────────────────────────

const dashLeftPaneWidth = 44

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if v.data == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	if v.notice != "" {
		b.WriteString("  " + v.notice + "\n\n")
	}

	if len(v.data.paths) == 0 {
		b.WriteString("  " + formatter.Dim("No guided paths installed. Check your content directory."))
		b.WriteString("\n")
		return b.String()
	}

	leftPane := v.renderLeftPane()
	rightPane := v.renderRightPane()

	if v.state.Width < 90 {
		b.WriteString(indent(leftPane, "  "))
		b.WriteString("\n")
		b.WriteString(indent(rightPane, "  "))
		return b.String()
	}

	rightWidth := max(v.state.Width-dashLeftPaneWidth-5, 20)

	leftCol := lipgloss.NewStyle().Width(dashLeftPaneWidth).Render(leftPane)
	divider := lipgloss.NewStyle().
		Foreground(formatter.ColorDim).
		Render("│")
	rightCol := lipgloss.NewStyle().Width(rightWidth).Render(rightPane)

	b.WriteString(indent(lipgloss.JoinHorizontal(lipgloss.Top, leftCol, " "+divider+" ", rightCol), "  "))
	return b.String()
}

// ── left pane: selectable path list ──────────────────────────────────────────

func (v *dashboardView) renderLeftPane() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("PATHS") + "\n\n")

	for i, p := range v.data.paths {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		st := v.data.statuses[p.Key()]
		b.WriteString(fmt.Sprintf("%s%s %s\n",
			cursor,
			nameStyle.Render(padRight(formatter.Truncate(p.Title, 20), 20)),
			formatter.RenderDayProgress(st.Count, p.TotalDays, st.Known),
		))
	}
	return b.String()
}

// ── right pane: continue card and recent journal ─────────────────────────────

func (v *dashboardView) renderRightPane() string {
	var b strings.Builder

	b.WriteString(formatter.StyleHeader.Render("CONTINUE") + "\n\n")
	if d := v.data; d.lastPath != nil {
		b.WriteString(formatter.Bold(d.lastPath.Title) + "\n")
		b.WriteString(formatter.Dim(fmt.Sprintf("Day %d · played %s",
			d.last.Day, formatter.HumanTimestamp(d.last.PlayedAt, v.state.now()))) + "\n")
	} else {
		b.WriteString(formatter.Dim("Pick a path on the left to begin.") + "\n")
	}

	b.WriteString("\n" + formatter.StyleHeader.Render("JOURNAL") + "\n\n")
	if len(v.data.journal) == 0 {
		b.WriteString(formatter.Dim("No entries yet. Press n to write one.") + "\n")
		return b.String()
	}
	for i := len(v.data.journal) - 1; i >= 0; i-- {
		e := v.data.journal[i]
		b.WriteString(fmt.Sprintf("%s %s\n",
			formatter.StyleBlue.Render(e.Date),
			formatter.Truncate(formatter.FirstLine(e.Content), 40)))
	}
	return b.String()
}
