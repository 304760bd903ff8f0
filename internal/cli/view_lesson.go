package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/flow"
	"github.com/alexanderramin/encore/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// lessonView plays one path day. It owns the day's flow.Controller and
// maps keys onto controller operations.
type lessonView struct {
	state *SharedState
	path  *domain.GuidedPath
	day   domain.PathDay
	ctrl  *flow.Controller

	untrack func()
	update  *service.ProgressUpdate

	// Match game state for the screen currently shown.
	board       *flow.MatchBoard
	boardScreen string
	pickedLeft  int // -1 when no left item is selected

	notice string
	err    error
}

// newLessonView mounts day of path. The controller is created here so a
// malformed lesson fails before anything is shown.
func newLessonView(state *SharedState, path *domain.GuidedPath, day int) (*lessonView, error) {
	pd, err := path.DayNumber(day)
	if err != nil {
		return nil, err
	}
	ctrl, err := flow.New(pd.Lesson)
	if err != nil {
		return nil, fmt.Errorf("%s day %d: %w", path.Ref(), day, err)
	}
	v := &lessonView{
		state:      state,
		path:       path,
		day:        *pd,
		ctrl:       ctrl,
		pickedLeft: -1,
	}
	v.untrack = state.App.Progress.Track(context.Background(), path, ctrl, func(u service.ProgressUpdate) {
		v.update = &u
	})
	return v, nil
}

// playDay pushes a lesson view for day of path. A lesson that cannot be
// driven is reported in the output pane instead.
func playDay(state *SharedState, path *domain.GuidedPath, day int) tea.Cmd {
	v, err := newLessonView(state, path, day)
	if err != nil {
		state.App.logger().Warn("opening lesson failed", "path", path.Ref(), "day", day, "error", err)
		return showOutput(formatter.Failure(err.Error()))
	}
	return pushView(v)
}

func (v *lessonView) ID() ViewID { return ViewLesson }

func (v *lessonView) Title() string {
	return fmt.Sprintf("%s · Day %d", v.path.Title, v.day.Day)
}

func (v *lessonView) ShortHelp() []key.Binding {
	back := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc/←", "back"))
	next := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter/→", "next"))

	switch v.ctrl.State() {
	case flow.StateCompleted:
		bindings := []key.Binding{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done"))}
		if _, ok := v.nextDay(); ok {
			bindings = append(bindings, key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next day")))
		}
		return bindings
	case flow.StateFinal:
		bindings := []key.Binding{key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete"))}
		if v.link() != nil {
			bindings = append(bindings,
				key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
				key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")))
		}
		return append(bindings, back)
	}

	screen, _ := v.ctrl.Current()
	switch screen.Kind {
	case domain.ScreenChoice:
		return []key.Binding{key.NewBinding(key.WithKeys("1", "2"), key.WithHelp("1/2", "choose")), back}
	case domain.ScreenJournal:
		return []key.Binding{
			key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write")),
			key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "skip")),
			back,
		}
	case domain.ScreenMatch:
		return []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1-9 then a-i", "pair")),
			next, back,
		}
	}
	return []key.Binding{next, back}
}

func (v *lessonView) Init() tea.Cmd {
	app := v.state.App
	ref, day := v.path.Ref(), v.day.Day
	return func() tea.Msg {
		ctx := context.Background()
		if err := app.History.MarkPlayed(ctx, ref, day); err != nil {
			app.logger().WarnContext(ctx, "recording last played failed", "path", ref, "error", err)
		}
		return nil
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *lessonView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case journalSavedMsg:
		v.notice = journalNotice(msg)
		if msg.err == nil && msg.entry != nil && v.onScreen(domain.ScreenJournal) {
			v.advance()
		}
		return v, nil

	case journalCancelledMsg:
		v.notice = formatter.Dim("Nothing saved. w: write · →: skip")
		return v, nil

	case quizSavedMsg:
		if msg.err != nil {
			v.notice = formatter.Failure("Couldn't save your result: " + msg.err.Error())
		}
		return v, nil

	case tea.KeyMsg:
		v.notice = ""
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *lessonView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if v.ctrl.State() == flow.StateCompleted {
		switch k {
		case "enter", "esc", "left":
			return v, v.leave()
		case "n":
			return v, v.playNextDay()
		}
		return v, nil
	}

	// Board letters run a-i, so a match screen sees keys before "h" means back.
	if v.onScreen(domain.ScreenMatch) {
		screen, _ := v.ctrl.Current()
		if cmd, handled := v.handleMatchKey(screen, k); handled {
			return v, cmd
		}
	}

	switch k {
	case "esc", "left", "h":
		return v, v.back()
	case "c":
		if v.ctrl.State() == flow.StateFinal {
			return v, v.complete()
		}
	case "o":
		if v.ctrl.State() == flow.StateFinal {
			return v, v.openLink()
		}
	case "y":
		if v.ctrl.State() == flow.StateFinal {
			return v, v.copyLink()
		}
	}

	screen, _ := v.ctrl.Current()
	if v.ctrl.State() == flow.StateInProgress {
		switch screen.Kind {
		case domain.ScreenChoice:
			return v, v.handleChoiceKey(k)
		case domain.ScreenJournal:
			if k == "w" || k == "enter" {
				form := newJournalFormView(v.state, v.state.journalContext(v.path, v.day), screen.Prompt)
				return v, pushView(form.onCancel(cancelJournal))
			}
		}
	}

	switch k {
	case "enter", "right", "l", " ":
		if v.ctrl.State() == flow.StateFinal {
			return v, v.complete()
		}
		if screen.Kind == domain.ScreenChoice && v.ctrl.State() == flow.StateInProgress {
			v.notice = formatter.Dim("Pick 1 or 2.")
			return v, nil
		}
		v.advance()
	}
	return v, nil
}

func (v *lessonView) handleChoiceKey(k string) tea.Cmd {
	var n int
	switch k {
	case "1":
		n = 0
	case "2":
		n = 1
	default:
		if k == "enter" || k == "right" || k == "l" || k == " " {
			v.notice = formatter.Dim("Pick 1 or 2.")
		}
		return nil
	}
	if _, err := v.ctrl.Choose(n); err != nil {
		v.err = err
	}
	v.syncBoard()
	return nil
}

func (v *lessonView) advance() {
	v.ctrl.Advance()
	v.syncBoard()
}

func (v *lessonView) back() tea.Cmd {
	ev := v.ctrl.GoBack()
	v.syncBoard()
	if ev.Kind == flow.EventExited {
		return v.leave()
	}
	return nil
}

func (v *lessonView) leave() tea.Cmd {
	v.stopTracking()
	return tea.Batch(popView(), refreshViews)
}

// stopTracking detaches the progress tracker. It is safe to call twice.
func (v *lessonView) stopTracking() {
	if v != nil && v.untrack != nil {
		v.untrack()
		v.untrack = nil
	}
}

func (v *lessonView) complete() tea.Cmd {
	if _, err := v.ctrl.Complete(); err != nil && !errors.Is(err, flow.ErrAlreadyCompleted) {
		v.err = err
	}
	return nil
}

func (v *lessonView) nextDay() (int, bool) {
	next := v.day.Day + 1
	if _, err := v.path.DayNumber(next); err != nil {
		return 0, false
	}
	return next, true
}

func (v *lessonView) playNextDay() tea.Cmd {
	next, ok := v.nextDay()
	if !ok {
		return nil
	}
	nv, err := newLessonView(v.state, v.path, next)
	if err != nil {
		v.err = err
		return nil
	}
	v.stopTracking()
	return replaceView(nv)
}

// ── links ────────────────────────────────────────────────────────────────────

func (v *lessonView) link() *domain.Link {
	screen, ok := v.ctrl.Current()
	if !ok || screen.Kind != domain.ScreenFinal {
		return nil
	}
	return screen.Link
}

func (v *lessonView) openLink() tea.Cmd {
	l := v.link()
	if l == nil {
		return nil
	}
	app := v.state.App
	if err := app.Opener.Open(context.Background(), l.URL); err != nil {
		app.logger().Warn("opening link failed", "url", l.URL, "error", err)
		v.notice = formatter.Failure("Couldn't open the link. Press y to copy it instead.")
		return nil
	}
	v.notice = formatter.Success("Opened " + l.URL)
	return nil
}

func (v *lessonView) copyLink() tea.Cmd {
	l := v.link()
	if l == nil {
		return nil
	}
	if err := v.state.App.Clipboard.Copy(l.URL); err != nil {
		v.notice = formatter.Failure("Couldn't copy: " + err.Error())
		return nil
	}
	v.notice = formatter.Success("Link copied.")
	return nil
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *lessonView) onScreen(kind domain.ScreenKind) bool {
	s, ok := v.ctrl.Current()
	return ok && v.ctrl.State() == flow.StateInProgress && s.Kind == kind
}

func (v *lessonView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + v.stepLine() + "\n\n")

	if v.ctrl.State() == flow.StateCompleted {
		b.WriteString(v.renderCompleted())
	} else if screen, ok := v.ctrl.Current(); ok {
		b.WriteString(v.renderScreen(screen))
	}

	if v.err != nil {
		b.WriteString("\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
	}
	if v.notice != "" {
		b.WriteString("\n  " + v.notice + "\n")
	}
	return b.String()
}

func (v *lessonView) stepLine() string {
	label := fmt.Sprintf("Day %d · %s", v.day.Day, v.day.Title)
	step, total := v.ctrl.StepNumber()
	switch v.ctrl.State() {
	case flow.StateNotStarted:
		return formatter.Dim(label)
	case flow.StateInProgress:
		pct := float64(step) / float64(max(total, 1))
		return formatter.Dim(label) + "  " + formatter.RenderProgress(pct, 12)
	default:
		return formatter.Dim(label) + "  " + formatter.RenderProgress(1, 12)
	}
}

func (v *lessonView) renderScreen(screen domain.Screen) string {
	var b strings.Builder
	if screen.Title != "" {
		b.WriteString("  " + formatter.StyleHeader.Render(screen.Title) + "\n\n")
	}

	body, err := flow.NarrativeFor(v.ctrl.Lesson(), screen, v.ctrl.Choices())
	if err != nil {
		body = screen.Body
	}
	if body != "" {
		b.WriteString(indent(v.state.App.Markdown.Render(body, v.state.ContentWidth()), "  ") + "\n")
	}

	switch screen.Kind {
	case domain.ScreenChoice:
		b.WriteString("\n")
		for i, o := range screen.Options {
			b.WriteString(fmt.Sprintf("  %s %s\n", formatter.StyleYellowBold.Render(fmt.Sprintf("%d)", i+1)), o.Text))
		}
	case domain.ScreenJournal:
		b.WriteString("\n  " + formatter.StyleBlue.Render("✎ "+screen.Prompt) + "\n")
		b.WriteString("  " + formatter.Dim("w: write an entry · →: skip") + "\n")
	case domain.ScreenMatch:
		b.WriteString("\n" + v.renderBoard())
	case domain.ScreenFinal:
		if screen.Link != nil {
			b.WriteString("\n  " + formatter.Bold(screen.Link.Label) + "\n")
			b.WriteString("  " + formatter.StyleBlue.Render(screen.Link.URL) + "\n")
		}
		b.WriteString("\n  " + formatter.Dim("c: mark this day complete") + "\n")
	case domain.ScreenIntro:
		b.WriteString("\n  " + formatter.Dim("enter: "+screen.Button()) + "\n")
	}
	return b.String()
}

func (v *lessonView) renderCompleted() string {
	var b strings.Builder
	b.WriteString("  " + formatter.Success(formatter.Bold(fmt.Sprintf("Day %d complete", v.day.Day))) + "\n\n")
	switch {
	case v.update == nil:
	case v.update.Err != nil:
		b.WriteString("  " + formatter.StyleYellow.Render("Your progress could not be saved: "+v.update.Err.Error()) + "\n")
	default:
		b.WriteString("  " + formatter.RenderDayProgress(v.update.Count, v.path.TotalDays, true) + "\n")
		if domain.IsComplete(v.update.Count, v.path.TotalDays) {
			b.WriteString("\n  " + formatter.StyleGreen.Render("You finished "+v.path.Title+"!") + "\n")
		}
	}
	if next, ok := v.nextDay(); ok {
		b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("n: continue with day %d", next)) + "\n")
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
