package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

const journalCharLimit = 4000

// journalSavedMsg reports the outcome of a journal capture. A nil entry
// with a nil err means the text was blank and nothing was written.
type journalSavedMsg struct {
	entry *domain.JournalEntry
	err   error
}

// journalCancelledMsg is sent to the view below when the form is closed
// without saving.
type journalCancelledMsg struct{}

func cancelJournal() tea.Cmd {
	return func() tea.Msg { return journalCancelledMsg{} }
}

// journalFields holds the form-bound values. A new form starts empty.
type journalFields struct {
	content string
	mood    domain.Mood
}

// newJournalFormView builds the capture form: free text plus an optional
// mood tag. On submit the entry is saved and a journalSavedMsg is sent to
// the view below.
func newJournalFormView(state *SharedState, jc domain.JournalContext, prompt string) *wizardView {
	if prompt == "" {
		prompt = "What's on your mind?"
	}
	f := &journalFields{}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(prompt).
				Description(journalFormDescription(jc)).
				CharLimit(journalCharLimit).
				Value(&f.content),
			huh.NewSelect[domain.Mood]().
				Title("Mood (optional)").
				Options(moodOptions()...).
				Value(&f.mood),
		),
	).WithTheme(encoreHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg { return saveJournal(context.Background(), state.App, jc, f) }
	}
	return newWizardView(state, "Journal", form, done)
}

func journalFormDescription(jc domain.JournalContext) string {
	if jc.PathTitle == "" {
		return "Free entry"
	}
	return fmt.Sprintf("%s · Day %d", jc.PathTitle, jc.Day)
}

func saveJournal(ctx context.Context, app *App, jc domain.JournalContext, f *journalFields) tea.Msg {
	entry, err := app.Journal.Capture(ctx, service.CaptureInput{
		Context: jc,
		Content: f.content,
		Mood:    f.mood,
	})
	if err != nil {
		app.logger().ErrorContext(ctx, "saving journal entry failed", "path", jc.PathTag, "error", err)
	}
	return journalSavedMsg{entry: entry, err: err}
}

// journalNotice renders the outcome of a capture for display.
func journalNotice(msg journalSavedMsg) string {
	switch {
	case msg.err != nil:
		return formatter.Failure("Couldn't save your entry: " + msg.err.Error())
	case msg.entry == nil:
		return formatter.Dim("Nothing written, nothing saved.")
	default:
		return formatter.Success("Saved to your journal.")
	}
}
