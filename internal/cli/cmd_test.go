package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/config"
	"github.com/alexanderramin/encore/internal/content"
	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/kv"
	"github.com/alexanderramin/encore/internal/launcher"
	"github.com/alexanderramin/encore/internal/repository"
	"github.com/alexanderramin/encore/internal/service"
	"github.com/alexanderramin/encore/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB and the built-in
// catalog. Links go to a launcher.Recorder and RunProgram only records the
// model it was given.
type testEnv struct {
	app      *App
	links    *launcher.Recorder
	programs []tea.Model
}

func testApp(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	store := kv.NewSQLiteStore(database, db.NewSQLiteUnitOfWork(database))
	clock := func() time.Time { return testNow }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	catalog, err := content.Default(context.Background())
	require.NoError(t, err)

	links := &launcher.Recorder{}
	env := &testEnv{links: links}
	env.app = &App{
		Config:    config.DefaultConfig(),
		Catalog:   catalog,
		Journal:   service.NewJournalService(repository.NewSQLiteJournalRepo(database), clock),
		Progress:  service.NewProgressService(repository.NewSQLiteProgressRepo(database), logger),
		Quiz:      service.NewQuizService(store, clock),
		History:   service.NewHistoryService(store, clock),
		Opener:    links,
		Clipboard: links,
		Markdown:  formatter.NewMarkdown(""),
		Logger:    logger,
		Clock:     clock,
		Seed:      42,

		IsInteractive: func() bool { return true },
		RunProgram: func(m tea.Model, _ io.Reader, _ io.Writer) error {
			env.programs = append(env.programs, m)
			return nil
		},
	}
	env.app.Config.ContentDir = ""
	return env
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, app, "", args...)
}

func executeCmdWithInput(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func completeDays(t *testing.T, app *App, ref string, n int) {
	t.Helper()
	p, err := app.Catalog.Path(ref)
	require.NoError(t, err)
	for range n {
		_, err := app.Progress.RecordDayComplete(context.Background(), p.CategoryID, p.ID)
		require.NoError(t, err)
	}
}

// --- root ---

func TestRootCmd_NoArgs_Interactive_OpensTUI(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app)
	require.NoError(t, err)
	require.Len(t, env.programs, 1)

	m := env.programs[0].(appModel)
	assert.Equal(t, ViewDashboard, m.activeView().ID())
}

func TestRootCmd_NoArgs_NotInteractive_ShowsHelp(t *testing.T) {
	env := testApp(t)
	env.app.IsInteractive = func() bool { return false }

	output, err := executeCmd(t, env.app)
	require.NoError(t, err)
	assert.Contains(t, output, "encore")
	assert.Contains(t, output, "journal")
	assert.Empty(t, env.programs)
}

// --- paths ---

func TestPathsCmd_ListsCatalogWithProgress(t *testing.T) {
	env := testApp(t)
	completeDays(t, env.app, "mindset/next-stage", 1)

	output, err := executeCmd(t, env.app, "paths")
	require.NoError(t, err)
	assert.Contains(t, output, "mindset/next-stage")
	assert.Contains(t, output, "finance/money-moves")
	assert.Contains(t, output, "1/3")
	assert.Contains(t, output, "0/2")
}

func TestPathsCmd_Days(t *testing.T) {
	env := testApp(t)

	output, err := executeCmd(t, env.app, "paths", "--days")
	require.NoError(t, err)
	assert.Contains(t, output, "Transferable Skills")
	assert.Contains(t, output, "Know Your Worth")
}

// --- play ---

func TestPlayCmd_StartsAtNextDay(t *testing.T) {
	env := testApp(t)
	completeDays(t, env.app, "mindset/next-stage", 1)

	_, err := executeCmd(t, env.app, "play", "mindset/next-stage")
	require.NoError(t, err)
	require.Len(t, env.programs, 1)

	lv, ok := env.programs[0].(appModel).activeView().(*lessonView)
	require.True(t, ok)
	assert.Equal(t, 2, lv.day.Day)
}

func TestPlayCmd_ExplicitDay(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "play", "finance/money-moves", "--day", "2")
	require.NoError(t, err)
	lv := env.programs[0].(appModel).activeView().(*lessonView)
	assert.Equal(t, "know-your-worth", lv.ctrl.Lesson().ID)
}

func TestPlayCmd_UnknownPath(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "play", "mindset/nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown path")
	assert.Empty(t, env.programs)
}

func TestPlayCmd_UnknownDay(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "play", "finance/money-moves", "--day", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no day 9")
	assert.Empty(t, env.programs)
}

func TestPlayCmd_NeedsTerminal(t *testing.T) {
	env := testApp(t)
	env.app.IsInteractive = func() bool { return false }

	_, err := executeCmd(t, env.app, "play", "finance/money-moves")
	assert.ErrorIs(t, err, errNotInteractive)
}

// --- journal ---

func TestJournalAdd_FreeEntry(t *testing.T) {
	env := testApp(t)

	output, err := executeCmd(t, env.app, "journal", "add", "Slept", "well", "--mood", "Calm")
	require.NoError(t, err)
	assert.Contains(t, output, "Saved journal entry")

	entries, err := env.app.Journal.List(context.Background(), domain.JournalFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Slept well", entries[0].Content)
	assert.Equal(t, domain.MoodCalm, entries[0].Mood)
	assert.Empty(t, entries[0].PathTag)
}

func TestJournalAdd_WithPathContext(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "journal", "add", "--path", "mindset/next-stage", "--day", "2", "Rehearsal discipline")
	require.NoError(t, err)

	entries, err := env.app.Journal.ListByPath(context.Background(), "mindset_next-stage")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Day)
	assert.Equal(t, "Transferable Skills", entries[0].DayTitle)
	assert.Equal(t, "Mindset", entries[0].Category)
}

func TestJournalAdd_ReadsStdin(t *testing.T) {
	env := testApp(t)

	_, err := executeCmdWithInput(t, env.app, "from a pipe\n", "journal", "add")
	require.NoError(t, err)

	entries, err := env.app.Journal.List(context.Background(), domain.JournalFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "from a pipe", entries[0].Content)
}

func TestJournalAdd_BlankIsNotSaved(t *testing.T) {
	env := testApp(t)

	output, err := executeCmd(t, env.app, "journal", "add", "   ")
	require.NoError(t, err)
	assert.Contains(t, output, "nothing saved")

	entries, err := env.app.Journal.List(context.Background(), domain.JournalFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalAdd_RejectsUnknownMood(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "journal", "add", "hello", "--mood", "ecstatic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mood")
}

func TestJournalAdd_DayNeedsPath(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "journal", "add", "hello", "--day", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--day needs --path")
}

func TestJournalList_FiltersAndLimits(t *testing.T) {
	env := testApp(t)
	for _, text := range []string{"first", "second", "third"} {
		_, err := executeCmd(t, env.app, "journal", "add", "--path", "finance/money-moves", text)
		require.NoError(t, err)
	}
	_, err := executeCmd(t, env.app, "journal", "add", "unrelated")
	require.NoError(t, err)

	output, err := executeCmd(t, env.app, "journal", "list", "--path", "finance/money-moves", "--limit", "2")
	require.NoError(t, err)
	assert.NotContains(t, output, "first")
	assert.NotContains(t, output, "unrelated")
	assert.Less(t, strings.Index(output, "second"), strings.Index(output, "third"), "oldest first")
}

func TestJournalList_Empty(t *testing.T) {
	env := testApp(t)

	output, err := executeCmd(t, env.app, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "No journal entries yet")
}

// --- progress ---

func TestProgressShow(t *testing.T) {
	env := testApp(t)
	completeDays(t, env.app, "finance/money-moves", 2)
	require.NoError(t, env.app.Quiz.RecordMatch(context.Background(), domain.QuizResult{
		LessonID: "transferable-skills", ScreenID: "skills-match", Attempts: 5, Solved: true,
	}))

	output, err := executeCmd(t, env.app, "progress", "show", "--quiz")
	require.NoError(t, err)
	assert.Contains(t, output, "finance_money-moves")
	assert.Contains(t, output, "Money Moves")
	assert.Contains(t, output, "skills-match")
	assert.Contains(t, output, "solved")
}

func TestProgressReset(t *testing.T) {
	env := testApp(t)
	completeDays(t, env.app, "mindset/next-stage", 2)

	output, err := executeCmd(t, env.app, "progress", "reset", "mindset/next-stage")
	require.NoError(t, err)
	assert.Contains(t, output, "Reset progress")

	p, _ := env.app.Catalog.Path("mindset/next-stage")
	st := env.app.Progress.Status(context.Background(), p)
	assert.True(t, st.Known)
	assert.Equal(t, 0, st.Count)
}

// --- content ---

func TestContentValidate_Builtin(t *testing.T) {
	env := testApp(t)

	output, err := executeCmd(t, env.app, "content", "validate")
	require.NoError(t, err)
	assert.Contains(t, output, "2 content file(s) OK")
}

func TestContentValidate_ReportsProblems(t *testing.T) {
	env := testApp(t)
	dir := t.TempDir()
	bad := `category: {id: mindset, title: Mindset}
path: {id: broken, title: Broken}
days:
  - day: 1
    title: Empty
    lesson:
      id: empty
      intro: {id: intro, kind: intro}
      screens: []
      final: {id: final, kind: final}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(bad), 0o644))

	output, err := executeCmd(t, env.app, "content", "validate", dir)
	assert.ErrorIs(t, err, errInvalidContent)
	assert.Contains(t, output, "broken.yaml")
}

func TestContentValidate_MissingDir(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "content", "validate", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content dir")
}

func TestContentWatch_NeedsDir(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "content", "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content directory")
}
