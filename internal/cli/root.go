package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/config"
	"github.com/alexanderramin/encore/internal/content"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/launcher"
	"github.com/alexanderramin/encore/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type pathStatus = service.PathStatus

// App holds references to everything CLI commands and TUI views use.
type App struct {
	Config   config.Config
	Catalog  *content.Catalog
	Journal  service.JournalService
	Progress service.ProgressService
	Quiz     service.QuizService
	History  service.HistoryService

	Opener    launcher.Opener
	Clipboard launcher.Clipboard
	Markdown  *formatter.Markdown
	Logger    *slog.Logger

	// IsInteractive reports whether stdin is a terminal. The bare root
	// command opens the TUI only when it returns true.
	IsInteractive func() bool

	// Clock and Seed are pinned by tests.
	Clock func() time.Time
	Seed  uint64

	// RunProgram runs a bubbletea model. Tests replace it to avoid a real
	// terminal.
	RunProgram func(m tea.Model, in io.Reader, out io.Writer) error
}

func (a *App) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}

func (a *App) seed() uint64 {
	if a.Seed != 0 {
		return a.Seed
	}
	return uint64(a.now().UnixNano())
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *App) runProgram(m tea.Model, in io.Reader, out io.Writer) error {
	if a.RunProgram != nil {
		return a.RunProgram(m, in, out)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out)).Run()
	return err
}

// NewRootCmd creates the top-level "encore" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "encore",
		Short: "Guided daily lessons for life after the stage",
		Long: "encore walks you through short daily lessons grouped into guided paths,\n" +
			"keeps a journal of your reflections and tracks how far you are on each path.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(cmd, app, nil)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newPathsCmd(app),
		newPlayCmd(app),
		newJournalCmd(app),
		newProgressCmd(app),
		newContentCmd(app),
		newTUICmd(app),
	)

	return root
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app, nil)
		},
	}
}

// runTUI starts the app model. A nil start view opens the dashboard.
func runTUI(cmd *cobra.Command, app *App, start func(*SharedState) View) error {
	m := newAppModel(app)
	if start != nil {
		m = newAppModelWith(app, start)
	}
	return app.runProgram(m, cmd.InOrStdin(), cmd.OutOrStdout())
}

// resolvePath looks up a "category/path" reference in the catalog.
func resolvePath(app *App, ref string) (*domain.GuidedPath, error) {
	p, err := app.Catalog.Path(ref)
	if err != nil {
		if errors.Is(err, content.ErrPathNotFound) {
			return nil, fmt.Errorf("unknown path %q (see `encore paths`)", ref)
		}
		return nil, err
	}
	return p, nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
