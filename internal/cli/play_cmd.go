package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("this command needs an interactive terminal")

func newPlayCmd(app *App) *cobra.Command {
	var day int

	cmd := &cobra.Command{
		Use:   "play <category>/<path>",
		Short: "Play a path day in the terminal UI",
		Long: "Play a path day in the terminal UI. Without --day the next unplayed day\n" +
			"is chosen; a finished path replays its last day.",
		Example: "  encore play mindset/next-stage\n  encore play finance/money-moves --day 2",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return errNotInteractive
			}
			path, err := resolvePath(app, args[0])
			if err != nil {
				return err
			}
			if day == 0 {
				day = app.Progress.Status(ctxOf(cmd), path).NextDay()
			}
			// Build the view up front so a bad day or lesson fails before the
			// terminal switches to the alternate screen.
			var lesson *lessonView
			start := func(s *SharedState) View {
				v, verr := newLessonView(s, path, day)
				if verr != nil {
					err = verr
					return nil
				}
				lesson = v
				return v
			}
			m := newAppModelWith(app, start)
			if err != nil {
				return err
			}
			defer lesson.stopTracking()
			return app.runProgram(m, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&day, "day", 0, "Day number to play (default: next unplayed day)")

	return cmd
}
