package cli

import (
	"fmt"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show or reset path progress",
	}

	cmd.AddCommand(
		newProgressShowCmd(app),
		newProgressResetCmd(app),
	)

	return cmd
}

func newProgressShowCmd(app *App) *cobra.Command {
	var quiz bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show stored day counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			out := cmd.OutOrStdout()

			list, err := app.Progress.List(ctx)
			if err != nil {
				return err
			}
			titles := make(map[string]string)
			for _, p := range app.Catalog.Paths() {
				titles[p.Key()] = p.Title
			}
			fmt.Fprint(out, formatter.FormatProgressTable(list, titles, app.now()))

			if !quiz {
				return nil
			}
			results, err := app.Quiz.List(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatQuizResults(results, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&quiz, "quiz", false, "Also show matching game results")

	return cmd
}

func newProgressResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <category>/<path>",
		Short: "Reset a path's day counter to zero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePath(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Progress.Reset(ctxOf(cmd), p.Key()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Reset progress for "+p.Title))
			return nil
		},
	}
}
