package cli

import (
	"fmt"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPathsCmd(app *App) *cobra.Command {
	var days bool

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "List guided paths and your progress on each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			out := cmd.OutOrStdout()

			rows := make(map[string]formatter.PathRow)
			for _, p := range app.Catalog.Paths() {
				st := app.Progress.Status(ctx, p)
				rows[p.Key()] = formatter.PathRow{Path: p, Count: st.Count, Known: st.Known}
			}
			fmt.Fprint(out, formatter.FormatPathList(app.Catalog.Categories(), rows))

			if !days {
				return nil
			}
			for _, p := range app.Catalog.Paths() {
				row := rows[p.Key()]
				items := make([]formatter.DayItem, 0, len(p.Days))
				for _, d := range p.Days {
					item := formatter.DayItem{Day: d.Day, Title: d.Title}
					if row.Known && d.Day <= row.Count {
						item.State = formatter.DayDone
					}
					items = append(items, item)
				}
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.RenderDayTree(p.Ref()+"  "+p.Title, items))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&days, "days", false, "Show each path's days")

	return cmd
}
