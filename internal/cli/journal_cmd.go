package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// moodValue is a --mood flag that only accepts known mood tags.
type moodValue domain.Mood

var _ pflag.Value = (*moodValue)(nil)

func (m *moodValue) String() string { return string(*m) }

func (m *moodValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidMoods[s] {
		return fmt.Errorf("unknown mood %q (want one of %s)", s, moodNames())
	}
	*m = moodValue(s)
	return nil
}

func (m *moodValue) Type() string { return "mood" }

func moodNames() string {
	names := make([]string, len(domain.AllMoods))
	for i, m := range domain.AllMoods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func newJournalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Read and write journal entries",
	}

	cmd.AddCommand(
		newJournalListCmd(app),
		newJournalAddCmd(app),
	)

	return cmd
}

func newJournalListCmd(app *App) *cobra.Command {
	var pathRef string
	var day, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var f domain.JournalFilter
			if pathRef != "" {
				p, err := resolvePath(app, pathRef)
				if err != nil {
					return err
				}
				f.PathTag = p.Key()
			}
			if day > 0 && f.PathTag == "" {
				return fmt.Errorf("--day needs --path")
			}
			f.Day = day
			f.Limit = limit

			entries, err := app.Journal.List(ctxOf(cmd), f)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatJournal(entries, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&pathRef, "path", "", "Only entries written in this path (category/path)")
	cmd.Flags().IntVar(&day, "day", 0, "Only entries written on this day of --path")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most the N most recent entries")

	return cmd
}

func newJournalAddCmd(app *App) *cobra.Command {
	var pathRef string
	var mood moodValue
	var day int

	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Write a journal entry",
		Long: "Write a journal entry. The text is taken from the arguments, or read\n" +
			"from stdin when none are given.",
		Example: "  encore journal add \"Slept well, felt ready\" --mood calm\n" +
			"  encore journal add --path mindset/next-stage --day 2 < notes.txt",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading entry from stdin: %w", err)
				}
				// Line terminators at the end of piped input are not part of the entry.
				text = strings.TrimRight(string(data), "\r\n")
			}

			var jc domain.JournalContext
			if pathRef != "" {
				p, err := resolvePath(app, pathRef)
				if err != nil {
					return err
				}
				if day == 0 {
					day = 1
				}
				pd, err := p.DayNumber(day)
				if err != nil {
					return err
				}
				jc = newSharedState(app).journalContext(p, *pd)
			} else if day > 0 {
				return fmt.Errorf("--day needs --path")
			}

			entry, err := app.Journal.Capture(ctxOf(cmd), service.CaptureInput{
				Context: jc,
				Content: text,
				Mood:    domain.Mood(mood),
			})
			if err != nil {
				return err
			}
			if entry == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing written, nothing saved."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Saved journal entry "+entry.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&pathRef, "path", "", "Path the entry belongs to (category/path)")
	cmd.Flags().IntVar(&day, "day", 0, "Day of --path the entry belongs to (default 1)")
	cmd.Flags().Var(&mood, "mood", "Mood tag: "+moodNames())

	return cmd
}
