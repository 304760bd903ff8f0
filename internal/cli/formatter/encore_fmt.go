package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/encore/internal/content"
	"github.com/alexanderramin/encore/internal/domain"
)

// PathRow is one line of the path listing.
type PathRow struct {
	Path  *domain.GuidedPath
	Count int
	Known bool
}

// FormatPathList renders paths grouped by category with their progress.
func FormatPathList(categories []*domain.Category, rows map[string]PathRow) string {
	if len(categories) == 0 {
		return Dim("No guided paths installed.") + "\n"
	}
	var b strings.Builder
	for i, cat := range categories {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(cat.Title) + "\n")
		table := make([][]string, 0, len(cat.Paths))
		for _, p := range cat.Paths {
			row, ok := rows[p.Key()]
			if !ok {
				row = PathRow{Path: p, Known: true}
			}
			table = append(table, []string{
				StyleGreen.Render(p.Ref()),
				p.Title,
				RenderDayProgress(row.Count, p.TotalDays, row.Known),
			})
		}
		b.WriteString(RenderTable([]string{"REF", "PATH", "PROGRESS"}, table))
	}
	return b.String()
}

// FormatJournal renders journal entries oldest first.
func FormatJournal(entries []*domain.JournalEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No journal entries yet.") + "\n"
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		where := e.PathTitle
		if e.Day > 0 {
			where = fmt.Sprintf("%s · Day %d", where, e.Day)
			if e.DayTitle != "" {
				where += " · " + e.DayTitle
			}
		}
		if where == "" {
			where = "Free entry"
		}
		fmt.Fprintf(&b, "%s  %s  %s\n",
			StyleBlue.Render(e.Date),
			Bold(where),
			MoodBadge(e.Mood))
		for line := range strings.SplitSeq(e.Content, "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("  " + Dim(HumanTimestamp(e.Timestamp, now)) + "\n")
	}
	return b.String()
}

// FormatProgressTable renders stored counters. titles maps progress keys to
// path titles; keys without a known path are shown raw.
func FormatProgressTable(list []*domain.PathProgress, titles map[string]string, now time.Time) string {
	if len(list) == 0 {
		return Dim("No progress recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		title := titles[p.Key]
		if title == "" {
			title = Dim("(not installed)")
		}
		rows = append(rows, []string{
			p.Key,
			title,
			strconv.Itoa(p.DaysCompleted),
			RelativeDateFrom(p.UpdatedAt, now),
		})
	}
	return RenderTable([]string{"KEY", "PATH", "DAYS", "UPDATED"}, rows)
}

// FormatQuizResults renders stored match results.
func FormatQuizResults(results []domain.QuizResult, now time.Time) string {
	if len(results) == 0 {
		return Dim("No quiz results yet.") + "\n"
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		solved := StyleYellow.Render("open")
		if r.Solved {
			solved = StyleGreen.Render("solved")
		}
		rows = append(rows, []string{
			r.LessonID,
			r.ScreenID,
			strconv.Itoa(r.Attempts),
			solved,
			RelativeDateFrom(r.RecordedAt, now),
		})
	}
	return RenderTable([]string{"LESSON", "SCREEN", "ATTEMPTS", "RESULT", "WHEN"}, rows)
}

// FormatValidation renders a content check. A nil err prints a success
// line with the file count; otherwise each file's problems are listed
// under its name.
func FormatValidation(files int, err error) string {
	if err == nil {
		return Success(fmt.Sprintf("%d content file(s) OK", files)) + "\n"
	}
	var b strings.Builder
	writeValidation(&b, err)
	return b.String()
}

func writeValidation(b *strings.Builder, err error) {
	if ve, ok := err.(*content.ValidationError); ok {
		b.WriteString(Failure(Bold(ve.File)) + "\n")
		for _, p := range ve.Problems {
			b.WriteString("    " + p.Error() + "\n")
		}
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			writeValidation(b, e)
		}
		return
	}
	b.WriteString(Failure(err.Error()) + "\n")
}
