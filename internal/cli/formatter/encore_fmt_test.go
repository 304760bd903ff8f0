package formatter

import (
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/encore/internal/content"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatPathList(t *testing.T) {
	p1 := &domain.GuidedPath{ID: "next-stage", CategoryID: "mindset", Title: "Your Next Stage", TotalDays: 3}
	p2 := &domain.GuidedPath{ID: "calm-start", CategoryID: "mindset", Title: "Calm Start", TotalDays: 2}
	cats := []*domain.Category{{ID: "mindset", Title: "Mindset", Paths: []*domain.GuidedPath{p1, p2}}}

	out := FormatPathList(cats, map[string]PathRow{
		p1.Key(): {Path: p1, Count: 1, Known: true},
		p2.Key(): {Path: p2, Known: false},
	})
	assert.Contains(t, out, "MINDSET")
	assert.Contains(t, out, "mindset/next-stage")
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "unknown")

	assert.Contains(t, FormatPathList(nil, nil), "No guided paths")
}

func TestFormatJournal(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	entries := []*domain.JournalEntry{
		{Date: "2026-03-14", PathTitle: "Your Next Stage", Day: 2, DayTitle: "Know your worth",
			Content: "line one\nline two", Mood: domain.MoodCalm, Timestamp: now.Add(-time.Hour)},
		{Date: "2026-03-14", Content: "free thought", Timestamp: now},
	}
	out := FormatJournal(entries, now)
	assert.Contains(t, out, "Your Next Stage · Day 2 · Know your worth")
	assert.Contains(t, out, "  line two")
	assert.Contains(t, out, "calm")
	assert.Contains(t, out, "Free entry")
	assert.Contains(t, out, "1h ago")

	assert.Contains(t, FormatJournal(nil, now), "No journal entries")
}

func TestFormatProgressTable(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	out := FormatProgressTable([]*domain.PathProgress{
		{Key: "mindset_next-stage", DaysCompleted: 2, UpdatedAt: now},
		{Key: "old_path", DaysCompleted: 9, UpdatedAt: now.AddDate(0, 0, -3)},
	}, map[string]string{"mindset_next-stage": "Your Next Stage"}, now)
	assert.Contains(t, out, "Your Next Stage")
	assert.Contains(t, out, "not installed")
	assert.Contains(t, out, "3d ago")
}

func TestFormatValidation(t *testing.T) {
	assert.Contains(t, FormatValidation(2, nil), "2 content file(s) OK")

	err := errors.Join(
		&content.ValidationError{File: "a.yaml", Problems: []error{errors.New("missing final screen")}},
		&content.ValidationError{File: "b.json", Problems: []error{errors.New("bad kind"), errors.New("no id")}},
	)
	out := FormatValidation(2, err)
	assert.Contains(t, out, "a.yaml")
	assert.Contains(t, out, "    missing final screen")
	assert.Contains(t, out, "b.json")
	assert.Contains(t, out, "    no id")

	assert.Contains(t, FormatValidation(0, errors.New("no content files found")), "no content files found")
}

func TestRenderDayTree(t *testing.T) {
	out := RenderDayTree("Your Next Stage", []DayItem{
		{Day: 1, Title: "Begin", State: DayDone},
		{Day: 2, Title: "Worth", State: DayNext, Detail: "next"},
		{Day: 3, Title: "Ask", State: DayLocked},
	})
	assert.Contains(t, out, "├─")
	assert.Contains(t, out, "└─")
	assert.Contains(t, out, "Day 2  Worth")
	assert.Contains(t, out, "[ next ]")
}

func TestMarkdown_PlainWhenUnstyled(t *testing.T) {
	md := NewMarkdown("")
	assert.Equal(t, "**hi**", md.Render("  **hi**\n", 40))

	var nilMD *Markdown
	assert.Equal(t, "x", nilMD.Render("x", 40))
}

func TestMarkdown_RendersWithStyle(t *testing.T) {
	md := NewMarkdown("notty")
	out := md.Render("# Title\n\nSome **bold** text.", 60)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
	assert.Equal(t, out, md.Render("# Title\n\nSome **bold** text.", 60), "cached renderer gives stable output")
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"A", "LONGER"}, [][]string{{"xxxx", "y"}})
	assert.Contains(t, out, "LONGER")
	assert.Contains(t, out, "xxxx  y")
	assert.Empty(t, RenderTable(nil, nil))
}
