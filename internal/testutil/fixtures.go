package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/google/uuid"
)

var testScreenCounter atomic.Int64

func nextScreenID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, testScreenCounter.Add(1))
}

// Lesson options
type LessonOption func(*domain.Lesson)

// WithSteps appends n step screens.
func WithSteps(n int) LessonOption {
	return func(l *domain.Lesson) {
		for range n {
			id := nextScreenID("step")
			l.Screens = append(l.Screens, domain.Screen{
				ID:    id,
				Kind:  domain.ScreenStep,
				Title: "Step " + id,
				Body:  "Body of " + id,
			})
		}
	}
}

// WithChoice appends a two-option choice screen recording under key.
func WithChoice(key, first, second string) LessonOption {
	return func(l *domain.Lesson) {
		l.Screens = append(l.Screens, domain.Screen{
			ID:        nextScreenID("choice"),
			Kind:      domain.ScreenChoice,
			Title:     "Choose",
			BranchKey: key,
			Options: []domain.Option{
				{ID: key + "-a", Text: first},
				{ID: key + "-b", Text: second},
			},
		})
	}
}

// WithStory appends a story screen whose branches are keyed by the option
// IDs WithChoice generates for key.
func WithStory(key, body, branchA, branchB string) LessonOption {
	return func(l *domain.Lesson) {
		l.Screens = append(l.Screens, domain.Screen{
			ID:        nextScreenID("story"),
			Kind:      domain.ScreenStory,
			Body:      body,
			BranchKey: key,
			Branches:  map[string]string{key + "-a": branchA, key + "-b": branchB},
		})
	}
}

func WithMatch(pairs ...domain.Pair) LessonOption {
	return func(l *domain.Lesson) {
		l.Screens = append(l.Screens, domain.Screen{
			ID:    nextScreenID("match"),
			Kind:  domain.ScreenMatch,
			Title: "Match",
			Pairs: pairs,
		})
	}
}

func WithJournalPrompt(prompt string) LessonOption {
	return func(l *domain.Lesson) {
		l.Screens = append(l.Screens, domain.Screen{
			ID:     nextScreenID("journal"),
			Kind:   domain.ScreenJournal,
			Prompt: prompt,
		})
	}
}

func WithStoryIntro() LessonOption {
	return func(l *domain.Lesson) {
		l.StoryIntro = &domain.Screen{ID: "story-intro", Kind: domain.ScreenStory, Title: "Your story"}
	}
}

func WithReflection() LessonOption {
	return func(l *domain.Lesson) {
		l.Reflection = &domain.Screen{ID: "reflection", Kind: domain.ScreenReflection, Title: "Reflect"}
	}
}

func WithFinalLink(label, url string) LessonOption {
	return func(l *domain.Lesson) {
		l.Final.Link = &domain.Link{Label: label, URL: url}
	}
}

// NewTestLesson builds a lesson with intro and final screens. Main
// sequence screens come from opts, in order.
func NewTestLesson(id string, opts ...LessonOption) *domain.Lesson {
	l := &domain.Lesson{
		ID:    id,
		Title: "Lesson " + id,
		Intro: domain.Screen{ID: "intro", Kind: domain.ScreenIntro, Title: "Welcome"},
		Final: domain.Screen{ID: "final", Kind: domain.ScreenFinal, Title: "Well done"},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path options
type PathOption func(*domain.GuidedPath)

func WithTotalDays(n int) PathOption {
	return func(p *domain.GuidedPath) {
		p.TotalDays = n
	}
}

// NewTestPath builds a path with days step-only lessons of two steps each.
func NewTestPath(categoryID, pathID string, days int, opts ...PathOption) *domain.GuidedPath {
	p := &domain.GuidedPath{
		ID:         pathID,
		CategoryID: categoryID,
		Title:      "Path " + pathID,
		TotalDays:  days,
	}
	for d := 1; d <= days; d++ {
		p.Days = append(p.Days, domain.PathDay{
			Day:    d,
			Title:  fmt.Sprintf("Day %d", d),
			Lesson: NewTestLesson(fmt.Sprintf("%s-day%d", pathID, d), WithSteps(2)),
		})
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Journal entry options
type JournalOption func(*domain.JournalEntry)

func WithMood(m domain.Mood) JournalOption {
	return func(e *domain.JournalEntry) {
		e.Mood = m
	}
}

func WithJournalDay(d int) JournalOption {
	return func(e *domain.JournalEntry) {
		e.Day = d
	}
}

func WithTimestamp(ts time.Time) JournalOption {
	return func(e *domain.JournalEntry) {
		e.Timestamp = ts
		e.Date = ts.Format("2006-01-02")
	}
}

func NewTestJournalEntry(pathTag, content string, opts ...JournalOption) *domain.JournalEntry {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.JournalEntry{
		ID:        uuid.New().String(),
		PathTag:   pathTag,
		Category:  "test",
		PathTitle: "Test path",
		Day:       1,
		DayTitle:  "Day 1",
		Date:      now.Format("2006-01-02"),
		Content:   content,
		Timestamp: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
