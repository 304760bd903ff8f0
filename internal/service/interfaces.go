package service

import (
	"context"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/flow"
)

// CaptureInput is one journal submission.
type CaptureInput struct {
	Context domain.JournalContext
	Content string
	Mood    domain.Mood
}

type JournalService interface {
	// Capture saves a new entry. Blank content is ignored and returns a nil
	// entry with no error.
	Capture(ctx context.Context, in CaptureInput) (*domain.JournalEntry, error)
	GetByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	List(ctx context.Context, f domain.JournalFilter) ([]*domain.JournalEntry, error)
	ListByPath(ctx context.Context, pathTag string) ([]*domain.JournalEntry, error)
}

// ProgressUpdate reports the outcome of a completion recorded by a tracker.
type ProgressUpdate struct {
	Key   string
	Count int
	Err   error
}

type ProgressService interface {
	// RecordDayComplete adds one completed day to the path and returns the
	// new count.
	RecordDayComplete(ctx context.Context, categoryID, pathID string) (int, error)
	// Track subscribes to ctrl and records a completed day for path when the
	// lesson emits its completion event. The returned func unsubscribes.
	Track(ctx context.Context, path *domain.GuidedPath, ctrl *flow.Controller, done func(ProgressUpdate)) (untrack func())
	Status(ctx context.Context, path *domain.GuidedPath) PathStatus
	List(ctx context.Context) ([]*domain.PathProgress, error)
	Reset(ctx context.Context, key string) error
}

type QuizService interface {
	RecordMatch(ctx context.Context, r domain.QuizResult) error
	Get(ctx context.Context, lessonID, screenID string) (*domain.QuizResult, bool, error)
	List(ctx context.Context) ([]domain.QuizResult, error)
}

type HistoryService interface {
	// MarkPlayed moves ref to the front of the recent list and records it as
	// the last played lesson.
	MarkPlayed(ctx context.Context, ref string, day int) error
	Recent(ctx context.Context) ([]string, error)
	LastPlayed(ctx context.Context) (*LastPlayed, bool, error)
}
