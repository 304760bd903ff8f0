package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Seed drives match-board shuffles for this session.
	Seed uint64

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(app *App) *SharedState {
	return &SharedState{App: app, Seed: app.seed()}
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	return max(s.Height-4, 1)
}

// ContentWidth is the wrap width for screen bodies.
func (s *SharedState) ContentWidth() int {
	if s.Width <= 0 {
		return 80
	}
	return min(max(s.Width-6, 20), 100)
}

// pathStatuses loads progress for every installed path.
func (s *SharedState) pathStatuses(ctx context.Context) map[string]pathStatus {
	out := make(map[string]pathStatus)
	for _, p := range s.App.Catalog.Paths() {
		out[p.Key()] = s.App.Progress.Status(ctx, p)
	}
	return out
}

func (s *SharedState) now() time.Time {
	return s.App.now()
}

// journalContext binds a capture to the lesson being played.
func (s *SharedState) journalContext(path *domain.GuidedPath, day domain.PathDay) domain.JournalContext {
	category := path.CategoryID
	if cat, ok := s.App.Catalog.Category(path.CategoryID); ok {
		category = cat.Title
	}
	return domain.JournalContext{
		PathTag:   path.Key(),
		Category:  category,
		PathTitle: path.Title,
		Day:       day.Day,
		DayTitle:  day.Title,
	}
}
