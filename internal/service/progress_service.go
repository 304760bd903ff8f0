package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/flow"
	"github.com/alexanderramin/encore/internal/repository"
)

// PathStatus is a path's progress as shown to the user. Known is false when
// the counter could not be loaded; callers must not present that as zero.
type PathStatus struct {
	Path  *domain.GuidedPath
	Count int
	Known bool
	Err   error
}

func (s PathStatus) Complete() bool {
	return s.Known && domain.IsComplete(s.Count, s.Path.TotalDays)
}

// NextDay is the day to play next. It falls back to day 1 when progress is
// unknown.
func (s PathStatus) NextDay() int {
	if !s.Known {
		return 1
	}
	return domain.NextDay(s.Count, s.Path.TotalDays)
}

// Label renders the counter, e.g. "2/5 days" or "unknown".
func (s PathStatus) Label() string {
	if !s.Known {
		return "unknown"
	}
	count := min(s.Count, s.Path.TotalDays)
	return fmt.Sprintf("%d/%d days", count, s.Path.TotalDays)
}

type progressService struct {
	progress repository.ProgressRepo
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewProgressService(progress repository.ProgressRepo, logger *slog.Logger, observers ...UseCaseObserver) ProgressService {
	if logger == nil {
		logger = slog.Default()
	}
	return &progressService{
		progress: progress,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *progressService) RecordDayComplete(ctx context.Context, categoryID, pathID string) (count int, err error) {
	key := domain.ProgressKey(categoryID, pathID)
	startedAt := time.Now()
	fields := map[string]any{"path": key}
	defer observe(ctx, s.observer, "record-day-complete", startedAt, fields, &err)

	count, err = s.progress.Increment(ctx, key)
	if err != nil {
		return 0, err
	}
	fields["days_completed"] = count
	return count, nil
}

func (s *progressService) Track(ctx context.Context, path *domain.GuidedPath, ctrl *flow.Controller, done func(ProgressUpdate)) func() {
	return ctrl.Subscribe(func(ev flow.Event) {
		if ev.Kind != flow.EventCompleted {
			return
		}
		count, err := s.RecordDayComplete(ctx, path.CategoryID, path.ID)
		if err != nil {
			s.logger.ErrorContext(ctx, "recording completed day failed",
				"path", path.Key(), "error", err)
		}
		if done != nil {
			done(ProgressUpdate{Key: path.Key(), Count: count, Err: err})
		}
	})
}

func (s *progressService) Status(ctx context.Context, path *domain.GuidedPath) PathStatus {
	st := PathStatus{Path: path}
	p, err := s.progress.Get(ctx, path.Key())
	switch {
	case errors.Is(err, repository.ErrNotFound):
		st.Known = true
	case err != nil:
		s.logger.WarnContext(ctx, "loading path progress failed",
			"path", path.Key(), "error", err)
		st.Err = err
	default:
		st.Known = true
		st.Count = p.DaysCompleted
	}
	return st
}

func (s *progressService) List(ctx context.Context) ([]*domain.PathProgress, error) {
	return s.progress.List(ctx)
}

func (s *progressService) Reset(ctx context.Context, key string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "reset-progress", startedAt, map[string]any{"path": key}, &err)
	return s.progress.Reset(ctx, key)
}
