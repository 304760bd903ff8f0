package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/kv"
)

type quizService struct {
	store    kv.Store
	now      Clock
	observer UseCaseObserver
}

func NewQuizService(store kv.Store, now Clock, observers ...UseCaseObserver) QuizService {
	return &quizService{
		store:    store,
		now:      clockOrSystem(now),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *quizService) RecordMatch(ctx context.Context, r domain.QuizResult) (err error) {
	if r.LessonID == "" || r.ScreenID == "" {
		return fmt.Errorf("quiz result needs a lesson and screen id")
	}
	startedAt := time.Now()
	fields := map[string]any{
		"lesson":   r.LessonID,
		"screen":   r.ScreenID,
		"attempts": r.Attempts,
	}
	defer observe(ctx, s.observer, "record-match", startedAt, fields, &err)

	if r.RecordedAt.IsZero() {
		r.RecordedAt = s.now().UTC()
	}
	return kv.Save(ctx, s.store, kv.QuizResultKey(r.LessonID, r.ScreenID), r)
}

func (s *quizService) Get(ctx context.Context, lessonID, screenID string) (*domain.QuizResult, bool, error) {
	r, found, err := kv.Load[domain.QuizResult](ctx, s.store, kv.QuizResultKey(lessonID, screenID))
	if err != nil || !found {
		return nil, found, err
	}
	return &r, true, nil
}

// List returns every stored result, oldest first.
func (s *quizService) List(ctx context.Context) ([]domain.QuizResult, error) {
	keys, err := s.store.Keys(ctx, kv.QuizResultPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing quiz results: %w", err)
	}
	out := make([]domain.QuizResult, 0, len(keys))
	for _, k := range keys {
		r, found, err := kv.Load[domain.QuizResult](ctx, s.store, k)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})
	return out, nil
}
