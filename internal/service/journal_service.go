package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/repository"
	"github.com/google/uuid"
)

type journalService struct {
	entries  repository.JournalRepo
	now      Clock
	observer UseCaseObserver
}

func NewJournalService(entries repository.JournalRepo, now Clock, observers ...UseCaseObserver) JournalService {
	return &journalService{
		entries:  entries,
		now:      clockOrSystem(now),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *journalService) Capture(ctx context.Context, in CaptureInput) (entry *domain.JournalEntry, err error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, nil
	}

	startedAt := time.Now()
	fields := map[string]any{
		"path": in.Context.PathTag,
		"day":  in.Context.Day,
	}
	defer observe(ctx, s.observer, "journal-capture", startedAt, fields, &err)

	now := s.now()
	entry = &domain.JournalEntry{
		ID:        uuid.New().String(),
		PathTag:   in.Context.PathTag,
		Category:  in.Context.Category,
		PathTitle: in.Context.PathTitle,
		Day:       in.Context.Day,
		DayTitle:  in.Context.DayTitle,
		Date:      now.Local().Format(time.DateOnly),
		Content:   in.Content,
		Mood:      in.Mood,
		Timestamp: now.UTC(),
	}
	if err = entry.ValidateMood(); err != nil {
		return nil, err
	}
	if err = s.entries.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving journal entry: %w", err)
	}
	fields["entry"] = entry.ID
	return entry, nil
}

func (s *journalService) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *journalService) List(ctx context.Context, f domain.JournalFilter) ([]*domain.JournalEntry, error) {
	return s.entries.List(ctx, f)
}

func (s *journalService) ListByPath(ctx context.Context, pathTag string) ([]*domain.JournalEntry, error) {
	return s.entries.List(ctx, domain.JournalFilter{PathTag: pathTag})
}
