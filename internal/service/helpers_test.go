package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/repository"
	"github.com/alexanderramin/encore/internal/testutil"
)

func setupRepos(t *testing.T) (repository.JournalRepo, repository.ProgressRepo) {
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteJournalRepo(database),
		repository.NewSQLiteProgressRepo(database)
}

func fixedClock(ts time.Time) Clock {
	return func() time.Time { return ts }
}

// recordingObserver collects use-case events.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ev)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.events))
	for i, ev := range o.events {
		out[i] = ev.Name
	}
	return out
}

var errStoreDown = errors.New("store down")

// brokenProgressRepo fails every call.
type brokenProgressRepo struct{}

func (brokenProgressRepo) Increment(context.Context, string) (int, error) { return 0, errStoreDown }
func (brokenProgressRepo) Get(context.Context, string) (*domain.PathProgress, error) {
	return nil, errStoreDown
}
func (brokenProgressRepo) List(context.Context) ([]*domain.PathProgress, error) {
	return nil, errStoreDown
}
func (brokenProgressRepo) Reset(context.Context, string) error { return errStoreDown }

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
