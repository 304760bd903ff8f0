package repository

import (
	"context"

	"github.com/alexanderramin/encore/internal/domain"
)

// JournalRepo is the append-only journal log. There is no update or delete.
type JournalRepo interface {
	Append(ctx context.Context, e *domain.JournalEntry) error
	GetByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	// List returns entries oldest first.
	List(ctx context.Context, f domain.JournalFilter) ([]*domain.JournalEntry, error)
	Count(ctx context.Context, pathTag string) (int, error)
}

type ProgressRepo interface {
	// Increment adds one completed day to key and returns the new count.
	Increment(ctx context.Context, key string) (int, error)
	Get(ctx context.Context, key string) (*domain.PathProgress, error)
	List(ctx context.Context) ([]*domain.PathProgress, error)
	Reset(ctx context.Context, key string) error
}
