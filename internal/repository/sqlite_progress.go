package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
)

// SQLiteProgressRepo implements ProgressRepo on the path_progress table.
type SQLiteProgressRepo struct {
	db db.DBTX
}

func NewSQLiteProgressRepo(conn db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: conn}
}

// Increment is a single UPSERT, so concurrent completions of the same path
// each count.
func (r *SQLiteProgressRepo) Increment(ctx context.Context, key string) (int, error) {
	query := `INSERT INTO path_progress (key, days_completed, updated_at) VALUES (?, 1, ?)
		ON CONFLICT(key) DO UPDATE
		SET days_completed = path_progress.days_completed + 1,
		    updated_at = excluded.updated_at
		RETURNING days_completed`
	var n int
	if err := r.db.QueryRowContext(ctx, query, key, formatTime(nowUTC())).Scan(&n); err != nil {
		return 0, fmt.Errorf("incrementing progress for %s: %w", key, err)
	}
	return n, nil
}

func (r *SQLiteProgressRepo) Get(ctx context.Context, key string) (*domain.PathProgress, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT key, days_completed, updated_at FROM path_progress WHERE key = ?`, key)
	p, err := scanProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("progress %s: %w", key, ErrNotFound)
	}
	return p, err
}

func (r *SQLiteProgressRepo) List(ctx context.Context) ([]*domain.PathProgress, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, days_completed, updated_at FROM path_progress ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing progress: %w", err)
	}
	defer rows.Close()

	var out []*domain.PathProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress: %w", err)
	}
	return out, nil
}

func (r *SQLiteProgressRepo) Reset(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM path_progress WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("resetting progress for %s: %w", key, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("progress %s: %w", key, ErrNotFound)
	}
	return nil
}

func scanProgress(s rowScanner) (*domain.PathProgress, error) {
	var p domain.PathProgress
	var updatedAt string
	if err := s.Scan(&p.Key, &p.DaysCompleted, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning progress: %w", err)
	}
	t, err := parseTime(updatedAt, "updated_at")
	if err != nil {
		return nil, err
	}
	p.UpdatedAt = t
	return &p, nil
}
