package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
)

// SQLiteJournalRepo implements JournalRepo on the journal_entries table.
type SQLiteJournalRepo struct {
	db db.DBTX
}

func NewSQLiteJournalRepo(conn db.DBTX) *SQLiteJournalRepo {
	return &SQLiteJournalRepo{db: conn}
}

const journalColumns = `id, path_tag, category, path_title, day, day_title, entry_date, content, mood, created_at`

// Append inserts e with a single statement. Ordering comes from the
// autoincrement seq column, so concurrent appends never overwrite each other.
func (r *SQLiteJournalRepo) Append(ctx context.Context, e *domain.JournalEntry) error {
	query := `INSERT INTO journal_entries (` + journalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.PathTag,
		e.Category,
		e.PathTitle,
		e.Day,
		e.DayTitle,
		e.Date,
		e.Content,
		string(e.Mood),
		formatTime(e.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	return nil
}

func (r *SQLiteJournalRepo) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+journalColumns+` FROM journal_entries WHERE id = ?`, id)
	e, err := scanJournalEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("journal entry %s: %w", id, ErrNotFound)
	}
	return e, err
}

func (r *SQLiteJournalRepo) List(ctx context.Context, f domain.JournalFilter) ([]*domain.JournalEntry, error) {
	var where []string
	var args []any
	if f.PathTag != "" {
		where = append(where, "path_tag = ?")
		args = append(args, f.PathTag)
	}
	if f.Day > 0 {
		where = append(where, "day = ?")
		args = append(args, f.Day)
	}

	query := `SELECT seq, ` + journalColumns + ` FROM journal_entries`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	if f.Limit > 0 {
		// newest N, returned oldest first
		query += ` ORDER BY seq DESC LIMIT ?`
		args = append(args, f.Limit)
	}
	query = `SELECT ` + journalColumns + ` FROM (` + query + `) ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.JournalEntry
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteJournalRepo) Count(ctx context.Context, pathTag string) (int, error) {
	query := `SELECT COUNT(*) FROM journal_entries`
	var args []any
	if pathTag != "" {
		query += ` WHERE path_tag = ?`
		args = append(args, pathTag)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting journal entries: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournalEntry(s rowScanner) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	var mood, createdAt string
	err := s.Scan(&e.ID, &e.PathTag, &e.Category, &e.PathTitle, &e.Day, &e.DayTitle,
		&e.Date, &e.Content, &mood, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning journal entry: %w", err)
	}
	e.Mood = domain.Mood(mood)
	if e.Timestamp, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &e, nil
}
