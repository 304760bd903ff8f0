package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/encore/internal/db"
)

// SQLiteStore keeps values in the kv_entries table.
type SQLiteStore struct {
	db  db.DBTX
	uow db.UnitOfWork

	// SQLite upgrades a deferred read transaction to a write lock lazily, so
	// an in-process write racing an Update fails with SQLITE_BUSY.
	// Writes are serialized instead.
	updateMu sync.Mutex
	now      func() time.Time
}

func NewSQLiteStore(conn db.DBTX, uow db.UnitOfWork) *SQLiteStore {
	return &SQLiteStore{db: conn, uow: uow, now: time.Now}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return getKV(ctx, s.db, key)
}

func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()
	return putKV(ctx, s.db, key, value, s.now())
}

func (s *SQLiteStore) Update(ctx context.Context, key string, fn func([]byte, bool) ([]byte, error)) error {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		cur, found, err := getKV(ctx, tx, key)
		if err != nil {
			return err
		}
		next, err := fn(cur, found)
		if err != nil {
			return err
		}
		return putKV(ctx, tx, key, next, s.now())
	})
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting kv entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM kv_entries WHERE substr(key, 1, ?) = ? ORDER BY key`, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("listing kv keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning kv key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func getKV(ctx context.Context, q db.DBTX, key string) ([]byte, bool, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading kv entry: %w", err)
	}
	return []byte(value), true, nil
}

func putKV(ctx context.Context, q db.DBTX, key string, value []byte, now time.Time) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("kv key must not be empty")
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), now.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing kv entry: %w", err)
	}
	return nil
}
