package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Legacy KV keys written by earlier releases before journal entries and path
// progress moved into their own tables.
const (
	legacyJournalKey  = "journal_entries"
	legacyProgressKey = "path_progress"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// whole set re-runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateLegacyJournalList(db); err != nil {
		return fmt.Errorf("migrating legacy journal list: %w", err)
	}
	if err := migrateLegacyProgressMap(db); err != nil {
		return fmt.Errorf("migrating legacy progress map: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv_entries (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS journal_entries (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL UNIQUE,
		path_tag   TEXT NOT NULL DEFAULT '',
		category   TEXT NOT NULL DEFAULT '',
		path_title TEXT NOT NULL DEFAULT '',
		day        INTEGER NOT NULL DEFAULT 0,
		entry_date TEXT NOT NULL,
		content    TEXT NOT NULL CHECK(length(trim(content)) > 0),
		mood       TEXT NOT NULL DEFAULT ''
		           CHECK(mood IN ('','hopeful','calm','anxious','determined','tired')),
		created_at TEXT NOT NULL
	)`,

	// day_title arrived after the first release.
	`ALTER TABLE journal_entries ADD COLUMN day_title TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS path_progress (
		key            TEXT PRIMARY KEY,
		days_completed INTEGER NOT NULL DEFAULT 0 CHECK(days_completed >= 0),
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_journal_path_day ON journal_entries(path_tag, day)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_created ON journal_entries(created_at)`,
}

// legacyJournalEntry is the list element shape of the old journal KV value.
type legacyJournalEntry struct {
	ID        string `json:"id"`
	PathTag   string `json:"pathTag"`
	Category  string `json:"category"`
	PathTitle string `json:"pathTitle"`
	Day       int    `json:"day"`
	DayTitle  string `json:"dayTitle"`
	Date      string `json:"date"`
	Content   string `json:"content"`
	Mood      string `json:"mood"`
	Timestamp string `json:"timestamp"`
}

// migrateLegacyJournalList moves a whole-list journal value out of kv_entries
// into journal_entries, preserving list order, then drops the KV row.
func migrateLegacyJournalList(db *sql.DB) error {
	ctx := context.Background()

	var raw string
	err := db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, legacyJournalKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading legacy journal value: %w", err)
	}

	var entries []legacyJournalEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return fmt.Errorf("decoding legacy journal value: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range entries {
		if strings.TrimSpace(e.Content) == "" || e.ID == "" {
			continue
		}
		createdAt := e.Timestamp
		if createdAt == "" {
			createdAt = now
		}
		date := e.Date
		if date == "" && len(createdAt) >= 10 {
			date = createdAt[:10]
		}
		// ON CONFLICT keeps a re-run from duplicating rows if a previous run
		// crashed after inserting but before deleting the KV row.
		_, err := tx.ExecContext(ctx,
			`INSERT INTO journal_entries
				(id, path_tag, category, path_title, day, day_title, entry_date, content, mood, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO NOTHING`,
			e.ID, e.PathTag, e.Category, e.PathTitle, e.Day, e.DayTitle, date, e.Content, legacyMood(e.Mood), createdAt)
		if err != nil {
			return fmt.Errorf("inserting legacy journal entry %s: %w", e.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, legacyJournalKey); err != nil {
		return fmt.Errorf("removing legacy journal value: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing legacy journal migration: %w", err)
	}
	committed = true
	return nil
}

func legacyMood(m string) string {
	switch m {
	case "hopeful", "calm", "anxious", "determined", "tired":
		return m
	default:
		return ""
	}
}

// migrateLegacyProgressMap moves a {"cat_path": n} progress map out of
// kv_entries into path_progress. Existing rows keep the larger count.
func migrateLegacyProgressMap(db *sql.DB) error {
	ctx := context.Background()

	var raw string
	err := db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, legacyProgressKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading legacy progress value: %w", err)
	}

	var counts map[string]int
	if err := json.Unmarshal([]byte(raw), &counts); err != nil {
		return fmt.Errorf("decoding legacy progress value: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC().Format(time.RFC3339)
	for key, n := range counts {
		if n < 0 {
			n = 0
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO path_progress (key, days_completed, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE
			 SET days_completed = MAX(path_progress.days_completed, excluded.days_completed),
			     updated_at = excluded.updated_at`,
			key, n, now)
		if err != nil {
			return fmt.Errorf("upserting legacy progress %s: %w", key, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, legacyProgressKey); err != nil {
		return fmt.Errorf("removing legacy progress value: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing legacy progress migration: %w", err)
	}
	committed = true
	return nil
}
