package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"kv_entries", "journal_entries", "path_progress"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_journal_path_day", "idx_journal_created"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_JournalRejectsEmptyContent(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO journal_entries (id, entry_date, content, created_at)
		VALUES ('j1', '2026-01-01', '   ', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestMigrate_JournalRejectsUnknownMood(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO journal_entries (id, entry_date, content, mood, created_at)
		VALUES ('j1', '2026-01-01', 'hi', 'ecstatic', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestMigrate_ProgressRejectsNegativeCount(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO path_progress (key, days_completed, updated_at) VALUES ('a_b', -1, 'now')`)
	assert.Error(t, err)
}
