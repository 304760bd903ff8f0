package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// newConcurrentTestDB opens a file-backed database. Unlike :memory:, every
// pooled connection shares it, so writers really do contend.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

func TestConcurrentJournalAppends_KeepEveryEntry(t *testing.T) {
	database := newConcurrentTestDB(t)
	repo := NewSQLiteJournalRepo(database)

	const writers = 25
	g, ctx := errgroup.WithContext(context.Background())
	for i := range writers {
		g.Go(func() error {
			e := testutil.NewTestJournalEntry("mindset_next-stage", fmt.Sprintf("entry %d", i))
			return repo.Append(ctx, e)
		})
	}
	require.NoError(t, g.Wait())

	n, err := repo.Count(context.Background(), "mindset_next-stage")
	require.NoError(t, err)
	assert.Equal(t, writers, n)
}

func TestConcurrentProgressIncrements_AreAtomic(t *testing.T) {
	database := newConcurrentTestDB(t)
	repo := NewSQLiteProgressRepo(database)

	const completions = 20
	g, ctx := errgroup.WithContext(context.Background())
	for range completions {
		g.Go(func() error {
			_, err := repo.Increment(ctx, "finance_money-moves")
			return err
		})
	}
	require.NoError(t, g.Wait())

	p, err := repo.Get(context.Background(), "finance_money-moves")
	require.NoError(t, err)
	assert.Equal(t, completions, p.DaysCompleted)
}
