package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalRepo_AppendAndGetByID(t *testing.T) {
	repo := NewSQLiteJournalRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := testutil.NewTestJournalEntry("mindset_next-stage", "Today I noticed my discipline carries over.",
		testutil.WithMood(domain.MoodHopeful), testutil.WithJournalDay(3))
	require.NoError(t, repo.Append(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Content, got.Content)
	assert.Equal(t, domain.MoodHopeful, got.Mood)
	assert.Equal(t, 3, got.Day)
	assert.Equal(t, "mindset_next-stage", got.PathTag)
	assert.True(t, e.Timestamp.Equal(got.Timestamp))
}

func TestJournalRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteJournalRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJournalRepo_AppendRejectsDuplicateID(t *testing.T) {
	repo := NewSQLiteJournalRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := testutil.NewTestJournalEntry("a_b", "once")
	require.NoError(t, repo.Append(ctx, e))
	assert.Error(t, repo.Append(ctx, e), "entries are never overwritten")
}

func TestJournalRepo_ListFiltersAndOrder(t *testing.T) {
	repo := NewSQLiteJournalRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	e1 := testutil.NewTestJournalEntry("mindset_next-stage", "one", testutil.WithTimestamp(base), testutil.WithJournalDay(1))
	e2 := testutil.NewTestJournalEntry("finance_money-moves", "two", testutil.WithTimestamp(base.Add(time.Hour)))
	e3 := testutil.NewTestJournalEntry("mindset_next-stage", "three", testutil.WithTimestamp(base.Add(2*time.Hour)), testutil.WithJournalDay(2))
	for _, e := range []*domain.JournalEntry{e1, e2, e3} {
		require.NoError(t, repo.Append(ctx, e))
	}

	all, err := repo.List(ctx, domain.JournalFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"one", "two", "three"}, contents(all))

	byPath, err := repo.List(ctx, domain.JournalFilter{PathTag: "mindset_next-stage"})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "three"}, contents(byPath))

	byDay, err := repo.List(ctx, domain.JournalFilter{PathTag: "mindset_next-stage", Day: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"three"}, contents(byDay))

	latest, err := repo.List(ctx, domain.JournalFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "three"}, contents(latest))

	n, err := repo.Count(ctx, "mindset_next-stage")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = repo.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func contents(entries []*domain.JournalEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Content
	}
	return out
}
