package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/encore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRepo_IncrementCreatesThenCounts(t *testing.T) {
	repo := NewSQLiteProgressRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	n, err := repo.Increment(ctx, "mindset_next-stage")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.Increment(ctx, "mindset_next-stage")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	p, err := repo.Get(ctx, "mindset_next-stage")
	require.NoError(t, err)
	assert.Equal(t, 2, p.DaysCompleted)
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestProgressRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteProgressRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProgressRepo_ListAndReset(t *testing.T) {
	repo := NewSQLiteProgressRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Increment(ctx, "b_path")
	require.NoError(t, err)
	_, err = repo.Increment(ctx, "a_path")
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a_path", list[0].Key)

	require.NoError(t, repo.Reset(ctx, "a_path"))
	_, err = repo.Get(ctx, "a_path")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Reset(ctx, "a_path"), ErrNotFound)
}
