package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/rawmatch"
)

func TestRawMatchRepository_UpsertRefreshesPayload(t *testing.T) {
	t.Parallel()

	repo := NewRawMatchRepository()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, repo.UpsertMany(ctx, []rawmatch.Match{{ID: "m1", Payload: []byte(`{"v":1}`)}, {ID: " "}}))
	clock = clock.Add(time.Hour)
	require.NoError(t, repo.UpsertMany(ctx, []rawmatch.Match{{ID: "m1", Payload: []byte(`{"v":2}`)}}))

	got, err := repo.GetByIDs(ctx, []string{"m1", "missing"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.JSONEq(t, `{"v":2}`, string(got[0].Payload))
	assert.True(t, got[0].UpdatedAt.After(got[0].CreatedAt))
}

func TestRawMatchRepository_ListIDsPages(t *testing.T) {
	t.Parallel()

	repo := NewRawMatchRepository()
	ctx := context.Background()
	require.NoError(t, repo.UpsertMany(ctx, []rawmatch.Match{{ID: "c"}, {ID: "a"}, {ID: "b"}}))

	page, err := repo.ListIDs(ctx, "", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, page)

	page, err = repo.ListIDs(ctx, "b", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, page)
}
