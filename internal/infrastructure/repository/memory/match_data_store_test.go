package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/matchdata"
)

func teamRow(id, name string) matchdata.Row {
	row := matchdata.NewRow(matchdata.TableTeams)
	row.Set("game_id", "pubg")
	row.Set("team_id", id)
	row.Set("team_name", name)
	return row
}

func TestMatchDataStore_UpsertOverwritesByKey(t *testing.T) {
	t.Parallel()

	store := NewMatchDataStore()
	ctx := context.Background()

	for _, name := range []string{"Team 7", "Apex Seven"} {
		err := store.WithinTx(ctx, func(ctx context.Context, w matchdata.Writer) error {
			return w.Upsert(ctx, teamRow("7", name))
		})
		require.NoError(t, err)
	}

	rows := store.Rows(matchdata.TableTeams)
	require.Len(t, rows, 1)
	assert.Equal(t, "Apex Seven", rows[0]["team_name"])
}

func TestMatchDataStore_InsertOnlyKeepsExisting(t *testing.T) {
	t.Parallel()

	store := NewMatchDataStore()
	ctx := context.Background()

	write := func(name string) {
		row := matchdata.NewRow(matchdata.TableGames)
		row.Set("game_id", "pubg")
		row.Set("name", name)
		row.InsertOnly = true
		require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, w matchdata.Writer) error {
			return w.Upsert(ctx, row)
		}))
	}
	write("PUBG")
	write("Renamed")

	rows := store.Rows(matchdata.TableGames)
	require.Len(t, rows, 1)
	assert.Equal(t, "PUBG", rows[0]["name"])
}

func TestMatchDataStore_RollbackOnError(t *testing.T) {
	t.Parallel()

	store := NewMatchDataStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context, w matchdata.Writer) error {
		if err := w.Upsert(ctx, teamRow("1", "Team 1")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, store.Count(matchdata.TableTeams))

	store.FailOn = func(row matchdata.Row) error {
		if v, _ := row.Value("team_id"); v == "2" {
			return boom
		}
		return nil
	}
	err = store.WithinTx(ctx, func(ctx context.Context, w matchdata.Writer) error {
		for _, id := range []string{"1", "2"} {
			if err := w.Upsert(ctx, teamRow(id, "Team "+id)); err != nil {
				return err
			}
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, store.Count(matchdata.TableTeams))
}
