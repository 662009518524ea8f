package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

func TestParseCommand(t *testing.T) {
	cmd, err := parseCommand([]string{"ids", "-ids", " a , ,b", "-shard", "kakao", "-tournament", " trn_1 "}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "ids", cmd.name)
	assert.Equal(t, []string{"a", "b"}, cmd.matchIDs)
	assert.Equal(t, "kakao", cmd.shard)
	assert.Equal(t, "trn_1", cmd.tournamentID)

	cmd, err = parseCommand([]string{"dir", "-path", "./matches", "-game", "pubg"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "./matches", cmd.path)
	assert.Equal(t, "pubg", cmd.gameID)

	cmd, err = parseCommand([]string{"BACKFILL"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "backfill", cmd.name)
}

func TestParseCommand_Errors(t *testing.T) {
	tests := [][]string{
		nil,
		{"sync"},
		{"dir"},
		{"ids", "-ids", " , "},
		{"backfill", "-path", "x"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := parseCommand(args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestRun_InvalidCommandExitsWithUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"nope"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "usage: matchimport")
}

type fakeImporter struct {
	gotIDs usecase.ImportMatchIDsInput
	report usecase.ImportReport
	err    error
}

func (f *fakeImporter) ImportDir(context.Context, string, string) (usecase.ImportReport, error) {
	return f.report, f.err
}

func (f *fakeImporter) ImportMatchIDs(_ context.Context, input usecase.ImportMatchIDsInput) (usecase.ImportReport, error) {
	f.gotIDs = input
	return f.report, f.err
}

func (f *fakeImporter) Backfill(context.Context, string) (usecase.ImportReport, error) {
	return f.report, f.err
}

func TestExecute_ForwardsIDs(t *testing.T) {
	fake := &fakeImporter{report: usecase.ImportReport{Received: 2, Imported: 2}}
	report, err := execute(context.Background(), fake, command{name: "ids", shard: "steam", matchIDs: []string{"m-1", "m-2"}, tournamentID: "trn_1"})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, []string{"m-1", "m-2"}, fake.gotIDs.MatchIDs)
	assert.Equal(t, "trn_1", fake.gotIDs.TournamentID)
}

func TestExecute_PropagatesPersistenceFailure(t *testing.T) {
	fake := &fakeImporter{err: fmt.Errorf("%w: insert players", usecase.ErrPersistenceFailure)}
	_, err := execute(context.Background(), fake, command{name: "backfill"})
	require.Error(t, err)
	assert.True(t, usecase.IsPersistenceFailure(err))
	assert.False(t, errors.Is(err, usecase.ErrInvalidInput))
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, usecase.ImportReport{
		Received: 2,
		Imported: 1,
		Skipped:  1,
		Failures: []usecase.ImportFailure{{Source: "b.json", Reason: "malformed payload: missing data.id"}},
	})
	out := buf.String()
	assert.Contains(t, out, "imported: 1")
	assert.Contains(t, out, "skip b.json: malformed payload")
}
