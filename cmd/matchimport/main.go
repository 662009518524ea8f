package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/app"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/config"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/logging"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

type command struct {
	name         string
	gameID       string
	path         string
	shard        string
	tournamentID string
	matchIDs     []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd, err := parseCommand(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		printUsage(stderr)
		return 2
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(stderr, "load env:", err)
		return 1
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "load config:", err)
		return 1
	}

	logger := logging.NewConsole(cfg.LogLevel, stderr).Named("import." + cmd.name)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := app.OpenDB(ctx, cfg, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		return 1
	}
	defer func() { _ = db.Close() }()

	svc, err := app.NewMatchImportService(ctx, cfg, db, logger, app.ImportOptions{})
	if err != nil {
		logger.Error("build import service", "error", err)
		return 1
	}

	report, err := execute(ctx, svc, cmd)
	printReport(stdout, report)
	if err != nil {
		if usecase.IsPersistenceFailure(err) {
			logger.Error("import aborted on persistence failure", "error", err)
		} else {
			logger.Error("import failed", "error", err)
		}
		return 1
	}
	return 0
}

type importer interface {
	ImportDir(ctx context.Context, gameID, dir string) (usecase.ImportReport, error)
	ImportMatchIDs(ctx context.Context, input usecase.ImportMatchIDsInput) (usecase.ImportReport, error)
	Backfill(ctx context.Context, gameID string) (usecase.ImportReport, error)
}

func execute(ctx context.Context, svc importer, cmd command) (usecase.ImportReport, error) {
	switch cmd.name {
	case "dir":
		return svc.ImportDir(ctx, cmd.gameID, cmd.path)
	case "ids":
		return svc.ImportMatchIDs(ctx, usecase.ImportMatchIDsInput{
			GameID:       cmd.gameID,
			Shard:        cmd.shard,
			MatchIDs:     cmd.matchIDs,
			TournamentID: cmd.tournamentID,
		})
	case "backfill":
		return svc.Backfill(ctx, cmd.gameID)
	default:
		return usecase.ImportReport{}, fmt.Errorf("unknown command %q", cmd.name)
	}
}

func parseCommand(args []string, output io.Writer) (command, error) {
	if len(args) == 0 {
		return command{}, fmt.Errorf("missing command")
	}

	cmd := command{name: strings.ToLower(strings.TrimSpace(args[0]))}
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cmd.gameID, "game", "", "game id (defaults to IMPORT_DEFAULT_GAME_ID)")

	var ids string
	switch cmd.name {
	case "dir":
		fs.StringVar(&cmd.path, "path", "", "directory of *.json match payloads")
	case "ids":
		fs.StringVar(&ids, "ids", "", "comma separated match ids")
		fs.StringVar(&cmd.shard, "shard", "", "platform shard (defaults to PUBG_DEFAULT_SHARD)")
		fs.StringVar(&cmd.tournamentID, "tournament", "", "tournament id to link the matches to")
	case "backfill":
	default:
		return command{}, fmt.Errorf("unknown command %q", args[0])
	}

	if err := fs.Parse(args[1:]); err != nil {
		return command{}, err
	}

	switch cmd.name {
	case "dir":
		cmd.path = strings.TrimSpace(cmd.path)
		if cmd.path == "" {
			return command{}, fmt.Errorf("dir requires -path")
		}
	case "ids":
		cmd.matchIDs = splitIDs(ids)
		if len(cmd.matchIDs) == 0 {
			return command{}, fmt.Errorf("ids requires -ids")
		}
		cmd.tournamentID = strings.TrimSpace(cmd.tournamentID)
	}
	return cmd, nil
}

func splitIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if id := strings.TrimSpace(part); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func printReport(w io.Writer, report usecase.ImportReport) {
	fmt.Fprintf(w, "received: %d\n", report.Received)
	fmt.Fprintf(w, "imported: %d\n", report.Imported)
	fmt.Fprintf(w, "skipped: %d\n", report.Skipped)
	for _, f := range report.Failures {
		if f.MatchID != "" {
			fmt.Fprintf(w, "  skip %s (%s): %s\n", f.Source, f.MatchID, f.Reason)
			continue
		}
		fmt.Fprintf(w, "  skip %s: %s\n", f.Source, f.Reason)
	}
	if len(report.DroppedColumns) > 0 {
		fmt.Fprintf(w, "dropped columns: %s\n", strings.Join(report.DroppedColumns, ", "))
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: matchimport <dir|ids|backfill> [flags]")
	fmt.Fprintln(w, "examples:")
	fmt.Fprintln(w, "  matchimport dir -path ./data/matches -game pubg")
	fmt.Fprintln(w, "  matchimport ids -ids a1b2,c3d4 -shard steam -tournament trn_123")
	fmt.Fprintln(w, "  matchimport backfill")
}
