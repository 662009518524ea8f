package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/config"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/matchdata"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/infrastructure/repository/postgres"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/logging"
)

// OpenDB connects to Postgres with query tracing and verifies the schema contract.
func OpenDB(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	if logger == nil {
		logger = logging.Default()
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBSSL)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := verifySchema(ctx, postgres.NewSchemaVersionChecker(db), cfg.SchemaIntrospectionEnabled, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("database connected", "db_name", dbNameFromURL(dsn), "schema_version", matchdata.SchemaVersion)
	return db, nil
}

type schemaChecker interface {
	Check(ctx context.Context, want uint) error
}

// verifySchema enforces the compiled schema version. With introspection enabled the
// live column sets are used instead, so a mismatch is only logged.
func verifySchema(ctx context.Context, checker schemaChecker, introspection bool, logger *logging.Logger) error {
	err := checker.Check(ctx, matchdata.SchemaVersion)
	if err == nil {
		return nil
	}
	if introspection {
		logger.WarnContext(ctx, "schema version check failed, using introspected columns",
			"schema_version", matchdata.SchemaVersion,
			"error", err,
		)
		return nil
	}
	return err
}
