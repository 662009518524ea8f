package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pqUndefinedTable = "42P01"

// ErrSchemaOutOfDate marks a database whose migrations do not satisfy the compiled schema.
var ErrSchemaOutOfDate = errors.New("database schema out of date")

type schemaMigrationRow struct {
	Version int64 `db:"version"`
	Dirty   bool  `db:"dirty"`
}

// SchemaState is what golang-migrate recorded in schema_migrations.
// Applied is false when the table is missing or empty.
type SchemaState struct {
	Version int64
	Dirty   bool
	Applied bool
}

// Verify reports whether the state satisfies version want.
func (s SchemaState) Verify(want uint) error {
	switch {
	case !s.Applied:
		return fmt.Errorf("%w: no applied migrations, expected version %d", ErrSchemaOutOfDate, want)
	case s.Dirty:
		return fmt.Errorf("%w: version %d is dirty, fix it with the migration tool", ErrSchemaOutOfDate, s.Version)
	case s.Version < int64(want):
		return fmt.Errorf("%w: version %d is older than required %d, run migrations", ErrSchemaOutOfDate, s.Version, want)
	}
	return nil
}

// SchemaVersionChecker compares golang-migrate's schema_migrations row with the
// version the binary was built against.
type SchemaVersionChecker struct {
	db *sqlx.DB
}

func NewSchemaVersionChecker(db *sqlx.DB) *SchemaVersionChecker {
	return &SchemaVersionChecker{db: db}
}

func (c *SchemaVersionChecker) State(ctx context.Context) (SchemaState, error) {
	var row schemaMigrationRow
	if err := c.db.GetContext(ctx, &row, "SELECT version, dirty FROM schema_migrations LIMIT 1"); err != nil {
		if isNotFound(err) || isUndefinedTable(err) {
			return SchemaState{}, nil
		}
		return SchemaState{}, fmt.Errorf("read schema version: %w", err)
	}
	return SchemaState{Version: row.Version, Dirty: row.Dirty, Applied: true}, nil
}

func (c *SchemaVersionChecker) Check(ctx context.Context, want uint) error {
	state, err := c.State(ctx)
	if err != nil {
		return err
	}
	return state.Verify(want)
}

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUndefinedTable
	}
	return false
}
