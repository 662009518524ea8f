package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/cache"
	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

// ColumnIntrospector reads live column sets from information_schema.
// Used instead of the compiled schema when the database may drift from the migrations.
type ColumnIntrospector struct {
	db     *sqlx.DB
	schema string
	cache  *cache.Store
}

func NewColumnIntrospector(db *sqlx.DB, store *cache.Store) *ColumnIntrospector {
	return &ColumnIntrospector{db: db, schema: "public", cache: store}
}

func (c *ColumnIntrospector) Columns(ctx context.Context, table string) (map[string]struct{}, error) {
	return cache.Load(ctx, c.cache, "schema:columns:"+table, func(ctx context.Context) (map[string]struct{}, error) {
		return c.load(ctx, table)
	})
}

func (c *ColumnIntrospector) load(ctx context.Context, table string) (map[string]struct{}, error) {
	query, args, err := qb.Select("column_name").
		From("information_schema.columns").
		Where(qb.Eq("table_schema", c.schema), qb.Eq("table_name", table)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select columns query: %w", err)
	}

	var names []string
	if err := c.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("select columns of %s: %w", table, err)
	}

	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out, nil
}
