package querybuilder

import (
	"fmt"
	"strings"
)

type InsertBuilder struct {
	table    string
	columns  []string
	rows     [][]any
	conflict *conflictClause
	suffix   string
}

type conflictClause struct {
	keys      []string
	update    []string
	extra     []string
	doNothing bool
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// OnConflictDoUpdate overwrites every inserted column that is not part of keys
// with its EXCLUDED value. When every column is a key it degrades to DO NOTHING.
func (b *InsertBuilder) OnConflictDoUpdate(keys ...string) *InsertBuilder {
	keySet := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keySet[k] = struct{}{}
	}
	update := make([]string, 0, len(b.columns))
	for _, col := range b.columns {
		if _, isKey := keySet[col]; !isKey {
			update = append(update, col)
		}
	}
	b.conflict = &conflictClause{
		keys:      append([]string(nil), keys...),
		update:    update,
		doNothing: len(update) == 0,
	}
	return b
}

// OnConflictDoNothing ignores duplicates; keys may be empty to match any constraint.
func (b *InsertBuilder) OnConflictDoNothing(keys ...string) *InsertBuilder {
	b.conflict = &conflictClause{keys: append([]string(nil), keys...), doNothing: true}
	return b
}

// SetOnConflict adds a raw assignment to the DO UPDATE list, e.g. "updated_at = NOW()".
// It must follow OnConflictDoUpdate.
func (b *InsertBuilder) SetOnConflict(assignment string) *InsertBuilder {
	if b.conflict == nil || len(b.conflict.keys) == 0 {
		return b
	}
	b.conflict.extra = append(b.conflict.extra, assignment)
	b.conflict.doNothing = false
	return b
}

// Suffix is appended after the ON CONFLICT clause, e.g. "RETURNING id".
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	argIndex := 1
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				buf.WriteString(", ")
			}
			appendArg(&buf, &args, &argIndex, value)
		}
		buf.WriteString(")")
	}

	if err := b.appendConflict(&buf); err != nil {
		return "", nil, err
	}
	if b.suffix != "" {
		buf.WriteString(" ")
		buf.WriteString(b.suffix)
	}

	return buf.String(), args, nil
}

func (b *InsertBuilder) appendConflict(buf *strings.Builder) error {
	c := b.conflict
	if c == nil {
		return nil
	}

	buf.WriteString(" ON CONFLICT")
	if len(c.keys) > 0 {
		buf.WriteString(" (")
		buf.WriteString(strings.Join(c.keys, ", "))
		buf.WriteString(")")
	} else if !c.doNothing {
		return fmt.Errorf("conflict keys are required for DO UPDATE")
	}

	if c.doNothing {
		buf.WriteString(" DO NOTHING")
		return nil
	}

	buf.WriteString(" DO UPDATE SET ")
	for i, col := range c.update {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(col)
		buf.WriteString(" = EXCLUDED.")
		buf.WriteString(col)
	}
	for i, assignment := range c.extra {
		if i > 0 || len(c.update) > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(assignment)
	}
	return nil
}

type setClause struct {
	column string
	value  any
	expr   *exprCondition
}

type UpdateBuilder struct {
	table string
	sets  []setClause
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: value})
	return b
}

func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, expr: &exprCondition{expr: expr, args: args}})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var buf strings.Builder
	buf.WriteString("UPDATE ")
	buf.WriteString(b.table)
	buf.WriteString(" SET ")

	args := make([]any, 0, len(b.sets)+len(b.where))
	argIndex := 1
	for i, s := range b.sets {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(s.column)
		buf.WriteString(" = ")
		if s.expr != nil {
			buf.WriteString(rewritePlaceholders(s.expr.expr, s.expr.args, &args, &argIndex))
			continue
		}
		appendArg(&buf, &args, &argIndex, s.value)
	}

	appendWhereClause(&buf, b.where, &args, &argIndex)
	return buf.String(), args, nil
}
