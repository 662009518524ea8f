package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestSchemaState_Verify(t *testing.T) {
	tests := []struct {
		name    string
		state   SchemaState
		wantErr bool
	}{
		{name: "current", state: SchemaState{Version: 3, Applied: true}},
		{name: "newer", state: SchemaState{Version: 4, Applied: true}},
		{name: "older", state: SchemaState{Version: 2, Applied: true}, wantErr: true},
		{name: "dirty", state: SchemaState{Version: 3, Dirty: true, Applied: true}, wantErr: true},
		{name: "missing", state: SchemaState{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Verify(3)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrSchemaOutOfDate) {
				t.Fatalf("expected ErrSchemaOutOfDate, got %v", err)
			}
		})
	}
}

func TestIsUndefinedTable(t *testing.T) {
	if !isUndefinedTable(fmt.Errorf("get: %w", &pq.Error{Code: "42P01", Message: `relation "schema_migrations" does not exist`})) {
		t.Fatalf("expected 42P01 to be an undefined table")
	}
	if isUndefinedTable(&pq.Error{Code: "23505"}) {
		t.Fatalf("expected unique violation not to be an undefined table")
	}
}
