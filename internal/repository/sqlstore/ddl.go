package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/medcare/admin-api/internal/model"
)

// createTableSQL builds the idempotent DDL for one schema. Every column is
// TEXT; required fields are NOT NULL, unique fields carry a UNIQUE
// constraint. The same DDL runs on sqlite3 and postgres.
func createTableSQL(schema *model.Schema) string {
	cols := make([]string, 0, len(schema.Fields)+2)
	cols = append(cols, model.ColumnID+" TEXT PRIMARY KEY")
	for _, f := range schema.Fields {
		col := f.Name + " TEXT"
		if f.Required {
			col += " NOT NULL"
		}
		if f.Unique {
			col += " UNIQUE"
		}
		cols = append(cols, col)
	}
	cols = append(cols, model.ColumnCreatedAt+" TEXT NOT NULL")

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", schema.Table, strings.Join(cols, ", "))
}

// EnsureSchema creates the table for every schema if absent. It runs once
// at process start and is safe to run again.
func (s *Store) EnsureSchema(ctx context.Context, schemas []*model.Schema) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	for _, schema := range schemas {
		if _, err := conn.ExecContext(ctx, createTableSQL(schema)); err != nil {
			return fmt.Errorf("failed to ensure table %s: %w", schema.Table, err)
		}
	}
	return nil
}
