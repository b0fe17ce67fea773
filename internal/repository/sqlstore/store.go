package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/medcare/admin-api/internal/model"
	"github.com/medcare/admin-api/internal/repository"
	"github.com/medcare/admin-api/pkg/metrics"
)

// Store implements repository.ResourceStore for any catalog schema. Column
// names and table names come from validated schemas, never from requests;
// all values travel as bound parameters. Each operation acquires one
// connection, runs one statement, and releases the connection on all paths.
type Store struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

func New(db *sqlx.DB, m *metrics.Metrics) *Store {
	return &Store{db: db, metrics: m}
}

func (s *Store) List(ctx context.Context, schema *model.Schema, filter string) (_ []model.Row, err error) {
	defer s.observe("list", schema.Name, time.Now(), &err)

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	query := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(schema.Columns(), ", "), schema.Table)

	var args []interface{}
	searchable := schema.SearchableColumns()
	if filter != "" && len(searchable) > 0 {
		pattern := "%" + escapeLike(strings.ToLower(filter)) + "%"
		clauses := make([]string, 0, len(searchable))
		for _, col := range searchable {
			clauses = append(clauses, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col))
			args = append(args, pattern)
		}
		query += " WHERE " + strings.Join(clauses, " OR ")
	}
	query += " ORDER BY " + strings.Join(schema.OrderBy, ", ")

	rows, err := conn.QueryxContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", schema.Name, err)
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		row, err := scanRow(schema, rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", schema.Singular, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", schema.Name, err)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, schema *model.Schema, id string) (_ model.Row, err error) {
	defer s.observe("get", schema.Name, time.Now(), &err)

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
		strings.Join(schema.Columns(), ", "), schema.Table, model.ColumnID)

	row, err := scanRow(schema, conn.QueryRowxContext(ctx, s.db.Rebind(query), id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", schema.Singular, err)
	}
	return row, nil
}

func (s *Store) Create(ctx context.Context, schema *model.Schema, row model.Row) (err error) {
	defer s.observe("create", schema.Name, time.Now(), &err)

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	cols := schema.Columns()
	args := make([]interface{}, len(cols))
	marks := make([]string, len(cols))
	for i, col := range cols {
		args[i] = row[col]
		marks[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		schema.Table, strings.Join(cols, ", "), strings.Join(marks, ", "))

	if _, err := conn.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create %s: %w", schema.Singular, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, schema *model.Schema, id string, row model.Row) (err error) {
	defer s.observe("update", schema.Name, time.Now(), &err)

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	cols := schema.WritableColumns()
	sets := make([]string, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for i, col := range cols {
		sets[i] = col + " = ?"
		args = append(args, row[col])
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		schema.Table, strings.Join(sets, ", "), model.ColumnID)

	res, err := conn.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to update %s: %w", schema.Singular, err)
	}
	return affectedOrNotFound(res)
}

func (s *Store) Delete(ctx context.Context, schema *model.Schema, id string) (err error) {
	defer s.observe("delete", schema.Name, time.Now(), &err)

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", schema.Table, model.ColumnID)
	res, err := conn.ExecContext(ctx, s.db.Rebind(query), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", schema.Singular, err)
	}
	return affectedOrNotFound(res)
}

func (s *Store) Count(ctx context.Context, schema *model.Schema) (_ int64, err error) {
	defer s.observe("count", schema.Name, time.Now(), &err)

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.Table)
	if err := conn.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", schema.Name, err)
	}
	return n, nil
}

func (s *Store) observe(op, resource string, start time.Time, err *error) {
	s.metrics.ObserveStore(op, resource, start, *err)
}

// scanRow reads one result row into a model.Row in schema column order.
// NULLs read back as empty strings; the service layer never writes NULL.
func scanRow(schema *model.Schema, scan func(dest ...interface{}) error) (model.Row, error) {
	cols := schema.Columns()
	vals := make([]sql.NullString, len(cols))
	dest := make([]interface{}, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := scan(dest...); err != nil {
		return nil, err
	}
	row := make(model.Row, len(cols))
	for i, col := range cols {
		row[col] = vals[i].String
	}
	return row, nil
}

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(v)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
