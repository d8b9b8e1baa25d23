// Package database runs one-shot SQL statements against SQLite files or
// PostgreSQL servers. Every call opens its own connection and closes it
// before returning; nothing is pooled between calls.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/chinmaymudholkar/automation-snippets/internal/logging"
	"github.com/chinmaymudholkar/automation-snippets/internal/table"
)

// ErrEmptyDSN is returned when no database path or URL was given.
var ErrEmptyDSN = errors.New("database DSN is empty")

// Dialect identifies the SQL flavour behind a DSN.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	default:
		return "sqlite"
	}
}

// driverName returns the database/sql driver registered for the dialect.
func (d Dialect) driverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite3"
}

// DialectOf picks the dialect for dsn. postgres:// and postgresql:// URLs
// are PostgreSQL; anything else is treated as a SQLite file path.
func DialectOf(dsn string) Dialect {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return Postgres
	}
	return SQLite
}

func open(ctx context.Context, dsn string) (*sql.DB, Dialect, error) {
	if dsn == "" {
		return nil, 0, ErrEmptyDSN
	}
	dialect := DialectOf(dsn)
	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, dialect, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, dialect, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, dialect, nil
}

// Query runs query and returns every row it produces.
func Query(ctx context.Context, dsn, query string, args ...any) (*table.Table, error) {
	db, _, err := open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	start := time.Now()
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := table.New(columns...)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			values[i] = normalize(v)
		}
		if err := result.Append(values...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	logging.FromContext(ctx).Debug("query_executed",
		"rows", result.Len(),
		"columns", len(columns),
		"elapsed", time.Since(start),
	)
	return result, nil
}

// ExecuteNonQuery runs an INSERT, UPDATE, DELETE or DDL statement and
// returns the number of rows it affected.
func ExecuteNonQuery(ctx context.Context, dsn, statement string, args ...any) (int64, error) {
	db, _, err := open(ctx, dsn)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, statement, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	logging.FromContext(ctx).Debug("statement_executed", "rows_affected", n)
	return n, nil
}

// ExecuteScalar returns the first column of the first row of query, or nil
// when the query returns no rows.
func ExecuteScalar(ctx context.Context, dsn, query string, args ...any) (any, error) {
	db, _, err := open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return scalar(ctx, db, query, args...)
}

func scalar(ctx context.Context, db *sql.DB, query string, args ...any) (any, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	if !rows.Next() {
		return nil, rows.Err()
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return normalize(values[0]), nil
}

// TableNames lists the user tables of the database. For PostgreSQL only the
// public schema is listed.
func TableNames(ctx context.Context, dsn string) ([]string, error) {
	db, dialect, err := open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := "SELECT name FROM sqlite_master WHERE type='table' ORDER BY name"
	if dialect == Postgres {
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name"
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// TableExists reports whether a table called name exists.
func TableExists(ctx context.Context, dsn, name string) (bool, error) {
	names, err := TableNames(ctx, dsn)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// RowCount counts the rows of a table, or of a SELECT query when
// tableOrQuery starts with SELECT.
func RowCount(ctx context.Context, dsn, tableOrQuery string) (int64, error) {
	v, err := ExecuteScalar(ctx, dsn, countQuery(tableOrQuery))
	if err != nil {
		return 0, err
	}
	return toInt64(v)
}

func countQuery(tableOrQuery string) string {
	trimmed := strings.TrimSpace(tableOrQuery)
	if strings.HasPrefix(strings.ToUpper(trimmed), "SELECT") {
		return fmt.Sprintf("SELECT COUNT(1) FROM (%s) AS subquery", trimmed)
	}
	return fmt.Sprintf("SELECT COUNT(1) FROM %s", trimmed)
}

func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case nil:
		return 0, errors.New("count query returned no rows")
	default:
		return 0, fmt.Errorf("unexpected count type %T", v)
	}
}
