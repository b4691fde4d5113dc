// Package rows stores content rows in PostgreSQL tables through database/sql.
// One generic store serves every table; a Table value tells it which
// columns to read and write and how to scan them.
package rows

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/parroquia/contentadmin/internal/common"
	"github.com/parroquia/contentadmin/internal/dbx"
	"github.com/parroquia/contentadmin/internal/recordsync"
)

// Scanner is implemented by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Table binds a row type to a table.
type Table[R any] struct {
	Name string
	// Columns are read by List, in the order Scan expects them.
	Columns []string
	// Writes are the columns set by Create and Update, in the order Values returns them.
	Writes []string
	Values func(row R) []any
	Scan   func(sc Scanner) (R, error)
}

type PostgresStore[R any] struct {
	db    *sql.DB
	table Table[R]
}

func NewPostgresStore[R any](db *sql.DB, table Table[R]) *PostgresStore[R] {
	return &PostgresStore[R]{db: db, table: table}
}

func (s *PostgresStore[R]) List(ctx context.Context, order []recordsync.OrderBy) ([]R, error) {
	orderBy, err := s.orderClause(order)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s", strings.Join(s.table.Columns, ", "), s.table.Name, orderBy)

	result, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", s.table.Name, err)
	}
	defer result.Close()

	out := make([]R, 0)
	for result.Next() {
		row, err := s.table.Scan(result)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, row)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (s *PostgresStore[R]) Create(ctx context.Context, row R) error {
	placeholders := make([]string, len(s.table.Writes))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.table.Name, strings.Join(s.table.Writes, ", "), strings.Join(placeholders, ", "))

	res, err := s.db.ExecContext(ctx, query, s.table.Values(row)...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

// Update overwrites the written columns of row id. It fails with
// common.ErrorNotFound when no row has that id.
func (s *PostgresStore[R]) Update(ctx context.Context, id string, row R) error {
	sets := make([]string, len(s.table.Writes))
	for i, c := range s.table.Writes {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		s.table.Name, strings.Join(sets, ", "), len(sets)+1)
	args := append(s.table.Values(row), id)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := execAffected(ctx, tx, query, args...)
		if err != nil {
			return err
		}
		switch {
		case n == 0:
			return common.ErrorNotFound
		case n > 1:
			return fmt.Errorf("unexpected rows affected: %d", n)
		}
		return nil
	})
}

// Delete removes row id. Deleting a row that is already gone is not an error.
func (s *PostgresStore[R]) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.table.Name)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := execAffected(ctx, tx, query, id)
		if err != nil {
			return err
		}
		if n > 1 {
			return fmt.Errorf("unexpected rows affected: %d", n)
		}
		return nil
	})
}

func execAffected(ctx context.Context, db dbx.DBTX, query string, args ...any) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// orderClause renders order as an ORDER BY clause. Only columns the table
// reads are accepted.
func (s *PostgresStore[R]) orderClause(order []recordsync.OrderBy) (string, error) {
	if len(order) == 0 {
		return "", nil
	}
	known := make(map[string]struct{}, len(s.table.Columns))
	for _, c := range s.table.Columns {
		known[c] = struct{}{}
	}

	terms := make([]string, 0, len(order))
	for _, o := range order {
		if _, ok := known[o.Column]; !ok {
			return "", fmt.Errorf("%w: %s.%s", common.ErrorUnknownColumn, s.table.Name, o.Column)
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		terms = append(terms, o.Column+" "+dir)
	}
	return " ORDER BY " + strings.Join(terms, ", "), nil
}
