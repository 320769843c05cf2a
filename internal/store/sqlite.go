package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	sqlite "github.com/mattn/go-sqlite3"
)

type sqliteDialect struct{}

// sqliteDSN enables foreign keys and takes the write lock when a session
// begins, so two sessions can never interleave a read-modify-write.
func sqliteDSN(path string) string {
	return path + "?_foreign_keys=on&_txlock=immediate&_busy_timeout=5000"
}

func (sqliteDialect) name() string        { return DriverSQLite }
func (sqliteDialect) driverName() string  { return "sqlite3" }
func (sqliteDialect) migrateName() string { return "sqlite3" }

func (sqliteDialect) migrationDriver(db *sql.DB) (database.Driver, error) {
	return sqlite3.WithInstance(db, &sqlite3.Config{})
}

func (sqliteDialect) rebind(query string) string { return query }

func (sqliteDialect) lockClause() string { return "" }

func (sqliteDialect) classify(err error) error {
	var sqliteErr sqlite.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite.ErrConstraint {
		return err
	}

	cerr := &ConstraintError{Kind: ConstraintOther, Err: err}

	switch sqliteErr.ExtendedCode {
	case sqlite.ErrConstraintUnique, sqlite.ErrConstraintPrimaryKey:
		cerr.Kind = ConstraintUnique
		cerr.Table, cerr.Column = parseSQLiteTarget(sqliteErr.Error())
	case sqlite.ErrConstraintNotNull:
		cerr.Kind = ConstraintNotNull
		cerr.Table, cerr.Column = parseSQLiteTarget(sqliteErr.Error())
	case sqlite.ErrConstraintCheck:
		cerr.Kind = ConstraintCheck
		cerr.Constraint = sqliteDetail(sqliteErr.Error())
	case sqlite.ErrConstraintForeignKey:
		// SQLite does not say which key failed here; checkDeferred does.
		cerr.Kind = ConstraintForeignKey
	}

	return cerr
}

type fkViolation struct {
	table  string
	parent string
	fkID   int64
}

// checkDeferred runs the foreign key check that COMMIT would otherwise fail
// on, and resolves every failing key to its column.
func (sqliteDialect) checkDeferred(ctx context.Context, tx DBTX) error {
	violations, err := sqliteForeignKeyViolations(ctx, tx)
	if err != nil || len(violations) == 0 {
		return err
	}

	cerr := &ConstraintError{
		Kind:  ConstraintForeignKey,
		Table: violations[0].table,
		Err:   errors.New("FOREIGN KEY constraint failed"),
	}

	seen := make(map[string]bool)
	for _, v := range violations {
		if v.table != cerr.Table {
			continue
		}

		column, err := sqliteForeignKeyColumn(ctx, tx, v.table, v.fkID)
		if err != nil {
			return err
		}
		if column == "" || seen[column] {
			continue
		}
		seen[column] = true

		if cerr.Column == "" {
			cerr.Column = column
			cerr.Constraint = fmt.Sprintf("%s.%s -> %s", v.table, column, v.parent)
		}
		cerr.Columns = append(cerr.Columns, column)
	}

	return cerr
}

// sqliteForeignKeyViolations reads all of PRAGMA foreign_key_check before
// anything else is queried on the transaction.
func sqliteForeignKeyViolations(ctx context.Context, tx DBTX) ([]fkViolation, error) {
	rows, err := tx.QueryContext(ctx, "PRAGMA foreign_key_check")
	if err != nil {
		return nil, fmt.Errorf("failed to check foreign keys: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var violations []fkViolation
	for rows.Next() {
		var (
			v     fkViolation
			rowID sql.NullInt64
		)
		if err := rows.Scan(&v.table, &rowID, &v.parent, &v.fkID); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key violation: %w", err)
		}
		violations = append(violations, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to check foreign keys: %w", err)
	}
	return violations, nil
}

func sqliteForeignKeyColumn(ctx context.Context, tx DBTX, table string, fkID int64) (string, error) {
	quoted := `"` + strings.ReplaceAll(table, `"`, `""`) + `"`

	rows, err := tx.QueryContext(ctx, "PRAGMA foreign_key_list("+quoted+")")
	if err != nil {
		return "", fmt.Errorf("failed to list foreign keys of %s: %w", table, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			id, seq                     int64
			parent, from                string
			to                          sql.NullString
			onUpdate, onDelete, matchBy string
		)
		if err := rows.Scan(&id, &seq, &parent, &from, &to, &onUpdate, &onDelete, &matchBy); err != nil {
			return "", fmt.Errorf("failed to scan foreign key: %w", err)
		}
		if id == fkID && seq == 0 {
			return from, nil
		}
	}

	return "", rows.Err()
}

// parseSQLiteTarget reads "table.column" out of messages such as
// "UNIQUE constraint failed: users.username". Only the first column of a
// composite key is returned.
func parseSQLiteTarget(msg string) (string, string) {
	detail := sqliteDetail(msg)
	if i := strings.IndexByte(detail, ','); i >= 0 {
		detail = detail[:i]
	}

	table, column, ok := strings.Cut(strings.TrimSpace(detail), ".")
	if !ok {
		return "", table
	}
	return table, column
}

func sqliteDetail(msg string) string {
	_, detail, ok := strings.Cut(msg, "constraint failed: ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(detail)
}
