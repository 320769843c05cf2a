package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// SQLSTATE integrity_constraint_violation class codes.
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

type postgresDialect struct{}

func (postgresDialect) name() string        { return DriverPostgres }
func (postgresDialect) driverName() string  { return "pgx" }
func (postgresDialect) migrateName() string { return "pgx5" }

func (postgresDialect) migrationDriver(db *sql.DB) (database.Driver, error) {
	return migratepgx.WithInstance(db, &migratepgx.Config{})
}

func (postgresDialect) rebind(query string) string { return rebindDollar(query) }

func (postgresDialect) lockClause() string { return " FOR UPDATE" }

func (postgresDialect) classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	var kind ConstraintKind
	switch pgErr.Code {
	case pgUniqueViolation:
		kind = ConstraintUnique
	case pgForeignKeyViolation:
		kind = ConstraintForeignKey
	case pgCheckViolation:
		kind = ConstraintCheck
	case pgNotNullViolation:
		kind = ConstraintNotNull
	default:
		return err
	}

	column := pgErr.ColumnName
	if column == "" {
		column = constraintColumn(pgErr.TableName, pgErr.ConstraintName)
	}

	return &ConstraintError{
		Kind:       kind,
		Table:      pgErr.TableName,
		Column:     column,
		Constraint: pgErr.ConstraintName,
		Err:        err,
	}
}

func (postgresDialect) checkDeferred(context.Context, DBTX) error { return nil }

// constraintColumn recovers the column from constraints named
// <table>_<column>_{key,fkey,check}, which is how the migrations name them.
func constraintColumn(table, constraint string) string {
	rest, ok := strings.CutPrefix(constraint, table+"_")
	if !ok {
		return ""
	}
	for _, suffix := range []string{"_fkey", "_key", "_check"} {
		if column, ok := strings.CutSuffix(rest, suffix); ok {
			return column
		}
	}
	return ""
}
