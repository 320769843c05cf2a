package store

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4/database"
)

// dialect isolates what differs between the supported databases: driver
// registration, placeholders, row locks and how integrity violations are
// reported.
type dialect interface {
	name() string
	driverName() string
	migrateName() string
	migrationDriver(db *sql.DB) (database.Driver, error)

	// rebind rewrites '?' placeholders into the dialect's own form.
	rebind(query string) string
	lockClause() string

	// classify turns a driver integrity error into *ConstraintError and
	// returns any other error unchanged.
	classify(err error) error

	// checkDeferred reports integrity violations that the database would
	// only raise at commit time.
	checkDeferred(ctx context.Context, tx DBTX) error
}

func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
