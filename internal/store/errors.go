package store

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrConflict       = errors.New("row changed by a concurrent writer")
	ErrSessionClosed  = errors.New("session already ended")
)

type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintCheck      ConstraintKind = "check"
	ConstraintNotNull    ConstraintKind = "not_null"
	ConstraintOther      ConstraintKind = "other"
)

// ConstraintError reports an integrity violation raised by the database,
// naming the column it was raised on when the driver allows it.
type ConstraintError struct {
	Kind   ConstraintKind
	Table  string
	Column string
	// Columns lists every violated column when the database reports several
	// at once, in the order it reported them. Column is the first of them.
	Columns    []string
	Constraint string
	Err        error
}

// Involves reports whether column is among the violated ones.
func (e *ConstraintError) Involves(column string) bool {
	if column == "" {
		return false
	}
	if e.Column == column {
		return true
	}
	for _, c := range e.Columns {
		if c == column {
			return true
		}
	}
	return false
}

func (e *ConstraintError) Error() string {
	target := e.Constraint
	if e.Column != "" {
		target = e.Column
		if e.Table != "" {
			target = e.Table + "." + e.Column
		}
	}
	if target == "" {
		return fmt.Sprintf("%s constraint violation", e.Kind)
	}
	return fmt.Sprintf("%s constraint violation on %s", e.Kind, target)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// AsConstraint extracts a ConstraintError from err's chain.
func AsConstraint(err error) (*ConstraintError, bool) {
	var cerr *ConstraintError
	if errors.As(err, &cerr) {
		return cerr, true
	}
	return nil, false
}
