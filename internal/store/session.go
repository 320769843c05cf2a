package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type sqlSession struct {
	id      string
	ctx     context.Context
	tx      *sql.Tx
	dialect dialect

	// dirty is set once a row that carries foreign keys is written.
	dirty bool
	done  bool
}

var _ Session = (*sqlSession)(nil)

func (s *sqlSession) ID() string {
	return s.id
}

func (s *sqlSession) Commit() error {
	if s.done {
		return ErrSessionClosed
	}

	if s.dirty {
		if err := s.dialect.checkDeferred(s.ctx, s.tx); err != nil {
			// Leave the session open so the caller decides how to end it.
			return err
		}
	}

	s.done = true
	if err := s.tx.Commit(); err != nil {
		return s.dialect.classify(fmt.Errorf("failed to commit: %w", err))
	}
	return nil
}

func (s *sqlSession) Rollback() error {
	if s.done {
		return nil
	}

	s.done = true
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back: %w", err)
	}
	return nil
}

func (s *sqlSession) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if s.done {
		return nil, ErrSessionClosed
	}
	return s.tx.ExecContext(ctx, s.dialect.rebind(query), args...)
}

func (s *sqlSession) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if s.done {
		return nil, ErrSessionClosed
	}
	return s.tx.QueryContext(ctx, s.dialect.rebind(query), args...)
}

func (s *sqlSession) queryRow(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	if s.done {
		return nil, ErrSessionClosed
	}
	return s.tx.QueryRowContext(ctx, s.dialect.rebind(query), args...), nil
}

// execOne runs a write that must touch exactly one row.
func (s *sqlSession) execOne(ctx context.Context, missing error, query string, args ...any) error {
	result, err := s.exec(ctx, query, args...)
	if err != nil {
		return s.dialect.classify(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return missing
	}

	return nil
}

// where joins conditions with AND.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	out := " WHERE " + w.conds[0]
	for _, c := range w.conds[1:] {
		out += " AND " + c
	}
	return out
}
