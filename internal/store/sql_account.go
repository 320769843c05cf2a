package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/remit/internal/model"
)

const accountColumns = "id, username, balance, is_blocked"

func (s *sqlSession) FindAccount(ctx context.Context, filter AccountFilter) (*model.Account, error) {
	var w where
	if filter.ID != 0 {
		w.add("id = ?", filter.ID)
	}
	if filter.Username != "" {
		w.add("username = ?", filter.Username)
	}
	if len(w.conds) == 0 {
		return nil, errors.New("account filter is empty")
	}

	query := "SELECT " + accountColumns + " FROM accounts" + w.String()
	if filter.ForUpdate {
		query += s.dialect.lockClause()
	}

	row, err := s.queryRow(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}

	acc := &model.Account{}
	err = row.Scan(&acc.ID, &acc.Username, &acc.Balance, &acc.IsBlocked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account '%s': %w", filter.Username, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account '%s': %w", filter.Username, err)
	}

	return acc, nil
}

func (s *sqlSession) AddAccount(ctx context.Context, acc *model.Account) error {
	row, err := s.queryRow(ctx, `
        INSERT INTO accounts (username, balance, is_blocked)
        VALUES (?, ?, ?)
        RETURNING id
    `, acc.Username, acc.Balance, acc.IsBlocked)
	if err != nil {
		return err
	}

	s.dirty = true
	if err := row.Scan(&acc.ID); err != nil {
		return s.dialect.classify(fmt.Errorf("failed to insert account '%s': %w", acc.Username, err))
	}

	return nil
}

func (s *sqlSession) SaveAccount(ctx context.Context, acc *model.Account) error {
	s.dirty = true
	return s.execOne(ctx,
		fmt.Errorf("account with ID %d: %w", acc.ID, ErrRecordNotFound),
		`UPDATE accounts SET balance = ?, is_blocked = ? WHERE id = ?`,
		acc.Balance, acc.IsBlocked, acc.ID,
	)
}
