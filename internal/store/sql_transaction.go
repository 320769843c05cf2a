package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hance08/remit/internal/model"
)

const transactionColumns = `id, sender_account, receiver_account, amount, category_id, description,
        transaction_date, status, is_recurring, recurring_interval, is_flagged`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner, tx *model.Transaction) error {
	var (
		date     sql.NullTime
		interval sql.NullString
		status   string
	)

	err := row.Scan(
		&tx.ID, &tx.SenderAccount, &tx.ReceiverAccount,
		&tx.Amount, &tx.CategoryID, &tx.Description,
		&date, &status, &tx.IsRecurring, &interval, &tx.IsFlagged,
	)
	if err != nil {
		return err
	}

	tx.Status = model.Status(status)
	if !tx.Status.Valid() {
		return fmt.Errorf("transaction %d has unknown status %q", tx.ID, status)
	}
	tx.TransactionDate = nil
	if date.Valid {
		t := date.Time
		tx.TransactionDate = &t
	}
	tx.RecurringInterval = nil
	if interval.Valid {
		v := interval.String
		tx.RecurringInterval = &v
	}

	return nil
}

func transactionWhere(filter TransactionFilter) *where {
	w := &where{}
	if filter.ID != 0 {
		w.add("id = ?", filter.ID)
	}
	if filter.SenderAccount != "" {
		w.add("sender_account = ?", filter.SenderAccount)
	}
	if filter.ReceiverAccount != "" {
		w.add("receiver_account = ?", filter.ReceiverAccount)
	}
	if len(filter.Statuses) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(filter.Statuses)), ", ")
		args := make([]any, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			args = append(args, string(st))
		}
		w.add("status IN ("+marks+")", args...)
	}
	return w
}

func (s *sqlSession) FindTransaction(ctx context.Context, filter TransactionFilter) (*model.Transaction, error) {
	w := transactionWhere(filter)
	if len(w.conds) == 0 {
		return nil, errors.New("transaction filter is empty")
	}

	query := "SELECT " + transactionColumns + " FROM transactions" + w.String()
	if filter.ForUpdate {
		query += s.dialect.lockClause()
	}

	row, err := s.queryRow(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}

	tx := &model.Transaction{}
	if err := scanTransaction(row, tx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction with ID %d: %w", filter.ID, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	return tx, nil
}

// ListTransactions returns matching transactions, newest first.
func (s *sqlSession) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*model.Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	w := transactionWhere(filter)
	query := "SELECT " + transactionColumns + " FROM transactions" + w.String() + " ORDER BY id DESC LIMIT ?"

	rows, err := s.query(ctx, query, append(w.args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var transactions []*model.Transaction
	for rows.Next() {
		tx := &model.Transaction{}
		if err := scanTransaction(rows, tx); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func (s *sqlSession) AddTransaction(ctx context.Context, tx *model.Transaction) error {
	row, err := s.queryRow(ctx, `
        INSERT INTO transactions (
            sender_account, receiver_account, amount, category_id, description,
            transaction_date, status, is_recurring, recurring_interval, is_flagged
        )
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id
    `,
		tx.SenderAccount, tx.ReceiverAccount, tx.Amount, tx.CategoryID, tx.Description,
		nullTime(tx), string(tx.Status), tx.IsRecurring, tx.RecurringInterval, tx.IsFlagged,
	)
	if err != nil {
		return err
	}

	s.dirty = true
	if err := row.Scan(&tx.ID); err != nil {
		return s.dialect.classify(fmt.Errorf("failed to insert transaction: %w", err))
	}

	return nil
}

func (s *sqlSession) SaveTransaction(ctx context.Context, tx *model.Transaction, expected model.Status) error {
	s.dirty = true
	return s.execOne(ctx,
		fmt.Errorf("transaction with ID %d is no longer %s: %w", tx.ID, expected, ErrConflict),
		`UPDATE transactions
        SET sender_account = ?, receiver_account = ?, amount = ?, category_id = ?, description = ?,
            transaction_date = ?, status = ?, is_recurring = ?, recurring_interval = ?, is_flagged = ?
        WHERE id = ? AND status = ?`,
		tx.SenderAccount, tx.ReceiverAccount, tx.Amount, tx.CategoryID, tx.Description,
		nullTime(tx), string(tx.Status), tx.IsRecurring, tx.RecurringInterval, tx.IsFlagged,
		tx.ID, string(expected),
	)
}

func (s *sqlSession) DeleteTransaction(ctx context.Context, tx *model.Transaction) error {
	return s.execOne(ctx,
		fmt.Errorf("transaction with ID %d: %w", tx.ID, ErrRecordNotFound),
		`DELETE FROM transactions WHERE id = ?`,
		tx.ID,
	)
}

// RefreshTransaction reloads tx from the database in place.
func (s *sqlSession) RefreshTransaction(ctx context.Context, tx *model.Transaction) error {
	row, err := s.queryRow(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE id = ?", tx.ID)
	if err != nil {
		return err
	}

	if err := scanTransaction(row, tx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("transaction with ID %d: %w", tx.ID, ErrRecordNotFound)
		}
		return fmt.Errorf("failed to refresh transaction: %w", err)
	}

	return nil
}

func nullTime(tx *model.Transaction) sql.NullTime {
	if tx.TransactionDate == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: tx.TransactionDate.UTC(), Valid: true}
}
