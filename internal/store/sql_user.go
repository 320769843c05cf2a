package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/remit/internal/model"
)

func (s *sqlSession) FindUser(ctx context.Context, username string) (*model.User, error) {
	row, err := s.queryRow(ctx, `
        SELECT id, username, password_hash, email, phone_number, is_admin, is_restricted
        FROM users
        WHERE username = ?
    `, username)
	if err != nil {
		return nil, err
	}

	user := &model.User{}
	err = row.Scan(
		&user.ID, &user.Username, &user.PasswordHash,
		&user.Email, &user.PhoneNumber,
		&user.IsAdmin, &user.IsRestricted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user '%s': %w", username, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query user '%s': %w", username, err)
	}

	return user, nil
}

func (s *sqlSession) AddUser(ctx context.Context, user *model.User) error {
	row, err := s.queryRow(ctx, `
        INSERT INTO users (username, password_hash, email, phone_number, is_admin, is_restricted)
        VALUES (?, ?, ?, ?, ?, ?)
        RETURNING id
    `, user.Username, user.PasswordHash, user.Email, user.PhoneNumber, user.IsAdmin, user.IsRestricted)
	if err != nil {
		return err
	}

	if err := row.Scan(&user.ID); err != nil {
		return s.dialect.classify(fmt.Errorf("failed to insert user '%s': %w", user.Username, err))
	}

	return nil
}
