package store

import (
	"context"
	"fmt"

	"github.com/hance08/remit/internal/model"
)

func (s *sqlSession) ListCategories(ctx context.Context) ([]*model.Category, error) {
	rows, err := s.query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var categories []*model.Category
	for rows.Next() {
		cat := &model.Category{}
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	return categories, rows.Err()
}

func (s *sqlSession) AddCategory(ctx context.Context, cat *model.Category) error {
	row, err := s.queryRow(ctx, `INSERT INTO categories (name) VALUES (?) RETURNING id`, cat.Name)
	if err != nil {
		return err
	}

	if err := row.Scan(&cat.ID); err != nil {
		return s.dialect.classify(fmt.Errorf("failed to insert category '%s': %w", cat.Name, err))
	}

	return nil
}
