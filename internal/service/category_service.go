package service

import (
	"context"
	"strings"

	"github.com/hance08/remit/internal/apperror"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/store"
	"go.uber.org/zap"
)

var categoryOutcome = outcome{constraints: CategoryConstraints, conflict: apperror.MsgCategoryNotExist}

type CategoryService struct {
	logger *zap.Logger
}

func NewCategoryService(logger *zap.Logger) *CategoryService {
	return &CategoryService{logger: logger}
}

func (cs *CategoryService) Create(ctx context.Context, sess store.Session, name string) (*model.Category, error) {
	log := cs.logger.With(zap.String("session_id", sess.ID()), zap.String("op", "create_category"))

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fail(sess, log, apperror.InvalidRequest(apperror.MsgMissingField), categoryOutcome)
	}

	cat := &model.Category{Name: name}
	if err := sess.AddCategory(ctx, cat); err != nil {
		return nil, fail(sess, log, err, categoryOutcome)
	}
	if err := sess.Commit(); err != nil {
		return nil, fail(sess, log, err, categoryOutcome)
	}

	log.Info("category created", zap.Int64("category_id", cat.ID), zap.String("name", cat.Name))
	return cat, nil
}

func (cs *CategoryService) List(ctx context.Context, sess store.Session) ([]*model.Category, error) {
	cats, err := sess.ListCategories(ctx)
	if err != nil {
		log := cs.logger.With(zap.String("session_id", sess.ID()), zap.String("op", "list_categories"))
		return nil, fail(sess, log, err, categoryOutcome)
	}
	return cats, nil
}
