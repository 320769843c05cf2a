package repository

import (
	"context"
	"errors"

	"github.com/hance08/remit/internal/apperror"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/store"
)

const DefaultListLimit = 50

type TransactionRepository struct {
	sess store.Session
}

func NewTransactionRepository(sess store.Session) *TransactionRepository {
	return &TransactionRepository{sess: sess}
}

// FindDraft returns the draft with the given id only if owner sent it.
func (r *TransactionRepository) FindDraft(ctx context.Context, id int64, owner string) (*model.Transaction, error) {
	return r.find(ctx, store.TransactionFilter{
		ID:            id,
		SenderAccount: owner,
		Statuses:      []model.Status{model.StatusDraft},
		ForUpdate:     true,
	}, apperror.MsgDraftNotFound)
}

// FindIncoming returns the pending transaction with the given id only if
// owner is its receiver.
func (r *TransactionRepository) FindIncoming(ctx context.Context, id int64, owner string) (*model.Transaction, error) {
	return r.find(ctx, store.TransactionFilter{
		ID:              id,
		ReceiverAccount: owner,
		Statuses:        []model.Status{model.StatusPending},
		ForUpdate:       true,
	}, apperror.MsgIncomingNotFound)
}

func (r *TransactionRepository) find(ctx context.Context, filter store.TransactionFilter, notFound string) (*model.Transaction, error) {
	if filter.ID <= 0 || (filter.SenderAccount == "" && filter.ReceiverAccount == "") {
		return nil, apperror.NotFound(notFound)
	}

	tx, err := r.sess.FindTransaction(ctx, filter)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, apperror.NotFound(notFound).Wrap(err)
		}
		return nil, apperror.Internal(err)
	}

	return tx, nil
}

func (r *TransactionRepository) ListDrafts(ctx context.Context, owner string, limit int) ([]*model.Transaction, error) {
	return r.list(ctx, store.TransactionFilter{
		SenderAccount: owner,
		Statuses:      []model.Status{model.StatusDraft},
		Limit:         limit,
	})
}

// ListOutgoing returns confirmed transactions sent by owner.
func (r *TransactionRepository) ListOutgoing(ctx context.Context, owner string, limit int) ([]*model.Transaction, error) {
	return r.list(ctx, store.TransactionFilter{
		SenderAccount: owner,
		Statuses:      []model.Status{model.StatusPending, model.StatusCompleted},
		Limit:         limit,
	})
}

// ListIncoming returns transactions waiting for owner to accept them.
func (r *TransactionRepository) ListIncoming(ctx context.Context, owner string, limit int) ([]*model.Transaction, error) {
	return r.list(ctx, store.TransactionFilter{
		ReceiverAccount: owner,
		Statuses:        []model.Status{model.StatusPending},
		Limit:           limit,
	})
}

func (r *TransactionRepository) list(ctx context.Context, filter store.TransactionFilter) ([]*model.Transaction, error) {
	if filter.SenderAccount == "" && filter.ReceiverAccount == "" {
		return nil, apperror.NotFound(apperror.MsgAccountNotFound)
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}

	txs, err := r.sess.ListTransactions(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return txs, nil
}
