package repository

import (
	"context"
	"errors"

	"github.com/hance08/remit/internal/apperror"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/store"
)

// AccountRepository reads accounts inside one session. Returned accounts
// belong to that session: saving them through it makes changes visible to
// later reads before commit.
type AccountRepository struct {
	sess store.Session
}

func NewAccountRepository(sess store.Session) *AccountRepository {
	return &AccountRepository{sess: sess}
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	return r.find(ctx, store.AccountFilter{Username: username})
}

// FindByUsernameForUpdate also locks the row until the session ends.
func (r *AccountRepository) FindByUsernameForUpdate(ctx context.Context, username string) (*model.Account, error) {
	return r.find(ctx, store.AccountFilter{Username: username, ForUpdate: true})
}

func (r *AccountRepository) find(ctx context.Context, filter store.AccountFilter) (*model.Account, error) {
	if filter.Username == "" {
		return nil, apperror.NotFound(apperror.MsgAccountNotFound)
	}

	acc, err := r.sess.FindAccount(ctx, filter)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, apperror.NotFound(apperror.MsgAccountNotFound).Wrap(err)
		}
		return nil, apperror.Internal(err)
	}

	return acc, nil
}
