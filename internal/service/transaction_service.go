package service

import (
	"context"
	"errors"
	"time"

	"github.com/hance08/remit/internal/apperror"
	"github.com/hance08/remit/internal/config"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/repository"
	"github.com/hance08/remit/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionService drives a transfer through draft, pending and
// completed. Every method runs inside the session it is given: on success
// the session is committed, on any failure it is rolled back exactly once
// and an *apperror.Error is returned.
type TransactionService struct {
	config *config.Config
	logger *zap.Logger
	now    func() time.Time
}

func NewTransactionService(cfg *config.Config, logger *zap.Logger, now func() time.Time) *TransactionService {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	if now == nil {
		now = time.Now
	}
	return &TransactionService{config: cfg, logger: logger, now: now}
}

// outcome decides how storage failures of one operation are reported.
type outcome struct {
	constraints ConstraintTranslator
	// conflict is the not-found message used when the row moved on
	// between the lookup and the write.
	conflict string
}

var (
	draftOutcome    = outcome{constraints: TransferConstraints, conflict: apperror.MsgDraftNotFound}
	incomingOutcome = outcome{constraints: TransferConstraints, conflict: apperror.MsgIncomingNotFound}
)

func (ts *TransactionService) opLogger(sess store.Session, op, principal string) *zap.Logger {
	return ts.logger.With(
		zap.String("session_id", sess.ID()),
		zap.String("op", op),
		zap.String("principal", principal),
	)
}

// fail rolls the session back and converts err into a domain error.
func fail(sess store.Session, log *zap.Logger, err error, oc outcome) error {
	if rbErr := sess.Rollback(); rbErr != nil {
		log.Error("rollback failed", zap.Error(rbErr))
	}

	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
	case errors.Is(err, store.ErrConflict):
		appErr = apperror.NotFound(oc.conflict).Wrap(err)
	default:
		if violation, ok := store.AsConstraint(err); ok {
			appErr = oc.constraints.Translate(violation)
		} else {
			appErr = apperror.Internal(err)
		}
	}

	if appErr.Kind == apperror.KindInternal {
		log.Error("operation failed", zap.Error(err))
	} else {
		log.Info("operation rejected", zap.String("reason", appErr.Message), zap.NamedError("cause", appErr.Err))
	}

	return appErr
}

// CreateDraft stores a new draft sent by sender.
func (ts *TransactionService) CreateDraft(ctx context.Context, sess store.Session, sender string, req DraftRequest) (*model.Transaction, error) {
	log := ts.opLogger(sess, "create_draft", sender)

	if err := req.Validate(); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}

	tx := &model.Transaction{
		SenderAccount:   sender,
		ReceiverAccount: req.ReceiverAccount,
		Amount:          req.Amount,
		CategoryID:      req.CategoryID,
		Description:     req.Description,
		TransactionDate: nil,
		Status:          model.StatusDraft,
		IsFlagged:       false,
	}

	if err := sess.AddTransaction(ctx, tx); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}
	if err := sess.RefreshTransaction(ctx, tx); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}
	if err := sess.Commit(); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}

	log.Info("draft created",
		zap.Int64("transaction_id", tx.ID),
		zap.String("receiver", tx.ReceiverAccount),
		zap.String("amount", tx.Amount.StringFixed(2)),
	)
	return tx, nil
}

// UpdateDraft overwrites the editable fields of one of sender's drafts.
func (ts *TransactionService) UpdateDraft(ctx context.Context, sess store.Session, sender string, id int64, req DraftRequest) (*model.Transaction, error) {
	log := ts.opLogger(sess, "update_draft", sender).With(zap.Int64("transaction_id", id))

	if err := req.Validate(); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}

	tx, err := repository.NewTransactionRepository(sess).FindDraft(ctx, id, sender)
	if err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}

	tx.ReceiverAccount = req.ReceiverAccount
	tx.Amount = req.Amount
	tx.CategoryID = req.CategoryID
	tx.Description = req.Description

	if err := sess.SaveTransaction(ctx, tx, model.StatusDraft); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}
	if err := sess.RefreshTransaction(ctx, tx); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}
	if err := sess.Commit(); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}

	log.Info("draft updated")
	return tx, nil
}

// DeleteDraft removes one of sender's drafts.
func (ts *TransactionService) DeleteDraft(ctx context.Context, sess store.Session, sender string, id int64) error {
	log := ts.opLogger(sess, "delete_draft", sender).With(zap.Int64("transaction_id", id))

	tx, err := repository.NewTransactionRepository(sess).FindDraft(ctx, id, sender)
	if err != nil {
		return fail(sess, log, err, draftOutcome)
	}

	if err := sess.DeleteTransaction(ctx, tx); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			err = apperror.NotFound(apperror.MsgDraftNotFound).Wrap(err)
		}
		return fail(sess, log, err, draftOutcome)
	}
	if err := sess.Commit(); err != nil {
		return fail(sess, log, err, draftOutcome)
	}

	log.Info("draft deleted")
	return nil
}

// ConfirmDraft debits the sender and moves the draft to pending, in one
// commit.
func (ts *TransactionService) ConfirmDraft(ctx context.Context, sess store.Session, sender string, id int64) (*model.Transaction, error) {
	log := ts.opLogger(sess, "confirm_draft", sender).With(zap.Int64("transaction_id", id))

	tx, err := repository.NewTransactionRepository(sess).FindDraft(ctx, id, sender)
	if err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}

	accounts := repository.NewAccountRepository(sess)

	acc, err := accounts.FindByUsernameForUpdate(ctx, sender)
	if err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}
	if err := ts.checkDebit(acc, tx.Amount); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}

	receiver, err := accounts.FindByUsername(ctx, tx.ReceiverAccount)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			err = apperror.InvalidRequest(apperror.MsgReceiverNotExist).Wrap(err)
		}
		return nil, fail(sess, log, err, draftOutcome)
	}
	if err := checkCredit(receiver); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}

	from, err := advance(tx)
	if err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}

	previous := acc.Balance
	acc.Balance = acc.Balance.Sub(tx.Amount)

	if err := sess.SaveAccount(ctx, acc); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}
	if err := sess.SaveTransaction(ctx, tx, from); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}
	if err := sess.RefreshTransaction(ctx, tx); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}
	if err := sess.Commit(); err != nil {
		return nil, fail(sess, log, err, draftOutcome)
	}

	log.Info("draft confirmed",
		zap.String("amount", tx.Amount.StringFixed(2)),
		zap.String("balance_before", previous.StringFixed(2)),
		zap.String("balance_after", acc.Balance.StringFixed(2)),
	)
	return tx, nil
}

// AcceptIncoming credits the receiver, completes the transaction and
// returns the receiver's new balance.
func (ts *TransactionService) AcceptIncoming(ctx context.Context, sess store.Session, receiver string, id int64) (decimal.Decimal, error) {
	log := ts.opLogger(sess, "accept_incoming", receiver).With(zap.Int64("transaction_id", id))

	tx, err := repository.NewTransactionRepository(sess).FindIncoming(ctx, id, receiver)
	if err != nil {
		return decimal.Zero, fail(sess, log, err, incomingOutcome)
	}

	acc, err := repository.NewAccountRepository(sess).FindByUsernameForUpdate(ctx, receiver)
	if err != nil {
		return decimal.Zero, fail(sess, log, err, incomingOutcome)
	}
	if err := checkCredit(acc); err != nil {
		return decimal.Zero, fail(sess, log, err, incomingOutcome)
	}

	from, err := advance(tx)
	if err != nil {
		return decimal.Zero, fail(sess, log, err, incomingOutcome)
	}

	completedAt := ts.now().UTC()

	acc.Balance = acc.Balance.Add(tx.Amount)
	tx.TransactionDate = &completedAt

	if err := sess.SaveAccount(ctx, acc); err != nil {
		return decimal.Zero, fail(sess, log, err, incomingOutcome)
	}
	if err := sess.SaveTransaction(ctx, tx, from); err != nil {
		return decimal.Zero, fail(sess, log, err, incomingOutcome)
	}
	if err := sess.RefreshTransaction(ctx, tx); err != nil {
		return decimal.Zero, fail(sess, log, err, incomingOutcome)
	}
	if err := sess.Commit(); err != nil {
		return decimal.Zero, fail(sess, log, err, incomingOutcome)
	}

	log.Info("incoming transaction accepted",
		zap.String("amount", tx.Amount.StringFixed(2)),
		zap.String("balance_after", acc.Balance.StringFixed(2)),
	)
	return acc.Balance, nil
}

func (ts *TransactionService) ListDrafts(ctx context.Context, sess store.Session, owner string) ([]*model.Transaction, error) {
	return ts.list(sess, owner, "list_drafts", func(repo *repository.TransactionRepository) ([]*model.Transaction, error) {
		return repo.ListDrafts(ctx, owner, ts.config.Ledger.ListLimit)
	})
}

func (ts *TransactionService) ListOutgoing(ctx context.Context, sess store.Session, owner string) ([]*model.Transaction, error) {
	return ts.list(sess, owner, "list_outgoing", func(repo *repository.TransactionRepository) ([]*model.Transaction, error) {
		return repo.ListOutgoing(ctx, owner, ts.config.Ledger.ListLimit)
	})
}

func (ts *TransactionService) ListIncoming(ctx context.Context, sess store.Session, owner string) ([]*model.Transaction, error) {
	return ts.list(sess, owner, "list_incoming", func(repo *repository.TransactionRepository) ([]*model.Transaction, error) {
		return repo.ListIncoming(ctx, owner, ts.config.Ledger.ListLimit)
	})
}

func (ts *TransactionService) list(sess store.Session, owner, op string, fn func(*repository.TransactionRepository) ([]*model.Transaction, error)) ([]*model.Transaction, error) {
	txs, err := fn(repository.NewTransactionRepository(sess))
	if err != nil {
		return nil, fail(sess, ts.opLogger(sess, op, owner), err, draftOutcome)
	}
	return txs, nil
}
