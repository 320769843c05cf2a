package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hance08/remit/internal/apperror"
	"github.com/hance08/remit/internal/config"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/repository"
	"github.com/hance08/remit/internal/store"
	"github.com/hance08/remit/internal/store/storetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	st       *storetest.Store
	svc      *TransactionService
	logs     *observer.ObservedLogs
	cfg      *config.Config
	category model.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := storetest.New()
	st.SeedAccount("alice", "22.00", false)
	st.SeedAccount("bob", "22.00", false)
	cat := st.SeedCategory("rent")

	core, logs := observer.New(zapcore.InfoLevel)
	cfg := config.NewDefault()

	return &fixture{
		st:       st,
		svc:      NewTransactionService(cfg, zap.New(core), func() time.Time { return fixedNow }),
		logs:     logs,
		cfg:      cfg,
		category: cat,
	}
}

func (f *fixture) seed(sender, receiver, amount string, status model.Status) model.Transaction {
	return f.st.SeedTransaction(model.Transaction{
		SenderAccount:   sender,
		ReceiverAccount: receiver,
		Amount:          decimal.RequireFromString(amount),
		CategoryID:      f.category.ID,
		Description:     "seeded",
		Status:          status,
	})
}

func (f *fixture) request(receiver, amount string) DraftRequest {
	return DraftRequest{
		ReceiverAccount: receiver,
		Amount:          decimal.RequireFromString(amount),
		CategoryID:      f.category.ID,
		Description:     "lunch",
	}
}

func (f *fixture) balance(t *testing.T, username string) string {
	t.Helper()
	acc, ok := f.st.Account(username)
	require.True(t, ok)
	return acc.Balance.StringFixed(2)
}

func TestCreateDraft(t *testing.T) {
	f := newFixture(t)
	sess := f.st.Session()

	tx, err := f.svc.CreateDraft(context.Background(), sess, "alice", f.request("bob", "11.20"))
	require.NoError(t, err)

	assert.NotZero(t, tx.ID)
	assert.Equal(t, model.StatusDraft, tx.Status)
	assert.Nil(t, tx.TransactionDate)
	assert.False(t, tx.IsFlagged)
	assert.Equal(t, "alice", tx.SenderAccount)
	assert.Equal(t, "bob", tx.ReceiverAccount)
	assert.Equal(t, "11.20", tx.Amount.StringFixed(2))
	assert.Equal(t, f.category.ID, tx.CategoryID)
	assert.Equal(t, "lunch", tx.Description)

	assert.Equal(t, 1, sess.Calls.Commits)
	assert.Equal(t, 1, sess.Calls.Refreshes)
	assert.Equal(t, 0, sess.Calls.Rollbacks)

	stored, ok := f.st.Transaction(tx.ID)
	require.True(t, ok)
	assert.Equal(t, *tx, stored)

	assert.Equal(t, 1, f.logs.FilterMessage("draft created").Len())
}

func TestCreateDraftConstraintViolations(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture, sess *storetest.Session) DraftRequest
		want    *apperror.Error
	}{
		{
			name: "unknown receiver",
			prepare: func(f *fixture, _ *storetest.Session) DraftRequest {
				return f.request("nobody", "5.00")
			},
			want: apperror.InvalidRequest(apperror.MsgReceiverNotExist),
		},
		{
			name: "unknown category",
			prepare: func(f *fixture, _ *storetest.Session) DraftRequest {
				req := f.request("bob", "5.00")
				req.CategoryID = 999
				return req
			},
			want: apperror.InvalidRequest(apperror.MsgCategoryNotExist),
		},
		{
			name: "unknown receiver and category",
			prepare: func(f *fixture, _ *storetest.Session) DraftRequest {
				req := f.request("nobody", "5.00")
				req.CategoryID = 999
				return req
			},
			want: apperror.InvalidRequest(apperror.MsgReceiverNotExist),
		},
		{
			name: "other column",
			prepare: func(f *fixture, sess *storetest.Session) DraftRequest {
				sess.Fail("AddTransaction", storetest.Violation(store.ConstraintCheck, "transactions", "amount"))
				return f.request("bob", "5.00")
			},
			want: apperror.InvalidRequest(apperror.MsgOperationFailed),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			sess := f.st.Session()
			req := tt.prepare(f, sess)

			tx, err := f.svc.CreateDraft(context.Background(), sess, "alice", req)
			require.Error(t, err)
			assert.Nil(t, tx)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.want.Message, err.Error())
			assert.NotContains(t, err.Error(), "amount")
			assert.NotContains(t, err.Error(), "constraint")
			assert.Equal(t, 1, sess.Calls.Rollbacks)

			var violation *store.ConstraintError
			assert.ErrorAs(t, err, &violation)

			list, err := f.st.Session().ListTransactions(context.Background(), store.TransactionFilter{SenderAccount: "alice"})
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestCreateDraftInvalidAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", apperror.MsgAmountNotPositive},
		{"-3.50", apperror.MsgAmountNotPositive},
		{"1.005", apperror.MsgAmountPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			f := newFixture(t)
			sess := f.st.Session()

			_, err := f.svc.CreateDraft(context.Background(), sess, "alice", f.request("bob", tt.amount))
			require.Error(t, err)
			assert.Equal(t, apperror.KindInvalidRequest, apperror.KindOf(err))
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, 0, sess.Calls.Adds)
			assert.Equal(t, 1, sess.Calls.Rollbacks)
		})
	}
}

func TestCreateDraftStorageFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	sess := f.st.Session().Fail("Commit", errors.New("disk I/O error"))

	_, err := f.svc.CreateDraft(context.Background(), sess, "alice", f.request("bob", "1.00"))
	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.Equal(t, apperror.MsgOperationFailed, err.Error())
	assert.Equal(t, 1, sess.Calls.Rollbacks)
	assert.Equal(t, 1, f.logs.FilterMessage("operation failed").Len())
}

func TestUpdateDraft(t *testing.T) {
	f := newFixture(t)
	other := f.st.SeedCategory("food")
	seeded := f.seed("alice", "bob", "3.00", model.StatusDraft)
	f.st.SeedAccount("carol", "0.00", false)
	sess := f.st.Session()

	req := DraftRequest{
		ReceiverAccount: "carol",
		Amount:          decimal.RequireFromString("4.25"),
		CategoryID:      other.ID,
		Description:     "dinner",
	}
	tx, err := f.svc.UpdateDraft(context.Background(), sess, "alice", seeded.ID, req)
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, tx.ID)
	assert.Equal(t, "alice", tx.SenderAccount)
	assert.Equal(t, model.StatusDraft, tx.Status)
	assert.Equal(t, "carol", tx.ReceiverAccount)
	assert.Equal(t, "4.25", tx.Amount.StringFixed(2))
	assert.Equal(t, other.ID, tx.CategoryID)
	assert.Equal(t, "dinner", tx.Description)
	assert.Equal(t, 1, sess.Calls.Commits)
	assert.Equal(t, 0, sess.Calls.Rollbacks)

	stored, _ := f.st.Transaction(seeded.ID)
	assert.Equal(t, "carol", stored.ReceiverAccount)
}

func TestUpdateDraftNotFound(t *testing.T) {
	tests := []struct {
		name   string
		sender string
		status model.Status
	}{
		{"owned by someone else", "bob", model.StatusDraft},
		{"already pending", "alice", model.StatusPending},
		{"completed", "alice", model.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			seeded := f.seed(tt.sender, "bob", "3.00", tt.status)
			sess := f.st.Session()

			_, err := f.svc.UpdateDraft(context.Background(), sess, "alice", seeded.ID, f.request("bob", "1.00"))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.NotFound(apperror.MsgDraftNotFound))
			assert.Equal(t, 1, sess.Calls.Rollbacks)
			assert.Equal(t, 0, sess.Calls.Saves)

			stored, _ := f.st.Transaction(seeded.ID)
			assert.Equal(t, seeded, stored)
		})
	}
}

func TestUpdateDraftUnknownReceiver(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("alice", "bob", "3.00", model.StatusDraft)
	sess := f.st.Session()

	_, err := f.svc.UpdateDraft(context.Background(), sess, "alice", seeded.ID, f.request("ghost", "1.00"))
	assert.ErrorIs(t, err, apperror.InvalidRequest(apperror.MsgReceiverNotExist))
	assert.Equal(t, 1, sess.Calls.Rollbacks)

	stored, _ := f.st.Transaction(seeded.ID)
	assert.Equal(t, "bob", stored.ReceiverAccount)
}

func TestUpdateDraftConcurrentConfirm(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("alice", "bob", "3.00", model.StatusDraft)
	sess := f.st.Session().Fail("SaveTransaction",
		fmt.Errorf("transaction with ID %d is no longer draft: %w", seeded.ID, store.ErrConflict))

	_, err := f.svc.UpdateDraft(context.Background(), sess, "alice", seeded.ID, f.request("bob", "1.00"))
	assert.ErrorIs(t, err, apperror.NotFound(apperror.MsgDraftNotFound))
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.Equal(t, 1, sess.Calls.Rollbacks)
}

func TestDeleteDraft(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("alice", "bob", "3.00", model.StatusDraft)
	sess := f.st.Session()

	err := f.svc.DeleteDraft(context.Background(), sess, "alice", seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Calls.Deletes)
	assert.Equal(t, 1, sess.Calls.Commits)
	assert.Equal(t, 0, sess.Calls.Rollbacks)

	_, ok := f.st.Transaction(seeded.ID)
	assert.False(t, ok)

	_, err = repository.NewTransactionRepository(f.st.Session()).FindDraft(context.Background(), seeded.ID, "alice")
	assert.ErrorIs(t, err, apperror.NotFound(apperror.MsgDraftNotFound))

	again := f.st.Session()
	err = f.svc.DeleteDraft(context.Background(), again, "alice", seeded.ID)
	assert.ErrorIs(t, err, apperror.NotFound(apperror.MsgDraftNotFound))
	assert.Equal(t, 0, again.Calls.Deletes)
	assert.Equal(t, 1, again.Calls.Rollbacks)
}

func TestDeleteDraftOfAnotherSender(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("bob", "alice", "3.00", model.StatusDraft)
	sess := f.st.Session()

	err := f.svc.DeleteDraft(context.Background(), sess, "alice", seeded.ID)
	assert.ErrorIs(t, err, apperror.NotFound(apperror.MsgDraftNotFound))

	_, ok := f.st.Transaction(seeded.ID)
	assert.True(t, ok)
}

func TestConfirmDraft(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("alice", "bob", "11.30", model.StatusDraft)
	sess := f.st.Session()

	tx, err := f.svc.ConfirmDraft(context.Background(), sess, "alice", seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, tx.Status)
	assert.Nil(t, tx.TransactionDate)
	assert.Equal(t, "10.70", f.balance(t, "alice"))
	assert.Equal(t, "22.00", f.balance(t, "bob"))
	assert.Equal(t, 1, sess.Calls.Commits)
	assert.Equal(t, 0, sess.Calls.Rollbacks)

	entries := f.logs.FilterMessage("draft confirmed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, seeded.ID, fields["transaction_id"])
	assert.Equal(t, "alice", fields["principal"])
	assert.Equal(t, sess.ID(), fields["session_id"])
	assert.Equal(t, "10.70", fields["balance_after"])

	again := f.st.Session()
	_, err = f.svc.ConfirmDraft(context.Background(), again, "alice", seeded.ID)
	assert.ErrorIs(t, err, apperror.NotFound(apperror.MsgDraftNotFound))
	assert.Equal(t, "10.70", f.balance(t, "alice"))
	assert.Equal(t, 1, again.Calls.Rollbacks)
}

func TestConfirmDraftRejected(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture) model.Transaction
		want    *apperror.Error
	}{
		{
			name: "blocked sender",
			prepare: func(f *fixture) model.Transaction {
				f.st.SeedAccount("frozen", "50.00", true)
				return f.seed("frozen", "bob", "1.00", model.StatusDraft)
			},
			want: apperror.InvalidRequest(apperror.MsgAccountBlocked),
		},
		{
			name: "insufficient funds",
			prepare: func(f *fixture) model.Transaction {
				return f.seed("alice", "bob", "22.01", model.StatusDraft)
			},
			want: apperror.InvalidRequest(apperror.MsgInsufficientFunds),
		},
		{
			name: "receiver gone",
			prepare: func(f *fixture) model.Transaction {
				return f.seed("alice", "ghost", "1.00", model.StatusDraft)
			},
			want: apperror.InvalidRequest(apperror.MsgReceiverNotExist),
		},
		{
			name: "blocked receiver",
			prepare: func(f *fixture) model.Transaction {
				f.st.SeedAccount("frozen", "0.00", true)
				return f.seed("alice", "frozen", "1.00", model.StatusDraft)
			},
			want: apperror.InvalidRequest(apperror.MsgAccountBlocked),
		},
		{
			name: "not a draft",
			prepare: func(f *fixture) model.Transaction {
				return f.seed("alice", "bob", "1.00", model.StatusPending)
			},
			want: apperror.NotFound(apperror.MsgDraftNotFound),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			seeded := tt.prepare(f)
			before, _ := f.st.Account(seeded.SenderAccount)
			sess := f.st.Session()

			_, err := f.svc.ConfirmDraft(context.Background(), sess, seeded.SenderAccount, seeded.ID)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, sess.Calls.Rollbacks)
			assert.Equal(t, 0, sess.Calls.Saves)
			assert.Equal(t, 0, sess.Calls.Commits)

			after, _ := f.st.Account(seeded.SenderAccount)
			assert.True(t, before.Balance.Equal(after.Balance))
			stored, _ := f.st.Transaction(seeded.ID)
			assert.Equal(t, seeded.Status, stored.Status)
		})
	}
}

func TestConfirmDraftAllowOverdraft(t *testing.T) {
	f := newFixture(t)
	f.cfg.Ledger.AllowOverdraft = true
	seeded := f.seed("alice", "bob", "30.00", model.StatusDraft)

	_, err := f.svc.ConfirmDraft(context.Background(), f.st.Session(), "alice", seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "-8.00", f.balance(t, "alice"))
}

func TestConfirmDraftIsAtomic(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("alice", "bob", "5.00", model.StatusDraft)
	sess := f.st.Session().Fail("SaveTransaction", errors.New("connection reset"))

	_, err := f.svc.ConfirmDraft(context.Background(), sess, "alice", seeded.ID)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.Equal(t, 1, sess.Calls.Rollbacks)
	assert.Equal(t, "22.00", f.balance(t, "alice"))

	stored, _ := f.st.Transaction(seeded.ID)
	assert.Equal(t, model.StatusDraft, stored.Status)
}

func TestAcceptIncoming(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("alice", "bob", "11.30", model.StatusPending)
	sess := f.st.Session()

	balance, err := f.svc.AcceptIncoming(context.Background(), sess, "bob", seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "33.30", balance.StringFixed(2))
	assert.Equal(t, "33.30", f.balance(t, "bob"))
	assert.Equal(t, "22.00", f.balance(t, "alice"))
	assert.Equal(t, 1, sess.Calls.Commits)

	stored, _ := f.st.Transaction(seeded.ID)
	assert.Equal(t, model.StatusCompleted, stored.Status)
	require.NotNil(t, stored.TransactionDate)
	assert.True(t, fixedNow.Equal(*stored.TransactionDate))

	again := f.st.Session()
	_, err = f.svc.AcceptIncoming(context.Background(), again, "bob", seeded.ID)
	assert.ErrorIs(t, err, apperror.NotFound(apperror.MsgIncomingNotFound))
	assert.Equal(t, "33.30", f.balance(t, "bob"))
	assert.Equal(t, 1, again.Calls.Rollbacks)
}

func TestAcceptIncomingRejected(t *testing.T) {
	tests := []struct {
		name     string
		receiver string
		prepare  func(f *fixture) model.Transaction
		want     *apperror.Error
	}{
		{
			name:     "someone else's transaction",
			receiver: "alice",
			prepare: func(f *fixture) model.Transaction {
				return f.seed("alice", "bob", "1.00", model.StatusPending)
			},
			want: apperror.NotFound(apperror.MsgIncomingNotFound),
		},
		{
			name:     "still a draft",
			receiver: "bob",
			prepare: func(f *fixture) model.Transaction {
				return f.seed("alice", "bob", "1.00", model.StatusDraft)
			},
			want: apperror.NotFound(apperror.MsgIncomingNotFound),
		},
		{
			name:     "blocked receiver",
			receiver: "frozen",
			prepare: func(f *fixture) model.Transaction {
				f.st.SeedAccount("frozen", "0.00", true)
				return f.seed("alice", "frozen", "1.00", model.StatusPending)
			},
			want: apperror.InvalidRequest(apperror.MsgAccountBlocked),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			seeded := tt.prepare(f)
			before, _ := f.st.Account(tt.receiver)
			sess := f.st.Session()

			_, err := f.svc.AcceptIncoming(context.Background(), sess, tt.receiver, seeded.ID)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, sess.Calls.Rollbacks)
			assert.Equal(t, 0, sess.Calls.Commits)

			after, _ := f.st.Account(tt.receiver)
			assert.True(t, before.Balance.Equal(after.Balance))
		})
	}
}

func TestAcceptIncomingConcurrentAccept(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("alice", "bob", "2.00", model.StatusPending)
	sess := f.st.Session().Fail("SaveTransaction",
		fmt.Errorf("transaction with ID %d is no longer pending: %w", seeded.ID, store.ErrConflict))

	_, err := f.svc.AcceptIncoming(context.Background(), sess, "bob", seeded.ID)
	assert.ErrorIs(t, err, apperror.NotFound(apperror.MsgIncomingNotFound))
	assert.Equal(t, "22.00", f.balance(t, "bob"))
}

func TestFullLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft, err := f.svc.CreateDraft(ctx, f.st.Session(), "alice", f.request("bob", "7.50"))
	require.NoError(t, err)

	_, err = f.svc.ConfirmDraft(ctx, f.st.Session(), "alice", draft.ID)
	require.NoError(t, err)

	balance, err := f.svc.AcceptIncoming(ctx, f.st.Session(), "bob", draft.ID)
	require.NoError(t, err)

	assert.Equal(t, "29.50", balance.StringFixed(2))
	assert.Equal(t, "14.50", f.balance(t, "alice"))

	total := decimal.RequireFromString(f.balance(t, "alice")).Add(decimal.RequireFromString(f.balance(t, "bob")))
	assert.Equal(t, "44.00", total.StringFixed(2))
}

func TestListTransactions(t *testing.T) {
	f := newFixture(t)
	draft := f.seed("alice", "bob", "1.00", model.StatusDraft)
	pending := f.seed("alice", "bob", "2.00", model.StatusPending)
	completed := f.seed("alice", "bob", "3.00", model.StatusCompleted)
	f.seed("bob", "alice", "4.00", model.StatusDraft)
	ctx := context.Background()

	drafts, err := f.svc.ListDrafts(ctx, f.st.Session(), "alice")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.ID, drafts[0].ID)

	outgoing, err := f.svc.ListOutgoing(ctx, f.st.Session(), "alice")
	require.NoError(t, err)
	require.Len(t, outgoing, 2)
	assert.Equal(t, completed.ID, outgoing[0].ID)
	assert.Equal(t, pending.ID, outgoing[1].ID)

	incoming, err := f.svc.ListIncoming(ctx, f.st.Session(), "bob")
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, pending.ID, incoming[0].ID)

	none, err := f.svc.ListIncoming(ctx, f.st.Session(), "alice")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListTransactionsLimit(t *testing.T) {
	f := newFixture(t)
	f.cfg.Ledger.ListLimit = 2
	for i := 0; i < 5; i++ {
		f.seed("alice", "bob", "1.00", model.StatusDraft)
	}

	drafts, err := f.svc.ListDrafts(context.Background(), f.st.Session(), "alice")
	require.NoError(t, err)
	assert.Len(t, drafts, 2)
}
