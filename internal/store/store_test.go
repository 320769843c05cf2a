package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hance08/remit/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()

	st, err := NewStore(Options{
		Driver: DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "remit.db"),
	}, os.DirFS("../.."))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	return st
}

func begin(t *testing.T, st *SQLStore) Session {
	t.Helper()

	sess, err := st.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sess.Rollback()
	})
	return sess
}

// seedLedger creates alice, bob and one category and returns the category id.
func seedLedger(t *testing.T, st *SQLStore) int64 {
	t.Helper()
	ctx := context.Background()
	sess := begin(t, st)

	for _, name := range []string{"alice", "bob"} {
		require.NoError(t, sess.AddUser(ctx, &model.User{
			Username:     name,
			PasswordHash: "x",
			Email:        name + "@mail.test",
			PhoneNumber:  "phone-" + name,
		}))
		require.NoError(t, sess.AddAccount(ctx, &model.Account{
			Username: name,
			Balance:  decimal.RequireFromString("22.00"),
		}))
	}

	cat := &model.Category{Name: "rent"}
	require.NoError(t, sess.AddCategory(ctx, cat))
	require.NoError(t, sess.Commit())

	return cat.ID
}

func draft(categoryID int64, receiver string) *model.Transaction {
	return &model.Transaction{
		SenderAccount:   "alice",
		ReceiverAccount: receiver,
		Amount:          decimal.RequireFromString("11.20"),
		CategoryID:      categoryID,
		Description:     "lunch",
		Status:          model.StatusDraft,
	}
}

func TestNewStoreUnsupportedDriver(t *testing.T) {
	_, err := NewStore(Options{Driver: "oracle"}, os.DirFS("../.."))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")

	_, err = NewStore(Options{Driver: DriverPostgres}, os.DirFS("../.."))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dsn")
}

func TestNewStoreMigratesTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remit.db")

	first, err := NewStore(Options{Driver: DriverSQLite, Path: path}, os.DirFS("../.."))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(Options{Driver: DriverSQLite, Path: path}, os.DirFS("../.."))
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, second.Driver())
	require.NoError(t, second.Close())
}

func TestTransactionRoundTrip(t *testing.T) {
	st := newTestStore(t)
	categoryID := seedLedger(t, st)
	ctx := context.Background()

	sess := begin(t, st)
	tx := draft(categoryID, "bob")
	require.NoError(t, sess.AddTransaction(ctx, tx))
	require.NotZero(t, tx.ID)
	require.NoError(t, sess.RefreshTransaction(ctx, tx))
	require.NoError(t, sess.Commit())

	sess = begin(t, st)
	found, err := sess.FindTransaction(ctx, TransactionFilter{
		ID:            tx.ID,
		SenderAccount: "alice",
		Statuses:      []model.Status{model.StatusDraft},
		ForUpdate:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", found.ReceiverAccount)
	assert.True(t, found.Amount.Equal(decimal.RequireFromString("11.2")))
	assert.Nil(t, found.TransactionDate)
	assert.Nil(t, found.RecurringInterval)
	assert.Equal(t, model.StatusDraft, found.Status)

	_, err = sess.FindTransaction(ctx, TransactionFilter{ID: tx.ID, SenderAccount: "bob"})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	completedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	found.Status = model.StatusCompleted
	found.TransactionDate = &completedAt
	require.NoError(t, sess.SaveTransaction(ctx, found, model.StatusDraft))
	require.NoError(t, sess.RefreshTransaction(ctx, found))
	require.NoError(t, sess.Commit())

	require.NotNil(t, found.TransactionDate)
	assert.True(t, completedAt.Equal(*found.TransactionDate))
}

func TestListTransactionsNewestFirst(t *testing.T) {
	st := newTestStore(t)
	categoryID := seedLedger(t, st)
	ctx := context.Background()

	sess := begin(t, st)
	var ids []int64
	for i := 0; i < 3; i++ {
		tx := draft(categoryID, "bob")
		require.NoError(t, sess.AddTransaction(ctx, tx))
		ids = append(ids, tx.ID)
	}

	list, err := sess.ListTransactions(ctx, TransactionFilter{
		ReceiverAccount: "bob",
		Statuses:        []model.Status{model.StatusDraft, model.StatusPending},
		Limit:           2,
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
}

func TestCommitNamesForeignKeyColumn(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tx *model.Transaction)
		column string
	}{
		{"receiver", func(tx *model.Transaction) { tx.ReceiverAccount = "nobody" }, "receiver_account"},
		{"category", func(tx *model.Transaction) { tx.CategoryID = 999 }, "category_id"},
		{"sender", func(tx *model.Transaction) { tx.SenderAccount = "nobody" }, "sender_account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			categoryID := seedLedger(t, st)
			ctx := context.Background()

			sess := begin(t, st)
			tx := draft(categoryID, "bob")
			tt.mutate(tx)
			require.NoError(t, sess.AddTransaction(ctx, tx))

			err := sess.Commit()
			cerr, ok := AsConstraint(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, ConstraintForeignKey, cerr.Kind)
			assert.Equal(t, "transactions", cerr.Table)
			assert.Equal(t, tt.column, cerr.Column)

			require.NoError(t, sess.Rollback())

			check := begin(t, st)
			_, err = check.FindTransaction(ctx, TransactionFilter{ID: tx.ID})
			assert.ErrorIs(t, err, ErrRecordNotFound)
		})
	}
}

func TestCommitNamesEveryForeignKeyColumn(t *testing.T) {
	st := newTestStore(t)
	categoryID := seedLedger(t, st)
	ctx := context.Background()

	sess := begin(t, st)
	tx := draft(categoryID+100, "nobody")
	require.NoError(t, sess.AddTransaction(ctx, tx))

	cerr, ok := AsConstraint(sess.Commit())
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"receiver_account", "category_id"}, cerr.Columns)
	assert.Equal(t, cerr.Columns[0], cerr.Column)
	assert.True(t, cerr.Involves("receiver_account"))
	assert.True(t, cerr.Involves("category_id"))
	assert.False(t, cerr.Involves("sender_account"))
	require.NoError(t, sess.Rollback())
}

func TestUniqueViolationNamesColumn(t *testing.T) {
	st := newTestStore(t)
	seedLedger(t, st)
	ctx := context.Background()

	sess := begin(t, st)
	err := sess.AddUser(ctx, &model.User{
		Username:     "carol",
		PasswordHash: "x",
		Email:        "alice@mail.test",
		PhoneNumber:  "phone-carol",
	})

	cerr, ok := AsConstraint(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, ConstraintUnique, cerr.Kind)
	assert.Equal(t, "users", cerr.Table)
	assert.Equal(t, "email", cerr.Column)

	err = sess.AddCategory(ctx, &model.Category{Name: "rent"})
	cerr, ok = AsConstraint(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "name", cerr.Column)
}

func TestCheckViolation(t *testing.T) {
	st := newTestStore(t)
	categoryID := seedLedger(t, st)

	for _, amount := range []string{"-1", "0", "0.00", "-0.01"} {
		t.Run(amount, func(t *testing.T) {
			sess := begin(t, st)
			tx := draft(categoryID, "bob")
			tx.Amount = decimal.RequireFromString(amount)

			err := sess.AddTransaction(context.Background(), tx)
			cerr, ok := AsConstraint(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, ConstraintCheck, cerr.Kind)
		})
	}

	sess := begin(t, st)
	tx := draft(categoryID, "bob")
	tx.Amount = decimal.RequireFromString("0.01")
	assert.NoError(t, sess.AddTransaction(context.Background(), tx))
}

func TestSaveTransactionStatusGuard(t *testing.T) {
	st := newTestStore(t)
	categoryID := seedLedger(t, st)
	ctx := context.Background()

	sess := begin(t, st)
	tx := draft(categoryID, "bob")
	require.NoError(t, sess.AddTransaction(ctx, tx))

	tx.Status = model.StatusCompleted
	err := sess.SaveTransaction(ctx, tx, model.StatusPending)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, sess.DeleteTransaction(ctx, tx))
	assert.ErrorIs(t, sess.DeleteTransaction(ctx, tx), ErrRecordNotFound)
}

func TestAccountBalanceUpdate(t *testing.T) {
	st := newTestStore(t)
	seedLedger(t, st)
	ctx := context.Background()

	sess := begin(t, st)
	acc, err := sess.FindAccount(ctx, AccountFilter{Username: "alice", ForUpdate: true})
	require.NoError(t, err)

	acc.Balance = acc.Balance.Sub(decimal.RequireFromString("11.30"))
	require.NoError(t, sess.SaveAccount(ctx, acc))
	require.NoError(t, sess.Commit())

	sess = begin(t, st)
	acc, err = sess.FindAccount(ctx, AccountFilter{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "10.70", acc.Balance.StringFixed(2))

	_, err = sess.FindAccount(ctx, AccountFilter{Username: "nobody"})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSessionEnds(t *testing.T) {
	st := newTestStore(t)
	seedLedger(t, st)
	ctx := context.Background()

	sess := begin(t, st)
	require.NoError(t, sess.Commit())
	assert.NoError(t, sess.Rollback())
	assert.ErrorIs(t, sess.Commit(), ErrSessionClosed)

	_, err := sess.FindAccount(ctx, AccountFilter{Username: "alice"})
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestInSessionRollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	seedLedger(t, st)
	ctx := context.Background()
	boom := errors.New("boom")

	err := InSession(ctx, st, func(sess Session) error {
		if err := sess.AddCategory(ctx, &model.Category{Name: "food"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = InSession(ctx, st, func(sess Session) error {
		cats, err := sess.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, cats, 1)
		assert.Equal(t, "rent", cats[0].Name)
		return nil
	})
	require.NoError(t, err)
}

func TestUserRoundTrip(t *testing.T) {
	st := newTestStore(t)
	seedLedger(t, st)

	sess := begin(t, st)
	user, err := sess.FindUser(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob@mail.test", user.Email)
	assert.False(t, user.IsRestricted)

	_, err = sess.FindUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
