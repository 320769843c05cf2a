package store

import (
	"context"

	"github.com/hance08/remit/internal/model"
)

// AccountFilter selects accounts. Empty fields are not constrained.
type AccountFilter struct {
	ID       int64
	Username string

	// ForUpdate locks the matched row until the session ends on stores
	// that support row locks.
	ForUpdate bool
}

// TransactionFilter selects transactions. Empty fields are not constrained.
type TransactionFilter struct {
	ID              int64
	SenderAccount   string
	ReceiverAccount string
	Statuses        []model.Status
	ForUpdate       bool
	Limit           int
}

// Session is a single unit of work. Reads see the session's own writes.
// Nothing is durable until Commit; Rollback discards everything and is a
// no-op once the session has ended.
type Session interface {
	// ID identifies the unit of work in logs.
	ID() string

	// Account Operations
	FindAccount(ctx context.Context, filter AccountFilter) (*model.Account, error)
	AddAccount(ctx context.Context, acc *model.Account) error
	SaveAccount(ctx context.Context, acc *model.Account) error

	// Transaction Operations
	FindTransaction(ctx context.Context, filter TransactionFilter) (*model.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*model.Transaction, error)
	AddTransaction(ctx context.Context, tx *model.Transaction) error
	// SaveTransaction writes tx only while the stored row still has the
	// expected status and returns ErrConflict otherwise.
	SaveTransaction(ctx context.Context, tx *model.Transaction, expected model.Status) error
	DeleteTransaction(ctx context.Context, tx *model.Transaction) error
	RefreshTransaction(ctx context.Context, tx *model.Transaction) error

	// User Operations
	FindUser(ctx context.Context, username string) (*model.User, error)
	AddUser(ctx context.Context, user *model.User) error

	// Category Operations
	ListCategories(ctx context.Context) ([]*model.Category, error)
	AddCategory(ctx context.Context, cat *model.Category) error

	Commit() error
	Rollback() error
}

// Store hands out sessions.
type Store interface {
	Begin(ctx context.Context) (Session, error)
	Close() error
}

// InSession runs fn inside a fresh session. The session is always rolled
// back on return, which does nothing if fn already committed it.
func InSession(ctx context.Context, st Store, fn func(Session) error) error {
	sess, err := st.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback()
	}()

	return fn(sess)
}
