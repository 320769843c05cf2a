// Package storetest provides an in-memory store.Store for unit tests.
//
// Each session works on a private copy of the data that replaces the shared
// copy on Commit, so rollbacks really discard writes. Foreign keys are
// checked on Commit and unique keys on Add, the same places SQLite reports
// them.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/store"
	"github.com/shopspring/decimal"
)

type data struct {
	users        map[string]model.User
	accounts     map[string]model.Account
	categories   map[int64]model.Category
	transactions map[int64]model.Transaction
	nextID       int64
}

func (d *data) clone() *data {
	out := &data{
		users:        make(map[string]model.User, len(d.users)),
		accounts:     make(map[string]model.Account, len(d.accounts)),
		categories:   make(map[int64]model.Category, len(d.categories)),
		transactions: make(map[int64]model.Transaction, len(d.transactions)),
		nextID:       d.nextID,
	}
	for k, v := range d.users {
		out.users[k] = v
	}
	for k, v := range d.accounts {
		out.accounts[k] = v
	}
	for k, v := range d.categories {
		out.categories[k] = v
	}
	for k, v := range d.transactions {
		out.transactions[k] = v
	}
	return out
}

func (d *data) id() int64 {
	d.nextID++
	return d.nextID
}

type Store struct {
	mu   sync.Mutex
	data *data
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{data: (&data{}).clone()}
}

func (s *Store) Begin(context.Context) (store.Session, error) {
	return s.Session(), nil
}

// Session begins a session and returns the concrete type so tests can
// inspect its counters.
func (s *Store) Session() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &Session{
		st:    s,
		id:    uuid.NewString(),
		data:  s.data.clone(),
		fails: map[string]error{},
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) SeedUser(user model.User) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.data.id()
	s.data.users[user.Username] = user
	return user
}

// SeedAccount stores an account and its owning user.
func (s *Store) SeedAccount(username, balance string, blocked bool) model.Account {
	s.SeedUser(model.User{
		Username:    username,
		Email:       username + "@example.com",
		PhoneNumber: "phone-" + username,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	acc := model.Account{
		ID:        s.data.id(),
		Username:  username,
		Balance:   decimal.RequireFromString(balance),
		IsBlocked: blocked,
	}
	s.data.accounts[username] = acc
	return acc
}

func (s *Store) SeedCategory(name string) model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := model.Category{ID: s.data.id(), Name: name}
	s.data.categories[cat.ID] = cat
	return cat
}

func (s *Store) SeedTransaction(tx model.Transaction) model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx.ID = s.data.id()
	s.data.transactions[tx.ID] = tx
	return tx
}

// Account returns the committed state of an account.
func (s *Store) Account(username string) (model.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.data.accounts[username]
	return acc, ok
}

// Transaction returns the committed state of a transaction.
func (s *Store) Transaction(id int64) (model.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.data.transactions[id]
	return tx, ok
}

func (s *Store) User(username string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.data.users[username]
	return user, ok
}

// Calls counts the mutating calls made on a session.
type Calls struct {
	Adds      int
	Saves     int
	Deletes   int
	Refreshes int
	Commits   int
	Rollbacks int
}

type Session struct {
	st    *Store
	id    string
	data  *data
	done  bool
	fails map[string]error

	Calls Calls
}

var _ store.Session = (*Session)(nil)

// Fail makes every later call to the named method return err.
func (s *Session) Fail(method string, err error) *Session {
	s.fails[method] = err
	return s
}

func (s *Session) check(method string) error {
	if err, ok := s.fails[method]; ok {
		return err
	}
	if s.done {
		return store.ErrSessionClosed
	}
	return nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) FindAccount(_ context.Context, filter store.AccountFilter) (*model.Account, error) {
	if err := s.check("FindAccount"); err != nil {
		return nil, err
	}

	for _, acc := range s.data.accounts {
		if filter.ID != 0 && acc.ID != filter.ID {
			continue
		}
		if filter.Username != "" && acc.Username != filter.Username {
			continue
		}
		found := acc
		return &found, nil
	}
	return nil, fmt.Errorf("account '%s': %w", filter.Username, store.ErrRecordNotFound)
}

func (s *Session) AddAccount(_ context.Context, acc *model.Account) error {
	s.Calls.Adds++
	if err := s.check("AddAccount"); err != nil {
		return err
	}
	if _, ok := s.data.accounts[acc.Username]; ok {
		return unique("accounts", "username")
	}

	acc.ID = s.data.id()
	s.data.accounts[acc.Username] = *acc
	return nil
}

func (s *Session) SaveAccount(_ context.Context, acc *model.Account) error {
	s.Calls.Saves++
	if err := s.check("SaveAccount"); err != nil {
		return err
	}

	for name, existing := range s.data.accounts {
		if existing.ID == acc.ID {
			delete(s.data.accounts, name)
			s.data.accounts[acc.Username] = *acc
			return nil
		}
	}
	return fmt.Errorf("account with ID %d: %w", acc.ID, store.ErrRecordNotFound)
}

func matches(tx model.Transaction, filter store.TransactionFilter) bool {
	if filter.ID != 0 && tx.ID != filter.ID {
		return false
	}
	if filter.SenderAccount != "" && tx.SenderAccount != filter.SenderAccount {
		return false
	}
	if filter.ReceiverAccount != "" && tx.ReceiverAccount != filter.ReceiverAccount {
		return false
	}
	if len(filter.Statuses) == 0 {
		return true
	}
	for _, st := range filter.Statuses {
		if tx.Status == st {
			return true
		}
	}
	return false
}

func (s *Session) FindTransaction(_ context.Context, filter store.TransactionFilter) (*model.Transaction, error) {
	if err := s.check("FindTransaction"); err != nil {
		return nil, err
	}

	for _, tx := range s.data.transactions {
		if matches(tx, filter) {
			found := tx
			return &found, nil
		}
	}
	return nil, fmt.Errorf("transaction with ID %d: %w", filter.ID, store.ErrRecordNotFound)
}

func (s *Session) ListTransactions(_ context.Context, filter store.TransactionFilter) ([]*model.Transaction, error) {
	if err := s.check("ListTransactions"); err != nil {
		return nil, err
	}

	var out []*model.Transaction
	for id := s.data.nextID; id > 0; id-- {
		tx, ok := s.data.transactions[id]
		if !ok || !matches(tx, filter) {
			continue
		}
		found := tx
		out = append(out, &found)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *Session) AddTransaction(_ context.Context, tx *model.Transaction) error {
	s.Calls.Adds++
	if err := s.check("AddTransaction"); err != nil {
		return err
	}

	tx.ID = s.data.id()
	s.data.transactions[tx.ID] = *tx
	return nil
}

func (s *Session) SaveTransaction(_ context.Context, tx *model.Transaction, expected model.Status) error {
	s.Calls.Saves++
	if err := s.check("SaveTransaction"); err != nil {
		return err
	}

	current, ok := s.data.transactions[tx.ID]
	if !ok || current.Status != expected {
		return fmt.Errorf("transaction with ID %d is no longer %s: %w", tx.ID, expected, store.ErrConflict)
	}
	s.data.transactions[tx.ID] = *tx
	return nil
}

func (s *Session) DeleteTransaction(_ context.Context, tx *model.Transaction) error {
	s.Calls.Deletes++
	if err := s.check("DeleteTransaction"); err != nil {
		return err
	}

	if _, ok := s.data.transactions[tx.ID]; !ok {
		return fmt.Errorf("transaction with ID %d: %w", tx.ID, store.ErrRecordNotFound)
	}
	delete(s.data.transactions, tx.ID)
	return nil
}

func (s *Session) RefreshTransaction(_ context.Context, tx *model.Transaction) error {
	s.Calls.Refreshes++
	if err := s.check("RefreshTransaction"); err != nil {
		return err
	}

	current, ok := s.data.transactions[tx.ID]
	if !ok {
		return fmt.Errorf("transaction with ID %d: %w", tx.ID, store.ErrRecordNotFound)
	}
	*tx = current
	return nil
}

func (s *Session) FindUser(_ context.Context, username string) (*model.User, error) {
	if err := s.check("FindUser"); err != nil {
		return nil, err
	}

	user, ok := s.data.users[username]
	if !ok {
		return nil, fmt.Errorf("user '%s': %w", username, store.ErrRecordNotFound)
	}
	return &user, nil
}

func (s *Session) AddUser(_ context.Context, user *model.User) error {
	s.Calls.Adds++
	if err := s.check("AddUser"); err != nil {
		return err
	}

	for _, existing := range s.data.users {
		switch {
		case existing.Username == user.Username:
			return unique("users", "username")
		case existing.Email == user.Email:
			return unique("users", "email")
		case existing.PhoneNumber == user.PhoneNumber:
			return unique("users", "phone_number")
		}
	}

	user.ID = s.data.id()
	s.data.users[user.Username] = *user
	return nil
}

func (s *Session) ListCategories(context.Context) ([]*model.Category, error) {
	if err := s.check("ListCategories"); err != nil {
		return nil, err
	}

	var out []*model.Category
	for id := int64(1); id <= s.data.nextID; id++ {
		if cat, ok := s.data.categories[id]; ok {
			out = append(out, &cat)
		}
	}
	return out, nil
}

func (s *Session) AddCategory(_ context.Context, cat *model.Category) error {
	s.Calls.Adds++
	if err := s.check("AddCategory"); err != nil {
		return err
	}

	for _, existing := range s.data.categories {
		if existing.Name == cat.Name {
			return unique("categories", "name")
		}
	}

	cat.ID = s.data.id()
	s.data.categories[cat.ID] = *cat
	return nil
}

func (s *Session) Commit() error {
	s.Calls.Commits++
	if err := s.check("Commit"); err != nil {
		return err
	}
	if err := s.foreignKeys(); err != nil {
		return err
	}

	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	s.st.data = s.data
	s.done = true
	return nil
}

func (s *Session) Rollback() error {
	s.Calls.Rollbacks++
	if err, ok := s.fails["Rollback"]; ok {
		return err
	}

	s.done = true
	return nil
}

func (s *Session) foreignKeys() error {
	for _, acc := range s.data.accounts {
		if _, ok := s.data.users[acc.Username]; !ok {
			return foreignKey("accounts", "username")
		}
	}

	// Columns come in the order SQLite reports them: last declared key first.
	var columns []string
	add := func(column string) {
		for _, c := range columns {
			if c == column {
				return
			}
		}
		columns = append(columns, column)
	}

	for _, tx := range s.data.transactions {
		if _, ok := s.data.categories[tx.CategoryID]; !ok {
			add("category_id")
		}
		if _, ok := s.data.accounts[tx.ReceiverAccount]; !ok {
			add("receiver_account")
		}
		if _, ok := s.data.accounts[tx.SenderAccount]; !ok {
			add("sender_account")
		}
	}

	if len(columns) == 0 {
		return nil
	}
	cerr := foreignKey("transactions", columns[0])
	cerr.Columns = columns
	return cerr
}

func unique(table, column string) error {
	return &store.ConstraintError{
		Kind:   store.ConstraintUnique,
		Table:  table,
		Column: column,
		Err:    errors.New("UNIQUE constraint failed: " + table + "." + column),
	}
}

func foreignKey(table, column string) *store.ConstraintError {
	return &store.ConstraintError{
		Kind:   store.ConstraintForeignKey,
		Table:  table,
		Column: column,
		Err:    errors.New("FOREIGN KEY constraint failed"),
	}
}

// Violation builds the error a store reports for a violated column.
func Violation(kind store.ConstraintKind, table, column string) error {
	return &store.ConstraintError{
		Kind:   kind,
		Table:  table,
		Column: column,
		Err:    fmt.Errorf("%s constraint failed: %s.%s", kind, table, column),
	}
}
