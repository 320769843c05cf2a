package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a transfer. It is persisted as the
// literal string value.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusCompleted:
		return true
	}
	return false
}

// Next returns the status a transaction moves to from s.
// Completed transactions have no successor.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusDraft:
		return StatusPending, true
	case StatusPending:
		return StatusCompleted, true
	}
	return "", false
}

type Transaction struct {
	ID                int64
	SenderAccount     string
	ReceiverAccount   string
	Amount            decimal.Decimal
	CategoryID        int64
	Description       string
	TransactionDate   *time.Time
	Status            Status
	IsRecurring       bool
	RecurringInterval *string
	IsFlagged         bool
}
