package service

import (
	"github.com/hance08/remit/internal/apperror"
	"github.com/shopspring/decimal"
)

// DraftRequest carries the fields a sender may set on a draft, both when
// creating and when editing it.
type DraftRequest struct {
	ReceiverAccount string
	Amount          decimal.Decimal
	CategoryID      int64
	Description     string
}

func (r DraftRequest) Validate() error {
	return validateAmount(r.Amount)
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperror.InvalidRequest(apperror.MsgAmountNotPositive)
	}
	if !amount.Equal(amount.Truncate(2)) {
		return apperror.InvalidRequest(apperror.MsgAmountPrecision)
	}
	return nil
}
