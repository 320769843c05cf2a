package service

import (
	"fmt"

	"github.com/hance08/remit/internal/apperror"
	"github.com/hance08/remit/internal/model"
	"github.com/shopspring/decimal"
)

// checkDebit guards the sender side of a confirmation.
func (ts *TransactionService) checkDebit(acc *model.Account, amount decimal.Decimal) error {
	if acc.IsBlocked {
		return apperror.InvalidRequest(apperror.MsgAccountBlocked)
	}
	if !ts.config.Ledger.AllowOverdraft && acc.Balance.LessThan(amount) {
		return apperror.InvalidRequest(apperror.MsgInsufficientFunds)
	}
	return nil
}

// checkCredit guards the receiver side of a confirmation or acceptance.
func checkCredit(acc *model.Account) error {
	if acc.IsBlocked {
		return apperror.InvalidRequest(apperror.MsgAccountBlocked)
	}
	return nil
}

// advance moves tx to the status after its current one and returns the
// status it left, which the save is guarded on.
func advance(tx *model.Transaction) (model.Status, error) {
	from := tx.Status
	next, ok := from.Next()
	if !ok {
		return from, fmt.Errorf("transaction %d can not leave status %q", tx.ID, from)
	}
	tx.Status = next
	return from, nil
}
