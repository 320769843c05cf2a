package service

import (
	"github.com/hance08/remit/internal/apperror"
	"github.com/hance08/remit/internal/store"
)

// ConstraintRule maps a violated column to a client-facing message.
type ConstraintRule struct {
	Column  string
	Message string
}

// ConstraintTranslator turns integrity violations reported by the store
// into InvalidRequest errors. Rules are checked in order and the first rule
// naming a violated column wins, whatever order the store reported the
// columns in. Anything else gets Fallback, so the constraint itself is never
// shown to the client.
type ConstraintTranslator struct {
	Rules    []ConstraintRule
	Fallback string
}

var (
	TransferConstraints = ConstraintTranslator{
		Rules: []ConstraintRule{
			{Column: "receiver_account", Message: apperror.MsgReceiverNotExist},
			{Column: "category_id", Message: apperror.MsgCategoryNotExist},
		},
		Fallback: apperror.MsgOperationFailed,
	}

	RegistrationConstraints = ConstraintTranslator{
		Rules: []ConstraintRule{
			{Column: "username", Message: apperror.MsgUsernameExists},
			{Column: "phone_number", Message: apperror.MsgPhoneNumberExists},
			{Column: "email", Message: apperror.MsgEmailExists},
		},
		Fallback: apperror.MsgRegistrationFailed,
	}

	CategoryConstraints = ConstraintTranslator{
		Rules: []ConstraintRule{
			{Column: "name", Message: apperror.MsgCategoryExists},
		},
		Fallback: apperror.MsgOperationFailed,
	}
)

func (t ConstraintTranslator) Translate(violation *store.ConstraintError) *apperror.Error {
	msg := t.Fallback
	if violation != nil {
		for _, rule := range t.Rules {
			if violation.Involves(rule.Column) {
				msg = rule.Message
				break
			}
		}
	}

	out := apperror.InvalidRequest(msg)
	if violation != nil {
		out.Err = violation
	}
	return out
}
