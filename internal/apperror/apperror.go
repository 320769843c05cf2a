// Package apperror defines the errors the service layer returns to the
// presentation layer. Each error carries a kind that decides its status class
// and a fixed message that clients can match on.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidRequest
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidRequest:
		return "invalid_request"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

const (
	MsgAccountNotFound    = "Account not found!"
	MsgDraftNotFound      = "Transaction draft not found!"
	MsgIncomingNotFound   = "Incoming transaction not found!"
	MsgReceiverNotExist   = "Receiver doesn't exist!"
	MsgCategoryNotExist   = "Category doesn't exist!"
	MsgOperationFailed    = "Could not complete operation"
	MsgUsernameExists     = "Username already exists"
	MsgPhoneNumberExists  = "Phone number already exists"
	MsgEmailExists        = "Email already exists"
	MsgRegistrationFailed = "Could not complete registration"
	MsgCategoryExists     = "Category already exists"
	MsgAmountNotPositive  = "Amount must be positive!"
	MsgAmountPrecision    = "Amount can have at most two decimal places!"
	MsgAccountBlocked     = "Account is blocked!"
	MsgInsufficientFunds  = "Insufficient funds!"
	MsgInvalidCredentials = "Invalid username or password"
	MsgMissingField       = "Required field is missing!"
	MsgNotLoggedIn        = "You are not logged in"
	MsgNegativeBalance    = "Opening balance can't be negative!"
	MsgUserRestricted     = "User is restricted!"
)

// Error is a domain error. Error() returns only the fixed message; the
// underlying cause is reachable through Unwrap for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same kind and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func InvalidRequest(msg string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Internal hides cause behind the generic operation message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: MsgOperationFailed, Err: cause}
}

// Wrap returns a copy of e with cause attached.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: cause}
}

// KindOf reports the kind of the first *Error in err's chain, and
// KindInternal for anything else.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Status maps err to the status class the presentation layer reports.
func Status(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err. Errors that are not
// domain errors never expose their text.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return MsgOperationFailed
}
