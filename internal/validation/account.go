package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/hance08/remit/internal/constants"
	"github.com/hance08/remit/internal/utils"
)

// ValidateUsername checks the format of a new username.
func ValidateUsername(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("username can't be empty")
	}

	if strings.ContainsAny(name, " \t:") {
		return fmt.Errorf("username cannot contain spaces or ':'")
	}

	if constants.ReservedUsernames[strings.ToLower(name)] {
		return fmt.Errorf("'%s' is a reserved username", name)
	}

	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("username too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email can't be empty")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("'%s' is not a valid email address", email)
	}
	return nil
}

// ValidatePhoneNumber accepts digits with an optional leading '+' and
// the usual separators.
func ValidatePhoneNumber(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("phone number can't be empty")
	}

	if len(phone) > constants.MaxPhoneNumberLen {
		return fmt.Errorf("phone number too long (max %d characters)", constants.MaxPhoneNumberLen)
	}

	digits := 0
	for i, c := range phone {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '+' && i == 0:
		case c == '-' || c == ' ' || c == '(' || c == ')':
		default:
			return fmt.Errorf("phone number can only contain digits, '+', '-', spaces and parentheses")
		}
	}

	if digits == 0 {
		return fmt.Errorf("phone number must contain digits")
	}
	return nil
}

func ValidateCategoryName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("category name can't be empty")
	}

	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("category name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

func ValidateDescription(description string) error {
	if len(description) > constants.MaxDescriptionLen {
		return fmt.Errorf("description too long (max %d characters)", constants.MaxDescriptionLen)
	}
	return nil
}

// ValidateOpeningBalance validates the opening balance typed at registration.
// Empty means zero.
func ValidateOpeningBalance(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	balance, err := utils.ParseAmount(input)
	if err != nil {
		return err
	}

	if balance.IsNegative() {
		return fmt.Errorf("opening balance can't be negative")
	}
	return nil
}
