package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders money with exactly two decimal places.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// ParseAmount reads a user-typed amount such as "150", "150.5" or
// "1,250.00". Precision is left to the service, which rejects more than two
// decimal places instead of rounding them away.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(amountStr), ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount: %s", amountStr)
	}

	return amount, nil
}

// ValidateAmountInput is a prompt validator for ParseAmount.
func ValidateAmountInput(s string) error {
	_, err := ParseAmount(s)
	return err
}
