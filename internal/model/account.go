package model

import "github.com/shopspring/decimal"

type Account struct {
	ID        int64
	Username  string
	Balance   decimal.Decimal
	IsBlocked bool
}
