package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

// String renders the amount with two decimal places, e.g. "USD 35.00".
func (m Money) String() string {
	return m.Currency.String() + " " + m.Amount.StringFixed(2)
}
