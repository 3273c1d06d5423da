package shared

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places money columns keep
const MoneyScale = 2

// MaxMoney is the smallest amount the money columns cannot hold
var MaxMoney = decimal.New(1, 10)

// ValidateMoney rejects amounts a money column would round or overflow
func ValidateMoney(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(MoneyScale)) {
		return NewDomainError("INVALID_AMOUNT", fmt.Sprintf("%s must have at most %d decimal places", field, MoneyScale))
	}
	if amount.Abs().GreaterThanOrEqual(MaxMoney) {
		return NewDomainError("INVALID_AMOUNT", fmt.Sprintf("%s must be less than %s", field, MaxMoney.String()))
	}
	return nil
}
