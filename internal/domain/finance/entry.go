package finance

import (
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryType distinguishes money in from money out
type EntryType string

const (
	EntryTypeRevenue EntryType = "revenue"
	EntryTypeExpense EntryType = "expense"
)

// IsValid reports whether the type is revenue or expense
func (t EntryType) IsValid() bool {
	return t == EntryTypeRevenue || t == EntryTypeExpense
}

// Entry is a dated revenue or expense row. It is independent of the daily
// log's revenue/expense fields.
type Entry struct {
	shared.OwnedEntity
	Date     string
	Type     EntryType
	Amount   decimal.Decimal
	Category string
	Notes    string
}

// NewEntry validates and creates an entry
func NewEntry(userID, date string, entryType EntryType, amount decimal.Decimal, category, notes string) (*Entry, error) {
	if _, err := shared.ParseDay(date); err != nil {
		return nil, err
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Entry type must be revenue or expense")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	if err := shared.ValidateMoney("Amount", amount); err != nil {
		return nil, err
	}
	return &Entry{
		OwnedEntity: shared.NewOwnedEntity(userID),
		Date:        date,
		Type:        entryType,
		Amount:      amount,
		Category:    category,
		Notes:       notes,
	}, nil
}
