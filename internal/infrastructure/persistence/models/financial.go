package models

import (
	"github.com/opstracker/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// FinancialEntryModel is a revenue or expense row
type FinancialEntryModel struct {
	OwnedModel
	Date     string          `gorm:"type:varchar(10);not null;index"`
	Type     string          `gorm:"type:varchar(10);not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Category string          `gorm:"type:varchar(100)"`
	Notes    string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FinancialEntryModel) TableName() string {
	return "financial_entries"
}

// ToDomain converts the model to a domain Entry
func (m *FinancialEntryModel) ToDomain() *finance.Entry {
	return &finance.Entry{
		OwnedEntity: m.OwnedModel.ToDomain(),
		Date:        m.Date,
		Type:        finance.EntryType(m.Type),
		Amount:      m.Amount,
		Category:    m.Category,
		Notes:       m.Notes,
	}
}

// FinancialEntryModelFromDomain converts a domain Entry to its model
func FinancialEntryModelFromDomain(e *finance.Entry) *FinancialEntryModel {
	return &FinancialEntryModel{
		OwnedModel: ownedFromDomain(e.OwnedEntity),
		Date:       e.Date,
		Type:       string(e.Type),
		Amount:     e.Amount,
		Category:   e.Category,
		Notes:      e.Notes,
	}
}
