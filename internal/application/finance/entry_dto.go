package finance

import (
	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// AddEntryRequest records a revenue or expense row
type AddEntryRequest struct {
	Date     string          `json:"date" binding:"required,isodate"`
	Type     string          `json:"type" binding:"required,oneof=revenue expense"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category" binding:"max=100"`
	Notes    string          `json:"notes"`
}

// EntryResponse represents a financial entry in API responses
type EntryResponse struct {
	ID       uuid.UUID       `json:"id"`
	Date     string          `json:"date"`
	Type     string          `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Notes    string          `json:"notes"`
}

// TotalsResponse is the reduction of a month's entries
type TotalsResponse struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetProfit decimal.Decimal `json:"net_profit"`
	Margin    decimal.Decimal `json:"margin"`
}

// MonthlyFinancialsResponse is one month of entries with totals
type MonthlyFinancialsResponse struct {
	Month   string          `json:"month"`
	Entries []EntryResponse `json:"entries"`
	Totals  TotalsResponse  `json:"totals"`
}

// ToEntryResponse converts a domain entry
func ToEntryResponse(e *finance.Entry) EntryResponse {
	return EntryResponse{
		ID:       e.ID,
		Date:     e.Date,
		Type:     string(e.Type),
		Amount:   e.Amount,
		Category: e.Category,
		Notes:    e.Notes,
	}
}

// ToTotalsResponse converts domain totals
func ToTotalsResponse(t finance.Totals) TotalsResponse {
	return TotalsResponse{
		Revenue:   t.Revenue,
		Expenses:  t.Expenses,
		NetProfit: t.NetProfit,
		Margin:    t.Margin.Round(2),
	}
}
