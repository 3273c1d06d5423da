package finance

import (
	"testing"

	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		entryType EntryType
		amount    string
		wantErr   string
	}{
		{name: "revenue", date: "2024-03-01", entryType: EntryTypeRevenue, amount: "120.50"},
		{name: "largest storable amount", date: "2024-03-01", entryType: EntryTypeExpense, amount: "9999999999.99"},
		{name: "bad date", date: "2024-02-30", entryType: EntryTypeRevenue, amount: "10", wantErr: "INVALID_DATE"},
		{name: "bad type", date: "2024-03-01", entryType: "refund", amount: "10", wantErr: "INVALID_ENTRY_TYPE"},
		{name: "zero", date: "2024-03-01", entryType: EntryTypeRevenue, amount: "0", wantErr: "INVALID_AMOUNT"},
		{name: "rounds to zero", date: "2024-03-01", entryType: EntryTypeRevenue, amount: "0.001", wantErr: "INVALID_AMOUNT"},
		{name: "sub-cent precision", date: "2024-03-01", entryType: EntryTypeRevenue, amount: "12.345", wantErr: "INVALID_AMOUNT"},
		{name: "overflows column", date: "2024-03-01", entryType: EntryTypeRevenue, amount: "10000000000", wantErr: "INVALID_AMOUNT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEntry("user_123", tt.date, tt.entryType, decimal.RequireFromString(tt.amount), "general", "")
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.True(t, decimal.RequireFromString(tt.amount).Equal(e.Amount))
				return
			}
			require.Error(t, err)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantErr, de.Code)
		})
	}
}
