package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t *testing.T, date string, typ EntryType, amount string) *Entry {
	t.Helper()
	e, err := NewEntry("user_123", date, typ, decimal.RequireFromString(amount), "", "")
	require.NoError(t, err)
	return e
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func TestSummarize(t *testing.T) {
	t.Run("sums by type and computes margin", func(t *testing.T) {
		totals := Summarize([]*Entry{
			entry(t, "2024-01-02", EntryTypeRevenue, "60"),
			entry(t, "2024-01-03", EntryTypeRevenue, "40"),
			entry(t, "2024-01-04", EntryTypeExpense, "25"),
		})

		assertDecimal(t, "100", totals.Revenue)
		assertDecimal(t, "25", totals.Expenses)
		assertDecimal(t, "75", totals.NetProfit)
		assertDecimal(t, "75", totals.Margin)
	})

	t.Run("margin is zero without revenue regardless of expenses", func(t *testing.T) {
		totals := Summarize([]*Entry{
			entry(t, "2024-01-04", EntryTypeExpense, "80"),
		})

		assertDecimal(t, "0", totals.Revenue)
		assertDecimal(t, "-80", totals.NetProfit)
		assertDecimal(t, "0", totals.Margin)
	})

	t.Run("empty set", func(t *testing.T) {
		totals := Summarize(nil)
		assertDecimal(t, "0", totals.Revenue)
		assertDecimal(t, "0", totals.Margin)
	})

	t.Run("negative margin when expenses exceed revenue", func(t *testing.T) {
		totals := Summarize([]*Entry{
			entry(t, "2024-01-02", EntryTypeRevenue, "50"),
			entry(t, "2024-01-04", EntryTypeExpense, "100"),
		})
		assertDecimal(t, "-100", totals.Margin)
	})
}

func TestConversionRate(t *testing.T) {
	assertDecimal(t, "0", ConversionRate(0, 0))
	assertDecimal(t, "0", ConversionRate(3, 0))
	assertDecimal(t, "50", ConversionRate(2, 4))
	assertDecimal(t, "100", ConversionRate(5, 5))
}

func TestMonthlyGrowth(t *testing.T) {
	entries := []*Entry{
		entry(t, "2024-03-10", EntryTypeRevenue, "300"),
		entry(t, "2024-01-05", EntryTypeRevenue, "100"),
		entry(t, "2024-01-20", EntryTypeExpense, "30"),
		entry(t, "2023-12-31", EntryTypeExpense, "10"),
		entry(t, "2024-03-11", EntryTypeExpense, "50"),
	}

	buckets := MonthlyGrowth(entries)
	require.Len(t, buckets, 3)

	assert.Equal(t, "2023-12", buckets[0].Key)
	assert.Equal(t, "Dec 2023", buckets[0].Label)
	assertDecimal(t, "-10", buckets[0].Profit)

	assert.Equal(t, "2024-01", buckets[1].Key)
	assert.Equal(t, "Jan 2024", buckets[1].Label)
	assertDecimal(t, "100", buckets[1].Revenue)
	assertDecimal(t, "30", buckets[1].Expenses)
	assertDecimal(t, "70", buckets[1].Profit)

	assert.Equal(t, "2024-03", buckets[2].Key)
	assertDecimal(t, "250", buckets[2].Profit)

	t.Run("bucket revenue adds up to total revenue", func(t *testing.T) {
		sum := decimal.Zero
		for _, b := range buckets {
			sum = sum.Add(b.Revenue)
		}
		assert.True(t, Summarize(entries).Revenue.Equal(sum))
	})
}

func TestNewEntry_Validation(t *testing.T) {
	_, err := NewEntry("user_1", "2024-13-01", EntryTypeRevenue, decimal.NewFromInt(1), "", "")
	assert.Error(t, err)

	_, err = NewEntry("user_1", "2024-01-01", EntryType("refund"), decimal.NewFromInt(1), "", "")
	assert.Error(t, err)

	_, err = NewEntry("user_1", "2024-01-01", EntryTypeExpense, decimal.Zero, "", "")
	assert.Error(t, err)
}
