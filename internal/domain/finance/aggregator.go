package finance

import (
	"sort"

	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals is the reduction of a set of entries
type Totals struct {
	Revenue   decimal.Decimal
	Expenses  decimal.Decimal
	NetProfit decimal.Decimal
	Margin    decimal.Decimal
}

// Summarize sums entries by type. Margin is profit/revenue*100, and 0 when
// there is no revenue.
func Summarize(entries []*Entry) Totals {
	t := Totals{Revenue: decimal.Zero, Expenses: decimal.Zero}
	for _, e := range entries {
		switch e.Type {
		case EntryTypeRevenue:
			t.Revenue = t.Revenue.Add(e.Amount)
		case EntryTypeExpense:
			t.Expenses = t.Expenses.Add(e.Amount)
		}
	}
	t.NetProfit = t.Revenue.Sub(t.Expenses)
	t.Margin = Margin(t.Revenue, t.NetProfit)
	return t
}

// Margin returns profit as a percentage of revenue
func Margin(revenue, profit decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred)
}

// ConversionRate returns jobs as a percentage of approaches
func ConversionRate(jobs, approaches int) decimal.Decimal {
	if approaches <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(jobs)).Div(decimal.NewFromInt(int64(approaches))).Mul(hundred)
}

// MonthBucket is one calendar month of the growth chart
type MonthBucket struct {
	Key      string // 2006-01
	Label    string // Jan 2006
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Profit   decimal.Decimal
}

// MonthlyGrowth groups entries by the month of their date in one pass and
// returns the buckets in ascending month order. Entries with an unparseable
// date are skipped.
func MonthlyGrowth(entries []*Entry) []MonthBucket {
	byMonth := make(map[string]*MonthBucket)
	for _, e := range entries {
		day, err := shared.ParseDay(e.Date)
		if err != nil {
			continue
		}
		key := day.Format(shared.MonthLayout)
		b, ok := byMonth[key]
		if !ok {
			b = &MonthBucket{
				Key:      key,
				Label:    day.Format(shared.MonthLabel),
				Revenue:  decimal.Zero,
				Expenses: decimal.Zero,
				Profit:   decimal.Zero,
			}
			byMonth[key] = b
		}
		switch e.Type {
		case EntryTypeRevenue:
			b.Revenue = b.Revenue.Add(e.Amount)
		case EntryTypeExpense:
			b.Expenses = b.Expenses.Add(e.Amount)
		}
		b.Profit = b.Revenue.Sub(b.Expenses)
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, *byMonth[k])
	}
	return buckets
}
