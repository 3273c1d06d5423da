package persistence_test

import (
	"context"
	"testing"

	"github.com/opstracker/backend/internal/domain/finance"
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/opstracker/backend/internal/infrastructure/persistence"
	"github.com/opstracker/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormFinancialEntryRepository_Month(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewGormFinancialEntryRepository(testutil.NewSQLiteDB(t))
	userID := testutil.ExternalUserID()

	for _, e := range []struct {
		date   string
		typ    finance.EntryType
		amount int64
	}{
		{"2024-01-31", finance.EntryTypeRevenue, 100},
		{"2024-02-01", finance.EntryTypeRevenue, 500},
		{"2024-02-15", finance.EntryTypeExpense, 120},
		{"2024-02-29", finance.EntryTypeExpense, 30},
		{"2024-03-01", finance.EntryTypeRevenue, 999},
	} {
		entry, err := finance.NewEntry(userID, e.date, e.typ, decimal.NewFromInt(e.amount), "misc", "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, entry))
	}

	start, next, err := shared.MonthBounds("2024-02")
	require.NoError(t, err)
	entries, err := repo.FindForMonth(ctx, userID, start, next)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2024-02-29", entries[0].Date)
	assert.Equal(t, "2024-02-01", entries[2].Date)

	count, err := repo.CountByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	others, err := repo.CountByUser(ctx, testutil.ExternalUserID())
	require.NoError(t, err)
	assert.Zero(t, others)

	all, err := repo.FindAll(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", all[0].Date)

	require.NoError(t, repo.Delete(ctx, all[0].ID))
	assert.ErrorIs(t, repo.Delete(ctx, all[0].ID), shared.ErrNotFound)
}
