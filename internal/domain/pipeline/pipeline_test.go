package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer_Defaults(t *testing.T) {
	c, err := NewCustomer("user_123", "Ann", "555-0100", "2024-01-15")
	require.NoError(t, err)

	assert.Equal(t, 1, c.TotalJobs)
	assert.True(t, c.TotalRevenue.IsZero())
	assert.Equal(t, 0, c.ReferralsGiven)
	assert.Equal(t, "2024-01-15", c.LastJobDate)

	_, err = NewCustomer("user_123", "", "555-0100", "2024-01-15")
	assert.Error(t, err)
	_, err = NewCustomer("user_123", "Ann", "", "not-a-date")
	assert.Error(t, err)
}

func TestCustomer_ApplyCounters(t *testing.T) {
	c, err := NewCustomer("user_123", "Ann", "", "2024-01-15")
	require.NoError(t, err)

	jobs := 3
	revenue := decimal.NewFromInt(450)
	last := "2024-02-01"
	require.NoError(t, c.Apply(CustomerPatch{TotalJobs: &jobs, TotalRevenue: &revenue, LastJobDate: &last}))
	assert.Equal(t, 3, c.TotalJobs)
	assert.True(t, revenue.Equal(c.TotalRevenue))
	assert.Equal(t, "2024-02-01", c.LastJobDate)

	early := "2023-12-01"
	assert.Error(t, c.Apply(CustomerPatch{LastJobDate: &early}))

	negative := -1
	assert.Error(t, c.Apply(CustomerPatch{ReferralsGiven: &negative}))
	assert.Equal(t, 0, c.ReferralsGiven)
}

func TestLead_Apply(t *testing.T) {
	lead, err := NewLead("user_123", LeadDetails{Name: "Pat", DateAdded: "2024-01-10", Status: "new"})
	require.NoError(t, err)
	assert.Equal(t, "Pat", lead.Name)

	err = lead.Apply(LeadDetails{Name: "Pat", DateAdded: "Jan 10"})
	assert.Error(t, err)
	assert.Equal(t, "2024-01-10", lead.DateAdded)
}

func TestFollowUp_Dates(t *testing.T) {
	_, err := NewFollowUp("user_123", FollowUpDetails{CustomerName: "Ann", FollowUpDate: "2024-02-30"})
	assert.Error(t, err)

	f, err := NewFollowUp("user_123", FollowUpDetails{CustomerName: "Ann", FollowUpDate: "2024-02-28"})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-28", f.FollowUpDate)
}
