package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFromName(t *testing.T) {
	tests := []struct {
		name string
		want Plan
	}{
		{"pro", PlanPro},
		{"Pro Monthly", PlanPro},
		{"PROFESSIONAL", PlanPro},
		{"starter", PlanFree},
		{"", PlanFree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanFromName(tt.name))
		})
	}
}

func TestNewUser(t *testing.T) {
	u, err := NewUser("user_1", "  Ada Lovelace ", "")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.Equal(t, NoEmail, u.Email)
	assert.Equal(t, PlanFree, u.Plan)

	events := u.PullDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeUserCreated, events[0].EventType())

	_, err = NewUser(" ", "x", "x@example.com")
	assert.Error(t, err)
}

func TestUser_SubscriptionLifecycle(t *testing.T) {
	u, err := NewUser("user_1", "Ada", "ada@example.com")
	require.NoError(t, err)

	ends := time.Now().Add(24 * time.Hour)
	u.ApplySubscription("sub_1", PlanPro, ends)
	assert.True(t, u.IsPro())
	require.NotNil(t, u.SubscriptionID)
	assert.Equal(t, "sub_1", *u.SubscriptionID)

	u.CancelSubscription()
	assert.False(t, u.IsPro())
	assert.Nil(t, u.SubscriptionID)
	assert.Nil(t, u.SubscriptionEndsAt)
}

func TestNewSeed(t *testing.T) {
	u, err := NewUser("user_1", "Ada", "ada@example.com")
	require.NoError(t, err)

	seed := NewSeed(u)
	assert.Equal(t, DefaultBusinessName, seed.BusinessInfo.BusinessName)
	assert.Equal(t, "ada@example.com", seed.BusinessInfo.BusinessEmail)
	assert.Len(t, seed.Goals, 10)
	assert.Len(t, seed.Tools, 9)
	for _, g := range seed.Goals {
		assert.Equal(t, "user_1", g.UserID)
	}
}
